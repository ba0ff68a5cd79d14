package routes

import (
	"context"
	"net/http"

	coreport "github.com/brightpath-edu/school-ledger/internal/domain/port/core"
	"github.com/brightpath-edu/school-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/brightpath-edu/school-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// HealthCheck probes a dependency the service cannot run without
type HealthCheck func(ctx context.Context) error

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	profileHandler *handler.ProfileHandler,
	studentHandler *handler.StudentHandler,
	transactionHandler *handler.TransactionHandler,
	healthCheck HealthCheck,
) {
	router.GET("/healthz", func(c *gin.Context) {
		if err := healthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// User-scoped routes
	userRoutes := router.Group("/users")
	{
		// GET /users/:userId/profile
		userRoutes.GET("/:userId/profile", profileHandler.GetProfile)

		// PATCH /users/:userId/profile
		userRoutes.PATCH("/:userId/profile", profileHandler.UpdateProfile)

		// POST /users/:userId/students
		userRoutes.POST("/:userId/students", studentHandler.EnrollStudent)

		// GET /users/:userId/students
		userRoutes.GET("/:userId/students", studentHandler.ListStudents)

		// POST /users/:userId/transactions
		userRoutes.POST("/:userId/transactions", transactionHandler.RecordTransaction)
	}

	// GET /transactions/:reference
	router.GET("/transactions/:reference", transactionHandler.GetTransaction)
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
