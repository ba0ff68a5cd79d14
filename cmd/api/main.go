package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/brightpath-edu/school-ledger/internal/domain/usecase/admission"
	enrollmentUseCase "github.com/brightpath-edu/school-ledger/internal/domain/usecase/enrollment"
	ledgerUseCase "github.com/brightpath-edu/school-ledger/internal/domain/usecase/ledger"
	profileUseCase "github.com/brightpath-edu/school-ledger/internal/domain/usecase/profile"

	"github.com/brightpath-edu/school-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/brightpath-edu/school-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/brightpath-edu/school-ledger/internal/infrastructure/adapter/database"
	"github.com/brightpath-edu/school-ledger/internal/infrastructure/adapter/logger"
	"github.com/brightpath-edu/school-ledger/internal/infrastructure/adapter/notification"
	"github.com/brightpath-edu/school-ledger/internal/infrastructure/adapter/random"
	"github.com/brightpath-edu/school-ledger/internal/infrastructure/adapter/timeutil"
	"github.com/brightpath-edu/school-ledger/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)

	// Initialize time provider
	tp := timeutil.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(cfg.ToDatabaseConfig(), appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			appLogger.Error("Failed to close database", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Unit of work
	uow := dbManager.CreateUnitOfWork()

	// Admission number issuer backed by a cryptographic digit source
	issuer := admission.NewIssuer(admission.Config{
		InstitutionCode: cfg.School.InstitutionCode,
		TotalLength:     cfg.School.AdmissionNumberLength,
	}, random.NewCryptoDigitSource(), appLogger)

	// Notification sink for enrollment confirmations
	sink := notification.NewLogSink(appLogger)

	// Initialize use cases
	enrollmentService := enrollmentUseCase.NewService(uow, issuer, sink, tp, appLogger).
		WithMaxAttempts(cfg.School.MaxEnrollmentAttempts)
	ledgerService := ledgerUseCase.NewService(uow, tp, appLogger)
	profileOrchestrator := profileUseCase.NewOrchestrator(uow, enrollmentService, appLogger)

	// Initialize API handlers
	profileHandler := handler.NewProfileHandler(profileOrchestrator, uow, appLogger)
	studentHandler := handler.NewStudentHandler(enrollmentService, uow, appLogger)
	transactionHandler := handler.NewTransactionHandler(ledgerService, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(router, profileHandler, studentHandler, transactionHandler, dbManager.HealthCheck)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or SL_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or SL_DB_USERNAME environment variable)")
	}
	if cfg.Database.Password == "" {
		missingConfigs = append(missingConfigs, "database.password (or SL_DB_PASSWORD environment variable)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or SL_DB_NAME environment variable)")
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	// An admission number issued under a guessed institution code could
	// collide with a real institution's numbering, so there is no default.
	if cfg.School.InstitutionCode == "" {
		missingConfigs = append(missingConfigs, "school.institutionCode (or SL_SCHOOL_INSTITUTION_CODE environment variable)")
	}
	if cfg.School.AdmissionNumberLength == 0 {
		missingConfigs = append(missingConfigs, "school.admissionNumberLength")
	}
	if cfg.School.MaxEnrollmentAttempts == 0 {
		missingConfigs = append(missingConfigs, "school.maxEnrollmentAttempts")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	return nil
}
