package handler

import (
	"net/http"

	domainerr "github.com/brightpath-edu/school-ledger/internal/domain/error"
	coreport "github.com/brightpath-edu/school-ledger/internal/domain/port/core"
	"github.com/brightpath-edu/school-ledger/internal/domain/port/persistence"
	enrollmentUseCase "github.com/brightpath-edu/school-ledger/internal/domain/usecase/enrollment"
	"github.com/brightpath-edu/school-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// StudentHandler handles student enrollment HTTP requests
type StudentHandler struct {
	enrollment *enrollmentUseCase.Service
	uow        persistence.UnitOfWork
	logger     coreport.Logger
}

// NewStudentHandler creates a new student handler instance
func NewStudentHandler(
	enrollment *enrollmentUseCase.Service,
	uow persistence.UnitOfWork,
	logger coreport.Logger,
) *StudentHandler {
	return &StudentHandler{
		enrollment: enrollment,
		uow:        uow,
		logger:     logger,
	}
}

// EnrollStudent handles the POST /users/{userId}/students endpoint
func (h *StudentHandler) EnrollStudent(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.EnrollStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid enrollment request format", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeValidation,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	student, err := h.enrollment.CreateStudentAccount(c.Request.Context(), userID, enrollmentUseCase.Input{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToStudentResponse(student))
}

// ListStudents handles the GET /users/{userId}/students endpoint
func (h *StudentHandler) ListStudents(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.uow.Users(ctx).GetByID(ctx, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	students, err := h.uow.Students(ctx).ListByParent(ctx, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentListResponse(students))
}
