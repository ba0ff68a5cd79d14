package handler

import (
	"net/http"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
	domainerr "github.com/brightpath-edu/school-ledger/internal/domain/error"
	coreport "github.com/brightpath-edu/school-ledger/internal/domain/port/core"
	"github.com/brightpath-edu/school-ledger/internal/domain/port/persistence"
	profileUseCase "github.com/brightpath-edu/school-ledger/internal/domain/usecase/profile"
	"github.com/brightpath-edu/school-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	orchestrator *profileUseCase.Orchestrator
	uow          persistence.UnitOfWork
	logger       coreport.Logger
}

// NewProfileHandler creates a new profile handler instance
func NewProfileHandler(
	orchestrator *profileUseCase.Orchestrator,
	uow persistence.UnitOfWork,
	logger coreport.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		orchestrator: orchestrator,
		uow:          uow,
		logger:       logger,
	}
}

// GetProfile handles the GET /users/{userId}/profile endpoint
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	profile, err := h.uow.Profiles(ctx).GetByUserID(ctx, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// UpdateProfile handles the PATCH /users/{userId}/profile endpoint. The
// update and any nested enrollment run in a single atomic unit.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid profile update request format", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeValidation,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.orchestrator.UpdateProfile(c.Request.Context(), userID, toUpdateInput(req))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := dto.ProfileUpdateResponse{
		Message: result.Message,
		Profile: dto.ToProfileResponse(result.Profile),
	}
	if result.Student != nil {
		student := dto.ToStudentResponse(result.Student)
		resp.Student = &student
	}

	c.JSON(http.StatusOK, resp)
}

func toUpdateInput(req dto.ProfileUpdateRequest) profileUseCase.UpdateInput {
	in := profileUseCase.UpdateInput{
		Changes: entity.ProfileChanges{
			Phone:      req.Phone,
			Address:    req.Address,
			City:       req.City,
			Occupation: req.Occupation,
		},
		CreateStudent: req.CreateStudent,
	}
	if req.Student != nil {
		in.Student = &profileUseCase.StudentInput{
			FirstName: req.Student.FirstName,
			LastName:  req.Student.LastName,
			Gender:    req.Student.Gender,
		}
	}
	return in
}
