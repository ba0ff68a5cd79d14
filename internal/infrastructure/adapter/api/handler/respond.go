package handler

import (
	"errors"
	"net/http"
	"strconv"

	domainerr "github.com/brightpath-edu/school-ledger/internal/domain/error"
	coreport "github.com/brightpath-edu/school-ledger/internal/domain/port/core"
	"github.com/brightpath-edu/school-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// parseUserID extracts and validates the :userId path parameter. On failure
// it writes the 400 response itself and reports ok=false.
func parseUserID(c *gin.Context) (uint64, bool) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidUserID),
			Message: "Invalid user ID format",
		})
		return 0, false
	}
	return userID, true
}

// respondError maps a domain error onto the HTTP response. Validation errors
// keep their aggregated field map; everything else collapses to the
// standard code/message payload.
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	if ve, ok := domainerr.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
			Code:    domainerr.CodeValidation,
			Message: "Validation failed",
			Errors:  ve.Fields,
		})
		return
	}

	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case domainerr.IsNotFoundError(err):
		statusCode = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domainerr.ErrInvalidUserID),
		errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrNegativeAmount):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domainerr.ErrAdmissionRetryExhausted):
		statusCode = http.StatusServiceUnavailable
		message = "Could not allocate an admission number, please retry"
	}

	if statusCode >= http.StatusInternalServerError {
		logger.Error("Request failed", map[string]any{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"error":  err.Error(),
		})
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}
