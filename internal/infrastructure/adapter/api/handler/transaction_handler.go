package handler

import (
	"net/http"

	domainerr "github.com/brightpath-edu/school-ledger/internal/domain/error"
	coreport "github.com/brightpath-edu/school-ledger/internal/domain/port/core"
	ledgerUseCase "github.com/brightpath-edu/school-ledger/internal/domain/usecase/ledger"
	"github.com/brightpath-edu/school-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles payment transaction HTTP requests
type TransactionHandler struct {
	ledger *ledgerUseCase.Service
	logger coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(ledger *ledgerUseCase.Service, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{
		ledger: ledger,
		logger: logger,
	}
}

// RecordTransaction handles the POST /users/{userId}/transactions endpoint.
// Field rules are deliberately not bound on the DTO: the ledger collects
// every violation and the response reports them all at once.
func (h *TransactionHandler) RecordTransaction(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid transaction request format", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeValidation,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	items := make([]ledgerUseCase.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ledgerUseCase.ItemInput{
			FeeID:  item.FeeID,
			Amount: item.Amount,
		})
	}

	transaction, err := h.ledger.RecordTransaction(c.Request.Context(), ledgerUseCase.RecordInput{
		PayerID:     userID,
		Amount:      req.Amount,
		Description: req.Description,
		Method:      req.Method,
		Items:       items,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(transaction))
}

// GetTransaction handles the GET /transactions/{reference} endpoint
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	reference := c.Param("reference")

	transaction, err := h.ledger.GetByReference(c.Request.Context(), reference)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(transaction))
}
