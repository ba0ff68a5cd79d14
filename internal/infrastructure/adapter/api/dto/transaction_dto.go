package dto

import (
	"time"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
)

// TransactionItemRequest is one line item of a payment submission
type TransactionItemRequest struct {
	FeeID  uint64 `json:"feeId"`
	Amount string `json:"amount"`
}

// TransactionRequest represents the API request for recording a payment.
// Field-level rules (payer role, amount format, method, item sum, fee
// ownership) are validated together downstream so the response carries
// every violation at once; only the body shape is checked here.
type TransactionRequest struct {
	Amount      string                   `json:"amount"`
	Description string                   `json:"description"`
	Method      string                   `json:"paymentMethod"`
	Items       []TransactionItemRequest `json:"items"`
}

// TransactionItemResponse is one persisted line item
type TransactionItemResponse struct {
	ID     uint64 `json:"id"`
	FeeID  uint64 `json:"feeId"`
	Amount string `json:"amount"`
}

// TransactionResponse represents the API response for a recorded transaction
type TransactionResponse struct {
	ID          uint64                    `json:"id"`
	Reference   string                    `json:"reference"`
	PayerID     uint64                    `json:"payerId"`
	Amount      string                    `json:"amount"`
	Description string                    `json:"description,omitempty"`
	Status      string                    `json:"status"`
	Method      string                    `json:"paymentMethod"`
	Items       []TransactionItemResponse `json:"items"`
	CreatedAt   time.Time                 `json:"createdAt"`
}

// ToTransactionResponse maps a transaction entity to its API representation
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	items := make([]TransactionItemResponse, 0, len(t.Items))
	for _, item := range t.Items {
		items = append(items, TransactionItemResponse{
			ID:     item.ID,
			FeeID:  item.FeeID,
			Amount: item.Amount,
		})
	}
	return TransactionResponse{
		ID:          t.ID,
		Reference:   t.Reference,
		PayerID:     t.PayerID,
		Amount:      t.Amount,
		Description: t.Description,
		Status:      string(t.Status),
		Method:      string(t.Method),
		Items:       items,
		CreatedAt:   t.CreatedAt,
	}
}
