package entity

import (
	"time"

	errs "github.com/brightpath-edu/school-ledger/internal/domain/error"
	coreport "github.com/brightpath-edu/school-ledger/internal/domain/port/core"
)

// TransactionStatus defines possible status values for a transaction
type TransactionStatus string

// Transaction lifecycle states. A transaction is created pending and either
// completes after its invariants hold or fails; completed rows are immutable.
const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// PaymentMethod represents how the payer settled the transaction
type PaymentMethod string

// Payment methods
const (
	MethodCash         PaymentMethod = "cash"
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodDebitCard    PaymentMethod = "debit_card"
	MethodUPI          PaymentMethod = "upi"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

// Transaction represents a payment event initiated by a payer holding the
// parent role. Its line items must sum exactly to the declared amount and
// every item's fee must belong to one of the payer's students.
type Transaction struct {
	ID            uint64            // Unique identifier for the transaction
	Reference     string            // External reference exposed to the API
	PayerID       uint64            // User who initiated the payment
	Amount        string            // Declared total as a string with 2 decimal places
	AmountInCents int64             // Declared total in cents
	Description   string            // Optional free-form description
	Status        TransactionStatus // Lifecycle state
	Method        PaymentMethod     // Payment method
	CreatedAt     time.Time         // When the transaction was created
	UpdatedAt     time.Time         // When the transaction was last updated

	// Items are the line items persisted with the transaction
	Items []*TransactionItem
}

// TransactionItem links a transaction to one fee with a charged amount.
// The (transaction, fee) pair is unique: a fee cannot be billed twice
// within one transaction.
type TransactionItem struct {
	ID            uint64    // Unique identifier for the item
	TransactionID uint64    // Owning transaction
	FeeID         uint64    // Fee being charged; protected from deletion while referenced
	Amount        string    // Charged amount as a string with 2 decimal places
	AmountInCents int64     // Charged amount in cents, strictly positive
	CreatedAt     time.Time // When the item was created
}

// NewTransaction creates a pending transaction. Amount parsing failures are
// reported via ErrInvalidAmount; the full invariant set (role, sum, ownership)
// is enforced by the ledger before the transaction can complete.
func NewTransaction(
	payerID uint64,
	reference string,
	amount string,
	description string,
	method PaymentMethod,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if payerID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	amountInCents, err := ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &Transaction{
		Reference:     reference,
		PayerID:       payerID,
		Amount:        EnsureTwoDecimalPlaces(amount),
		AmountInCents: amountInCents,
		Description:   description,
		Status:        StatusPending,
		Method:        method,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// MarkCompleted transitions the transaction to completed
func (t *Transaction) MarkCompleted(timeProvider coreport.TimeProvider) {
	t.Status = StatusCompleted
	t.UpdatedAt = timeProvider.Now()
}

// MarkFailed transitions the transaction to failed
func (t *Transaction) MarkFailed(timeProvider coreport.TimeProvider) {
	t.Status = StatusFailed
	t.UpdatedAt = timeProvider.Now()
}

// IsValidPaymentMethod validates if the method is one of the allowed values
func IsValidPaymentMethod(method string) bool {
	switch PaymentMethod(method) {
	case MethodCash, MethodCreditCard, MethodDebitCard, MethodUPI, MethodBankTransfer:
		return true
	}
	return false
}

// IsValidTransactionStatus validates if the status is one of the allowed values
func IsValidTransactionStatus(status string) bool {
	switch TransactionStatus(status) {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}
	return false
}
