package persistence

import (
	"context"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
)

// TransactionRepository defines methods to interact with the payment ledger
type TransactionRepository interface {
	// Create persists a new pending transaction row
	//
	// Possible errors:
	// - ErrDuplicateKey: If the reference already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// CreateItems persists the transaction's line items. The
	// (transaction, fee) pair is unique: billing the same fee twice in one
	// transaction is rejected by constraint.
	//
	// Possible errors:
	// - ErrDuplicateKey: If a (transaction, fee) pair repeats
	// - ErrConstraintViolation: If a referenced fee doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	CreateItems(ctx context.Context, items []*entity.TransactionItem) error

	// SumItemAmounts runs the aggregate-sum query over the persisted line
	// items of a transaction, returning the total in cents
	SumItemAmounts(ctx context.Context, transactionID uint64) (int64, error)

	// UpdateStatus updates the lifecycle status of a persisted transaction
	//
	// Possible errors:
	// - ErrTransactionNotFound: If the transaction doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	UpdateStatus(ctx context.Context, transaction *entity.Transaction) error

	// GetByReference retrieves a transaction with its items by external reference
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction carries the reference
	// - ErrDatabaseConnection: If database connection fails
	GetByReference(ctx context.Context, reference string) (*entity.Transaction, error)
}
