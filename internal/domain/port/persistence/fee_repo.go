package persistence

import (
	"context"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
)

// FeeRepository defines the read access the ledger needs to fee records.
// Fees are created and maintained outside the core; the ledger references
// them and never mutates them.
type FeeRepository interface {
	// GetByID retrieves a fee by ID with its student association loaded,
	// so that ownership can be resolved up to the parent
	//
	// Possible errors:
	// - ErrFeeNotFound: If fee with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Fee, error)

	// GetByIDs retrieves the fees for the given IDs with student
	// associations loaded. Missing IDs are simply absent from the result;
	// the caller decides whether absence is an error.
	GetByIDs(ctx context.Context, ids []uint64) ([]*entity.Fee, error)
}
