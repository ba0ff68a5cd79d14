package persistence

import (
	"context"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
)

// StudentRepository defines methods to interact with student records
type StudentRepository interface {
	// Create inserts a new student record. The admission number carries a
	// uniqueness constraint; concurrent enrollments may collide, and the
	// caller is expected to regenerate and retry on ErrDuplicateKey.
	//
	// Possible errors:
	// - ErrDuplicateKey: If the admission number already exists
	// - ErrConstraintViolation: If another constraint is violated
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, student *entity.Student) error

	// GetByID retrieves a student by ID
	//
	// Possible errors:
	// - ErrStudentNotFound: If student with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Student, error)

	// CountByParent returns how many students the given parent owns.
	// The enrollment service snapshots this before insert to derive the
	// has_sibling flag.
	CountByParent(ctx context.Context, parentID uint64) (int64, error)

	// ListByParent returns all students owned by the given parent
	ListByParent(ctx context.Context, parentID uint64) ([]*entity.Student, error)

	// MarkSiblings performs the filtered update setting has_sibling = true
	// on every student owned by the given parent
	MarkSiblings(ctx context.Context, parentID uint64) error
}
