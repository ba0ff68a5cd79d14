package persistence

import (
	"context"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
)

// UserRepository defines the read access the core needs to user accounts.
// User creation and authentication live outside the core scope.
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)
}

// ProfileRepository defines methods to interact with user profiles
type ProfileRepository interface {
	// GetByUserID retrieves the profile owned by the given user
	//
	// Possible errors:
	// - ErrProfileNotFound: If the user has no profile
	// - ErrDatabaseConnection: If database connection fails
	GetByUserID(ctx context.Context, userID uint64) (*entity.Profile, error)

	// Update persists the profile's mutable fields
	//
	// Possible errors:
	// - ErrProfileNotFound: If the profile doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, profile *entity.Profile) error
}
