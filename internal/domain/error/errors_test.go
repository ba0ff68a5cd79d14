package error

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	notFound := []error{
		ErrNotFound,
		ErrUserNotFound,
		ErrProfileNotFound,
		ErrStudentNotFound,
		ErrFeeNotFound,
		ErrTransactionNotFound,
	}
	for _, err := range notFound {
		assert.True(t, IsNotFoundError(err), err.Error())
		assert.True(t, IsNotFoundError(fmt.Errorf("loading: %w", err)), "wrapped %s", err.Error())
	}

	assert.False(t, IsNotFoundError(ErrDuplicateKey))
	assert.False(t, IsNotFoundError(ErrDatabaseConnection))
	assert.False(t, IsNotFoundError(nil))
}

func TestIsDuplicateKeyError(t *testing.T) {
	assert.True(t, IsDuplicateKeyError(ErrDuplicateKey))
	assert.True(t, IsDuplicateKeyError(fmt.Errorf("insert failed: %w", ErrDuplicateKey)))
	assert.False(t, IsDuplicateKeyError(ErrConstraintViolation))
}

func TestIsConfigurationError(t *testing.T) {
	assert.True(t, IsConfigurationError(ErrConfiguration))
	assert.True(t, IsConfigurationError(fmt.Errorf("issuer: %w", ErrConfiguration)))
	assert.False(t, IsConfigurationError(ErrInternalServer))
}
