package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassifierPostgresCodes(t *testing.T) {
	classifier := NewErrorClassifier()

	tests := []struct {
		name     string
		code     string
		expected ErrorType
	}{
		{name: "Unique violation", code: "23505", expected: DuplicateKeyError},
		{name: "Foreign key violation", code: "23503", expected: ForeignKeyError},
		{name: "Serialization failure", code: "40001", expected: LockError},
		{name: "Deadlock detected", code: "40P01", expected: LockError},
		{name: "Check violation", code: "23514", expected: ConstraintError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &pgconn.PgError{Code: tt.code, Message: "pq error"}
			assert.Equal(t, tt.expected, classifier.Classify(err))
		})
	}
}

func TestErrorClassifierWrappedPgError(t *testing.T) {
	classifier := NewErrorClassifier()
	err := fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: "23505"})

	assert.True(t, classifier.IsDuplicateKeyError(err))
	assert.Equal(t, DuplicateKeyError, classifier.Classify(err))
}

func TestErrorClassifierMessageFallbacks(t *testing.T) {
	classifier := NewErrorClassifier()

	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{
			name:     "Duplicate key message",
			err:      errors.New(`duplicate key value violates unique constraint "idx_students_admission_number"`),
			expected: DuplicateKeyError,
		},
		{
			name:     "SQLite unique constraint",
			err:      errors.New("UNIQUE constraint failed: students.admission_number"),
			expected: DuplicateKeyError,
		},
		{
			name:     "Deadlock message",
			err:      errors.New("deadlock detected"),
			expected: LockError,
		},
		{
			name:     "Connection refused",
			err:      errors.New("connection refused"),
			expected: TransientError,
		},
		{
			name:     "Foreign key message",
			err:      errors.New(`insert violates foreign key constraint "fk_transaction_items_fee"`),
			expected: ForeignKeyError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifier.Classify(tt.err))
		})
	}
}

func TestErrorClassifierNilError(t *testing.T) {
	classifier := NewErrorClassifier()

	assert.Equal(t, ErrorType(""), classifier.Classify(nil))
	assert.False(t, classifier.IsDuplicateKeyError(nil))
	assert.False(t, classifier.IsLockError(nil))
	assert.False(t, classifier.IsConstraintError(nil))
}
