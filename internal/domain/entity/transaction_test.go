package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
	errs "github.com/brightpath-edu/school-ledger/internal/domain/error"
	coremocks "github.com/brightpath-edu/school-ledger/mocks/port/core"
)

func TestNewTransaction(t *testing.T) {
	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	clock := coremocks.NewStubTimeProvider(now)

	t.Run("Creates a pending transaction with canonical amount", func(t *testing.T) {
		txn, err := entity.NewTransaction(10, "ref-1", "100.5", "term fees", entity.MethodCash, clock)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusPending, txn.Status)
		assert.Equal(t, "100.50", txn.Amount)
		assert.Equal(t, int64(10050), txn.AmountInCents)
		assert.Equal(t, "ref-1", txn.Reference)
		assert.Equal(t, now, txn.CreatedAt)
	})

	t.Run("Rejects a zero payer ID", func(t *testing.T) {
		_, err := entity.NewTransaction(0, "ref-1", "100.00", "", entity.MethodCash, clock)

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})

	t.Run("Rejects malformed amounts", func(t *testing.T) {
		_, err := entity.NewTransaction(10, "ref-1", "12.345", "", entity.MethodCash, clock)

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Rejects negative amounts", func(t *testing.T) {
		_, err := entity.NewTransaction(10, "ref-1", "-5", "", entity.MethodCash, clock)

		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})
}

func TestTransactionStateTransitions(t *testing.T) {
	created := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	later := created.Add(5 * time.Second)

	t.Run("MarkCompleted stamps status and update time", func(t *testing.T) {
		txn, err := entity.NewTransaction(10, "ref-1", "100.00", "", entity.MethodUPI, coremocks.NewStubTimeProvider(created))
		require.NoError(t, err)

		txn.MarkCompleted(coremocks.NewStubTimeProvider(later))

		assert.Equal(t, entity.StatusCompleted, txn.Status)
		assert.Equal(t, later, txn.UpdatedAt)
	})

	t.Run("MarkFailed stamps status and update time", func(t *testing.T) {
		txn, err := entity.NewTransaction(10, "ref-1", "100.00", "", entity.MethodUPI, coremocks.NewStubTimeProvider(created))
		require.NoError(t, err)

		txn.MarkFailed(coremocks.NewStubTimeProvider(later))

		assert.Equal(t, entity.StatusFailed, txn.Status)
		assert.Equal(t, later, txn.UpdatedAt)
	})
}

func TestPaymentMethodValidation(t *testing.T) {
	for _, method := range []string{"cash", "credit_card", "debit_card", "upi", "bank_transfer"} {
		assert.True(t, entity.IsValidPaymentMethod(method), method)
	}
	assert.False(t, entity.IsValidPaymentMethod("cheque"))
	assert.False(t, entity.IsValidPaymentMethod(""))
}

func TestFeeOwnerID(t *testing.T) {
	t.Run("Resolves through the loaded student", func(t *testing.T) {
		fee := &entity.Fee{ID: 1, Student: &entity.Student{ID: 5, ParentID: 42}}
		assert.Equal(t, uint64(42), fee.OwnerID())
	})

	t.Run("Zero when the student is not loaded", func(t *testing.T) {
		fee := &entity.Fee{ID: 1}
		assert.Zero(t, fee.OwnerID())
	})
}
