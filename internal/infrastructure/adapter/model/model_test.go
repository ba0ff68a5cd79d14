package model

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gormTag(t *testing.T, model any, field string) string {
	t.Helper()
	f, ok := reflect.TypeOf(model).FieldByName(field)
	require.True(t, ok, "field %s not found", field)
	return f.Tag.Get("gorm")
}

func TestOnDeleteConstraints(t *testing.T) {
	t.Run("Payer deletion is blocked while transactions exist", func(t *testing.T) {
		assert.Contains(t, gormTag(t, Transaction{}, "Payer"), "OnDelete:RESTRICT")
	})

	t.Run("Fee deletion is blocked while referenced by payment history", func(t *testing.T) {
		assert.Contains(t, gormTag(t, TransactionItem{}, "Fee"), "OnDelete:RESTRICT")
	})

	t.Run("Deleting a transaction removes its items", func(t *testing.T) {
		assert.Contains(t, gormTag(t, TransactionItem{}, "Transaction"), "OnDelete:CASCADE")
	})

	t.Run("Deleting a parent removes their students", func(t *testing.T) {
		assert.Contains(t, gormTag(t, Student{}, "Parent"), "OnDelete:CASCADE")
	})

	t.Run("Deleting a verifier clears the link without touching the student", func(t *testing.T) {
		assert.Contains(t, gormTag(t, Student{}, "VerifiedBy"), "OnDelete:SET NULL")
	})

	t.Run("Deleting a user removes their profile", func(t *testing.T) {
		assert.Contains(t, gormTag(t, Profile{}, "User"), "OnDelete:CASCADE")
	})
}

func TestTransactionCreatedAtIsIndexed(t *testing.T) {
	assert.Contains(t, gormTag(t, Transaction{}, "CreatedAt"), "index")
}
