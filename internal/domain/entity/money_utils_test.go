package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/brightpath-edu/school-ledger/internal/domain/error"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected int64
	}{
		{name: "Whole number", amount: "12", expected: 1200},
		{name: "One decimal place", amount: "12.5", expected: 1250},
		{name: "Two decimal places", amount: "12.50", expected: 1250},
		{name: "Zero", amount: "0", expected: 0},
		{name: "Trailing dot", amount: "12.", expected: 1200},
		{name: "Surrounding whitespace", amount: " 12.50 ", expected: 1250},
		{name: "Large value", amount: "999999.99", expected: 99999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseAmountRejections(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected error
	}{
		{name: "Empty", amount: "", expected: errs.ErrInvalidAmount},
		{name: "Negative", amount: "-12.50", expected: errs.ErrNegativeAmount},
		{name: "Three decimal places", amount: "12.505", expected: errs.ErrInvalidAmount},
		{name: "Two dots", amount: "12.50.1", expected: errs.ErrInvalidAmount},
		{name: "Letters", amount: "abc", expected: errs.ErrInvalidAmount},
		{name: "Whitespace only", amount: "   ", expected: errs.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAmount(tt.amount)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestCentsToAmount(t *testing.T) {
	tests := []struct {
		name     string
		cents    int64
		expected string
	}{
		{name: "Regular value", cents: 1015, expected: "10.15"},
		{name: "Whole value", cents: 1000, expected: "10.00"},
		{name: "Below one unit", cents: 5, expected: "0.05"},
		{name: "Zero", cents: 0, expected: "0.00"},
		{name: "Negative", cents: -250, expected: "-2.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CentsToAmount(tt.cents))
		})
	}
}

func TestParseAmountRoundTrip(t *testing.T) {
	// Canonical strings must survive parse -> format unchanged.
	for _, amount := range []string{"0.00", "0.05", "12.50", "100.00", "999999.99"} {
		cents, err := ParseAmount(amount)
		require.NoError(t, err)
		assert.Equal(t, amount, CentsToAmount(cents))
	}
}

func TestEnsureTwoDecimalPlaces(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{name: "Whole number", amount: "10", expected: "10.00"},
		{name: "One decimal place", amount: "10.1", expected: "10.10"},
		{name: "Already canonical", amount: "10.15", expected: "10.15"},
		{name: "Extra digits truncated", amount: "10.159", expected: "10.15"},
		{name: "Trailing dot", amount: "10.", expected: "10.00"},
		{name: "Empty", amount: "", expected: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EnsureTwoDecimalPlaces(tt.amount))
		})
	}
}
