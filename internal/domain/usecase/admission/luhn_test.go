package admission

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLuhnCheckDigit(t *testing.T) {
	tests := []struct {
		name     string
		number   string
		expected int
	}{
		// Odd positions from the right are summed raw, even positions are
		// doubled with digit-sum: 1+5+8+9+3+5+2+9+9+5 = 56 -> 4
		{name: "Reference number", number: "7992739871", expected: 4},
		// 9+7+5+3+1 raw, 16->7, 12->3, 8, 4 doubled: total 47 -> 3
		{name: "Ascending digits", number: "123456789", expected: 3},
		{name: "Single zero", number: "0", expected: 0},
		{name: "Single digit", number: "5", expected: 5},
		{name: "All zeros", number: "0000", expected: 0},
		{name: "Nine", number: "9", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LuhnCheckDigit(tt.number)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLuhnCheckDigitDeterministic(t *testing.T) {
	// The checksum step is pure: the same partial number must always yield
	// the same check digit.
	for i := 0; i < 50; i++ {
		first, err := LuhnCheckDigit("402112345678901")
		require.NoError(t, err)
		second, err := LuhnCheckDigit("402112345678901")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestLuhnCheckDigitRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		number string
	}{
		{name: "Empty", number: ""},
		{name: "Letters", number: "40a1"},
		{name: "Whitespace", number: "40 1"},
		{name: "Sign", number: "-401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LuhnCheckDigit(tt.number)
			assert.Error(t, err)
		})
	}
}

func TestIsLuhnValid(t *testing.T) {
	t.Run("Accepts numbers with a correct check digit", func(t *testing.T) {
		partials := []string{"7992739871", "123456789", "402100000000000"}
		for _, partial := range partials {
			check, err := LuhnCheckDigit(partial)
			require.NoError(t, err)
			assert.True(t, IsLuhnValid(fmt.Sprintf("%s%d", partial, check)), partial)
		}
	})

	t.Run("Rejects numbers with a wrong check digit", func(t *testing.T) {
		partial := "7992739871"
		check, err := LuhnCheckDigit(partial)
		require.NoError(t, err)
		wrong := (check + 1) % 10
		assert.False(t, IsLuhnValid(fmt.Sprintf("%s%d", partial, wrong)))
	})

	t.Run("Rejects degenerate input", func(t *testing.T) {
		assert.False(t, IsLuhnValid(""))
		assert.False(t, IsLuhnValid("7"))
		assert.False(t, IsLuhnValid("79x"))
	})
}
