package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/brightpath-edu/school-ledger/internal/domain/error"
)

// Monetary amounts travel as strings with at most two decimal places and are
// computed in integer cents. Fee and transaction invariants require exact
// decimal equality, so floats are never used.

// MaxDecimalPlaces defines the maximum number of decimal places allowed for amounts
const MaxDecimalPlaces = 2

// ParseAmount validates a string amount and converts it to cents.
// "12" -> 1200, "12.5" -> 1250, "12.50" -> 1250. Negative values and
// more than two decimal places are rejected.
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}
	if strings.HasPrefix(amount, "-") {
		return 0, errs.ErrNegativeAmount
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	var integerValue string
	if len(parts) == 1 {
		integerValue = parts[0] + "00"
	} else {
		switch len(parts[1]) {
		case 0:
			integerValue = parts[0] + "00"
		case 1:
			integerValue = parts[0] + parts[1] + "0"
		case 2:
			integerValue = parts[0] + parts[1]
		default:
			return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
		}
	}

	value, err := strconv.ParseInt(integerValue, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}
	return value, nil
}

// CentsToAmount converts an amount in cents to its canonical string form.
// 1015 becomes "10.15", 1000 becomes "10.00".
func CentsToAmount(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	s := strconv.FormatInt(cents, 10)
	for len(s) < 3 {
		s = "0" + s
	}

	whole := s[:len(s)-2]
	decimal := s[len(s)-2:]

	if negative {
		return "-" + whole + "." + decimal
	}
	return whole + "." + decimal
}

// EnsureTwoDecimalPlaces standardizes a money string to exactly two decimal
// places without going through floats. "10" -> "10.00", "10.1" -> "10.10",
// extra digits beyond two are truncated.
func EnsureTwoDecimalPlaces(amount string) string {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return "0.00"
	}

	parts := strings.Split(amount, ".")
	if len(parts) == 1 {
		return parts[0] + ".00"
	}

	whole, decimal := parts[0], parts[1]
	switch len(decimal) {
	case 0:
		return whole + ".00"
	case 1:
		return whole + "." + decimal + "0"
	case 2:
		return whole + "." + decimal
	default:
		return whole + "." + decimal[:2]
	}
}
