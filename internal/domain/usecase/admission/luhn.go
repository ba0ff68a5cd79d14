package admission

import (
	"fmt"
)

// LuhnCheckDigit computes the Luhn check digit for a partial number.
// Digits are read right to left: digits at odd positions from the right are
// summed directly, digits at even positions are doubled and, when doubling
// yields a two-digit value, its digits are summed individually. The check
// digit is (10 - total % 10) % 10. Pure and deterministic.
func LuhnCheckDigit(number string) (int, error) {
	if number == "" {
		return 0, fmt.Errorf("luhn: empty number")
	}

	total := 0
	position := 0
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("luhn: non-digit character %q", c)
		}
		digit := int(c - '0')
		position++
		if position%2 == 1 {
			total += digit
		} else {
			doubled := digit * 2
			total += doubled/10 + doubled%10
		}
	}

	return (10 - total%10) % 10, nil
}

// IsLuhnValid reports whether the number's last digit satisfies the Luhn
// relation against the preceding digits.
func IsLuhnValid(number string) bool {
	if len(number) < 2 {
		return false
	}

	last := number[len(number)-1]
	if last < '0' || last > '9' {
		return false
	}

	expected, err := LuhnCheckDigit(number[:len(number)-1])
	if err != nil {
		return false
	}
	return expected == int(last-'0')
}
