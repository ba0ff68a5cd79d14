package core

// DigitSource produces single decimal digits for admission number generation.
// Implementations must be cryptographically secure: uniform over 0-9 and not
// predictable or seedable by an attacker.
type DigitSource interface {
	// Next returns the next digit in the range [0, 9]
	Next() (int, error)
}
