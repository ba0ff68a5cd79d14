package random

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/brightpath-edu/school-ledger/internal/domain/port/core"
)

var ten = big.NewInt(10)

// CryptoDigitSource draws decimal digits from crypto/rand. Admission numbers
// must be unguessable, so math/rand is not acceptable here.
type CryptoDigitSource struct{}

// NewCryptoDigitSource creates a cryptographically secure digit source
func NewCryptoDigitSource() core.DigitSource {
	return &CryptoDigitSource{}
}

// Next returns one uniformly distributed digit in [0, 9]
func (s *CryptoDigitSource) Next() (int, error) {
	n, err := rand.Int(rand.Reader, ten)
	if err != nil {
		return 0, fmt.Errorf("crypto digit source: %w", err)
	}
	return int(n.Int64()), nil
}
