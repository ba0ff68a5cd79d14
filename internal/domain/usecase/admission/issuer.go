package admission

import (
	"fmt"
	"strings"

	errs "github.com/brightpath-edu/school-ledger/internal/domain/error"
	coreport "github.com/brightpath-edu/school-ledger/internal/domain/port/core"
)

// DefaultTotalLength is the admission number length used when the
// configuration doesn't specify one.
const DefaultTotalLength = 16

// Config carries the institution settings the issuer needs. It is passed in
// explicitly at construction time; the issuer never reads the process
// environment.
type Config struct {
	// InstitutionCode is the numeric code prefixed to every admission number
	InstitutionCode string
	// TotalLength is the full length of issued numbers, check digit included
	TotalLength int
}

// Issuer generates admission numbers: institution code prefix, a
// cryptographically random digit fill, and a trailing Luhn check digit.
// The checksum step is pure, so output is deterministic given the digits;
// overall output is non-deterministic due to the random fill. Uniqueness is
// NOT guaranteed here - callers must retry on duplicate-key insert failures
// with a freshly generated number.
type Issuer struct {
	config Config
	digits coreport.DigitSource
	logger coreport.Logger
}

// NewIssuer creates an admission number issuer
func NewIssuer(config Config, digits coreport.DigitSource, logger coreport.Logger) *Issuer {
	if config.TotalLength == 0 {
		config.TotalLength = DefaultTotalLength
	}
	return &Issuer{
		config: config,
		digits: digits,
		logger: logger,
	}
}

// Generate issues one admission number of exactly TotalLength digits.
//
// Possible errors:
// - ErrConfiguration: institution code unset/non-numeric, or no room left
//   for random digits within the length budget
func (i *Issuer) Generate() (string, error) {
	code := strings.TrimSpace(i.config.InstitutionCode)
	if code == "" || !isDigits(code) {
		return "", fmt.Errorf("%w: institution code must be set and numeric", errs.ErrConfiguration)
	}

	remaining := i.config.TotalLength - len(code) - 1
	if remaining <= 0 {
		return "", fmt.Errorf("%w: institution code too long for admission number length %d",
			errs.ErrConfiguration, i.config.TotalLength)
	}

	var sb strings.Builder
	sb.Grow(i.config.TotalLength)
	sb.WriteString(code)
	for n := 0; n < remaining; n++ {
		digit, err := i.digits.Next()
		if err != nil {
			return "", fmt.Errorf("admission digit source failed: %w", err)
		}
		if digit < 0 || digit > 9 {
			return "", fmt.Errorf("admission digit source returned out-of-range digit %d", digit)
		}
		sb.WriteByte(byte('0' + digit))
	}

	partial := sb.String()
	checkDigit, err := LuhnCheckDigit(partial)
	if err != nil {
		return "", err
	}

	number := fmt.Sprintf("%s%d", partial, checkDigit)
	i.logger.Debug("Admission number generated", map[string]any{
		"length": len(number),
	})
	return number, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
