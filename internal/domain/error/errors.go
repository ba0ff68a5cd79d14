package error

import (
	"errors"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation       = 4001
	CodeInvalidAmount    = 4002
	CodeInvalidUserID    = 4003
	CodeDuplicateKey     = 4004
	CodeConstraint       = 4005
	CodeUserNotFound     = 4040
	CodeStudentNotFound  = 4041
	CodeFeeNotFound      = 4042
	CodeLedgerNotFound   = 4043
	CodeProfileNotFound  = 4044

	// 5xxx - Server errors
	CodeInternalServer  = 5000
	CodeConfiguration   = 5001
	CodeRetryExhausted  = 5002
)

// Base error types
var (
	// ErrConfiguration is returned when the institution code or admission
	// number length budget is missing or invalid. Fatal, never retried.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInvalidAmount is returned when a monetary amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when a monetary amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidUserID is returned when a user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrInvalidAdmissionNumber is returned when an admission number is empty
	ErrInvalidAdmissionNumber = errors.New("admission number cannot be empty")

	// ErrDuplicateKey is returned by repositories when an insert violates a
	// uniqueness constraint. The admission-number issuer recovers from it by
	// regenerating; it is not normally surfaced to callers.
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrAdmissionRetryExhausted is returned when the bounded admission-number
	// retry budget is spent. Signals systemic duplication risk, e.g. a
	// misconfigured random source.
	ErrAdmissionRetryExhausted = errors.New("admission number generation retries exhausted")

	// ErrConstraintViolation is returned when a database constraint other than
	// uniqueness is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrProfileNotFound is returned when the requested profile doesn't exist
	ErrProfileNotFound = errors.New("profile not found")

	// ErrStudentNotFound is returned when the requested student doesn't exist
	ErrStudentNotFound = errors.New("student not found")

	// ErrFeeNotFound is returned when a referenced fee doesn't exist
	ErrFeeNotFound = errors.New("fee not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case IsValidationError(err):
		return CodeValidation
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrDuplicateKey):
		return CodeDuplicateKey
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraint
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrStudentNotFound):
		return CodeStudentNotFound
	case errors.Is(err, ErrFeeNotFound):
		return CodeFeeNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeLedgerNotFound
	case errors.Is(err, ErrProfileNotFound):
		return CodeProfileNotFound
	case errors.Is(err, ErrConfiguration):
		return CodeConfiguration
	case errors.Is(err, ErrAdmissionRetryExhausted):
		return CodeRetryExhausted
	default:
		return CodeInternalServer
	}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrProfileNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrFeeNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsDuplicateKeyError checks if the error is a uniqueness violation
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// IsConfigurationError checks if the error is a fatal configuration error
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
