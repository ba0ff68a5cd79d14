package error

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError aggregates field-level rule violations. Validation never
// short-circuits: every violated rule is collected so the caller gets a
// complete correction list in one round trip. A ValidationError aborts the
// enclosing unit of work without side effects.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates an empty validation error to collect into
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add appends a message to the given field
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// Addf appends a formatted message to the given field
func (e *ValidationError) Addf(field, format string, args ...any) {
	e.Add(field, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any field violation has been collected
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns the error itself when violations exist, otherwise nil.
// Returning the typed nil directly would yield a non-nil error interface.
func (e *ValidationError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// Error implements the error interface with fields in stable order
func (e *ValidationError) Error() string {
	if !e.HasErrors() {
		return "validation failed"
	}

	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"fields":     e.Fields,
		"error_code": CodeValidation,
	}
}

// IsValidationError checks if the error (or anything it wraps) is a ValidationError
func IsValidationError(err error) bool {
	_, ok := AsValidationError(err)
	return ok
}

// AsValidationError extracts a ValidationError from an error chain
func AsValidationError(err error) (*ValidationError, bool) {
	for err != nil {
		if ve, ok := err.(*ValidationError); ok {
			return ve, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
