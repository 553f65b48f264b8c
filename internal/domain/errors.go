package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is the generic class for domain validation failures.
	// The entity-specific sentinels (e.g., ErrEmptyStatus) wrap it so
	// callers can match any validation error with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")
)

// ValidationError carries the name of the rejected field alongside the
// underlying sentinel so handlers can report which input was bad.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
