package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the admission workflow. Services return these
// (usually wrapped with %w); controllers map them to HTTP status codes.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrExamUnavailable      = errors.New("exam is not available")
	ErrCapacityExceeded     = errors.New("exam has reached its maximum number of applicants")
	ErrAttemptLimitExceeded = errors.New("maximum allowed attempts reached for this exam")
	ErrExamNotInProgress    = errors.New("exam attempt is not in progress")
	ErrInvalidState         = errors.New("operation not allowed in the attempt's current state")
)

// ValidationError indicates malformed or inconsistent input, e.g. a
// choice that does not belong to the submitted question.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
