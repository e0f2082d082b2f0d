// Package apperr defines the error taxonomy shared across services.
package apperr

import "errors"

// ErrNotFound is returned when no inspection exists for the given id.
var ErrNotFound = errors.New("inspection not found")

// ErrIncompleteChecklist is returned when report generation is attempted
// before every checklist category has been rated.
var ErrIncompleteChecklist = errors.New("inspection checklist is incomplete")

// ValidationError reports missing or malformed required input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError with the given message.
func Validation(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
