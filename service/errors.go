package service

import (
	"errors"
	"fmt"
)

// ErrCalculationOverflow is returned when the amortization formulas leave the
// range of float64 for the given rate and term.
var ErrCalculationOverflow = errors.New("calculation overflow")

// ErrRunNotFound is returned when an archived projection does not exist.
var ErrRunNotFound = errors.New("projection run not found")

// ValidationError reports an input field that failed validation. Nothing is
// computed when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
