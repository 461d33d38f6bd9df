// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
	"math"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is wrapped by ValidationError, so callers can match it with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrSetAlreadyCompleted is returned when a set that is already marked
	// completed is completed again.
	ErrSetAlreadyCompleted = errors.New("set already completed")

	// ErrUnknownActionKind is returned for usage actions the accountant does not meter.
	ErrUnknownActionKind = errors.New("unknown action kind")
)

// ValidationError describes a single rejected field of a domain entity.
// It always unwraps to ErrValidation.
type ValidationError struct {
	Field   string // Dotted path of the offending field (e.g. "variation.drops[1].weight")
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Message)
}

// Unwrap returns ErrValidation to support errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// isFinite reports whether v is neither NaN nor an infinity.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
