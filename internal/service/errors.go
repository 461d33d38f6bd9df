package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/fitload/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps them to HTTP status codes.
var (
	// ErrQuotaExceeded indicates the user's free-tier quota for the action is exhausted.
	// API layer should map this to HTTP 429 Too Many Requests.
	ErrQuotaExceeded = errors.New("usage quota exceeded")

	// ErrSetNotFound indicates that the workout set does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrSetNotFound = errors.New("workout set not found")

	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrProfileNotFound indicates the user has not stored a body profile yet.
	// API layer should map this to HTTP 404 Not Found.
	ErrProfileNotFound = errors.New("user profile not found")

	// ErrEmptyWorkout indicates a workout without any set.
	ErrEmptyWorkout = errors.New("workout has no sets")
)

// ServiceError wraps unexpected errors from a service with context.
type ServiceError struct {
	// Service is the service that failed (e.g., "training", "coach")
	Service string
	// Operation is the operation that failed (e.g., "record_set")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a ServiceError.
// Store sentinels are translated to service sentinels and returned unwrapped.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrQuotaExceeded),
		errors.Is(err, ErrSetNotFound),
		errors.Is(err, ErrNotOwned),
		errors.Is(err, ErrProfileNotFound):
		return err
	case errors.Is(err, store.ErrSetNotFound):
		return ErrSetNotFound
	}

	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
