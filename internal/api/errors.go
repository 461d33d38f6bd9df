package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/fitload/internal/api/shared"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/service"
	"github.com/phrazzld/fitload/internal/service/auth"
	"github.com/phrazzld/fitload/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	// Quota errors
	case errors.Is(err, service.ErrQuotaExceeded):
		return http.StatusTooManyRequests

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrSetNotFound),
		errors.Is(err, service.ErrProfileNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, domain.ErrSetAlreadyCompleted),
		store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrSetIDEmpty),
		errors.Is(err, domain.ErrSetUserIDEmpty),
		errors.Is(err, domain.ErrSetExerciseIDEmpty),
		errors.Is(err, service.ErrEmptyWorkout),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
// Domain validation messages only describe the rejected field and are passed through.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, service.ErrQuotaExceeded):
		return "Free tier limit reached"

	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this set"

	case errors.Is(err, service.ErrSetNotFound):
		return "Set not found"
	case errors.Is(err, service.ErrProfileNotFound):
		return "Profile not found"

	case errors.Is(err, domain.ErrSetAlreadyCompleted):
		return "Set already completed"
	case store.IsDuplicateError(err):
		return "Set already exists"

	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)
	case errors.Is(err, domain.ErrSetIDEmpty),
		errors.Is(err, domain.ErrSetUserIDEmpty),
		errors.Is(err, domain.ErrSetExerciseIDEmpty),
		errors.Is(err, service.ErrEmptyWorkout):
		return err.Error()
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a short client message
// naming the first offending field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	first := validationErrs[0]
	field := strings.ToLower(first.Field())
	return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(first.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte", "gt":
		return "too small"
	case "max", "lte", "lt":
		return "too large"
	case "oneof":
		return "invalid value"
	case "dive":
		return "invalid element"
	default:
		return "validation failed"
	}
}

// HandleAPIError maps err to a status code and a safe message, logs the
// details and writes the error response. A non-empty fallback replaces the
// generic message of internal errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
