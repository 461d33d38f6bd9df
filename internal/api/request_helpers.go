package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/api/shared"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/platform/logger"
)

// maxExerciseIDLength bounds exercise identifiers taken from the path.
const maxExerciseIDLength = 100

// getPathUUID extracts a UUID from the URL path parameters.
//
// Returns:
//   - (uuid.UUID, nil): The parsed UUID if valid
//   - (uuid.UUID{}, error): A zero UUID and a validation error if the parameter is missing or invalid
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required")
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format")
	}

	return id, nil
}

// getPathExerciseID extracts a non-blank exercise identifier from the path.
func getPathExerciseID(r *http.Request, paramName string) (string, error) {
	exerciseID := strings.TrimSpace(chi.URLParam(r, paramName))
	if exerciseID == "" {
		return "", domain.NewValidationError("exercise_id", "is required")
	}
	if len(exerciseID) > maxExerciseIDLength {
		return "", domain.NewValidationError("exercise_id", "must be at most %d characters", maxExerciseIDLength)
	}
	return exerciseID, nil
}

// requireUserID extracts the authenticated user ID, writing a 401 response
// when it is missing.
func requireUserID(w http.ResponseWriter, r *http.Request, fallback *slog.Logger) (uuid.UUID, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		logger.FromContextOrDefault(r.Context(), fallback).Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}

// decodeAndValidate decodes the JSON body into v and validates it, writing
// a 400 response on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			HandleAPIError(w, r, err, "")
			return false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}
