package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/api/shared"
	"github.com/phrazzld/fitload/internal/domain"
)

// ProfileRepository reads and replaces body profiles.
// It is implemented by service.ProfileStore.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (domain.UserProfile, error)
	SaveProfile(ctx context.Context, userID uuid.UUID, profile domain.UserProfile) error
}

// ProfileHandler handles the body profile used by energy estimates
type ProfileHandler struct {
	profiles ProfileRepository
	logger   *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profiles ProfileRepository, logger *slog.Logger) *ProfileHandler {
	if profiles == nil {
		panic("profiles cannot be nil for ProfileHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for ProfileHandler")
	}
	return &ProfileHandler{
		profiles: profiles,
		logger:   logger.With(slog.String("component", "profile_handler")),
	}
}

// GetProfile handles GET /api/profile requests
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	profile, err := h.profiles.GetProfile(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to read profile")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// PutProfile handles PUT /api/profile requests
func (h *ProfileHandler) PutProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	var profile domain.UserProfile
	if !decodeAndValidate(w, r, &profile) {
		return
	}

	if err := h.profiles.SaveProfile(r.Context(), userID, profile); err != nil {
		HandleAPIError(w, r, err, "Failed to save profile")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}
