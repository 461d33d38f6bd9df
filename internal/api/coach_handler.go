package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/fitload/internal/api/shared"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/service"
)

// CoachHandler handles AI coaching requests
type CoachHandler struct {
	coach  service.CoachService
	logger *slog.Logger
}

// NewCoachHandler creates a new CoachHandler
func NewCoachHandler(coach service.CoachService, logger *slog.Logger) *CoachHandler {
	if coach == nil {
		panic("coach service cannot be nil for CoachHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for CoachHandler")
	}
	return &CoachHandler{
		coach:  coach,
		logger: logger.With(slog.String("component", "coach_handler")),
	}
}

// RequestAdvice handles POST /api/exercises/{id}/advice requests.
// Each accepted call consumes one ai_request unit of the daily free tier.
func (h *CoachHandler) RequestAdvice(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	exerciseID, err := getPathExerciseID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var policy domain.LoadProgression
	if !decodeAndValidate(w, r, &policy) {
		return
	}

	advice, err := h.coach.RequestAdvice(r.Context(), userID, exerciseID, policy)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate advice")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AdviceResponse(advice))
}
