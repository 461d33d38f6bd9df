package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/fitload/internal/api/shared"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/platform/logger"
	"github.com/phrazzld/fitload/internal/service"
)

// TrainingHandler handles set logging, workout creation, overload hints and
// energy estimates.
type TrainingHandler struct {
	training service.TrainingService
	logger   *slog.Logger
}

// NewTrainingHandler creates a new TrainingHandler
func NewTrainingHandler(training service.TrainingService, logger *slog.Logger) *TrainingHandler {
	if training == nil {
		panic("training service cannot be nil for TrainingHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for TrainingHandler")
	}

	return &TrainingHandler{
		training: training,
		logger:   logger.With(slog.String("component", "training_handler")),
	}
}

// RecordSet handles POST /api/sets requests
func (h *TrainingHandler) RecordSet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	var req SetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	set, err := h.training.RecordSet(r.Context(), userID, req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record set")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, set)
}

// CompleteSet handles POST /api/sets/{id}/complete requests
func (h *TrainingHandler) CompleteSet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	setID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	set, err := h.training.CompleteSet(r.Context(), userID, setID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to complete set")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, set)
}

// CreateWorkout handles POST /api/workouts requests.
// Each successful call consumes one workout_creation unit of the free tier.
func (h *TrainingHandler) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	var req CreateWorkoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	phases, err := h.training.CreateWorkout(r.Context(), userID, req.toInputs())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create workout")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("workout created",
		slog.Int("phases", len(phases)))
	shared.RespondWithJSON(w, r, http.StatusCreated, WorkoutResponse{Phases: phases})
}

// SuggestOverload handles POST /api/exercises/{id}/overload requests.
// The body is the exercise's load progression policy.
func (h *TrainingHandler) SuggestOverload(w http.ResponseWriter, r *http.Request) {
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

	hint, err := h.training.SuggestOverload(r.Context(), userID, exerciseID, policy)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute overload hint")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, hint)
}

// EstimateSession handles POST /api/estimate requests
func (h *TrainingHandler) EstimateSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	var req EstimateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	kcal, err := h.training.EstimateSession(r.Context(), userID, req.Intensity)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to estimate session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, EstimateResponse{Intensity: req.Intensity, Kcal: kcal})
}
