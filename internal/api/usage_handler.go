package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/api/shared"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/usage"
)

// UsageReader exposes a user's counters and the configured limits.
// It is implemented by usage.Accountant.
type UsageReader interface {
	GetUsage(ctx context.Context, userID uuid.UUID) (domain.UsageData, error)
	Limits() usage.Config
}

// UsageHandler reports free-tier usage
type UsageHandler struct {
	usage  UsageReader
	logger *slog.Logger
}

// NewUsageHandler creates a new UsageHandler
func NewUsageHandler(reader UsageReader, logger *slog.Logger) *UsageHandler {
	if reader == nil {
		panic("usage reader cannot be nil for UsageHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for UsageHandler")
	}
	return &UsageHandler{
		usage:  reader,
		logger: logger.With(slog.String("component", "usage_handler")),
	}
}

// GetUsage handles GET /api/usage requests
func (h *UsageHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	data, err := h.usage.GetUsage(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to read usage")
		return
	}

	limits := h.usage.Limits()
	shared.RespondWithJSON(w, r, http.StatusOK, UsageResponse{
		WorkoutsCreated:     data.WorkoutsCreated,
		AIRequests:          data.AIRequests,
		LastReset:           data.LastReset,
		FreeWorkoutLimit:    limits.FreeWorkoutLimit,
		DailyAIRequestLimit: limits.DailyAIRequestLimit,
		WorkoutsRemaining:   remaining(limits.FreeWorkoutLimit, data.WorkoutsCreated),
		AIRequestsRemaining: remaining(limits.DailyAIRequestLimit, data.AIRequests),
	})
}
