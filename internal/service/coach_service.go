package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/domain/progression"
	"github.com/phrazzld/fitload/internal/platform/logger"
	"github.com/phrazzld/fitload/internal/store"
)

// Advice is the result of an AI coaching request.
type Advice struct {
	Hint    domain.OverloadHint `json:"hint"`
	Message string              `json:"message"`
}

// CoachService answers metered AI coaching requests.
type CoachService interface {
	// RequestAdvice consumes one ai_request unit, computes the overload hint
	// for the exercise and asks the advisor to explain it.
	// Returns ErrQuotaExceeded when the daily cap is reached.
	RequestAdvice(
		ctx context.Context,
		userID uuid.UUID,
		exerciseID string,
		policy domain.LoadProgression,
	) (Advice, error)
}

type coachServiceImpl struct {
	sets        store.WorkoutSetStore
	quota       QuotaAccountant
	progression progression.Service
	advisor     Advisor
	logger      *slog.Logger
}

// NewCoachService creates a new CoachService.
// A nil advisor is replaced by StaticAdvisor.
func NewCoachService(
	sets store.WorkoutSetStore,
	quota QuotaAccountant,
	progressionService progression.Service,
	advisor Advisor,
	logger *slog.Logger,
) CoachService {
	if sets == nil {
		panic("sets cannot be nil")
	}
	if quota == nil {
		panic("quota cannot be nil")
	}
	if progressionService == nil {
		panic("progressionService cannot be nil")
	}
	if advisor == nil {
		advisor = StaticAdvisor{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &coachServiceImpl{
		sets:        sets,
		quota:       quota,
		progression: progressionService,
		advisor:     advisor,
		logger:      logger.With(slog.String("component", "coach_service")),
	}
}

// RequestAdvice implements CoachService.
// The quota unit stays consumed even when the advisor fails afterwards.
func (s *coachServiceImpl) RequestAdvice(
	ctx context.Context,
	userID uuid.UUID,
	exerciseID string,
	policy domain.LoadProgression,
) (Advice, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("exercise_id", exerciseID))

	if err := policy.Validate(); err != nil {
		return Advice{}, err
	}

	granted, err := s.quota.RecordAction(ctx, domain.ActionAIRequest, userID)
	if err != nil {
		log.Error("failed to record ai request", slog.String("error", err.Error()))
		return Advice{}, NewServiceError("coach", "request_advice", "failed to check quota", err)
	}
	if !granted {
		log.Info("ai request denied by quota")
		return Advice{}, ErrQuotaExceeded
	}

	history, err := s.sets.ListByExercise(ctx, userID, exerciseID)
	if err != nil {
		return Advice{}, NewServiceError("coach", "request_advice", "failed to load history", err)
	}

	hint := s.progression.ComputeOverloadHint(exerciseID, history, policy)
	message, err := s.advisor.Advise(ctx, hint, history, policy)
	if err != nil {
		log.Error("advisor failed", slog.String("error", err.Error()))
		return Advice{}, NewServiceError("coach", "request_advice", "failed to generate advice", err)
	}

	log.Info("advice generated", slog.String("suggestion", string(hint.Suggestion)))
	return Advice{Hint: hint, Message: message}, nil
}

// StaticAdvisor renders the hint without calling a model.
// It is used when the LLM integration is disabled.
type StaticAdvisor struct{}

var _ Advisor = StaticAdvisor{}

// Advise implements Advisor.
func (StaticAdvisor) Advise(
	_ context.Context,
	hint domain.OverloadHint,
	_ []domain.WorkoutSet,
	_ domain.LoadProgression,
) (string, error) {
	switch hint.Suggestion {
	case domain.SuggestIncreaseWeight:
		if hint.Amount != nil {
			return fmt.Sprintf("Add %.2f to the bar next session (%s).", *hint.Amount, hint.Reason), nil
		}
	case domain.SuggestIncreaseReps:
		if hint.Amount != nil {
			return fmt.Sprintf("Keep the load and aim for %.0f more rep(s) (%s).", *hint.Amount, hint.Reason), nil
		}
	}
	return fmt.Sprintf("Keep the current load (%s).", hint.Reason), nil
}
