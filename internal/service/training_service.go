package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/domain/energy"
	"github.com/phrazzld/fitload/internal/domain/progression"
	"github.com/phrazzld/fitload/internal/platform/clock"
	"github.com/phrazzld/fitload/internal/platform/logger"
	"github.com/phrazzld/fitload/internal/store"
)

// SetInput carries the user-supplied fields of a set. Identity, owner and
// timestamp are assigned by the service.
type SetInput struct {
	ExerciseID string
	SetNumber  int
	Weight     float64
	Reps       int
	RPE        float64
	Notes      string
	Variation  domain.SetVariation
}

// PhaseInput describes one exercise of a workout being created.
type PhaseInput struct {
	Name        string
	ExerciseID  string
	Progression *domain.LoadProgression
	Variations  domain.ExerciseVariations
	Sets        []SetInput
}

// TrainingService provides the set logging and progression operations.
type TrainingService interface {
	// RecordSet validates and persists a single set for the user.
	RecordSet(ctx context.Context, userID uuid.UUID, input SetInput) (*domain.WorkoutSet, error)

	// CompleteSet marks one of the user's sets as completed.
	// A second completion returns domain.ErrSetAlreadyCompleted.
	CompleteSet(ctx context.Context, userID uuid.UUID, setID uuid.UUID) (*domain.WorkoutSet, error)

	// CreateWorkout validates every phase and set, consumes one
	// workout_creation unit and persists all sets atomically.
	// Returns ErrQuotaExceeded when the free-tier cap is reached.
	CreateWorkout(ctx context.Context, userID uuid.UUID, phases []PhaseInput) ([]domain.WorkoutPhase, error)

	// SuggestOverload computes the overload hint for one of the user's exercises.
	SuggestOverload(
		ctx context.Context,
		userID uuid.UUID,
		exerciseID string,
		policy domain.LoadProgression,
	) (domain.OverloadHint, error)

	// EstimateSession returns the estimated kcal cost of a session at the
	// given intensity, based on the user's stored profile.
	EstimateSession(ctx context.Context, userID uuid.UUID, intensity domain.SessionIntensity) (int, error)
}

// trainingServiceImpl implements the TrainingService interface
type trainingServiceImpl struct {
	sets        store.WorkoutSetStore
	quota       QuotaAccountant
	profiles    ProfileProvider
	progression progression.Service
	clock       clock.Clock
	logger      *slog.Logger
}

// NewTrainingService creates a new TrainingService.
// It panics if any required dependency is nil. A nil clock uses the system
// clock and a nil logger uses the default logger.
func NewTrainingService(
	sets store.WorkoutSetStore,
	quota QuotaAccountant,
	profiles ProfileProvider,
	progressionService progression.Service,
	clk clock.Clock,
	logger *slog.Logger,
) TrainingService {
	if sets == nil {
		panic("sets cannot be nil")
	}
	if quota == nil {
		panic("quota cannot be nil")
	}
	if profiles == nil {
		panic("profiles cannot be nil")
	}
	if progressionService == nil {
		panic("progressionService cannot be nil")
	}
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &trainingServiceImpl{
		sets:        sets,
		quota:       quota,
		profiles:    profiles,
		progression: progressionService,
		clock:       clk,
		logger:      logger.With(slog.String("component", "training_service")),
	}
}

// newSet builds a validated set owned by userID.
func (s *trainingServiceImpl) newSet(userID uuid.UUID, input SetInput) (*domain.WorkoutSet, error) {
	set := &domain.WorkoutSet{
		ID:         uuid.New(),
		UserID:     userID,
		ExerciseID: strings.TrimSpace(input.ExerciseID),
		SetNumber:  input.SetNumber,
		Weight:     input.Weight,
		Reps:       input.Reps,
		RPE:        input.RPE,
		Notes:      input.Notes,
		Variation:  input.Variation,
		Timestamp:  s.clock.Now().UTC(),
	}
	if set.Variation.Kind == "" && set.Variation.Payload == nil {
		set.Variation = domain.NormalVariation()
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// RecordSet implements TrainingService.
func (s *trainingServiceImpl) RecordSet(
	ctx context.Context,
	userID uuid.UUID,
	input SetInput,
) (*domain.WorkoutSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set, err := s.newSet(userID, input)
	if err != nil {
		log.Debug("rejected set",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.sets.Create(ctx, set); err != nil {
		log.Error("failed to persist set",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, NewServiceError("training", "record_set", "failed to save set", err)
	}

	log.Info("set recorded",
		slog.String("user_id", userID.String()),
		slog.String("set_id", set.ID.String()),
		slog.String("exercise_id", set.ExerciseID),
		slog.String("variation", string(set.Variation.Kind)))
	return set, nil
}

// CompleteSet implements TrainingService.
func (s *trainingServiceImpl) CompleteSet(
	ctx context.Context,
	userID uuid.UUID,
	setID uuid.UUID,
) (*domain.WorkoutSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set, err := s.sets.GetByID(ctx, setID)
	if err != nil {
		return nil, NewServiceError("training", "complete_set", "failed to load set", err)
	}
	if set.UserID != userID {
		log.Warn("attempt to complete another user's set",
			slog.String("user_id", userID.String()),
			slog.String("set_id", setID.String()))
		return nil, ErrNotOwned
	}
	if set.Completed {
		return nil, domain.ErrSetAlreadyCompleted
	}

	if err := s.sets.MarkCompleted(ctx, setID); err != nil {
		if errors.Is(err, domain.ErrSetAlreadyCompleted) {
			return nil, err
		}
		return nil, NewServiceError("training", "complete_set", "failed to complete set", err)
	}

	set.Completed = true
	log.Info("set completed",
		slog.String("user_id", userID.String()),
		slog.String("set_id", setID.String()))
	return set, nil
}

// CreateWorkout implements TrainingService.
// Nothing is consumed or persisted unless every phase and set is valid, and
// the quota unit is released again when the sets cannot be saved.
func (s *trainingServiceImpl) CreateWorkout(
	ctx context.Context,
	userID uuid.UUID,
	inputs []PhaseInput,
) ([]domain.WorkoutPhase, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("user_id", userID.String()))

	phases := make([]domain.WorkoutPhase, 0, len(inputs))
	var all []*domain.WorkoutSet
	for i, input := range inputs {
		phase := domain.WorkoutPhase{
			Name:        strings.TrimSpace(input.Name),
			ExerciseID:  strings.TrimSpace(input.ExerciseID),
			Progression: input.Progression,
			Variations:  input.Variations,
		}
		for _, setInput := range input.Sets {
			if setInput.ExerciseID == "" {
				setInput.ExerciseID = phase.ExerciseID
			}
			set, err := s.newSet(userID, setInput)
			if err != nil {
				return nil, err
			}
			if err := phase.AddSet(*set); err != nil {
				return nil, err
			}
			all = append(all, set)
		}
		if err := phase.Validate(); err != nil {
			log.Debug("rejected workout phase", slog.Int("phase", i), slog.String("error", err.Error()))
			return nil, err
		}
		phases = append(phases, phase)
	}
	if len(all) == 0 {
		return nil, ErrEmptyWorkout
	}

	granted, err := s.quota.RecordAction(ctx, domain.ActionWorkoutCreation, userID)
	if err != nil {
		log.Error("failed to record workout creation", slog.String("error", err.Error()))
		return nil, NewServiceError("training", "create_workout", "failed to check quota", err)
	}
	if !granted {
		log.Info("workout creation denied by quota")
		return nil, ErrQuotaExceeded
	}

	if err := s.sets.CreateBatch(ctx, all); err != nil {
		log.Error("failed to persist workout sets", slog.String("error", err.Error()))
		if releaseErr := s.quota.ReleaseAction(ctx, domain.ActionWorkoutCreation, userID); releaseErr != nil {
			log.Error("failed to release workout creation after save failure",
				slog.String("error", releaseErr.Error()))
		}
		return nil, NewServiceError("training", "create_workout", "failed to save workout", err)
	}

	log.Info("workout created", slog.Int("phases", len(phases)), slog.Int("sets", len(all)))
	return phases, nil
}

// SuggestOverload implements TrainingService.
func (s *trainingServiceImpl) SuggestOverload(
	ctx context.Context,
	userID uuid.UUID,
	exerciseID string,
	policy domain.LoadProgression,
) (domain.OverloadHint, error) {
	if err := policy.Validate(); err != nil {
		return domain.OverloadHint{}, err
	}

	history, err := s.sets.ListByExercise(ctx, userID, exerciseID)
	if err != nil {
		return domain.OverloadHint{}, NewServiceError("training", "suggest_overload", "failed to load history", err)
	}

	hint := s.progression.ComputeOverloadHint(exerciseID, history, policy)
	logger.FromContextOrDefault(ctx, s.logger).Debug("overload hint computed",
		slog.String("user_id", userID.String()),
		slog.String("exercise_id", exerciseID),
		slog.String("suggestion", string(hint.Suggestion)),
		slog.Int("history_len", len(history)))
	return hint, nil
}

// EstimateSession implements TrainingService.
func (s *trainingServiceImpl) EstimateSession(
	ctx context.Context,
	userID uuid.UUID,
	intensity domain.SessionIntensity,
) (int, error) {
	if !intensity.IsValid() {
		return 0, domain.NewValidationError("intensity", "unknown intensity %q", intensity)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return 0, NewServiceError("training", "estimate_session", "failed to load profile", err)
	}

	return energy.EstimateSessionKcal(profile, intensity), nil
}
