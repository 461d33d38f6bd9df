package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/platform/logger"
	"github.com/phrazzld/fitload/internal/store"
)

// WorkoutSetStore is a map-backed store.WorkoutSetStore.
type WorkoutSetStore struct {
	mu     sync.RWMutex
	sets   map[uuid.UUID]domain.WorkoutSet
	logger *slog.Logger
}

// Ensure WorkoutSetStore implements store.WorkoutSetStore interface
var _ store.WorkoutSetStore = (*WorkoutSetStore)(nil)

// NewWorkoutSetStore creates an empty WorkoutSetStore.
// If logger is nil, a default logger will be used.
func NewWorkoutSetStore(logger *slog.Logger) *WorkoutSetStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkoutSetStore{
		sets:   make(map[uuid.UUID]domain.WorkoutSet),
		logger: logger.With(slog.String("component", "memory_workout_set_store")),
	}
}

// Create implements store.WorkoutSetStore.Create.
func (s *WorkoutSetStore) Create(ctx context.Context, set *domain.WorkoutSet) error {
	return s.CreateBatch(ctx, []*domain.WorkoutSet{set})
}

// CreateBatch implements store.WorkoutSetStore.CreateBatch.
// Every set is validated before any is stored.
func (s *WorkoutSetStore) CreateBatch(ctx context.Context, sets []*domain.WorkoutSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, set := range sets {
		if err := set.Validate(); err != nil {
			log.Warn("workout set validation failed during create",
				slog.String("error", err.Error()),
				slog.String("set_id", set.ID.String()))
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[uuid.UUID]bool, len(sets))
	for _, set := range sets {
		if _, exists := s.sets[set.ID]; exists || seen[set.ID] {
			return store.ErrSetExists
		}
		seen[set.ID] = true
	}
	for _, set := range sets {
		s.sets[set.ID] = *set
	}

	log.Debug("workout sets created", slog.Int("count", len(sets)))
	return nil
}

// GetByID implements store.WorkoutSetStore.GetByID.
func (s *WorkoutSetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkoutSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.sets[id]
	if !ok {
		return nil, store.ErrSetNotFound
	}
	return &set, nil
}

// MarkCompleted implements store.WorkoutSetStore.MarkCompleted.
func (s *WorkoutSetStore) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[id]
	if !ok {
		return store.ErrSetNotFound
	}
	if err := set.Complete(); err != nil {
		return err
	}
	s.sets[id] = set
	return nil
}

// ListByExercise implements store.WorkoutSetStore.ListByExercise.
func (s *WorkoutSetStore) ListByExercise(
	ctx context.Context,
	userID uuid.UUID,
	exerciseID string,
) ([]domain.WorkoutSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]domain.WorkoutSet, 0)
	for _, set := range s.sets {
		if set.UserID == userID && set.ExerciseID == exerciseID {
			history = append(history, set)
		}
	}

	sort.SliceStable(history, func(i, j int) bool {
		if !history[i].Timestamp.Equal(history[j].Timestamp) {
			return history[i].Timestamp.Before(history[j].Timestamp)
		}
		return history[i].SetNumber < history[j].SetNumber
	})
	return history, nil
}
