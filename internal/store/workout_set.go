package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/domain"
)

// WorkoutSetStore defines the interface for logged workout set persistence.
// Sets are immutable once created except for their completion flag.
type WorkoutSetStore interface {
	// Create saves a new set.
	// Returns ErrSetExists if a set with the same ID already exists.
	// Returns validation errors if the set data is invalid.
	Create(ctx context.Context, set *domain.WorkoutSet) error

	// CreateBatch saves several sets atomically: either all are stored or none.
	CreateBatch(ctx context.Context, sets []*domain.WorkoutSet) error

	// GetByID retrieves a set by its unique ID.
	// Returns ErrSetNotFound if the set does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkoutSet, error)

	// MarkCompleted flips the completion flag of a set from false to true.
	// Returns ErrSetNotFound if the set does not exist and
	// domain.ErrSetAlreadyCompleted if it is already completed.
	MarkCompleted(ctx context.Context, id uuid.UUID) error

	// ListByExercise returns a user's sets for one exercise ordered from
	// oldest to newest (timestamp, then set number).
	// Returns an empty slice if there are none.
	ListByExercise(ctx context.Context, userID uuid.UUID, exerciseID string) ([]domain.WorkoutSet, error)
}
