package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Set-specific validation errors
var (
	// ErrSetIDEmpty is returned when a set ID is empty or nil.
	ErrSetIDEmpty = errors.New("set ID cannot be empty")

	// ErrSetUserIDEmpty is returned when a set's user ID is empty or nil.
	ErrSetUserIDEmpty = errors.New("set user ID cannot be empty")

	// ErrSetExerciseIDEmpty is returned when a set has no exercise.
	ErrSetExerciseIDEmpty = errors.New("set exercise ID cannot be empty")
)

// MaxRPE is the upper bound of the Rate of Perceived Exertion scale.
const MaxRPE = 10.0

// WorkoutSet is one completed (or attempted) resistance-training set.
// Once persisted it is immutable except for Completed, which moves from
// false to true exactly once (see Complete).
type WorkoutSet struct {
	ID         uuid.UUID    `json:"id"`
	UserID     uuid.UUID    `json:"user_id"`
	ExerciseID string       `json:"exercise_id"`
	SetNumber  int          `json:"set_number"`
	Weight     float64      `json:"weight"`
	Reps       int          `json:"reps"`
	RPE        float64      `json:"rpe"`
	Notes      string       `json:"notes,omitempty"`
	Completed  bool         `json:"completed"`
	Variation  SetVariation `json:"variation"`
	Timestamp  time.Time    `json:"timestamp"`
}

// NewWorkoutSet creates a new, not yet completed WorkoutSet.
// It generates a new UUID, stamps the creation time, and validates the set
// including its variation. Returns an error if validation fails.
func NewWorkoutSet(
	userID uuid.UUID,
	exerciseID string,
	setNumber int,
	weight float64,
	reps int,
	rpe float64,
	variation SetVariation,
) (*WorkoutSet, error) {
	set := &WorkoutSet{
		ID:         uuid.New(),
		UserID:     userID,
		ExerciseID: exerciseID,
		SetNumber:  setNumber,
		Weight:     weight,
		Reps:       reps,
		RPE:        rpe,
		Variation:  variation,
		Timestamp:  time.Now().UTC(),
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

// Validate checks if the WorkoutSet has valid data.
// Returns an error if any field fails validation.
func (s *WorkoutSet) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSetIDEmpty
	}

	if s.UserID == uuid.Nil {
		return ErrSetUserIDEmpty
	}

	if strings.TrimSpace(s.ExerciseID) == "" {
		return ErrSetExerciseIDEmpty
	}

	if s.SetNumber < 1 {
		return NewValidationError("set_number", "must be at least 1")
	}

	if !isFinite(s.Weight) || s.Weight < 0 {
		return NewValidationError("weight", "must be a non-negative number")
	}

	if s.Reps < 0 {
		return NewValidationError("reps", "must be non-negative")
	}

	if !isFinite(s.RPE) || s.RPE < 0 || s.RPE > MaxRPE {
		return NewValidationError("rpe", "must be between 0 and %.0f", MaxRPE)
	}

	_, err := ValidateVariation(*s)
	return err
}

// Complete marks the set as completed.
// Returns ErrSetAlreadyCompleted if the set was completed before.
func (s *WorkoutSet) Complete() error {
	if s.Completed {
		return ErrSetAlreadyCompleted
	}
	s.Completed = true
	return nil
}
