package domain

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestNewWorkoutSet(t *testing.T) {
	t.Parallel() // Enable parallel execution

	userID := uuid.New()
	set, err := NewWorkoutSet(userID, "squat", 1, 140, 5, 8.5, NormalVariation())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if set.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if set.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, set.UserID)
	}
	if set.Completed {
		t.Error("Expected new set to be incomplete")
	}
	if set.Timestamp.IsZero() {
		t.Error("Expected non-zero Timestamp")
	}

	_, err = NewWorkoutSet(uuid.Nil, "squat", 1, 140, 5, 8, NormalVariation())
	if err != ErrSetUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrSetUserIDEmpty, err)
	}

	_, err = NewWorkoutSet(userID, " ", 1, 140, 5, 8, NormalVariation())
	if err != ErrSetExerciseIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrSetExerciseIDEmpty, err)
	}

	_, err = NewWorkoutSet(userID, "squat", 0, 140, 5, 8, NormalVariation())
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for set number, got %v", err)
	}

	_, err = NewWorkoutSet(userID, "squat", 1, 140, 5, 11, NormalVariation())
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for rpe, got %v", err)
	}

	_, err = NewWorkoutSet(userID, "squat", 1, 140, 5, 8, DropVariation())
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for empty drop, got %v", err)
	}
}

func TestNewWorkoutSetRejectsNonFiniteValues(t *testing.T) {
	t.Parallel() // Enable parallel execution

	userID := uuid.New()
	testCases := []struct {
		name      string
		weight    float64
		rpe       float64
		variation SetVariation
	}{
		{name: "NaN weight", weight: math.NaN(), rpe: 8, variation: NormalVariation()},
		{name: "infinite weight", weight: math.Inf(1), rpe: 8, variation: NormalVariation()},
		{name: "NaN rpe", weight: 100, rpe: math.NaN(), variation: NormalVariation()},
		{name: "NaN drop weight", weight: 100, rpe: 8, variation: DropVariation(DropStep{Weight: math.NaN(), Reps: 5})},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel() // Enable parallel execution
			set, err := NewWorkoutSet(userID, "squat", 1, tc.weight, 5, tc.rpe, tc.variation)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if set != nil {
				t.Errorf("Expected no set, got %+v", set)
			}
		})
	}
}

func TestAcceptedWorkoutSetMarshals(t *testing.T) {
	t.Parallel() // Enable parallel execution

	set, err := NewWorkoutSet(uuid.New(), "squat", 1, 100, 5, 8, DropVariation(DropStep{Weight: 80, Reps: 5}))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := json.Marshal(set); err != nil {
		t.Errorf("Expected accepted set to marshal, got %v", err)
	}
}

func TestWorkoutSetComplete(t *testing.T) {
	t.Parallel() // Enable parallel execution

	set, err := NewWorkoutSet(uuid.New(), "row", 1, 70, 10, 7, NormalVariation())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := set.Complete(); err != nil {
		t.Fatalf("Expected first completion to succeed, got %v", err)
	}
	if !set.Completed {
		t.Error("Expected set to be completed")
	}
	if err := set.Complete(); err != ErrSetAlreadyCompleted {
		t.Errorf("Expected error %v, got %v", ErrSetAlreadyCompleted, err)
	}
}
