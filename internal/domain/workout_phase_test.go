package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func phaseSet(t *testing.T, number int, variation SetVariation) WorkoutSet {
	t.Helper()
	set, err := NewWorkoutSet(uuid.New(), "deadlift", number, 180, 5, 8, variation)
	if err != nil {
		t.Fatalf("Failed to create set: %v", err)
	}
	return *set
}

func TestWorkoutPhaseAddSet(t *testing.T) {
	t.Parallel() // Enable parallel execution

	phase := WorkoutPhase{
		Name:       "Deadlift",
		ExerciseID: "deadlift",
		Variations: ExerciseVariations{RestPause: true},
	}

	if err := phase.AddSet(phaseSet(t, 1, NormalVariation())); err != nil {
		t.Fatalf("Expected normal set to be accepted, got %v", err)
	}
	if err := phase.AddSet(phaseSet(t, 2, RestPauseVariation(3, 2))); err != nil {
		t.Fatalf("Expected enabled rest-pause set to be accepted, got %v", err)
	}

	err := phase.AddSet(phaseSet(t, 3, ClusterVariation(15)))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected disabled cluster set to be rejected, got %v", err)
	}

	err = phase.AddSet(phaseSet(t, 2, NormalVariation()))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected out-of-order set number to be rejected, got %v", err)
	}

	if len(phase.Sets) != 2 {
		t.Errorf("Expected rejected sets to leave 2 sets, got %d", len(phase.Sets))
	}
}

func TestWorkoutPhaseValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	phase := WorkoutPhase{
		Name:        "Deadlift",
		ExerciseID:  "deadlift",
		Sets:        []WorkoutSet{phaseSet(t, 1, NormalVariation()), phaseSet(t, 2, TempoVariation("3010"))},
		Progression: &LoadProgression{Type: ProgressionRPEBased, Increment: 2.5},
		Variations:  AllVariations(),
	}

	if err := phase.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected rpe_based policy without target to be rejected, got %v", err)
	}

	target := 8.0
	phase.Progression.TargetRPE = &target
	if err := phase.Validate(); err != nil {
		t.Errorf("Expected valid phase, got %v", err)
	}
}
