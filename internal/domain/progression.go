package domain

// ProgressionType selects how an exercise's working weight evolves.
type ProgressionType string

// Possible progression types
const (
	ProgressionLinear     ProgressionType = "linear"
	ProgressionPercentage ProgressionType = "percentage"
	ProgressionRPEBased   ProgressionType = "rpe_based"
	ProgressionCustom     ProgressionType = "custom"
)

// LoadProgression is the policy attached to an exercise.
//
// Increment is an absolute load for linear and rpe_based policies and a
// percentage of the current weight for percentage policies. TargetRPE is
// required for rpe_based and ignored otherwise. A zero TargetReps falls back
// to the engine's default rep target.
type LoadProgression struct {
	Type       ProgressionType `json:"type" validate:"required,oneof=linear percentage rpe_based custom"`
	Increment  float64         `json:"increment" validate:"gte=0"`
	MaxWeight  *float64        `json:"max_weight,omitempty" validate:"omitempty,gt=0"`
	TargetRPE  *float64        `json:"target_rpe,omitempty" validate:"omitempty,gte=0,lte=10"`
	TargetReps int             `json:"target_reps,omitempty" validate:"gte=0"`
}

// Validate checks the policy for internal consistency.
func (p LoadProgression) Validate() error {
	switch p.Type {
	case ProgressionLinear, ProgressionPercentage, ProgressionCustom:
	case ProgressionRPEBased:
		if p.TargetRPE == nil {
			return NewValidationError("progression.target_rpe", "is required for rpe_based policies")
		}
	default:
		return NewValidationError("progression.type", "unknown progression type %q", p.Type)
	}

	if !isFinite(p.Increment) || p.Increment < 0 {
		return NewValidationError("progression.increment", "must be non-negative")
	}
	if p.MaxWeight != nil && (!isFinite(*p.MaxWeight) || *p.MaxWeight <= 0) {
		return NewValidationError("progression.max_weight", "must be positive")
	}
	if p.TargetRPE != nil && (!isFinite(*p.TargetRPE) || *p.TargetRPE < 0 || *p.TargetRPE > MaxRPE) {
		return NewValidationError("progression.target_rpe", "must be between 0 and %.0f", MaxRPE)
	}
	if p.TargetReps < 0 {
		return NewValidationError("progression.target_reps", "must be non-negative")
	}
	return nil
}

// Suggestion is the action an OverloadHint recommends.
type Suggestion string

// Possible suggestions
const (
	SuggestIncreaseWeight Suggestion = "increase_weight"
	SuggestIncreaseReps   Suggestion = "increase_reps"
	SuggestMaintain       Suggestion = "maintain"
)

// OverloadHint is a derived progression suggestion for one exercise.
// It is recomputed from history on demand and never persisted.
type OverloadHint struct {
	ExerciseID string     `json:"exercise_id"`
	Suggestion Suggestion `json:"suggestion"`
	Amount     *float64   `json:"amount,omitempty"`
	Reason     string     `json:"reason"`
}
