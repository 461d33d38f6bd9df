package progression

import (
	"fmt"
	"math"

	"github.com/phrazzld/fitload/internal/domain"
)

// Fixed reasons callers may match on
const (
	ReasonNoHistory = "no history"
	ReasonAtMaxLoad = "at max load"
	ReasonCustom    = "custom policy: external calculation required"
)

// computeHint produces the overload hint for one exercise.
//
// Parameters:
//   - exerciseID: the exercise the history belongs to, copied into the hint
//   - history: the exercise's sets, most recent last
//   - policy: the exercise's load progression policy
//   - params: thresholds of the rule
//
// The function is pure: identical inputs always yield an identical hint.
//
// Algorithm behavior:
//   - Empty history: maintain ("no history")
//   - linear: add the increment when the last set was completed at low effort
//     with the rep target met
//   - rpe_based: add load below targetRpe, hold above targetRpe+overshoot,
//     otherwise add reps
//   - percentage: add increment% of the current weight when the last
//     PercentageWindow sets all met their rep target
//   - custom: maintain, the calculation belongs to the caller
//
// Every weight increase is capped so the resulting load never exceeds
// policy.MaxWeight; at or above the cap the hint is maintain ("at max load").
func computeHint(
	exerciseID string,
	history []domain.WorkoutSet,
	policy domain.LoadProgression,
	params *Params,
) domain.OverloadHint {
	if len(history) == 0 {
		return maintain(exerciseID, ReasonNoHistory)
	}

	last := history[len(history)-1]
	targetReps := policy.TargetReps
	if targetReps <= 0 {
		targetReps = params.DefaultTargetReps
	}

	switch policy.Type {
	case domain.ProgressionLinear:
		return linearHint(exerciseID, last, targetReps, policy, params)
	case domain.ProgressionRPEBased:
		return rpeHint(exerciseID, last, policy, params)
	case domain.ProgressionPercentage:
		return percentageHint(exerciseID, history, targetReps, policy, params)
	case domain.ProgressionCustom:
		return maintain(exerciseID, ReasonCustom)
	default:
		return maintain(exerciseID, fmt.Sprintf("unknown progression type %q", policy.Type))
	}
}

func linearHint(
	exerciseID string,
	last domain.WorkoutSet,
	targetReps int,
	policy domain.LoadProgression,
	params *Params,
) domain.OverloadHint {
	if !last.Completed {
		return maintain(exerciseID, "last set was not completed")
	}
	if last.RPE > params.LowEffortRPE {
		return maintain(exerciseID,
			fmt.Sprintf("last set RPE %.1f is above %.1f", last.RPE, params.LowEffortRPE))
	}
	if last.Reps < targetReps {
		return maintain(exerciseID,
			fmt.Sprintf("last set reached %d of %d target reps", last.Reps, targetReps))
	}

	return increaseWeight(exerciseID, last.Weight, policy.Increment, policy.MaxWeight,
		fmt.Sprintf("completed %d reps at RPE %.1f", last.Reps, last.RPE))
}

func rpeHint(
	exerciseID string,
	last domain.WorkoutSet,
	policy domain.LoadProgression,
	params *Params,
) domain.OverloadHint {
	if policy.TargetRPE == nil {
		return maintain(exerciseID, "rpe_based policy has no target RPE")
	}
	target := *policy.TargetRPE

	switch {
	case last.RPE < target:
		return increaseWeight(exerciseID, last.Weight, policy.Increment, policy.MaxWeight,
			fmt.Sprintf("RPE %.1f is below target %.1f", last.RPE, target))
	case last.RPE > target+params.RPEOvershoot:
		return maintain(exerciseID,
			fmt.Sprintf("RPE %.1f exceeds target %.1f; consider a deload", last.RPE, target))
	default:
		amount := params.RepStep
		return domain.OverloadHint{
			ExerciseID: exerciseID,
			Suggestion: domain.SuggestIncreaseReps,
			Amount:     &amount,
			Reason:     fmt.Sprintf("RPE %.1f is on target %.1f", last.RPE, target),
		}
	}
}

func percentageHint(
	exerciseID string,
	history []domain.WorkoutSet,
	targetReps int,
	policy domain.LoadProgression,
	params *Params,
) domain.OverloadHint {
	window := params.PercentageWindow
	if len(history) < window {
		return maintain(exerciseID,
			fmt.Sprintf("need %d sets at target, have %d", window, len(history)))
	}

	for _, set := range history[len(history)-window:] {
		if !set.Completed || set.Reps < targetReps {
			return maintain(exerciseID,
				fmt.Sprintf("last %d sets did not all reach %d reps", window, targetReps))
		}
	}

	last := history[len(history)-1]
	increment := roundLoad(last.Weight * policy.Increment / 100)
	return increaseWeight(exerciseID, last.Weight, increment, policy.MaxWeight,
		fmt.Sprintf("last %d sets reached %d reps", window, targetReps))
}

// increaseWeight builds an increase_weight hint, capping the increment so
// that current+amount never exceeds maxWeight.
func increaseWeight(
	exerciseID string,
	current float64,
	increment float64,
	maxWeight *float64,
	reason string,
) domain.OverloadHint {
	if maxWeight != nil && current >= *maxWeight {
		return maintain(exerciseID, ReasonAtMaxLoad)
	}

	if increment <= 0 {
		return maintain(exerciseID, "policy increment is zero")
	}

	amount := increment
	if maxWeight != nil && roundLoad(current+amount) > roundLoad(*maxWeight) {
		// Loads are compared in hundredths so float noise in the
		// difference neither overshoots nor undershoots the cap.
		amount = roundLoad(*maxWeight - current)
		if roundLoad(current+amount) > roundLoad(*maxWeight) {
			amount = roundLoad(amount - 0.01)
		}
		if amount <= 0 {
			return maintain(exerciseID, ReasonAtMaxLoad)
		}
		reason += fmt.Sprintf("; capped at %.2f", *maxWeight)
	}

	return domain.OverloadHint{
		ExerciseID: exerciseID,
		Suggestion: domain.SuggestIncreaseWeight,
		Amount:     &amount,
		Reason:     reason,
	}
}

func maintain(exerciseID, reason string) domain.OverloadHint {
	return domain.OverloadHint{
		ExerciseID: exerciseID,
		Suggestion: domain.SuggestMaintain,
		Reason:     reason,
	}
}

// roundLoad rounds a load to two decimals.
func roundLoad(v float64) float64 {
	return math.Round(v*100) / 100
}
