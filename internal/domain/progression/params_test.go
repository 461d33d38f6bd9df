package progression

import (
	"testing"

	"github.com/phrazzld/fitload/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewParams(t *testing.T) {
	t.Parallel() // Enable parallel execution

	params := NewParams(ParamsConfig{LowEffortRPE: 8, DefaultTargetReps: 5})
	defaults := NewDefaultParams()

	assert.Equal(t, 8.0, params.LowEffortRPE)
	assert.Equal(t, 5, params.DefaultTargetReps)
	assert.Equal(t, defaults.PercentageWindow, params.PercentageWindow)
	assert.Equal(t, defaults.RPEOvershoot, params.RPEOvershoot)
	assert.Equal(t, defaults.RepStep, params.RepStep)
}

func TestServiceWithParams(t *testing.T) {
	t.Parallel() // Enable parallel execution

	svc := NewServiceWithParams(NewParams(ParamsConfig{LowEffortRPE: 8}))
	history := []domain.WorkoutSet{set(100, 8, 8, true)}
	policy := domain.LoadProgression{Type: domain.ProgressionLinear, Increment: 2.5}

	hint := svc.ComputeOverloadHint("bench", history, policy)
	assert.Equal(t, domain.SuggestIncreaseWeight, hint.Suggestion, "RPE 8 counts as low effort when the threshold is 8")

	hint = NewDefaultService().ComputeOverloadHint("bench", history, policy)
	assert.Equal(t, domain.SuggestMaintain, hint.Suggestion)
}
