package energy

import (
	"math"
	"testing"

	"github.com/phrazzld/fitload/internal/domain"
)

func TestEstimateSessionKcalFixtures(t *testing.T) {
	t.Parallel() // Enable parallel execution

	tests := []struct {
		name      string
		profile   domain.UserProfile
		intensity domain.SessionIntensity
		wantBMR   float64
		wantTDEE  float64
		wantKcal  int
	}{
		{
			name: "male hypertrophy moderate",
			profile: domain.UserProfile{
				Sex: domain.SexMale, WeightKg: 80, HeightCm: 180, Objective: domain.ObjectiveMass,
			},
			intensity: domain.IntensityModerate,
			wantBMR:   1805,
			wantTDEE:  2798,
			wantKcal:  120,
		},
		{
			name: "female fat loss high",
			profile: domain.UserProfile{
				Sex: domain.SexFemale, WeightKg: 60, HeightCm: 165, Objective: domain.ObjectiveFatLoss,
			},
			intensity: domain.IntensityHigh,
			wantBMR:   1345.25,
			wantTDEE:  2321,
			wantKcal:  112,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BMR(tt.profile); math.Abs(got-tt.wantBMR) > 1e-9 {
				t.Errorf("BMR() = %v, want %v", got, tt.wantBMR)
			}
			if got := TDEE(tt.profile); got != tt.wantTDEE {
				t.Errorf("TDEE() = %v, want %v", got, tt.wantTDEE)
			}
			if got := EstimateSessionKcal(tt.profile, tt.intensity); got != tt.wantKcal {
				t.Errorf("EstimateSessionKcal() = %d, want %d", got, tt.wantKcal)
			}
		})
	}
}

func TestEstimateSessionKcalOrdering(t *testing.T) {
	t.Parallel() // Enable parallel execution

	profile := domain.UserProfile{Sex: domain.SexMale, WeightKg: 90, HeightCm: 185, Objective: domain.ObjectiveStrength}

	light := EstimateSessionKcal(profile, domain.IntensityLight)
	moderate := EstimateSessionKcal(profile, domain.IntensityModerate)
	high := EstimateSessionKcal(profile, domain.IntensityHigh)

	if !(light < moderate && moderate < high) {
		t.Errorf("expected leve < moderado < alto, got %d, %d, %d", light, moderate, high)
	}
}

func TestEstimateSessionKcalDeterministic(t *testing.T) {
	t.Parallel() // Enable parallel execution

	profile := domain.UserProfile{Sex: domain.SexFemale, WeightKg: 70, HeightCm: 170, Objective: domain.ObjectiveMass}
	first := EstimateSessionKcal(profile, domain.IntensityLight)
	for i := 0; i < 100; i++ {
		if got := EstimateSessionKcal(profile, domain.IntensityLight); got != first {
			t.Fatalf("call %d returned %d, first call returned %d", i, got, first)
		}
	}
}

func TestEstimateSessionKcalUnknownValuesUseDefaults(t *testing.T) {
	t.Parallel() // Enable parallel execution

	profile := domain.UserProfile{Sex: domain.SexMale, WeightKg: 80, HeightCm: 180, Objective: "unknown"}

	if got := EstimateSessionKcal(profile, "unknown"); got != 120 {
		t.Errorf("EstimateSessionKcal() = %d, want massa/moderado result 120", got)
	}
}
