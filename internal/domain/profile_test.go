package domain

import (
	"errors"
	"math"
	"testing"
)

func TestUserProfileValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	valid := UserProfile{Sex: SexMale, WeightKg: 80, HeightCm: 180, Objective: ObjectiveMass}

	tests := []struct {
		name    string
		mutate  func(p *UserProfile)
		wantErr bool
	}{
		{"valid", func(p *UserProfile) {}, false},
		{"female", func(p *UserProfile) { p.Sex = SexFemale }, false},
		{"unknown sex", func(p *UserProfile) { p.Sex = "X" }, true},
		{"zero weight", func(p *UserProfile) { p.WeightKg = 0 }, true},
		{"negative height", func(p *UserProfile) { p.HeightCm = -1 }, true},
		{"NaN weight", func(p *UserProfile) { p.WeightKg = math.NaN() }, true},
		{"infinite height", func(p *UserProfile) { p.HeightCm = math.Inf(1) }, true},
		{"unknown objective", func(p *UserProfile) { p.Objective = "bulk" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("Validate() error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestSessionIntensityIsValid(t *testing.T) {
	t.Parallel() // Enable parallel execution

	for _, i := range []SessionIntensity{IntensityLight, IntensityModerate, IntensityHigh} {
		if !i.IsValid() {
			t.Errorf("%q should be valid", i)
		}
	}
	if SessionIntensity("extreme").IsValid() {
		t.Error("unknown intensity should be invalid")
	}
}
