// Package energy estimates the energy cost of a training session from a
// user's body profile.
package energy

import (
	"math"

	"github.com/phrazzld/fitload/internal/domain"
)

// ReferenceAge is the age plugged into the BMR equation. Profiles do not
// carry a birth date, so every user is estimated at the same age.
const ReferenceAge = 25

// sessionShare is the fraction of an hour's expenditure attributed to the
// session itself.
const sessionShare = 0.75

var objectiveFactors = map[domain.Objective]float64{
	domain.ObjectiveMass:     1.55,
	domain.ObjectiveFatLoss:  1.725,
	domain.ObjectiveStrength: 1.375,
}

var intensityFactors = map[domain.SessionIntensity]float64{
	domain.IntensityLight:    1.2,
	domain.IntensityModerate: 1.375,
	domain.IntensityHigh:     1.55,
}

// BMR returns the Mifflin-St Jeor basal metabolic rate at ReferenceAge.
func BMR(profile domain.UserProfile) float64 {
	base := 10*profile.WeightKg + 6.25*profile.HeightCm - 5*ReferenceAge
	if profile.Sex == domain.SexFemale {
		return base - 161
	}
	return base + 5
}

// TDEE returns the rounded total daily energy expenditure for the profile's
// objective. An unrecognized objective uses the massa factor.
func TDEE(profile domain.UserProfile) float64 {
	factor, ok := objectiveFactors[profile.Objective]
	if !ok {
		factor = objectiveFactors[domain.ObjectiveMass]
	}
	return math.Round(BMR(profile) * factor)
}

// EstimateSessionKcal returns the estimated kcal cost of one session.
// Weight and height are expected to be positive; the function never fails
// and an unrecognized intensity uses the moderado factor.
func EstimateSessionKcal(profile domain.UserProfile, intensity domain.SessionIntensity) int {
	factor, ok := intensityFactors[intensity]
	if !ok {
		factor = intensityFactors[domain.IntensityModerate]
	}
	return int(math.Round(TDEE(profile) / 24 * sessionShare * factor))
}
