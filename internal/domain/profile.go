package domain

// Sex is the biological sex used by the BMR formula.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// Objective is the user's declared training goal.
type Objective string

const (
	ObjectiveMass     Objective = "massa"   // hypertrophy
	ObjectiveFatLoss  Objective = "gordura" // fat loss
	ObjectiveStrength Objective = "forca"   // strength
)

// SessionIntensity is the perceived intensity of a whole training session.
type SessionIntensity string

const (
	IntensityLight    SessionIntensity = "leve"
	IntensityModerate SessionIntensity = "moderado"
	IntensityHigh     SessionIntensity = "alto"
)

// UserProfile is the per-session snapshot of the body metrics the energy
// estimator needs. It is owned by the onboarding subsystem; weight and height
// are assumed positive.
type UserProfile struct {
	Sex       Sex       `json:"sex" validate:"required,oneof=M F"`
	WeightKg  float64   `json:"weight_kg" validate:"required,gt=0"`
	HeightCm  float64   `json:"height_cm" validate:"required,gt=0"`
	Objective Objective `json:"objective" validate:"required,oneof=massa gordura forca"`
}

// IsValid reports whether the intensity is one of the known levels.
func (i SessionIntensity) IsValid() bool {
	switch i {
	case IntensityLight, IntensityModerate, IntensityHigh:
		return true
	default:
		return false
	}
}

// IsValid reports whether the objective is one of the known goals.
func (o Objective) IsValid() bool {
	switch o {
	case ObjectiveMass, ObjectiveFatLoss, ObjectiveStrength:
		return true
	default:
		return false
	}
}

// IsValid reports whether the sex is M or F.
func (s Sex) IsValid() bool {
	return s == SexMale || s == SexFemale
}

// Validate checks the profile before it is stored.
func (p UserProfile) Validate() error {
	if !p.Sex.IsValid() {
		return NewValidationError("sex", "%q must be M or F", p.Sex)
	}
	if !isFinite(p.WeightKg) || p.WeightKg <= 0 {
		return NewValidationError("weight_kg", "must be positive")
	}
	if !isFinite(p.HeightCm) || p.HeightCm <= 0 {
		return NewValidationError("height_cm", "must be positive")
	}
	if !p.Objective.IsValid() {
		return NewValidationError("objective", "unknown objective %q", p.Objective)
	}
	return nil
}
