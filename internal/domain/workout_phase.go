package domain

// ExerciseVariations lists which techniques are enabled for an exercise.
// It is configuration only; straight (normal) sets are always allowed.
type ExerciseVariations struct {
	DropSet    bool `json:"drop_set"`
	RestPause  bool `json:"rest_pause"`
	Cluster    bool `json:"cluster"`
	Mechanical bool `json:"mechanical"`
	Tempo      bool `json:"tempo"`
}

// AllVariations enables every technique.
func AllVariations() ExerciseVariations {
	return ExerciseVariations{
		DropSet:    true,
		RestPause:  true,
		Cluster:    true,
		Mechanical: true,
		Tempo:      true,
	}
}

// Allows reports whether sets of the given kind may be logged for the exercise.
func (e ExerciseVariations) Allows(kind VariationKind) bool {
	switch kind {
	case VariationNormal:
		return true
	case VariationDrop:
		return e.DropSet
	case VariationRestPause:
		return e.RestPause
	case VariationCluster:
		return e.Cluster
	case VariationMechanical:
		return e.Mechanical
	case VariationTempo:
		return e.Tempo
	default:
		return false
	}
}

// WorkoutPhase is one exercise's execution within a session: an ordered
// sequence of sets plus the exercise's progression policy and enabled techniques.
type WorkoutPhase struct {
	Name        string             `json:"name"`
	ExerciseID  string             `json:"exercise_id"`
	Sets        []WorkoutSet       `json:"sets"`
	Progression *LoadProgression   `json:"progression,omitempty"`
	Variations  ExerciseVariations `json:"variations"`
}

// AddSet validates the set and appends it to the phase. The set must belong
// to the phase's exercise, use an enabled technique, and carry a set number
// greater than the last one. On error the phase is left untouched.
func (p *WorkoutPhase) AddSet(set WorkoutSet) error {
	if err := p.CheckSet(set); err != nil {
		return err
	}
	p.Sets = append(p.Sets, set)
	return nil
}

// CheckSet runs the AddSet checks without modifying the phase.
func (p *WorkoutPhase) CheckSet(set WorkoutSet) error {
	validated, err := ValidateVariation(set)
	if err != nil {
		return err
	}

	if p.ExerciseID != "" && validated.ExerciseID != p.ExerciseID {
		return NewValidationError("exercise_id", "set for %q cannot join phase %q", validated.ExerciseID, p.ExerciseID)
	}

	if !p.Variations.Allows(validated.Variation.Kind) {
		return NewValidationError("variation.type", "%s sets are not enabled for %q", validated.Variation.Kind, p.Name)
	}

	if n := len(p.Sets); n > 0 && validated.SetNumber <= p.Sets[n-1].SetNumber {
		return NewValidationError("set_number", "%d must follow %d", validated.SetNumber, p.Sets[n-1].SetNumber)
	}

	return nil
}

// Validate checks the phase and every set it holds.
func (p *WorkoutPhase) Validate() error {
	if p.Name == "" {
		return NewValidationError("name", "cannot be empty")
	}
	if p.Progression != nil {
		if err := p.Progression.Validate(); err != nil {
			return err
		}
	}

	check := WorkoutPhase{Name: p.Name, ExerciseID: p.ExerciseID, Variations: p.Variations}
	for _, set := range p.Sets {
		if err := check.AddSet(set); err != nil {
			return err
		}
	}
	return nil
}
