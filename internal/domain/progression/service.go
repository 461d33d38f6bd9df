package progression

import (
	"github.com/phrazzld/fitload/internal/domain"
)

// Service defines the interface for load progression operations
type Service interface {
	// ComputeOverloadHint derives a progression suggestion from an exercise's
	// set history (most recent last) and its policy. It never fails and has no
	// side effects; the hint is meant to be recomputed, not stored.
	ComputeOverloadHint(
		exerciseID string,
		history []domain.WorkoutSet,
		policy domain.LoadProgression,
	) domain.OverloadHint
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new progression service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new progression service with custom parameters
func NewServiceWithParams(params *Params) Service {
	if params == nil {
		params = NewDefaultParams()
	}
	return &defaultService{
		params: params,
	}
}

// ComputeOverloadHint implements the Service interface
func (s *defaultService) ComputeOverloadHint(
	exerciseID string,
	history []domain.WorkoutSet,
	policy domain.LoadProgression,
) domain.OverloadHint {
	return computeHint(exerciseID, history, policy, s.params)
}
