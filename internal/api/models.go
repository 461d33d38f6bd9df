package api

import (
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/service"
)

// Common request/response structures

// SetRequest is one set in a request body. Within a workout phase an empty
// ExerciseID inherits the phase's exercise; a missing variation is a normal set.
type SetRequest struct {
	ExerciseID string               `json:"exercise_id"         validate:"max=100"`
	SetNumber  int                  `json:"set_number"          validate:"required,gte=1"`
	Weight     float64              `json:"weight"              validate:"gte=0"`
	Reps       int                  `json:"reps"                validate:"gte=0"`
	RPE        float64              `json:"rpe"                 validate:"gte=0,lte=10"`
	Notes      string               `json:"notes,omitempty"     validate:"max=500"`
	Variation  *domain.SetVariation `json:"variation,omitempty"`
}

// PhaseRequest describes one exercise of a workout.
type PhaseRequest struct {
	Name        string                    `json:"name"                  validate:"required,max=100"`
	ExerciseID  string                    `json:"exercise_id"           validate:"required,max=100"`
	Progression *domain.LoadProgression   `json:"progression,omitempty"`
	Variations  domain.ExerciseVariations `json:"variations"`
	Sets        []SetRequest              `json:"sets"                  validate:"required,min=1,dive"`
}

// CreateWorkoutRequest defines the payload of POST /api/workouts.
type CreateWorkoutRequest struct {
	Phases []PhaseRequest `json:"phases" validate:"required,min=1,dive"`
}

// WorkoutResponse is the created workout.
type WorkoutResponse struct {
	Phases []domain.WorkoutPhase `json:"phases"`
}

// EstimateRequest defines the payload of POST /api/estimate.
type EstimateRequest struct {
	Intensity domain.SessionIntensity `json:"intensity" validate:"required,oneof=leve moderado alto"`
}

// EstimateResponse carries the estimated session cost.
type EstimateResponse struct {
	Intensity domain.SessionIntensity `json:"intensity"`
	Kcal      int                     `json:"kcal"`
}

// UsageResponse reports the caller's free-tier counters and limits.
type UsageResponse struct {
	WorkoutsCreated     int    `json:"workouts_created"`
	AIRequests          int    `json:"ai_requests"`
	LastReset           string `json:"last_reset"`
	FreeWorkoutLimit    int    `json:"free_workout_limit"`
	DailyAIRequestLimit int    `json:"daily_ai_request_limit"`
	WorkoutsRemaining   int    `json:"workouts_remaining"`
	AIRequestsRemaining int    `json:"ai_requests_remaining"`
}

// AdviceResponse carries the hint and the coaching note.
type AdviceResponse = service.Advice

func (s SetRequest) toInput() service.SetInput {
	input := service.SetInput{
		ExerciseID: s.ExerciseID,
		SetNumber:  s.SetNumber,
		Weight:     s.Weight,
		Reps:       s.Reps,
		RPE:        s.RPE,
		Notes:      s.Notes,
	}
	if s.Variation != nil {
		input.Variation = *s.Variation
	}
	return input
}

func (r CreateWorkoutRequest) toInputs() []service.PhaseInput {
	inputs := make([]service.PhaseInput, 0, len(r.Phases))
	for _, phase := range r.Phases {
		sets := make([]service.SetInput, 0, len(phase.Sets))
		for _, set := range phase.Sets {
			sets = append(sets, set.toInput())
		}
		inputs = append(inputs, service.PhaseInput{
			Name:        phase.Name,
			ExerciseID:  phase.ExerciseID,
			Progression: phase.Progression,
			Variations:  phase.Variations,
			Sets:        sets,
		})
	}
	return inputs
}

func remaining(limit, used int) int {
	if used >= limit {
		return 0
	}
	return limit - used
}
