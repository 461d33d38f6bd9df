package domain

import "time"

// ActionKind is a metered free-tier action.
type ActionKind string

// Metered actions
const (
	ActionWorkoutCreation ActionKind = "workout_creation"
	ActionAIRequest       ActionKind = "ai_request"
)

// DateLayout is the calendar date format of UsageData.LastReset.
const DateLayout = "2006-01-02"

// UsageData holds a user's free-tier counters.
// WorkoutsCreated is a lifetime counter; AIRequests resets whenever
// LastReset no longer matches the current calendar date.
type UsageData struct {
	WorkoutsCreated int    `json:"workouts_created"`
	AIRequests      int    `json:"ai_requests"`
	LastReset       string `json:"last_reset"`
}

// NewUsageData returns zeroed counters stamped with the given day.
func NewUsageData(today time.Time) UsageData {
	return UsageData{LastReset: today.Format(DateLayout)}
}

// IsValid reports whether the kind is metered.
func (k ActionKind) IsValid() bool {
	return k == ActionWorkoutCreation || k == ActionAIRequest
}

// Validate rejects records that cannot have been produced by the accountant.
func (u UsageData) Validate() error {
	if u.WorkoutsCreated < 0 {
		return NewValidationError("workouts_created", "must be non-negative")
	}
	if u.AIRequests < 0 {
		return NewValidationError("ai_requests", "must be non-negative")
	}
	if _, err := time.Parse(DateLayout, u.LastReset); err != nil {
		return NewValidationError("last_reset", "%q is not a %s date", u.LastReset, DateLayout)
	}
	return nil
}
