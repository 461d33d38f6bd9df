package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/domain"
)

// QuotaAccountant grants or denies metered actions.
// It is implemented by usage.Accountant.
type QuotaAccountant interface {
	RecordAction(ctx context.Context, kind domain.ActionKind, userID uuid.UUID) (bool, error)

	// ReleaseAction returns a unit granted by RecordAction whose operation
	// then failed.
	ReleaseAction(ctx context.Context, kind domain.ActionKind, userID uuid.UUID) error
}

// ProfileProvider returns the body profile used for energy estimates.
// Returns ErrProfileNotFound when the user has none.
type ProfileProvider interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (domain.UserProfile, error)
}

// Advisor turns an overload hint into a short coaching note.
type Advisor interface {
	Advise(
		ctx context.Context,
		hint domain.OverloadHint,
		history []domain.WorkoutSet,
		policy domain.LoadProgression,
	) (string, error)
}
