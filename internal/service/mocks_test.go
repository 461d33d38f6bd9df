package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockWorkoutSetStore mocks the store.WorkoutSetStore interface
type MockWorkoutSetStore struct {
	mock.Mock
}

func (m *MockWorkoutSetStore) Create(ctx context.Context, set *domain.WorkoutSet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

func (m *MockWorkoutSetStore) CreateBatch(ctx context.Context, sets []*domain.WorkoutSet) error {
	args := m.Called(ctx, sets)
	return args.Error(0)
}

func (m *MockWorkoutSetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkoutSet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkoutSet), args.Error(1)
}

func (m *MockWorkoutSetStore) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkoutSetStore) ListByExercise(
	ctx context.Context,
	userID uuid.UUID,
	exerciseID string,
) ([]domain.WorkoutSet, error) {
	args := m.Called(ctx, userID, exerciseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkoutSet), args.Error(1)
}

// MockQuotaAccountant mocks the QuotaAccountant interface
type MockQuotaAccountant struct {
	mock.Mock
}

func (m *MockQuotaAccountant) RecordAction(
	ctx context.Context,
	kind domain.ActionKind,
	userID uuid.UUID,
) (bool, error) {
	args := m.Called(ctx, kind, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuotaAccountant) ReleaseAction(
	ctx context.Context,
	kind domain.ActionKind,
	userID uuid.UUID,
) error {
	args := m.Called(ctx, kind, userID)
	return args.Error(0)
}

// MockProfileProvider mocks the ProfileProvider interface
type MockProfileProvider struct {
	mock.Mock
}

func (m *MockProfileProvider) GetProfile(ctx context.Context, userID uuid.UUID) (domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.UserProfile), args.Error(1)
}

// MockAdvisor mocks the Advisor interface
type MockAdvisor struct {
	mock.Mock
}

func (m *MockAdvisor) Advise(
	ctx context.Context,
	hint domain.OverloadHint,
	history []domain.WorkoutSet,
	policy domain.LoadProgression,
) (string, error) {
	args := m.Called(ctx, hint, history, policy)
	return args.String(0), args.Error(1)
}
