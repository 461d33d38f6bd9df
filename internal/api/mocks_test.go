package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/service"
	"github.com/phrazzld/fitload/internal/usage"
	"github.com/stretchr/testify/mock"
)

// MockTrainingService mocks the service.TrainingService interface
type MockTrainingService struct {
	mock.Mock
}

func (m *MockTrainingService) RecordSet(
	ctx context.Context,
	userID uuid.UUID,
	input service.SetInput,
) (*domain.WorkoutSet, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkoutSet), args.Error(1)
}

func (m *MockTrainingService) CompleteSet(
	ctx context.Context,
	userID uuid.UUID,
	setID uuid.UUID,
) (*domain.WorkoutSet, error) {
	args := m.Called(ctx, userID, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkoutSet), args.Error(1)
}

func (m *MockTrainingService) CreateWorkout(
	ctx context.Context,
	userID uuid.UUID,
	phases []service.PhaseInput,
) ([]domain.WorkoutPhase, error) {
	args := m.Called(ctx, userID, phases)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkoutPhase), args.Error(1)
}

func (m *MockTrainingService) SuggestOverload(
	ctx context.Context,
	userID uuid.UUID,
	exerciseID string,
	policy domain.LoadProgression,
) (domain.OverloadHint, error) {
	args := m.Called(ctx, userID, exerciseID, policy)
	return args.Get(0).(domain.OverloadHint), args.Error(1)
}

func (m *MockTrainingService) EstimateSession(
	ctx context.Context,
	userID uuid.UUID,
	intensity domain.SessionIntensity,
) (int, error) {
	args := m.Called(ctx, userID, intensity)
	return args.Int(0), args.Error(1)
}

// MockCoachService mocks the service.CoachService interface
type MockCoachService struct {
	mock.Mock
}

func (m *MockCoachService) RequestAdvice(
	ctx context.Context,
	userID uuid.UUID,
	exerciseID string,
	policy domain.LoadProgression,
) (service.Advice, error) {
	args := m.Called(ctx, userID, exerciseID, policy)
	return args.Get(0).(service.Advice), args.Error(1)
}

// MockUsageReader mocks the UsageReader interface
type MockUsageReader struct {
	mock.Mock
}

func (m *MockUsageReader) GetUsage(ctx context.Context, userID uuid.UUID) (domain.UsageData, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.UsageData), args.Error(1)
}

func (m *MockUsageReader) Limits() usage.Config {
	args := m.Called()
	return args.Get(0).(usage.Config)
}

// MockProfileRepository mocks the ProfileRepository interface
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetProfile(ctx context.Context, userID uuid.UUID) (domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) SaveProfile(
	ctx context.Context,
	userID uuid.UUID,
	profile domain.UserProfile,
) error {
	args := m.Called(ctx, userID, profile)
	return args.Error(0)
}
