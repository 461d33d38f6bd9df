package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/domain/progression"
	"github.com/phrazzld/fitload/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type coachFixture struct {
	sets    *MockWorkoutSetStore
	quota   *MockQuotaAccountant
	advisor *MockAdvisor
	service CoachService
	userID  uuid.UUID
}

func newCoachFixture(t *testing.T) *coachFixture {
	t.Helper()

	log, _ := logger.NewTestLogger(t)
	f := &coachFixture{
		sets:    &MockWorkoutSetStore{},
		quota:   &MockQuotaAccountant{},
		advisor: &MockAdvisor{},
		userID:  uuid.New(),
	}
	f.service = NewCoachService(f.sets, f.quota, progression.NewDefaultService(), f.advisor, log)
	t.Cleanup(func() {
		f.sets.AssertExpectations(t)
		f.quota.AssertExpectations(t)
		f.advisor.AssertExpectations(t)
	})
	return f
}

var linearPolicy = domain.LoadProgression{Type: domain.ProgressionLinear, Increment: 2.5}

func TestRequestAdvice(t *testing.T) {
	t.Parallel() // Enable parallel execution

	history := []domain.WorkoutSet{
		{ExerciseID: "bench", SetNumber: 1, Weight: 60, Reps: 8, RPE: 6, Completed: true},
	}

	t.Run("granted request returns hint and message", func(t *testing.T) {
		t.Parallel() // Enable parallel execution
		f := newCoachFixture(t)

		f.quota.On("RecordAction", mock.Anything, domain.ActionAIRequest, f.userID).Return(true, nil).Once()
		f.sets.On("ListByExercise", mock.Anything, f.userID, "bench").Return(history, nil).Once()
		f.advisor.On("Advise", mock.Anything, mock.MatchedBy(func(h domain.OverloadHint) bool {
			return h.Suggestion == domain.SuggestIncreaseWeight
		}), history, linearPolicy).Return("Add 2.5 kg.", nil).Once()

		advice, err := f.service.RequestAdvice(context.Background(), f.userID, "bench", linearPolicy)

		require.NoError(t, err)
		assert.Equal(t, "Add 2.5 kg.", advice.Message)
		assert.Equal(t, "bench", advice.Hint.ExerciseID)
	})

	t.Run("denied request does not reach the advisor", func(t *testing.T) {
		t.Parallel() // Enable parallel execution
		f := newCoachFixture(t)

		f.quota.On("RecordAction", mock.Anything, domain.ActionAIRequest, f.userID).Return(false, nil).Once()

		_, err := f.service.RequestAdvice(context.Background(), f.userID, "bench", linearPolicy)

		assert.ErrorIs(t, err, ErrQuotaExceeded)
		f.sets.AssertNotCalled(t, "ListByExercise", mock.Anything, mock.Anything, mock.Anything)
		f.advisor.AssertNotCalled(t, "Advise", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid policy consumes nothing", func(t *testing.T) {
		t.Parallel() // Enable parallel execution
		f := newCoachFixture(t)

		_, err := f.service.RequestAdvice(context.Background(), f.userID, "bench", domain.LoadProgression{Type: "wave"})

		assert.ErrorIs(t, err, domain.ErrValidation)
		f.quota.AssertNotCalled(t, "RecordAction", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("advisor failure is wrapped", func(t *testing.T) {
		t.Parallel() // Enable parallel execution
		f := newCoachFixture(t)
		llmErr := errors.New("model overloaded")

		f.quota.On("RecordAction", mock.Anything, domain.ActionAIRequest, f.userID).Return(true, nil).Once()
		f.sets.On("ListByExercise", mock.Anything, f.userID, "bench").Return(history, nil).Once()
		f.advisor.On("Advise", mock.Anything, mock.Anything, history, linearPolicy).Return("", llmErr).Once()

		_, err := f.service.RequestAdvice(context.Background(), f.userID, "bench", linearPolicy)

		var serviceErr *ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "coach", serviceErr.Service)
		assert.ErrorIs(t, err, llmErr)
	})
}

func TestStaticAdvisor(t *testing.T) {
	t.Parallel() // Enable parallel execution

	tests := []struct {
		name string
		hint domain.OverloadHint
		want string
	}{
		{
			name: "increase weight",
			hint: domain.OverloadHint{Suggestion: domain.SuggestIncreaseWeight, Amount: floatPtr(2.5), Reason: "easy"},
			want: "Add 2.50 to the bar next session (easy).",
		},
		{
			name: "increase reps",
			hint: domain.OverloadHint{Suggestion: domain.SuggestIncreaseReps, Amount: floatPtr(1), Reason: "on target"},
			want: "Keep the load and aim for 1 more rep(s) (on target).",
		},
		{
			name: "maintain",
			hint: domain.OverloadHint{Suggestion: domain.SuggestMaintain, Reason: "no history"},
			want: "Keep the current load (no history).",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel() // Enable parallel execution
			got, err := StaticAdvisor{}.Advise(context.Background(), tt.hint, nil, linearPolicy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
