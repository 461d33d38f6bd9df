package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var setColumns = []string{
	"id", "user_id", "exercise_id", "set_number", "weight", "reps", "rpe",
	"notes", "completed", "variation", "performed_at",
}

func newMockSetStore(t *testing.T) (*PostgresWorkoutSetStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresWorkoutSetStore(db, nil), mock
}

func dropSet(t *testing.T) *domain.WorkoutSet {
	t.Helper()
	set, err := domain.NewWorkoutSet(uuid.New(), "squat", 1, 100, 8, 8,
		domain.DropVariation(domain.DropStep{Weight: 80, Reps: 6}))
	require.NoError(t, err)
	return set
}

func setRow(set *domain.WorkoutSet) []any {
	variation, _ := json.Marshal(set.Variation)
	return []any{
		set.ID.String(), set.UserID.String(), set.ExerciseID, set.SetNumber, set.Weight,
		set.Reps, set.RPE, set.Notes, set.Completed, variation, set.Timestamp,
	}
}

func TestPostgresWorkoutSetStoreCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("inserts", func(t *testing.T) {
		s, mock := newMockSetStore(t)
		set := dropSet(t)
		mock.ExpectExec("INSERT INTO workout_sets").
			WithArgs(set.ID, set.UserID, "squat", 1, 100.0, 8, 8.0, "", false, sqlmock.AnyArg(), set.Timestamp).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(ctx, set))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects invalid set without querying", func(t *testing.T) {
		s, mock := newMockSetStore(t)
		set := dropSet(t)
		set.Variation = domain.DropVariation(domain.DropStep{Weight: 120, Reps: 3})

		assert.ErrorIs(t, s.Create(ctx, set), domain.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate id", func(t *testing.T) {
		s, mock := newMockSetStore(t)
		mock.ExpectExec("INSERT INTO workout_sets").
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

		assert.ErrorIs(t, s.Create(ctx, dropSet(t)), store.ErrSetExists)
	})
}

func TestPostgresWorkoutSetStoreCreateBatchRollsBack(t *testing.T) {
	t.Parallel()
	s, mock := newMockSetStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO workout_sets").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO workout_sets").WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})
	mock.ExpectRollback()

	err := s.CreateBatch(context.Background(), []*domain.WorkoutSet{dropSet(t), dropSet(t)})
	assert.ErrorIs(t, err, store.ErrSetExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresWorkoutSetStoreGetByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("decodes variation", func(t *testing.T) {
		s, mock := newMockSetStore(t)
		set := dropSet(t)
		mock.ExpectQuery("FROM workout_sets").
			WithArgs(set.ID).
			WillReturnRows(sqlmock.NewRows(setColumns).AddRow(setRow(set)...))

		got, err := s.GetByID(ctx, set.ID)
		require.NoError(t, err)
		assert.Equal(t, set.ID, got.ID)
		assert.Equal(t, domain.VariationDrop, got.Variation.Kind)
		assert.Equal(t, domain.DropPayload{Steps: []domain.DropStep{{Weight: 80, Reps: 6}}}, got.Variation.Payload)
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMockSetStore(t)
		mock.ExpectQuery("FROM workout_sets").WillReturnError(sql.ErrNoRows)

		_, err := s.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrSetNotFound)
	})
}

func TestPostgresWorkoutSetStoreMarkCompleted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	id := uuid.New()

	t.Run("completes", func(t *testing.T) {
		s, mock := newMockSetStore(t)
		mock.ExpectExec("UPDATE workout_sets SET completed = TRUE").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.MarkCompleted(ctx, id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already completed", func(t *testing.T) {
		s, mock := newMockSetStore(t)
		mock.ExpectExec("UPDATE workout_sets").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT completed FROM workout_sets").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"completed"}).AddRow(true))

		assert.ErrorIs(t, s.MarkCompleted(ctx, id), domain.ErrSetAlreadyCompleted)
	})

	t.Run("missing", func(t *testing.T) {
		s, mock := newMockSetStore(t)
		mock.ExpectExec("UPDATE workout_sets").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT completed FROM workout_sets").WillReturnError(sql.ErrNoRows)

		assert.ErrorIs(t, s.MarkCompleted(ctx, id), store.ErrSetNotFound)
	})
}

func TestPostgresWorkoutSetStoreListByExercise(t *testing.T) {
	t.Parallel()
	s, mock := newMockSetStore(t)

	first := dropSet(t)
	second := dropSet(t)
	second.UserID = first.UserID
	second.Timestamp = first.Timestamp.Add(time.Minute)

	mock.ExpectQuery("ORDER BY performed_at ASC, set_number ASC").
		WithArgs(first.UserID, "squat").
		WillReturnRows(sqlmock.NewRows(setColumns).AddRow(setRow(first)...).AddRow(setRow(second)...))

	history, err := s.ListByExercise(context.Background(), first.UserID, "squat")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, first.ID, history[0].ID)
	assert.Equal(t, second.ID, history[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
