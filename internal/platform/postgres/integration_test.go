//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/platform/postgres"
	"github.com/phrazzld/fitload/internal/store"
	"github.com/phrazzld/fitload/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPostgresStoresIntegration runs both stores against a real database,
// each subtest inside a rolled back transaction.
func TestPostgresStoresIntegration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	ctx := context.Background()

	t.Run("kv round trip", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			kv := postgres.NewPostgresKVStore(tx, nil)
			key := "usage:" + uuid.NewString()

			_, err := kv.Get(ctx, key)
			assert.ErrorIs(t, err, store.ErrNotFound)

			require.NoError(t, kv.Set(ctx, key, []byte(`{"workouts_created":1}`)))
			require.NoError(t, kv.Set(ctx, key, []byte(`{"workouts_created":2}`)))

			value, err := kv.Get(ctx, key)
			require.NoError(t, err)
			assert.JSONEq(t, `{"workouts_created":2}`, string(value))

			require.NoError(t, kv.Remove(ctx, key))
			_, err = kv.Get(ctx, key)
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	})

	t.Run("workout sets", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			sets := postgres.NewPostgresWorkoutSetStore(tx, nil)
			userID := uuid.New()

			first, err := domain.NewWorkoutSet(userID, "bench", 1, 60, 10, 7, domain.TempoVariation("3-1-2-0"))
			require.NoError(t, err)
			second, err := domain.NewWorkoutSet(userID, "bench", 2, 60, 9, 8, domain.RestPauseVariation(3, 2))
			require.NoError(t, err)

			require.NoError(t, sets.CreateBatch(ctx, []*domain.WorkoutSet{first, second}))
			require.NoError(t, sets.MarkCompleted(ctx, first.ID))
			assert.ErrorIs(t, sets.MarkCompleted(ctx, first.ID), domain.ErrSetAlreadyCompleted)

			history, err := sets.ListByExercise(ctx, userID, "bench")
			require.NoError(t, err)
			require.Len(t, history, 2)
			assert.True(t, history[0].Completed)
			assert.Equal(t, domain.TempoVariation("3-1-2-0"), history[0].Variation)
			assert.Equal(t, domain.RestPauseVariation(3, 2), history[1].Variation)
		})
	})
}
