package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/platform/logger"
	"github.com/phrazzld/fitload/internal/store"
)

// PostgresWorkoutSetStore implements the store.WorkoutSetStore interface
// on the workout_sets table. Variations are stored as JSONB.
type PostgresWorkoutSetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresWorkoutSetStore implements store.WorkoutSetStore interface
var _ store.WorkoutSetStore = (*PostgresWorkoutSetStore)(nil)

// NewPostgresWorkoutSetStore creates a new PostgreSQL workout set store.
// If logger is nil, a default logger will be used.
func NewPostgresWorkoutSetStore(db store.DBTX, logger *slog.Logger) *PostgresWorkoutSetStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWorkoutSetStore{
		db:     db,
		logger: logger.With(slog.String("component", "workout_set_store")),
	}
}

const insertSetQuery = `
	INSERT INTO workout_sets
		(id, user_id, exercise_id, set_number, weight, reps, rpe, notes, completed, variation, performed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

const selectSetColumns = `
	SELECT id, user_id, exercise_id, set_number, weight, reps, rpe, notes, completed, variation, performed_at
	FROM workout_sets
`

// Create implements store.WorkoutSetStore.Create.
// Returns validation errors from the domain set if data is invalid and
// store.ErrSetExists if the ID is taken.
func (s *PostgresWorkoutSetStore) Create(ctx context.Context, set *domain.WorkoutSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := set.Validate(); err != nil {
		log.Warn("workout set validation failed during create",
			slog.String("error", err.Error()),
			slog.String("set_id", set.ID.String()))
		return err
	}

	variation, err := json.Marshal(set.Variation)
	if err != nil {
		return fmt.Errorf("failed to encode variation: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		insertSetQuery,
		set.ID,
		set.UserID,
		set.ExerciseID,
		set.SetNumber,
		set.Weight,
		set.Reps,
		set.RPE,
		set.Notes,
		set.Completed,
		string(variation),
		set.Timestamp,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrSetExists, err)
		}
		log.Error("failed to create workout set",
			slog.String("error", err.Error()),
			slog.String("set_id", set.ID.String()),
			slog.String("user_id", set.UserID.String()))
		return store.NewStoreError("workout_set", "create", "failed to insert set", MapError(err))
	}

	log.Debug("workout set created",
		slog.String("set_id", set.ID.String()),
		slog.String("exercise_id", set.ExerciseID))
	return nil
}

// CreateBatch implements store.WorkoutSetStore.CreateBatch.
// When the store was built on a *sql.DB the inserts run in one transaction;
// on a *sql.Tx they join the caller's transaction.
func (s *PostgresWorkoutSetStore) CreateBatch(ctx context.Context, sets []*domain.WorkoutSet) error {
	db, ok := s.db.(*sql.DB)
	if !ok {
		return s.createAll(ctx, s, sets)
	}

	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return s.createAll(ctx, NewPostgresWorkoutSetStore(tx, s.logger), sets)
	})
}

func (s *PostgresWorkoutSetStore) createAll(
	ctx context.Context,
	target *PostgresWorkoutSetStore,
	sets []*domain.WorkoutSet,
) error {
	for _, set := range sets {
		if err := target.Create(ctx, set); err != nil {
			return err
		}
	}
	return nil
}

// GetByID implements store.WorkoutSetStore.GetByID.
// Returns store.ErrSetNotFound if the set does not exist.
func (s *PostgresWorkoutSetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkoutSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set, err := scanSet(s.db.QueryRowContext(ctx, selectSetColumns+`WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("workout set not found", slog.String("set_id", id.String()))
			return nil, store.ErrSetNotFound
		}
		log.Error("failed to get workout set",
			slog.String("error", err.Error()),
			slog.String("set_id", id.String()))
		return nil, store.NewStoreError("workout_set", "get", "failed to read set", MapError(err))
	}

	return set, nil
}

// MarkCompleted implements store.WorkoutSetStore.MarkCompleted.
// The update only matches rows that are not yet completed, so two racing
// callers cannot both succeed.
func (s *PostgresWorkoutSetStore) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE workout_sets SET completed = TRUE WHERE id = $1 AND completed = FALSE`, id)
	if err != nil {
		log.Error("failed to complete workout set",
			slog.String("error", err.Error()),
			slog.String("set_id", id.String()))
		return store.NewStoreError("workout_set", "update", "failed to complete set", MapError(err))
	}

	if err := CheckRowsAffected(result, "workout set"); err == nil {
		log.Debug("workout set completed", slog.String("set_id", id.String()))
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	// No row changed: either the set is missing or it was already completed.
	var completed bool
	err = s.db.QueryRowContext(ctx, `SELECT completed FROM workout_sets WHERE id = $1`, id).Scan(&completed)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrSetNotFound
	}
	if err != nil {
		return store.NewStoreError("workout_set", "update", "failed to read set", MapError(err))
	}
	return domain.ErrSetAlreadyCompleted
}

// ListByExercise implements store.WorkoutSetStore.ListByExercise.
func (s *PostgresWorkoutSetStore) ListByExercise(
	ctx context.Context,
	userID uuid.UUID,
	exerciseID string,
) ([]domain.WorkoutSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		selectSetColumns+`WHERE user_id = $1 AND exercise_id = $2 ORDER BY performed_at ASC, set_number ASC`,
		userID, exerciseID)
	if err != nil {
		log.Error("failed to list workout sets",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("exercise_id", exerciseID))
		return nil, store.NewStoreError("workout_set", "list", "failed to query sets", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	history := make([]domain.WorkoutSet, 0)
	for rows.Next() {
		set, err := scanSet(rows)
		if err != nil {
			return nil, store.NewStoreError("workout_set", "list", "failed to scan set", err)
		}
		history = append(history, *set)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("workout_set", "list", "failed to iterate sets", MapError(err))
	}

	return history, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSet(row rowScanner) (*domain.WorkoutSet, error) {
	var set domain.WorkoutSet
	var variation []byte

	if err := row.Scan(
		&set.ID,
		&set.UserID,
		&set.ExerciseID,
		&set.SetNumber,
		&set.Weight,
		&set.Reps,
		&set.RPE,
		&set.Notes,
		&set.Completed,
		&variation,
		&set.Timestamp,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(variation, &set.Variation); err != nil {
		return nil, fmt.Errorf("failed to decode variation of set %s: %w", set.ID, err)
	}
	set.Timestamp = set.Timestamp.UTC()
	return &set, nil
}
