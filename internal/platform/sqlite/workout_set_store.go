package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/platform/logger"
	"github.com/phrazzld/fitload/internal/store"
)

// timestampLayout sorts lexically in chronological order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// WorkoutSetStore implements store.WorkoutSetStore on the workout_sets table.
type WorkoutSetStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure WorkoutSetStore implements store.WorkoutSetStore interface
var _ store.WorkoutSetStore = (*WorkoutSetStore)(nil)

// NewWorkoutSetStore creates a WorkoutSetStore on a database returned by Open.
// If logger is nil, a default logger will be used.
func NewWorkoutSetStore(db *sql.DB, logger *slog.Logger) *WorkoutSetStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkoutSetStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_workout_set_store")),
	}
}

// Create implements store.WorkoutSetStore.Create.
func (s *WorkoutSetStore) Create(ctx context.Context, set *domain.WorkoutSet) error {
	return s.CreateBatch(ctx, []*domain.WorkoutSet{set})
}

// CreateBatch implements store.WorkoutSetStore.CreateBatch in one transaction.
func (s *WorkoutSetStore) CreateBatch(ctx context.Context, sets []*domain.WorkoutSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, set := range sets {
		if err := set.Validate(); err != nil {
			log.Warn("workout set validation failed during create",
				slog.String("error", err.Error()),
				slog.String("set_id", set.ID.String()))
			return err
		}
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, set := range sets {
			variation, err := json.Marshal(set.Variation)
			if err != nil {
				return fmt.Errorf("failed to encode variation: %w", err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO workout_sets
					(id, user_id, exercise_id, set_number, weight, reps, rpe, notes, completed, variation, performed_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				set.ID.String(),
				set.UserID.String(),
				set.ExerciseID,
				set.SetNumber,
				set.Weight,
				set.Reps,
				set.RPE,
				set.Notes,
				set.Completed,
				string(variation),
				set.Timestamp.UTC().Format(timestampLayout),
			)
			if err != nil {
				if strings.Contains(err.Error(), "UNIQUE constraint failed") {
					return fmt.Errorf("%w: %v", store.ErrSetExists, err)
				}
				return store.NewStoreError("workout_set", "create", "failed to insert set", err)
			}
		}
		return nil
	})
}

// GetByID implements store.WorkoutSetStore.GetByID.
func (s *WorkoutSetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkoutSet, error) {
	set, err := scanSet(s.db.QueryRowContext(ctx, selectSet+` WHERE id = ?`, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrSetNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("workout_set", "get", "failed to read set", err)
	}
	return set, nil
}

// MarkCompleted implements store.WorkoutSetStore.MarkCompleted.
func (s *WorkoutSetStore) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE workout_sets SET completed = 1 WHERE id = ? AND completed = 0`, id.String())
	if err != nil {
		return store.NewStoreError("workout_set", "update", "failed to complete set", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return store.NewStoreError("workout_set", "update", "failed to get rows affected", err)
	} else if n == 1 {
		return nil
	}

	var completed bool
	err = s.db.QueryRowContext(ctx, `SELECT completed FROM workout_sets WHERE id = ?`, id.String()).Scan(&completed)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrSetNotFound
	}
	if err != nil {
		return store.NewStoreError("workout_set", "update", "failed to read set", err)
	}
	return domain.ErrSetAlreadyCompleted
}

// ListByExercise implements store.WorkoutSetStore.ListByExercise.
func (s *WorkoutSetStore) ListByExercise(
	ctx context.Context,
	userID uuid.UUID,
	exerciseID string,
) ([]domain.WorkoutSet, error) {
	rows, err := s.db.QueryContext(ctx,
		selectSet+` WHERE user_id = ? AND exercise_id = ? ORDER BY performed_at, set_number`,
		userID.String(), exerciseID)
	if err != nil {
		return nil, store.NewStoreError("workout_set", "list", "failed to query sets", err)
	}
	defer func() { _ = rows.Close() }()

	history := make([]domain.WorkoutSet, 0)
	for rows.Next() {
		set, err := scanSet(rows)
		if err != nil {
			return nil, store.NewStoreError("workout_set", "list", "failed to scan set", err)
		}
		history = append(history, *set)
	}
	return history, rows.Err()
}

const selectSet = `
	SELECT id, user_id, exercise_id, set_number, weight, reps, rpe, notes, completed, variation, performed_at
	FROM workout_sets`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSet(row rowScanner) (*domain.WorkoutSet, error) {
	var (
		set                     domain.WorkoutSet
		id, userID, performedAt string
		variation               string
	)
	if err := row.Scan(
		&id,
		&userID,
		&set.ExerciseID,
		&set.SetNumber,
		&set.Weight,
		&set.Reps,
		&set.RPE,
		&set.Notes,
		&set.Completed,
		&variation,
		&performedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if set.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid set id %q: %w", id, err)
	}
	if set.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", userID, err)
	}
	if set.Timestamp, err = time.Parse(timestampLayout, performedAt); err != nil {
		return nil, fmt.Errorf("invalid timestamp %q: %w", performedAt, err)
	}
	if err := json.Unmarshal([]byte(variation), &set.Variation); err != nil {
		return nil, fmt.Errorf("failed to decode variation of set %s: %w", set.ID, err)
	}
	return &set, nil
}
