package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/fitload/internal/platform/logger"
	"github.com/phrazzld/fitload/internal/store"
)

// PostgresKVStore implements the store.KeyValueStore interface on the
// kv_entries table.
type PostgresKVStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresKVStore implements store.KeyValueStore interface
var _ store.KeyValueStore = (*PostgresKVStore)(nil)

// NewPostgresKVStore creates a new PostgreSQL key-value store.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresKVStore(db store.DBTX, logger *slog.Logger) *PostgresKVStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresKVStore{
		db:     db,
		logger: logger.With(slog.String("component", "kv_store")),
	}
}

// Get implements store.KeyValueStore.Get.
// Returns store.ErrNotFound if the key does not exist.
func (s *PostgresKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = $1`, key).Scan(&value)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			log.Debug("key not found", slog.String("key", key))
			return nil, fmt.Errorf("%w: key %q", store.ErrNotFound, key)
		}
		log.Error("failed to read key", slog.String("key", key), slog.String("error", err.Error()))
		return nil, store.NewStoreError("kv_entry", "get", "failed to read key", mapped)
	}

	return value, nil
}

// Set implements store.KeyValueStore.Set as an upsert.
func (s *PostgresKVStore) Set(ctx context.Context, key string, value []byte) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		log.Error("failed to write key", slog.String("key", key), slog.String("error", err.Error()))
		return store.NewStoreError("kv_entry", "set", "failed to write key", MapError(err))
	}

	log.Debug("key written", slog.String("key", key))
	return nil
}

// Remove implements store.KeyValueStore.Remove.
func (s *PostgresKVStore) Remove(ctx context.Context, key string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = $1`, key); err != nil {
		log.Error("failed to remove key", slog.String("key", key), slog.String("error", err.Error()))
		return store.NewStoreError("kv_entry", "remove", "failed to remove key", MapError(err))
	}

	return nil
}
