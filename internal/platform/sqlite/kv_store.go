package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/fitload/internal/platform/logger"
	"github.com/phrazzld/fitload/internal/store"
)

// KVStore implements store.KeyValueStore on the kv_entries table.
type KVStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure KVStore implements store.KeyValueStore interface
var _ store.KeyValueStore = (*KVStore)(nil)

// NewKVStore creates a KVStore on a database returned by Open.
// If logger is nil, a default logger will be used.
func NewKVStore(db *sql.DB, logger *slog.Logger) *KVStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &KVStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_kv_store")),
	}
}

// Get implements store.KeyValueStore.Get.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: key %q", store.ErrNotFound, key)
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to read key",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("kv_entry", "get", "failed to read key", err)
	}
	return value, nil
}

// Set implements store.KeyValueStore.Set.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO kv_entries (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		key, value)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to write key",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return store.NewStoreError("kv_entry", "set", "failed to write key", err)
	}
	return nil
}

// Remove implements store.KeyValueStore.Remove.
func (s *KVStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return store.NewStoreError("kv_entry", "remove", "failed to remove key", err)
	}
	return nil
}
