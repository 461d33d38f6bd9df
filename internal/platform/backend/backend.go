// Package backend opens the persistence backend selected by configuration
// and exposes it through the store interfaces.
package backend

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/fitload/internal/config"
	"github.com/phrazzld/fitload/internal/platform/memory"
	"github.com/phrazzld/fitload/internal/platform/postgres"
	"github.com/phrazzld/fitload/internal/platform/sqlite"
	"github.com/phrazzld/fitload/internal/store"
)

// Backend bundles the stores of one persistence driver.
type Backend struct {
	Driver string
	KV     store.KeyValueStore
	Sets   store.WorkoutSetStore

	// DB is nil for the memory driver.
	DB *sql.DB
}

// Open connects to the configured backend. Postgres schemas are managed by
// migrations (see Migrate); the sqlite schema is created on open.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "backend"), slog.String("driver", cfg.Driver))

	switch cfg.Driver {
	case config.DriverMemory, "":
		log.Warn("using in-memory storage; data is lost on restart")
		return &Backend{
			Driver: config.DriverMemory,
			KV:     memory.NewKVStore(),
			Sets:   memory.NewWorkoutSetStore(logger),
		}, nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		log.Info("database connection established")
		return &Backend{
			Driver: cfg.Driver,
			KV:     postgres.NewPostgresKVStore(db, logger),
			Sets:   postgres.NewPostgresWorkoutSetStore(db, logger),
			DB:     db,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		log.Info("sqlite database opened")
		return &Backend{
			Driver: cfg.Driver,
			KV:     sqlite.NewKVStore(db, logger),
			Sets:   sqlite.NewWorkoutSetStore(db, logger),
			DB:     db,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate runs a goose command against a postgres backend.
// The other drivers have nothing to migrate and return nil.
func (b *Backend) Migrate(ctx context.Context, command string, logger *slog.Logger) error {
	if b.Driver != config.DriverPostgres {
		return nil
	}
	return postgres.Migrate(ctx, b.DB, command, logger)
}

// Close releases the database connection, if any.
func (b *Backend) Close() error {
	if b.DB == nil {
		return nil
	}
	return b.DB.Close()
}
