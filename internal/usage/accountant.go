package usage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/platform/clock"
	"github.com/phrazzld/fitload/internal/platform/logger"
	"github.com/phrazzld/fitload/internal/store"
)

// Default free-tier limits
const (
	DefaultFreeWorkoutLimit    = 3
	DefaultDailyAIRequestLimit = 5
)

// Config holds the limits and the calendar used for daily resets.
type Config struct {
	// FreeWorkoutLimit caps workout creations over the account's lifetime.
	FreeWorkoutLimit int

	// DailyAIRequestLimit caps AI requests per calendar day.
	DailyAIRequestLimit int

	// Location decides where a calendar day starts. Nil means UTC.
	Location *time.Location
}

// DefaultConfig returns the standard free-tier limits on a UTC calendar.
func DefaultConfig() Config {
	return Config{
		FreeWorkoutLimit:    DefaultFreeWorkoutLimit,
		DailyAIRequestLimit: DefaultDailyAIRequestLimit,
		Location:            time.UTC,
	}
}

// Accountant enforces the free-tier quotas. All read-modify-write cycles on a
// user's record are serialized in-process; writers in other processes
// sharing the same store are not coordinated.
type Accountant struct {
	kv     store.KeyValueStore
	clock  clock.Clock
	config Config
	locks  *keyedMutex
	logger *slog.Logger
}

// NewAccountant creates an Accountant.
// It panics if kv is nil. A nil clock uses the system clock and a nil
// logger uses the default logger.
func NewAccountant(kv store.KeyValueStore, clk clock.Clock, cfg Config, logger *slog.Logger) *Accountant {
	if kv == nil {
		panic("kv cannot be nil")
	}
	if clk == nil {
		clk = clock.System()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Accountant{
		kv:     kv,
		clock:  clk,
		config: cfg,
		locks:  newKeyedMutex(),
		logger: logger.With(slog.String("component", "usage_accountant")),
	}
}

// Key returns the store key of a user's usage record.
func Key(userID uuid.UUID) string {
	return "usage:" + userID.String()
}

// RecordAction consumes one unit of kind for the user if the quota allows it.
// It returns false, without changing the stored counters, when the quota is
// exhausted; a pending daily rollover is still persisted. A granted action is
// persisted before true is returned.
func (a *Accountant) RecordAction(ctx context.Context, kind domain.ActionKind, userID uuid.UUID) (bool, error) {
	if !kind.IsValid() {
		return false, fmt.Errorf("%w: %q", domain.ErrUnknownActionKind, kind)
	}

	log := logger.FromContextOrDefault(ctx, a.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("action", string(kind)))

	unlock := a.locks.Lock(Key(userID))
	defer unlock()

	data, changed, err := a.load(ctx, userID)
	if err != nil {
		return false, err
	}

	switch kind {
	case domain.ActionWorkoutCreation:
		if data.WorkoutsCreated >= a.config.FreeWorkoutLimit {
			log.Info("workout quota exhausted",
				slog.Int("workouts_created", data.WorkoutsCreated),
				slog.Int("limit", a.config.FreeWorkoutLimit))
			a.saveRollover(ctx, userID, data, changed)
			return false, nil
		}
		data.WorkoutsCreated++
	case domain.ActionAIRequest:
		if data.AIRequests >= a.config.DailyAIRequestLimit {
			log.Info("daily AI request quota exhausted",
				slog.Int("ai_requests", data.AIRequests),
				slog.Int("limit", a.config.DailyAIRequestLimit))
			a.saveRollover(ctx, userID, data, changed)
			return false, nil
		}
		data.AIRequests++
	}

	if err := a.save(ctx, userID, data); err != nil {
		return false, err
	}

	log.Debug("usage recorded",
		slog.Int("workouts_created", data.WorkoutsCreated),
		slog.Int("ai_requests", data.AIRequests))
	return true, nil
}

// ReleaseAction returns one previously granted unit of kind, for callers
// whose operation failed after RecordAction granted it. Counters never go
// below zero, so releasing an ai_request after the daily rollover is a no-op.
func (a *Accountant) ReleaseAction(ctx context.Context, kind domain.ActionKind, userID uuid.UUID) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownActionKind, kind)
	}

	unlock := a.locks.Lock(Key(userID))
	defer unlock()

	data, changed, err := a.load(ctx, userID)
	if err != nil {
		return err
	}

	switch kind {
	case domain.ActionWorkoutCreation:
		if data.WorkoutsCreated > 0 {
			data.WorkoutsCreated--
			changed = true
		}
	case domain.ActionAIRequest:
		if data.AIRequests > 0 {
			data.AIRequests--
			changed = true
		}
	}
	if !changed {
		return nil
	}

	if err := a.save(ctx, userID, data); err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, a.logger).Info("usage released",
		slog.String("user_id", userID.String()),
		slog.String("action", string(kind)),
		slog.Int("workouts_created", data.WorkoutsCreated),
		slog.Int("ai_requests", data.AIRequests))
	return nil
}

// GetUsage returns the user's current counters. A missing record is
// created and a stale daily counter is reset; either change is persisted.
func (a *Accountant) GetUsage(ctx context.Context, userID uuid.UUID) (domain.UsageData, error) {
	unlock := a.locks.Lock(Key(userID))
	defer unlock()

	data, changed, err := a.load(ctx, userID)
	if err != nil {
		return domain.UsageData{}, err
	}
	if changed {
		if err := a.save(ctx, userID, data); err != nil {
			return domain.UsageData{}, err
		}
	}
	return data, nil
}

// ResetUsage zeroes both counters and stamps today's date.
func (a *Accountant) ResetUsage(ctx context.Context, userID uuid.UUID) (domain.UsageData, error) {
	unlock := a.locks.Lock(Key(userID))
	defer unlock()

	data := domain.NewUsageData(a.today())
	if err := a.save(ctx, userID, data); err != nil {
		return domain.UsageData{}, err
	}

	logger.FromContextOrDefault(ctx, a.logger).Info("usage reset",
		slog.String("user_id", userID.String()))
	return data, nil
}

// Limits returns the configured limits.
func (a *Accountant) Limits() Config {
	return a.config
}

func (a *Accountant) today() time.Time {
	return a.clock.Now().In(a.config.Location)
}

// load reads the user's record, creating it when absent or unreadable and
// applying the daily rollover. changed reports whether the returned record
// differs from what is stored.
func (a *Accountant) load(ctx context.Context, userID uuid.UUID) (domain.UsageData, bool, error) {
	today := a.today()
	todayStr := today.Format(domain.DateLayout)

	raw, err := a.kv.Get(ctx, Key(userID))
	if store.IsNotFoundError(err) {
		return domain.NewUsageData(today), true, nil
	}
	if err != nil {
		return domain.UsageData{}, false, fmt.Errorf("failed to load usage for user %s: %w", userID, err)
	}

	data, err := decode(raw)
	if err != nil {
		logger.FromContextOrDefault(ctx, a.logger).Warn("corrupt usage record, reinitializing",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return domain.NewUsageData(today), true, nil
	}

	if data.LastReset != todayStr {
		data.AIRequests = 0
		data.LastReset = todayStr
		return data, true, nil
	}
	return data, false, nil
}

func decode(raw []byte) (domain.UsageData, error) {
	var data domain.UsageData
	if err := json.Unmarshal(raw, &data); err != nil {
		return domain.UsageData{}, err
	}
	if err := data.Validate(); err != nil {
		return domain.UsageData{}, err
	}
	return data, nil
}

// saveRollover persists a record whose only change is the daily rollover.
// A failure is logged; the rollover is recomputed on the next load.
func (a *Accountant) saveRollover(ctx context.Context, userID uuid.UUID, data domain.UsageData, changed bool) {
	if !changed {
		return
	}
	if err := a.save(ctx, userID, data); err != nil {
		logger.FromContextOrDefault(ctx, a.logger).Warn("failed to persist usage rollover",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}
}

func (a *Accountant) save(ctx context.Context, userID uuid.UUID, data domain.UsageData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode usage: %w", err)
	}
	if err := a.kv.Set(ctx, Key(userID), raw); err != nil {
		return fmt.Errorf("failed to save usage for user %s: %w", userID, err)
	}
	return nil
}
