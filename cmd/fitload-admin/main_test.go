package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/config"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/platform/backend"
	"github.com/phrazzld/fitload/internal/platform/clock"
	"github.com/phrazzld/fitload/internal/service/auth"
	"github.com/phrazzld/fitload/internal/usage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-characters-long"

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:   config.ServerConfig{Port: 8080, LogLevel: "error"},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, URL: filepath.Join(t.TempDir(), "fitload.db")},
		Auth:     config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 30},
		Quota:    config.QuotaConfig{FreeWorkoutLimit: 3, DailyAIRequestLimit: 5, Timezone: "UTC"},
	}
}

// run executes the CLI with args against cfg and returns stdout.
func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	e := newEnv(&stdout, &stderr)
	e.loadConfig = func(string) (*config.Config, error) { return cfg, nil }

	root := newRootCmd(e)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func seedUsage(t *testing.T, cfg *config.Config, userID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	b, err := backend.Open(ctx, cfg.Database, nil)
	require.NoError(t, err)
	defer func() { require.NoError(t, b.Close()) }()

	quota, err := usage.ConfigFrom(cfg.Quota)
	require.NoError(t, err)
	accountant := usage.NewAccountant(b.KV, clock.System(), quota, nil)
	for _, kind := range []domain.ActionKind{domain.ActionWorkoutCreation, domain.ActionWorkoutCreation, domain.ActionAIRequest} {
		granted, err := accountant.RecordAction(ctx, kind, userID)
		require.NoError(t, err)
		require.True(t, granted)
	}
}

func TestUsageGetAndReset(t *testing.T) {
	t.Parallel() // Enable parallel execution
	cfg := sqliteConfig(t)
	userID := uuid.New()
	seedUsage(t, cfg, userID)

	out, err := run(t, cfg, "usage", "get", userID.String())
	require.NoError(t, err)
	var report usageReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, userID.String(), report.UserID)
	assert.Equal(t, 2, report.WorkoutsCreated)
	assert.Equal(t, 1, report.AIRequests)
	assert.Equal(t, 3, report.FreeWorkoutLimit)

	out, err = run(t, cfg, "usage", "reset", userID.String())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Zero(t, report.WorkoutsCreated)
	assert.Zero(t, report.AIRequests)

	out, err = run(t, cfg, "usage", "get", userID.String())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Zero(t, report.WorkoutsCreated)
	assert.Equal(t, time.Now().UTC().Format(domain.DateLayout), report.LastReset)
}

func TestUsageRejectsBadUserID(t *testing.T) {
	t.Parallel() // Enable parallel execution

	_, err := run(t, sqliteConfig(t), "usage", "get", "not-a-uuid")
	assert.ErrorContains(t, err, "invalid user id")
}

func TestTokenIssue(t *testing.T) {
	t.Parallel() // Enable parallel execution
	cfg := sqliteConfig(t)
	userID := uuid.New()

	tests := []struct {
		name   string
		arg    string
		wantID func(string) bool
	}{
		{name: "explicit user", arg: userID.String(), wantID: func(id string) bool { return id == userID.String() }},
		{name: "new user", arg: "new", wantID: func(id string) bool { _, err := uuid.Parse(id); return err == nil }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel() // Enable parallel execution
			out, err := run(t, cfg, "token", "issue", tt.arg)
			require.NoError(t, err)

			var resp struct {
				UserID      string `json:"user_id"`
				AccessToken string `json:"access_token"`
				ExpiresIn   int    `json:"expires_in"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.True(t, tt.wantID(resp.UserID))
			assert.Equal(t, 1800, resp.ExpiresIn)

			jwtService, err := auth.NewJWTService(cfg.Auth, nil)
			require.NoError(t, err)
			claims, err := jwtService.ValidateToken(context.Background(), resp.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, resp.UserID, claims.UserID.String())
		})
	}
}

func TestMigrateNonPostgresIsNoop(t *testing.T) {
	t.Parallel() // Enable parallel execution

	out, err := run(t, sqliteConfig(t), "migrate", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to migrate")

	_, err = run(t, sqliteConfig(t), "migrate", "sideways")
	assert.Error(t, err)
}

func TestEstimate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	tests := []struct {
		name     string
		args     []string
		wantKcal float64
		wantErr  string
	}{
		{
			name:     "reference profile",
			args:     []string{"--sex", "M", "--weight", "80", "--height", "180", "--objective", "massa", "--intensity", "moderado"},
			wantKcal: 120,
		},
		{
			name:    "invalid sex",
			args:    []string{"--sex", "X", "--weight", "80", "--height", "180"},
			wantErr: "sex",
		},
		{
			name:    "missing weight",
			args:    []string{"--sex", "M", "--height", "180"},
			wantErr: "weight",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel() // Enable parallel execution
			out, err := run(t, sqliteConfig(t), append([]string{"estimate"}, tt.args...)...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, strings.Contains(err.Error(), tt.wantErr), err.Error())
				return
			}
			require.NoError(t, err)

			var resp map[string]any
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, tt.wantKcal, resp["kcal"])
		})
	}
}
