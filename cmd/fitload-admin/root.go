package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/fitload/internal/config"
	"github.com/phrazzld/fitload/internal/platform/backend"
	"github.com/phrazzld/fitload/internal/platform/logger"
	"github.com/spf13/cobra"
)

// env carries the process dependencies every command needs.
type env struct {
	stdout io.Writer
	stderr io.Writer

	// loadConfig reads configuration from dir ("" means the working directory).
	loadConfig func(dir string) (*config.Config, error)

	configDir string
}

func newEnv(stdout, stderr io.Writer) *env {
	return &env{
		stdout: stdout,
		stderr: stderr,
		loadConfig: func(dir string) (*config.Config, error) {
			if dir == "" {
				return config.Load()
			}
			return config.LoadFrom(dir)
		},
	}
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "fitload-admin",
		Short: "Operate a fitload deployment",
		Long: `fitload-admin reads the same configuration as the server
(config.yaml plus FITLOAD_* environment variables).

Available commands:
  usage    - Inspect or reset a user's free-tier counters
  token    - Issue access tokens
  migrate  - Run postgres schema migrations
  estimate - Estimate the energy cost of a session`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(e.stdout)
	root.SetErr(e.stderr)
	root.PersistentFlags().StringVar(&e.configDir, "config-dir", "", "directory containing config.yaml")

	root.AddCommand(
		newUsageCmd(e),
		newTokenCmd(e),
		newMigrateCmd(e),
		newEstimateCmd(e),
	)
	return root
}

// session holds what a storage-backed command opens.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	backend *backend.Backend
}

// openSession loads configuration, builds a logger writing to stderr and
// opens the configured backend. Callers must call close.
func (e *env) openSession(ctx context.Context) (*session, error) {
	cfg, err := e.config()
	if err != nil {
		return nil, err
	}
	log := e.logger(cfg)

	b, err := backend.Open(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return &session{cfg: cfg, logger: log, backend: b}, nil
}

func (s *session) close() {
	if err := s.backend.Close(); err != nil {
		s.logger.Error("failed to close storage", slog.String("error", err.Error()))
	}
}

func (e *env) config() (*config.Config, error) {
	cfg, err := e.loadConfig(e.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func (e *env) logger(cfg *config.Config) *slog.Logger {
	return logger.New(e.stderr, cfg.Server.LogLevel).With(slog.String("component", "admin"))
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
