package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/fitload/internal/config"
	"github.com/phrazzld/fitload/internal/domain/progression"
	"github.com/phrazzld/fitload/internal/platform/backend"
	"github.com/phrazzld/fitload/internal/platform/clock"
	"github.com/phrazzld/fitload/internal/platform/gemini"
	"github.com/phrazzld/fitload/internal/service"
	"github.com/phrazzld/fitload/internal/service/auth"
	"github.com/phrazzld/fitload/internal/usage"
)

// application holds all the dependencies for the server
type application struct {
	config          *config.Config
	logger          *slog.Logger
	backend         *backend.Backend
	accountant      *usage.Accountant
	profiles        *service.ProfileStore
	trainingService service.TrainingService
	coachService    service.CoachService
	jwtService      auth.JWTService
}

// newApplication opens the configured backend and wires every service.
// A nil clock uses the system clock.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	clk clock.Clock,
) (*application, error) {
	if clk == nil {
		clk = clock.System()
	}

	quota, err := usage.ConfigFrom(cfg.Quota)
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth, clk)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	advisor, err := newAdvisor(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, err
	}

	b, err := backend.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	accountant := usage.NewAccountant(b.KV, clk, quota, logger)
	profiles := service.NewProfileStore(b.KV)
	progressionService := progression.NewServiceWithParams(progression.NewParams(progression.ParamsConfig{
		LowEffortRPE:      cfg.Progression.LowEffortRPE,
		DefaultTargetReps: cfg.Progression.DefaultTargetReps,
	}))

	return &application{
		config:     cfg,
		logger:     logger,
		backend:    b,
		accountant: accountant,
		profiles:   profiles,
		trainingService: service.NewTrainingService(
			b.Sets, accountant, profiles, progressionService, clk, logger,
		),
		coachService: service.NewCoachService(
			b.Sets, accountant, progressionService, advisor, logger,
		),
		jwtService: jwtService,
	}, nil
}

// newAdvisor returns the Gemini advisor when the LLM is enabled and the
// static advisor otherwise.
func newAdvisor(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (service.Advisor, error) {
	if !cfg.Enabled {
		logger.Info("LLM disabled, using static coaching messages")
		return service.StaticAdvisor{}, nil
	}
	advisor, err := gemini.NewAdvisor(ctx, logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini advisor: %w", err)
	}
	return advisor, nil
}

// Run starts the HTTP server and blocks until it shuts down.
func (app *application) Run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup releases resources held by the application
func (app *application) cleanup() {
	if err := app.backend.Close(); err != nil {
		app.logger.Error("Failed to close database connection", "error", err)
		return
	}
	app.logger.Info("Storage closed")
}
