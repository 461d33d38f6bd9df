package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/platform/clock"
	"github.com/phrazzld/fitload/internal/usage"
	"github.com/spf13/cobra"
)

// usageReport is what the usage commands print.
type usageReport struct {
	UserID string `json:"user_id"`
	domain.UsageData
	FreeWorkoutLimit    int `json:"free_workout_limit"`
	DailyAIRequestLimit int `json:"daily_ai_request_limit"`
}

func newUsageCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Inspect or reset free-tier usage",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <user-id>",
		Short: "Print a user's usage counters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsage(cmd, e, args[0], false)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset <user-id>",
		Short: "Zero a user's usage counters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsage(cmd, e, args[0], true)
		},
	})
	return cmd
}

func runUsage(cmd *cobra.Command, e *env, rawID string, reset bool) error {
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", rawID, err)
	}

	ctx := cmd.Context()
	s, err := e.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	quota, err := usage.ConfigFrom(s.cfg.Quota)
	if err != nil {
		return err
	}
	accountant := usage.NewAccountant(s.backend.KV, clock.System(), quota, s.logger)

	var data domain.UsageData
	if reset {
		data, err = accountant.ResetUsage(ctx, userID)
	} else {
		data, err = accountant.GetUsage(ctx, userID)
	}
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), usageReport{
		UserID:              userID.String(),
		UsageData:           data,
		FreeWorkoutLimit:    quota.FreeWorkoutLimit,
		DailyAIRequestLimit: quota.DailyAIRequestLimit,
	})
}
