package main

import (
	"fmt"

	"github.com/phrazzld/fitload/internal/config"
	"github.com/spf13/cobra"
)

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <up|down|status|version>",
		Short:     "Run postgres schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := e.openSession(ctx)
			if err != nil {
				return err
			}
			defer s.close()

			if s.cfg.Database.Driver != config.DriverPostgres {
				_, err := fmt.Fprintf(cmd.OutOrStdout(),
					"driver %s manages its own schema; nothing to migrate\n", s.cfg.Database.Driver)
				return err
			}

			if err := s.backend.Migrate(ctx, args[0], s.logger); err != nil {
				return fmt.Errorf("migration %s failed: %w", args[0], err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "migration %s completed\n", args[0])
			return err
		},
	}
}
