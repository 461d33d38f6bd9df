package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/service/auth"
	"github.com/spf13/cobra"
)

func newTokenCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage access tokens",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "issue <user-id>",
		Short: "Issue an access token for a user",
		Long: `Issue an access token signed with auth.jwt_secret.
Pass "new" to issue a token for a freshly generated user id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseOrNewUserID(args[0])
			if err != nil {
				return err
			}

			cfg, err := e.config()
			if err != nil {
				return err
			}
			jwtService, err := auth.NewJWTService(cfg.Auth, nil)
			if err != nil {
				return err
			}

			token, err := jwtService.GenerateToken(cmd.Context(), userID)
			if err != nil {
				return err
			}

			e.logger(cfg).Info("token issued", "user_id", userID.String())
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"user_id":      userID.String(),
				"access_token": token,
				"expires_in":   cfg.Auth.TokenLifetimeMinutes * 60,
			})
		},
	})
	return cmd
}

func parseOrNewUserID(raw string) (uuid.UUID, error) {
	if raw == "new" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id %q: %w", raw, err)
	}
	return id, nil
}
