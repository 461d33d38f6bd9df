package main

import (
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/domain/energy"
	"github.com/spf13/cobra"
)

func newEstimateCmd(_ *env) *cobra.Command {
	var (
		profile   domain.UserProfile
		sex       string
		objective string
		intensity string
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the kcal cost of a training session",
		Example: `  fitload-admin estimate --sex M --weight 80 --height 180 \
    --objective massa --intensity moderado`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile.Sex = domain.Sex(sex)
			profile.Objective = domain.Objective(objective)
			if err := profile.Validate(); err != nil {
				return err
			}

			level := domain.SessionIntensity(intensity)
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"bmr":       energy.BMR(profile),
				"tdee":      energy.TDEE(profile),
				"intensity": level,
				"kcal":      energy.EstimateSessionKcal(profile, level),
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&sex, "sex", "", "biological sex (M or F)")
	flags.Float64Var(&profile.WeightKg, "weight", 0, "body weight in kg")
	flags.Float64Var(&profile.HeightCm, "height", 0, "height in cm")
	flags.StringVar(&objective, "objective", string(domain.ObjectiveMass), "training goal (massa, gordura, forca)")
	flags.StringVar(&intensity, "intensity", string(domain.IntensityModerate), "session intensity (leve, moderado, alto)")
	_ = cmd.MarkFlagRequired("sex")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}
