package main

import (
	"github.com/spf13/cobra"

	"fitmeal/internal/domain"
)

// profileFlags collects a profile from command line flags.
type profileFlags struct {
	in domain.ProfileInput
}

func (f *profileFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&f.in.Age, "age", 0, "Age in years (required)")
	fs.StringVar(&f.in.Sex, "sex", "", "male or female (required)")
	fs.Float64Var(&f.in.HeightCM, "height", 0, "Height in cm (required)")
	fs.Float64Var(&f.in.WeightKG, "weight", 0, "Weight in kg (required)")
	fs.StringVar(&f.in.Activity, "activity", string(domain.ActivityModerate), "sedentary, light, moderate, active or very_active")
	fs.StringVar(&f.in.Goal, "goal", string(domain.GoalMaintain), "lose, maintain or gain")
	for _, name := range []string{"age", "sex", "height", "weight"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

func (f *profileFlags) profile() (domain.Profile, error) {
	return f.in.Profile()
}
