package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fitmeal/internal/calorie"
	"fitmeal/internal/domain"
)

var estimateFlags profileFlags

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Print BMR, TDEE and the daily calorie target",
	Example: `  fitmeal estimate --age 30 --sex male --height 180 --weight 80 --activity moderate --goal lose`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

func init() {
	estimateFlags.register(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	p, err := estimateFlags.profile()
	if err != nil {
		return err
	}
	est, err := calorie.Compute(p)
	if err != nil {
		return err
	}
	return printEstimate(cmd.OutOrStdout(), p, est)
}

func printEstimate(w io.Writer, p domain.Profile, est calorie.Estimate) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"bmr":             est.BMR,
			"tdee":            est.TDEE,
			"target_calories": est.TargetCalories,
			"goal":            p.Goal,
		})
	}
	_, err := fmt.Fprintf(w, "BMR:             %.0f kcal\nTDEE:            %.0f kcal (%s)\nTarget (%s): %d kcal\n",
		est.BMR, est.TDEE, p.Activity.Label(), p.Goal.Label(), est.TargetCalories)
	return err
}
