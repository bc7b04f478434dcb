package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"fitmeal/internal/calorie"
	"fitmeal/internal/domain"
	"fitmeal/internal/infra"
	"fitmeal/internal/providers/mealplan"
	"fitmeal/internal/render"
)

var (
	planFlags    profileFlags
	restrictions string
	locale       string
)

// newGenerator is swapped out in tests.
var newGenerator = func(ctx context.Context, cfg *infra.Config) (mealplan.Generator, error) {
	if err := cfg.RequireGemini(); err != nil {
		return nil, err
	}
	return mealplan.NewGeminiGenerator(ctx, mealplan.GeminiOptions{
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiModel,
		BaseURL:     cfg.GeminiBaseURL,
		Temperature: &cfg.GeminiTemperature,
		Timeout:     cfg.PlanTimeout,
		Logger:      logger,
	})
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a one-day meal plan for the calorie target",
	Long: `Estimate the daily calorie target and ask Gemini for a one-day meal plan.

Requires GEMINI_API_KEY (read from the environment or a .env file).`,
	Example: `  fitmeal plan --age 28 --sex female --height 165 --weight 60 --goal gain --restrictions vegetarian`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planFlags.register(planCmd)
	planCmd.Flags().StringVar(&restrictions, "restrictions", "", "Dietary restrictions, free text")
	planCmd.Flags().StringVar(&locale, "locale", "", "Language for the plan (default DEFAULT_LOCALE or en)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	planFlags.in.DietaryRestrictions = restrictions
	p, err := planFlags.profile()
	if err != nil {
		return err
	}
	est, err := calorie.Compute(p)
	if err != nil {
		return err
	}
	if est.TargetCalories <= 0 {
		return fmt.Errorf("%w: target of %d kcal is not plannable", domain.ErrInvalidProfile, est.TargetCalories)
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		return err
	}
	lang := locale
	if lang == "" {
		lang = cfg.DefaultLocale
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Debug().Int("target_calories", est.TargetCalories).Str("locale", lang).Msg("requesting meal plan")
	plan, err := gen.Generate(ctx, mealplan.GenerateRequest{
		Goal:                p.Goal,
		TargetCalories:      est.TargetCalories,
		DietaryRestrictions: p.DietaryRestrictions,
		Locale:              lang,
	})
	if err != nil {
		return err
	}
	warnings := plan.Check(est.TargetCalories)

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"bmr":             est.BMR,
			"tdee":            est.TDEE,
			"target_calories": est.TargetCalories,
			"plan":            plan,
			"warnings":        warnings,
		})
	}
	return render.Dashboard(out, render.View{
		Goal:           p.Goal,
		TargetCalories: est.TargetCalories,
		Plan:           plan,
		Warnings:       warnings,
	})
}
