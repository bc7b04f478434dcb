package domain

import (
	"errors"
	"testing"
)

func samplePlan() *DailyPlan {
	return &DailyPlan{
		Summary:     "Protein-forward day with plenty of greens.",
		TotalMacros: MacroBreakdown{Calories: 2000, Protein: 150, Carbs: 200, Fats: 67},
		Meals: []Meal{
			{Name: "Oats", Category: MealBreakfast, Macros: MacroBreakdown{Calories: 500, Protein: 30, Carbs: 60, Fats: 15}},
			{Name: "Chicken bowl", Category: MealLunch, Macros: MacroBreakdown{Calories: 600, Protein: 50, Carbs: 60, Fats: 18}},
			{Name: "Salmon", Category: MealDinner, Macros: MacroBreakdown{Calories: 650, Protein: 50, Carbs: 55, Fats: 26}},
			{Name: "Yogurt", Category: MealSnack, Macros: MacroBreakdown{Calories: 250, Protein: 20, Carbs: 25, Fats: 8}},
		},
		Tips: []string{"Drink water."},
	}
}

func codes(ws []Warning) map[string]int {
	out := make(map[string]int)
	for _, w := range ws {
		out[w.Code]++
	}
	return out
}

func TestPlanValidate(t *testing.T) {
	if err := samplePlan().Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	empty := samplePlan()
	empty.Meals = nil
	if err := empty.Validate(); !errors.Is(err, ErrProviderFailure) {
		t.Fatalf("Validate(no meals) = %v, want ErrProviderFailure", err)
	}

	badType := samplePlan()
	badType.Meals[1].Category = "Brunch"
	if err := badType.Validate(); !errors.Is(err, ErrProviderFailure) {
		t.Fatalf("Validate(bad category) = %v, want ErrProviderFailure", err)
	}

	negative := samplePlan()
	negative.Meals[0].Macros.Fats = -1
	if err := negative.Validate(); !errors.Is(err, ErrProviderFailure) {
		t.Fatalf("Validate(negative fats) = %v, want ErrProviderFailure", err)
	}
}

func TestPlanCheckConsistentPlan(t *testing.T) {
	if ws := samplePlan().Check(2000); len(ws) != 0 {
		t.Fatalf("Check returned warnings for a consistent plan: %+v", ws)
	}
}

func TestPlanCheckReportsDrift(t *testing.T) {
	p := samplePlan()
	got := codes(p.Check(2500))
	if got[WarnTargetDrift] != 1 {
		t.Fatalf("expected target drift warning, got %v", got)
	}

	p.Meals = p.Meals[:3]
	got = codes(p.Check(2000))
	if got[WarnMissingMealType] != 1 {
		t.Fatalf("expected missing snack warning, got %v", got)
	}
	if got[WarnMealSumMismatch] != 1 {
		t.Fatalf("expected meal sum warning, got %v", got)
	}

	p = samplePlan()
	p.Meals[0].Macros.Calories = 200
	p.TotalMacros.Fats = 10
	got = codes(p.Check(0))
	if got[WarnMacroMismatch] != 2 {
		t.Fatalf("expected two macro warnings, got %v", got)
	}
}

func TestParseMealCategory(t *testing.T) {
	if c, err := ParseMealCategory("snack"); err != nil || c != MealSnack {
		t.Fatalf("ParseMealCategory(snack) = %q, %v", c, err)
	}
	if _, err := ParseMealCategory("supper"); !errors.Is(err, ErrUnrecognizedCategory) {
		t.Fatalf("ParseMealCategory(supper) error = %v", err)
	}
}
