package render

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"fitmeal/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestMacroSplit(t *testing.T) {
	got := MacroSplit(domain.MacroBreakdown{Calories: 2000, Protein: 150, Carbs: 200, Fats: 50})
	want := []MacroShare{
		{Name: "Protein", Grams: 150, Percent: 37.5},
		{Name: "Carbs", Grams: 200, Percent: 50},
		{Name: "Fats", Grams: 50, Percent: 12.5},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("MacroSplit mismatch (-want +got):\n%s", diff)
	}

	var sum float64
	for _, s := range got {
		sum += s.Percent
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("percentages sum to %v, want 100", sum)
	}
}

func TestMacroSplitEmpty(t *testing.T) {
	for _, s := range MacroSplit(domain.MacroBreakdown{}) {
		if s.Percent != 0 {
			t.Fatalf("%s percent = %v, want 0", s.Name, s.Percent)
		}
	}
}

func TestDashboard(t *testing.T) {
	plan := &domain.DailyPlan{
		Summary:     "High protein Mediterranean day",
		TotalMacros: domain.MacroBreakdown{Calories: 2259, Protein: 170, Carbs: 220, Fats: 75},
		Meals: []domain.Meal{
			{Name: "Greek Yogurt Bowl", Category: domain.MealBreakfast, Macros: domain.MacroBreakdown{Calories: 500}, Ingredients: []string{"yogurt", "honey"}},
			{Name: "Chicken Wrap", Category: domain.MealLunch, Macros: domain.MacroBreakdown{Calories: 700}},
		},
		Tips: []string{"Drink water"},
	}
	var buf bytes.Buffer
	err := Dashboard(&buf, View{
		Goal:           domain.GoalLose,
		TargetCalories: 2259,
		Plan:           plan,
		Warnings:       []domain.Warning{{Code: domain.WarnMissingMealType, Message: "no Dinner"}},
	})
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Daily Target", "Lose Weight", "2259 kcal", "Protein", "Chef's Tips", "Drink water",
		"Today's Plan", "Greek Yogurt Bowl", "Chicken Wrap", "Breakfast", "yogurt, honey",
		"no Dinner", "medical professional",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("dashboard missing %q:\n%s", want, out)
		}
	}
}

func TestDashboardWithoutPlan(t *testing.T) {
	var buf bytes.Buffer
	if err := Dashboard(&buf, View{TargetCalories: 2000}); !errors.Is(err, domain.ErrPlanNotReady) {
		t.Fatalf("Dashboard error = %v, want ErrPlanNotReady", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
