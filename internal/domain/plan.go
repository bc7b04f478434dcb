package domain

import (
	"fmt"
	"math"
	"strings"
)

// MealCategory tags a meal with the time of day it is eaten.
type MealCategory string

const (
	MealBreakfast MealCategory = "Breakfast"
	MealLunch     MealCategory = "Lunch"
	MealDinner    MealCategory = "Dinner"
	MealSnack     MealCategory = "Snack"
)

// MealCategories is the closed set of meal tags in day order.
var MealCategories = []MealCategory{MealBreakfast, MealLunch, MealDinner, MealSnack}

// ParseMealCategory matches a category name case-insensitively.
func ParseMealCategory(raw string) (MealCategory, error) {
	for _, c := range MealCategories {
		if strings.EqualFold(strings.TrimSpace(raw), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: meal category %q", ErrUnrecognizedCategory, raw)
}

type MacroBreakdown struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Energy density used for the advisory macro check, kcal per gram.
const (
	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9
)

// DerivedCalories is the energy implied by the macro grams alone.
func (m MacroBreakdown) DerivedCalories() float64 {
	return m.Protein*KcalPerGramProtein + m.Carbs*KcalPerGramCarbs + m.Fats*KcalPerGramFat
}

type Meal struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Macros      MacroBreakdown `json:"macros"`
	Ingredients []string       `json:"ingredients"`
	Category    MealCategory   `json:"type"`
}

// DailyPlan is the one-day plan returned by the meal plan oracle. It is
// replaced as a whole on regeneration.
type DailyPlan struct {
	Summary     string         `json:"daySummary"`
	TotalMacros MacroBreakdown `json:"totalMacros"`
	Meals       []Meal         `json:"meals"`
	Tips        []string       `json:"tips"`
}

// Validate checks that a decoded plan is renderable. Numeric consistency is
// reported separately by Check.
func (p *DailyPlan) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil plan", ErrProviderFailure)
	}
	if strings.TrimSpace(p.Summary) == "" {
		return fmt.Errorf("%w: plan summary is empty", ErrProviderFailure)
	}
	if len(p.Meals) == 0 {
		return fmt.Errorf("%w: plan has no meals", ErrProviderFailure)
	}
	if err := p.TotalMacros.validate("totalMacros"); err != nil {
		return err
	}
	for i, meal := range p.Meals {
		if strings.TrimSpace(meal.Name) == "" {
			return fmt.Errorf("%w: meal %d has no name", ErrProviderFailure, i)
		}
		if _, err := ParseMealCategory(string(meal.Category)); err != nil {
			return fmt.Errorf("%w: meal %d: %v", ErrProviderFailure, i, err)
		}
		if err := meal.Macros.validate(fmt.Sprintf("meals[%d].macros", i)); err != nil {
			return err
		}
	}
	return nil
}

func (m MacroBreakdown) validate(field string) error {
	for name, v := range map[string]float64{"calories": m.Calories, "protein": m.Protein, "carbs": m.Carbs, "fats": m.Fats} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s.%s is %v", ErrProviderFailure, field, name, v)
		}
	}
	return nil
}

// Warning codes produced by Check.
const (
	WarnTargetDrift      = "target_drift"
	WarnMealSumMismatch  = "meal_sum_mismatch"
	WarnMacroMismatch    = "macro_mismatch"
	WarnMissingMealType  = "missing_meal_type"
	TargetTolerance      = 0.05
	MealSumTolerance     = 0.05
	MacroEnergyTolerance = 0.10
)

// Warning is a non-fatal observation about a plan's numbers.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Check compares the plan against the requested target and against itself.
// Plans are never rejected for these; the oracle output is shown as returned.
func (p *DailyPlan) Check(targetCalories int) []Warning {
	if p == nil {
		return nil
	}
	var warnings []Warning
	total := p.TotalMacros.Calories
	if targetCalories > 0 && relDiff(total, float64(targetCalories)) > TargetTolerance {
		warnings = append(warnings, Warning{
			Code:    WarnTargetDrift,
			Message: fmt.Sprintf("plan total %.0f kcal is outside ±5%% of target %d kcal", total, targetCalories),
		})
	}

	var sum float64
	seen := make(map[MealCategory]bool, len(MealCategories))
	for _, meal := range p.Meals {
		sum += meal.Macros.Calories
		seen[meal.Category] = true
		if d := meal.Macros.DerivedCalories(); d > 0 && relDiff(d, meal.Macros.Calories) > MacroEnergyTolerance {
			warnings = append(warnings, Warning{
				Code:    WarnMacroMismatch,
				Message: fmt.Sprintf("%s: macros imply %.0f kcal but %.0f kcal is stated", meal.Name, d, meal.Macros.Calories),
			})
		}
	}
	if len(p.Meals) > 0 && relDiff(sum, total) > MealSumTolerance {
		warnings = append(warnings, Warning{
			Code:    WarnMealSumMismatch,
			Message: fmt.Sprintf("meals add up to %.0f kcal but the plan total is %.0f kcal", sum, total),
		})
	}
	if d := p.TotalMacros.DerivedCalories(); d > 0 && relDiff(d, total) > MacroEnergyTolerance {
		warnings = append(warnings, Warning{
			Code:    WarnMacroMismatch,
			Message: fmt.Sprintf("total macros imply %.0f kcal but %.0f kcal is stated", d, total),
		})
	}
	for _, c := range MealCategories {
		if !seen[c] {
			warnings = append(warnings, Warning{
				Code:    WarnMissingMealType,
				Message: fmt.Sprintf("plan has no %s", strings.ToLower(string(c))),
			})
		}
	}
	return warnings
}

func relDiff(got, want float64) float64 {
	if want == 0 {
		if got == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return math.Abs(got-want) / math.Abs(want)
}
