package mealplan

import (
	"fmt"
	"strings"

	"fitmeal/internal/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"google.golang.org/genai"
)

// BuildPrompt renders the instruction text sent to the model.
func BuildPrompt(req GenerateRequest) string {
	restrictions := strings.TrimSpace(req.DietaryRestrictions)
	if restrictions == "" {
		restrictions = "None"
	}
	sb := &strings.Builder{}
	sb.WriteString("Generate a 1-day meal plan for a person with the following profile:\n")
	fmt.Fprintf(sb, "- Goal: %s\n", req.Goal.Label())
	fmt.Fprintf(sb, "- Daily Calorie Target: %d kcal\n", req.TargetCalories)
	fmt.Fprintf(sb, "- Dietary Restrictions/Preferences: %s\n\n", restrictions)
	sb.WriteString("The plan must include Breakfast, Lunch, Dinner, and at least one Snack.\n")
	fmt.Fprintf(sb, "Ensure the total calories are within +/- 5%% of the target %d.\n", req.TargetCalories)
	sb.WriteString("Focus on healthy, whole foods appropriate for the goal.\n")
	fmt.Fprintf(sb, "For '%s', focus on high protein.\n", domain.GoalGain.Label())
	fmt.Fprintf(sb, "For '%s', focus on volume and fiber.\n", domain.GoalLose.Label())
	if name := languageName(req.Locale); name != "" {
		fmt.Fprintf(sb, "Write every text field (summary, meal names, descriptions, ingredients, tips) in %s.\n", name)
	}
	return sb.String()
}

// languageName returns the English name of locale's base language, or "" for
// English and unparseable tags.
func languageName(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ""
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	if base.String() == "en" || base.String() == "und" {
		return ""
	}
	return display.English.Languages().Name(language.Make(base.String()))
}

func macroSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"calories": {Type: genai.TypeNumber},
			"protein":  {Type: genai.TypeNumber},
			"carbs":    {Type: genai.TypeNumber},
			"fats":     {Type: genai.TypeNumber},
		},
		Required:         []string{"calories", "protein", "carbs", "fats"},
		PropertyOrdering: []string{"calories", "protein", "carbs", "fats"},
	}
}

// ResponseSchema describes the JSON shape of domain.DailyPlan.
func ResponseSchema() *genai.Schema {
	categories := make([]string, len(domain.MealCategories))
	for i, c := range domain.MealCategories {
		categories[i] = string(c)
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"daySummary": {
				Type:        genai.TypeString,
				Description: "A one sentence enthusiastic summary of today's nutrition focus.",
			},
			"totalMacros": macroSchema(),
			"meals": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":        {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
						"type":        {Type: genai.TypeString, Enum: categories},
						"ingredients": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
						"macros":      macroSchema(),
					},
					Required:         []string{"name", "description", "type", "ingredients", "macros"},
					PropertyOrdering: []string{"name", "type", "description", "ingredients", "macros"},
				},
			},
			"tips": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required:         []string{"daySummary", "totalMacros", "meals", "tips"},
		PropertyOrdering: []string{"daySummary", "totalMacros", "meals", "tips"},
	}
}
