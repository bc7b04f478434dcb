package mealplan

import (
	"encoding/json"
	"fmt"
	"strings"

	"fitmeal/internal/domain"
)

// DecodePlan parses the model's text into a plan. The text normally is bare
// JSON, but fenced or prose-wrapped JSON is accepted too.
func DecodePlan(raw string) (*domain.DailyPlan, error) {
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return nil, domain.ErrEmptyResponse
	}
	var plan domain.DailyPlan
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	for i := range plan.Meals {
		if c, err := domain.ParseMealCategory(string(plan.Meals[i].Category)); err == nil {
			plan.Meals[i].Category = c
		}
		plan.Meals[i].Ingredients = compact(plan.Meals[i].Ingredients)
	}
	plan.Tips = compact(plan.Tips)
	plan.Summary = strings.TrimSpace(plan.Summary)
	return &plan, nil
}

func compact(items []string) []string {
	out := items[:0]
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
