// Package mealplan requests one-day meal plans from a generative text model.
// The model is treated as an opaque oracle: one call per request, no retries.
package mealplan

import (
	"context"

	"fitmeal/internal/domain"
)

// GenerateRequest carries everything the oracle is told about the user.
type GenerateRequest struct {
	Goal                domain.Goal
	TargetCalories      int
	DietaryRestrictions string
	Locale              string
	RequestID           string
}

// Generator is the contract implemented by meal plan providers.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*domain.DailyPlan, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req GenerateRequest) (*domain.DailyPlan, error)

func (f GeneratorFunc) Generate(ctx context.Context, req GenerateRequest) (*domain.DailyPlan, error) {
	return f(ctx, req)
}
