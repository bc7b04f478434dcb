package mealplan

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fitmeal/internal/domain"
	"fitmeal/internal/infra"

	"google.golang.org/genai"
)

const (
	geminiDefaultModel       = "gemini-2.5-flash"
	geminiDefaultTemperature = 0.7
	geminiDefaultTimeout     = 45 * time.Second
)

// GeminiOptions controls how the Gemini generator is configured.
type GeminiOptions struct {
	APIKey      string
	Model       string
	BaseURL     string
	// Temperature is sent as is, zero included. Nil uses 0.7.
	Temperature *float32
	Timeout     time.Duration
	HTTPClient  *http.Client
	Logger      *infra.Logger
}

// GeminiGenerator asks Gemini for a plan constrained by ResponseSchema.
type GeminiGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
	timeout     time.Duration
	logger      *infra.Logger
}

func NewGeminiGenerator(ctx context.Context, opts GeminiOptions) (*GeminiGenerator, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = geminiDefaultModel
	}
	temperature := float32(geminiDefaultTemperature)
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = geminiDefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}

	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimRight(base, "/") + "/"}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiGenerator{
		client:      client,
		model:       model,
		temperature: temperature,
		timeout:     timeout,
		logger:      logger,
	}, nil
}

// Generate performs exactly one model call. Any failure is wrapped in
// domain.ErrProviderFailure so callers can offer a manual retry.
func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) (*domain.DailyPlan, error) {
	if req.TargetCalories <= 0 {
		return nil, fmt.Errorf("%w: target calories must be positive, got %d", domain.ErrInvalidProfile, req.TargetCalories)
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	log := g.logger.With().
		Str("provider", "gemini").
		Str("model", g.model).
		Str("request_id", req.RequestID).
		Int("target_calories", req.TargetCalories).
		Logger()

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(req)), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(g.temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   ResponseSchema(),
	})
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("gemini generate content failed")
		return nil, fmt.Errorf("%w: gemini: %v", domain.ErrProviderFailure, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		log.Warn().Msg("gemini returned no text")
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderFailure, domain.ErrEmptyResponse)
	}
	plan, err := DecodePlan(text)
	if err != nil {
		log.Warn().Err(err).Int("bytes", len(text)).Msg("gemini returned undecodable plan")
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	if err := plan.Validate(); err != nil {
		log.Warn().Err(err).Msg("gemini returned incomplete plan")
		return nil, err
	}
	log.Debug().Int("meals", len(plan.Meals)).Dur("elapsed", time.Since(start)).Msg("gemini plan generated")
	return plan, nil
}

var _ Generator = (*GeminiGenerator)(nil)
