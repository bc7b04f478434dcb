package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"fitmeal/internal/http/handlers"
	httpapi "fitmeal/internal/http/httpapi"
	"fitmeal/internal/infra"
	"fitmeal/internal/infra/geoip"
	"fitmeal/internal/middleware"
	"fitmeal/internal/planner"
	"fitmeal/internal/providers/mealplan"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)
	if err := cfg.RequireGemini(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator, err := mealplan.NewGeminiGenerator(ctx, mealplan.GeminiOptions{
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiModel,
		BaseURL:     cfg.GeminiBaseURL,
		Temperature: &cfg.GeminiTemperature,
		Timeout:     cfg.PlanTimeout,
		Logger:      &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create meal plan generator")
	}

	geo, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer geo.Close()

	store := planner.NewStore(cfg.SessionTTL, cfg.SessionMax)
	svc, err := planner.NewService(planner.Options{Store: store, Generator: generator, Logger: &logger})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create planner")
	}

	app := handlers.NewApp(svc, &logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          &logger,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		DefaultLocale:   cfg.DefaultLocale,
		CountryLookup:   middleware.CountryLookup(geo.Lookup()),
		RateLimitPerMin: cfg.RateLimitPerMin,
	})
	server := infra.NewHTTPServer(cfg, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return store.Run(gctx, time.Minute)
	})
	g.Go(func() error {
		logger.Info().Str("addr", server.Addr()).Str("model", cfg.GeminiModel).Msg("API listening")
		return server.Run(gctx)
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
	logger.Info().Msg("server stopped")
}
