package httpapi

import (
	"net/http"
	"time"

	"fitmeal/internal/http/handlers"
	"fitmeal/internal/infra"
	"fitmeal/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	Logger          *infra.Logger
	AllowedOrigins  []string
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}

	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		middleware.RequestID,
		middleware.Logger(*logger),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)

		r.Post("/estimate", app.Estimate)

		// Every route below may call the model.
		limited := middleware.RateLimit(opts.RateLimitPerMin, time.Minute)
		r.Route("/sessions", func(r chi.Router) {
			r.With(limited).Post("/", app.CreateSession)
			r.Get("/{id}", app.GetSession)
			r.Delete("/{id}", app.DeleteSession)
			r.With(limited).Post("/{id}/plan", app.RegeneratePlan)
		})
	})

	return r
}
