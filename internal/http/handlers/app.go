package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"fitmeal/internal/domain"
	"fitmeal/internal/infra"
	"fitmeal/internal/planner"
)

const maxBodyBytes = 1 << 20

type App struct {
	Planner *planner.Service
	Logger  *infra.Logger
}

func NewApp(p *planner.Service, logger *infra.Logger) *App {
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &App{Planner: p, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

func (a *App) error(w http.ResponseWriter, status int, code, msg string) {
	a.json(w, status, errorBody{Error: code, Message: msg})
}

// fail maps a domain error onto its HTTP status.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnrecognizedCategory):
		a.error(w, http.StatusBadRequest, "invalid_category", err.Error())
	case errors.Is(err, domain.ErrInvalidProfile):
		a.error(w, http.StatusBadRequest, "invalid_profile", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "session not found")
	case errors.Is(err, domain.ErrCapacity):
		w.Header().Set("Retry-After", "5")
		a.json(w, http.StatusServiceUnavailable, errorBody{Error: "capacity", Message: "too many plans are being generated, try again shortly", Retryable: true})
	case errors.Is(err, domain.ErrProviderFailure):
		a.json(w, http.StatusBadGateway, errorBody{Error: "provider_failure", Message: planner.FailureMessage, Retryable: true})
	default:
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("unhandled error")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}
