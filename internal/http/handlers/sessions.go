package handlers

import (
	"errors"
	"net/http"
	"time"

	"fitmeal/internal/domain"
	"fitmeal/internal/middleware"
	"fitmeal/internal/planner"

	"github.com/go-chi/chi/v5"
)

type sessionView struct {
	ID             string            `json:"id"`
	Profile        domain.Profile    `json:"profile"`
	BMR            float64           `json:"bmr"`
	TDEE           float64           `json:"tdee"`
	TargetCalories int               `json:"target_calories"`
	Locale         string            `json:"locale"`
	Plan           *domain.DailyPlan `json:"plan"`
	Warnings       []domain.Warning  `json:"warnings"`
	Error          string            `json:"error,omitempty"`
	Retryable      bool              `json:"retryable,omitempty"`
	Generations    int               `json:"generations"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func newSessionView(s *planner.Session) sessionView {
	warnings := s.Warnings
	if warnings == nil {
		warnings = []domain.Warning{}
	}
	return sessionView{
		ID:             s.ID,
		Profile:        s.Profile,
		BMR:            s.Estimate.BMR,
		TDEE:           s.Estimate.TDEE,
		TargetCalories: s.Estimate.TargetCalories,
		Locale:         s.Locale,
		Plan:           s.Plan,
		Warnings:       warnings,
		Error:          s.LastError,
		Retryable:      s.LastError != "",
		Generations:    s.Generations,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// CreateSession stores the profile and asks for the first plan. An oracle
// failure still creates the session so the client can retry it.
func (a *App) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req domain.ProfileInput
	if !a.decode(w, r, &req) {
		return
	}
	p, err := req.Profile()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ctx := r.Context()
	sess, err := a.Planner.Start(ctx, p, middleware.LocaleFromContext(ctx), middleware.RequestIDFromContext(ctx))
	if err != nil && (sess == nil || !errors.Is(err, domain.ErrProviderFailure)) {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/sessions/"+sess.ID)
	a.json(w, http.StatusCreated, newSessionView(sess))
}

func (a *App) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := a.Planner.Get(chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, newSessionView(sess))
}

// RegeneratePlan is the "try again" action.
func (a *App) RegeneratePlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := a.Planner.Regenerate(ctx, chi.URLParam(r, "id"), middleware.RequestIDFromContext(ctx))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, newSessionView(sess))
}

func (a *App) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := a.Planner.Reset(chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
