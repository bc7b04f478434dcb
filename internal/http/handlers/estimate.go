package handlers

import (
	"net/http"

	"fitmeal/internal/domain"
)

type estimateResponse struct {
	BMR            float64 `json:"bmr"`
	TDEE           float64 `json:"tdee"`
	TargetCalories int     `json:"target_calories"`
	Goal           string  `json:"goal"`
	GoalLabel      string  `json:"goal_label"`
}

func (a *App) Estimate(w http.ResponseWriter, r *http.Request) {
	var req domain.ProfileInput
	if !a.decode(w, r, &req) {
		return
	}
	p, err := req.Profile()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	est, err := a.Planner.Estimate(p)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, estimateResponse{
		BMR:            est.BMR,
		TDEE:           est.TDEE,
		TargetCalories: est.TargetCalories,
		Goal:           string(p.Goal),
		GoalLabel:      p.Goal.Label(),
	})
}
