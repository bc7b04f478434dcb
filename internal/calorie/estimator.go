// Package calorie turns a profile into a daily calorie target using the
// Mifflin-St Jeor equation and standard activity multipliers.
package calorie

import (
	"math"

	"fitmeal/internal/domain"
)

const (
	maleOffset   = 5
	femaleOffset = -161

	// Adjustments applied to TDEE per goal, kcal/day.
	loseDeficit = 500
	gainSurplus = 300
)

var activityFactors = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:  1.2,
	domain.ActivityLight:      1.375,
	domain.ActivityModerate:   1.55,
	domain.ActivityActive:     1.725,
	domain.ActivityVeryActive: 1.9,
}

// DefaultActivityFactor is used for an activity level outside the known set.
const DefaultActivityFactor = 1.2

// Estimate is the result of running a profile through the full pipeline.
type Estimate struct {
	BMR            float64 `json:"bmr"`
	TDEE           float64 `json:"tdee"`
	TargetCalories int     `json:"target_calories"`
}

// BMR returns the basal metabolic rate in kcal/day. Inputs are not validated:
// a female profile with all-zero metrics yields -161.
func BMR(p domain.Profile) float64 {
	offset := float64(femaleOffset)
	if p.Sex == domain.SexMale {
		offset = maleOffset
	}
	return 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age) + offset
}

// ActivityFactor returns the multiplier for level, falling back to the
// sedentary factor for unknown levels rather than failing.
func ActivityFactor(level domain.ActivityLevel) float64 {
	if f, ok := activityFactors[level]; ok {
		return f
	}
	return DefaultActivityFactor
}

// TDEE scales bmr by the activity multiplier.
func TDEE(bmr float64, level domain.ActivityLevel) float64 {
	return bmr * ActivityFactor(level)
}

// TargetCalories applies the goal adjustment and rounds half away from zero.
func TargetCalories(tdee float64, goal domain.Goal) int {
	switch goal {
	case domain.GoalLose:
		return round(tdee - loseDeficit)
	case domain.GoalGain:
		return round(tdee + gainSurplus)
	case domain.GoalMaintain:
		return round(tdee)
	default:
		// Unknown goals are treated as maintain.
		return round(tdee)
	}
}

// Compute runs BMR, TDEE and TargetCalories in sequence after checking that
// the profile's body metrics are usable.
func Compute(p domain.Profile) (Estimate, error) {
	if err := p.Validate(); err != nil {
		return Estimate{}, err
	}
	bmr := BMR(p)
	tdee := TDEE(bmr, p.Activity)
	return Estimate{
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: TargetCalories(tdee, p.Goal),
	}, nil
}

func round(v float64) int {
	return int(math.Round(v))
}
