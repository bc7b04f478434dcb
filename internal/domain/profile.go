package domain

import (
	"fmt"
	"math"
	"strings"
)

// Sex selects the Mifflin-St Jeor offset constant.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel is one of five ordered activity categories.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Goal is the direction the user wants their intake to move.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// ActivityLevels lists the activity categories from least to most active.
var ActivityLevels = []ActivityLevel{
	ActivitySedentary,
	ActivityLight,
	ActivityModerate,
	ActivityActive,
	ActivityVeryActive,
}

// Goals lists the goal categories in presentation order.
var Goals = []Goal{GoalLose, GoalMaintain, GoalGain}

var sexLabels = map[Sex]string{
	SexMale:   "Male",
	SexFemale: "Female",
}

var activityLabels = map[ActivityLevel]string{
	ActivitySedentary:  "Sedentary (little or no exercise)",
	ActivityLight:      "Lightly active (1-3 days/week)",
	ActivityModerate:   "Moderately active (3-5 days/week)",
	ActivityActive:     "Active (6-7 days/week)",
	ActivityVeryActive: "Very active (physical job or 2x training)",
}

var goalLabels = map[Goal]string{
	GoalLose:     "Lose Weight",
	GoalMaintain: "Maintain Weight",
	GoalGain:     "Build Muscle",
}

func (s Sex) Label() string {
	if l, ok := sexLabels[s]; ok {
		return l
	}
	return string(s)
}

func (a ActivityLevel) Label() string {
	if l, ok := activityLabels[a]; ok {
		return l
	}
	return string(a)
}

func (g Goal) Label() string {
	if l, ok := goalLabels[g]; ok {
		return l
	}
	return string(g)
}

// ParseSex accepts either the code ("female") or the label ("Female").
func ParseSex(raw string) (Sex, error) {
	key := normalizeCategory(raw)
	for s, label := range sexLabels {
		if key == string(s) || key == normalizeCategory(label) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: sex %q", ErrUnrecognizedCategory, raw)
}

// ParseActivityLevel accepts the code, the full label, or the "<adverb> active"
// shorthand ("Moderately active").
func ParseActivityLevel(raw string) (ActivityLevel, error) {
	key := normalizeCategory(raw)
	for _, a := range ActivityLevels {
		label := normalizeCategory(activityLabels[a])
		if key == string(a) || key == label {
			return a, nil
		}
	}
	switch key {
	case "lightly_active":
		return ActivityLight, nil
	case "moderately_active":
		return ActivityModerate, nil
	}
	return "", fmt.Errorf("%w: activity level %q", ErrUnrecognizedCategory, raw)
}

// ParseGoal accepts the code ("gain") or the label ("Build Muscle").
func ParseGoal(raw string) (Goal, error) {
	key := normalizeCategory(raw)
	for _, g := range Goals {
		if key == string(g) || key == normalizeCategory(goalLabels[g]) {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: goal %q", ErrUnrecognizedCategory, raw)
}

func normalizeCategory(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}

// Profile holds the body metrics and preferences collected from the user.
type Profile struct {
	Age                 int           `json:"age"`
	Sex                 Sex           `json:"sex"`
	HeightCM            float64       `json:"height_cm"`
	WeightKG            float64       `json:"weight_kg"`
	Activity            ActivityLevel `json:"activity_level"`
	Goal                Goal          `json:"goal"`
	DietaryRestrictions string        `json:"dietary_restrictions,omitempty"`
}

// Validate reports ErrInvalidProfile when a body metric is non-positive or not
// finite. Categories are not checked here; the estimator falls back on them.
func (p Profile) Validate() error {
	if p.Age <= 0 {
		return fmt.Errorf("%w: age must be positive, got %d", ErrInvalidProfile, p.Age)
	}
	if !positiveFinite(p.HeightCM) {
		return fmt.Errorf("%w: height_cm must be positive, got %v", ErrInvalidProfile, p.HeightCM)
	}
	if !positiveFinite(p.WeightKG) {
		return fmt.Errorf("%w: weight_kg must be positive, got %v", ErrInvalidProfile, p.WeightKG)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// ProfileInput is a profile as submitted by a client, with categories still
// in their raw text form.
type ProfileInput struct {
	Age                 int     `json:"age"`
	Sex                 string  `json:"sex"`
	HeightCM            float64 `json:"height_cm"`
	WeightKG            float64 `json:"weight_kg"`
	Activity            string  `json:"activity_level"`
	Goal                string  `json:"goal"`
	DietaryRestrictions string  `json:"dietary_restrictions"`
}

// Profile parses the categories and validates the body metrics.
func (in ProfileInput) Profile() (Profile, error) {
	sex, err := ParseSex(in.Sex)
	if err != nil {
		return Profile{}, err
	}
	activity, err := ParseActivityLevel(in.Activity)
	if err != nil {
		return Profile{}, err
	}
	goal, err := ParseGoal(in.Goal)
	if err != nil {
		return Profile{}, err
	}
	p := Profile{
		Age:                 in.Age,
		Sex:                 sex,
		HeightCM:            in.HeightCM,
		WeightKG:            in.WeightKG,
		Activity:            activity,
		Goal:                goal,
		DietaryRestrictions: strings.TrimSpace(in.DietaryRestrictions),
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}
