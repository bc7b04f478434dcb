package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"fitmeal/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

const (
	cardWidth = 64
	barWidth  = 30
)

var (
	accent  = lipgloss.Color("#10b981")
	muted   = lipgloss.Color("#94a3b8")
	warning = lipgloss.Color("#f59e0b")

	// Protein, carbs, fats.
	macroColors = []lipgloss.Color{"#3b82f6", "#10b981", "#f59e0b"}

	mealColors = map[domain.MealCategory]lipgloss.Color{
		domain.MealBreakfast: "#c2410c",
		domain.MealLunch:     "#047857",
		domain.MealDinner:    "#1d4ed8",
		domain.MealSnack:     "#7e22ce",
	}

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1).
			Width(cardWidth)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle  = lipgloss.NewStyle().Foreground(muted)
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// View is everything the dashboard shows.
type View struct {
	Goal           domain.Goal
	TargetCalories int
	Plan           *domain.DailyPlan
	Warnings       []domain.Warning
}

// Dashboard writes the daily target, tips, summary and meal cards to w.
func Dashboard(w io.Writer, v View) error {
	if v.Plan == nil {
		return domain.ErrPlanNotReady
	}
	blocks := []string{
		targetCard(v),
		tipsCard(v.Plan.Tips),
		summaryCard(v.Plan.Summary),
	}
	for _, meal := range v.Plan.Meals {
		blocks = append(blocks, mealCard(meal))
	}
	if len(v.Warnings) > 0 {
		blocks = append(blocks, warningsCard(v.Warnings))
	}
	blocks = append(blocks, footerStyle.Render("Estimates only. Consult a medical professional before starting any diet."))

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, blocks...))
	return err
}

func targetCard(v View) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Daily Target"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Goal:           "), v.Goal.Label())
	fmt.Fprintf(&b, "%s %d kcal\n", labelStyle.Render("Target Calories:"), v.TargetCalories)
	for i, share := range MacroSplit(v.Plan.TotalMacros) {
		filled := int(math.Round(share.Percent / 100 * barWidth))
		filled = max(0, min(filled, barWidth))
		bar := lipgloss.NewStyle().Foreground(macroColors[i]).Render(strings.Repeat("█", filled)) +
			labelStyle.Render(strings.Repeat("░", barWidth-filled))
		fmt.Fprintf(&b, "\n%-8s %s %4.0fg %3.0f%%", share.Name, bar, share.Grams, share.Percent)
	}
	return cardStyle.Render(b.String())
}

func tipsCard(tips []string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Chef's Tips"))
	for _, tip := range tips {
		b.WriteString("\n• " + tip)
	}
	return cardStyle.Render(b.String())
}

func summaryCard(summary string) string {
	return cardStyle.Render(titleStyle.Render("Today's Plan") + "\n" + fmt.Sprintf("%q", summary))
}

func mealCard(m domain.Meal) string {
	color, ok := mealColors[m.Category]
	if !ok {
		color = muted
	}
	badge := lipgloss.NewStyle().Bold(true).Foreground(color).Render(string(m.Category))

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %.0f kcal\n", badge, m.Macros.Calories)
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.Name))
	if m.Description != "" {
		b.WriteString("\n" + m.Description)
	}
	fmt.Fprintf(&b, "\nProt %.0fg · Carb %.0fg · Fat %.0fg", m.Macros.Protein, m.Macros.Carbs, m.Macros.Fats)
	if len(m.Ingredients) > 0 {
		b.WriteString("\n" + labelStyle.Render("Ingredients: ") + strings.Join(m.Ingredients, ", "))
	}
	return cardStyle.BorderForeground(color).Render(b.String())
}

func warningsCard(warnings []domain.Warning) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(warning).Render("Check these numbers"))
	for _, w := range warnings {
		b.WriteString("\n! " + w.Message)
	}
	return cardStyle.BorderForeground(warning).Render(b.String())
}
