// Package render turns an estimate and a meal plan into terminal output.
package render

import "fitmeal/internal/domain"

// MacroShare is one slice of the macro chart.
type MacroShare struct {
	Name    string
	Grams   float64
	Percent float64
}

// MacroSplit returns protein, carbs and fats with their share of the total
// grams. Percentages are zero when the plan carries no macros at all.
func MacroSplit(m domain.MacroBreakdown) []MacroShare {
	shares := []MacroShare{
		{Name: "Protein", Grams: m.Protein},
		{Name: "Carbs", Grams: m.Carbs},
		{Name: "Fats", Grams: m.Fats},
	}
	total := m.Protein + m.Carbs + m.Fats
	if total <= 0 {
		return shares
	}
	for i := range shares {
		shares[i].Percent = shares[i].Grams / total * 100
	}
	return shares
}
