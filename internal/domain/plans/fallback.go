package plans

import (
	"time"

	"nutriplan-dashboard/internal/platform/datetime"
)

// Fallback agrupa los planes e itens de ejemplo.
type Fallback struct {
	Plans []MealPlan
	Items []PlanItem
}

// DefaultFallback se usa cuando el servicio de planos no responde.
func DefaultFallback() Fallback {
	return Fallback{
		Plans: []MealPlan{
			{
				ID:             "mock-plan-1",
				PatientID:      "mock-user-2",
				PractitionerID: "mock-user-1",
				Title:          "Plano de Reeducação Alimentar",
				StartDate:      datetime.Date(2025, time.January, 6),
			},
			{
				ID:             "mock-plan-2",
				PatientID:      "mock-user-3",
				PractitionerID: "mock-user-1",
				Title:          "Plano de Ganho de Massa",
				StartDate:      datetime.Date(2024, time.June, 1),
				EndDate:        datetime.Date(2024, time.December, 31),
			},
		},
		Items: []PlanItem{
			{ID: "mock-item-1", PlanID: "mock-plan-1", Time: "07:30", MealName: "Café da Manhã", Description: "Pão integral com ovos mexidos e uma fruta"},
			{ID: "mock-item-2", PlanID: "mock-plan-1", Time: "12:30", MealName: "Almoço", Description: "Arroz integral, feijão, frango grelhado e salada"},
			{ID: "mock-item-3", PlanID: "mock-plan-1", Time: "19:30", MealName: "Jantar", Description: "Sopa de legumes com carne magra"},
			{ID: "mock-item-4", PlanID: "mock-plan-2", Time: "08:00", MealName: "Café da Manhã", Description: "Aveia com banana e pasta de amendoim"},
		},
	}
}

// WithItems junta un plan con sus itens del fallback.
func (f Fallback) WithItems(p MealPlan) PlanWithItems {
	return PlanWithItems{MealPlan: p, Items: f.ItemsOf(p.ID)}
}

func (f Fallback) ItemsOf(planID string) []PlanItem {
	out := make([]PlanItem, 0)
	for _, it := range f.Items {
		if it.PlanID == planID {
			out = append(out, it)
		}
	}
	return out
}
