package dashboard

import (
	"time"

	"nutriplan-dashboard/internal/domain/plans"
	"nutriplan-dashboard/internal/domain/recipes"
	"nutriplan-dashboard/internal/platform/datetime"
)

const week = 7 * 24 * time.Hour

// Stats son las tarjetas del dashboard. Una fuente fallida o no pedida deja
// todas sus métricas en 0.
type Stats struct {
	TotalPatients        int `json:"total_patients"`
	NewPatientsThisMonth int `json:"new_patients_this_month"`

	TotalPlans             int `json:"total_plans"`
	ActivePlans            int `json:"active_plans"`
	NewPlansThisWeek       int `json:"new_plans_this_week"`
	PatientsWithActivePlan int `json:"patients_with_active_plan"`

	TotalRecipes       int `json:"total_recipes"`
	NewRecipesThisWeek int `json:"new_recipes_this_week"`
	QuickRecipes       int `json:"quick_recipes"`
	RecipeCategories   int `json:"recipe_categories"`
}

// Compute es pura: mismo snapshot y mismo now dan el mismo resultado.
func Compute(s Snapshot, now time.Time) Stats {
	var st Stats
	lastWeek := now.Add(-week)

	if s.Available(SourceUsers) {
		st.TotalPatients = len(s.Users)
		monthStart := datetime.StartOfMonth(now)
		for _, u := range s.Users {
			if u.CreatedAt.Since(monthStart) {
				st.NewPatientsThisMonth++
			}
		}
	}

	if s.Available(SourcePlans) {
		st.TotalPlans = len(s.Plans)
		st.ActivePlans = plans.CountActive(s.Plans, now)
		st.NewPlansThisWeek = plans.CountStartedSince(s.Plans, lastWeek)
		st.PatientsWithActivePlan = plans.CountPatientsWithActivePlan(s.Plans, now)
	}

	if s.Available(SourceRecipes) {
		st.TotalRecipes = len(s.Recipes)
		st.NewRecipesThisWeek = recipes.CountCreatedSince(s.Recipes, lastWeek)
		st.QuickRecipes = recipes.CountQuick(s.Recipes)
		st.RecipeCategories = recipes.CountCategories(s.Recipes)
	}

	return st
}
