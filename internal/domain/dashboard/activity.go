package dashboard

import (
	"slices"
	"time"
)

// DefaultActivityLimit es el largo del feed si no se configura otro.
const DefaultActivityLimit = 3

type ActivityKind string

const (
	ActivityPatient ActivityKind = "paciente"
	ActivityPlan    ActivityKind = "plano"
	ActivityRecipe  ActivityKind = "receita"
)

type Activity struct {
	Kind  ActivityKind `json:"type"`
	ID    string       `json:"id"`
	Label string       `json:"text"`
	At    time.Time    `json:"date"`
}

// RecentActivity une los eventos de alta de las tres fuentes, del más nuevo al
// más viejo. Si alguna fuente falló devuelve vacío.
func RecentActivity(s Snapshot, limit int) []Activity {
	out := []Activity{}
	if s.AnyFailed() {
		return out
	}
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	if s.Available(SourceUsers) {
		for _, u := range s.Users {
			if u.CreatedAt.Known() {
				out = append(out, Activity{Kind: ActivityPatient, ID: u.ID, Label: "Paciente cadastrado: " + u.Name, At: u.CreatedAt.Time})
			}
		}
	}
	if s.Available(SourcePlans) {
		for _, p := range s.Plans {
			if p.StartDate.Known() {
				out = append(out, Activity{Kind: ActivityPlan, ID: p.ID, Label: "Plano criado: " + p.Title, At: p.StartDate.Time})
			}
		}
	}
	if s.Available(SourceRecipes) {
		for _, r := range s.Recipes {
			if r.CreatedAt.Known() {
				out = append(out, Activity{Kind: ActivityRecipe, ID: r.ID, Label: "Receita criada: " + r.Name, At: r.CreatedAt.Time})
			}
		}
	}

	slices.SortStableFunc(out, func(a, b Activity) int {
		return b.At.Compare(a.At)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
