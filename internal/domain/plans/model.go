package plans

import (
	"strings"
	"time"

	"nutriplan-dashboard/internal/platform/datetime"
)

// MealPlan es el plan mestre de un paciente. Sin EndDate es un plan abierto.
type MealPlan struct {
	ID             string        `json:"id"`
	PatientID      string        `json:"paciente_id"`
	PractitionerID string        `json:"nutricionista_id"`
	Title          string        `json:"titulo"`
	StartDate      datetime.Time `json:"data_inicio,omitzero"`
	EndDate        datetime.Time `json:"data_fim,omitzero"`
}

// IsActive: sin fecha de fin, o fin >= now. Se evalúa siempre al momento de leer.
func (p MealPlan) IsActive(now time.Time) bool {
	if !p.EndDate.Known() {
		return true
	}
	return !p.EndDate.Before(now)
}

// Matches busca por título, case-insensitive.
func (p MealPlan) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), term)
}

// PlanItem es una comida dentro de un plan.
type PlanItem struct {
	ID          string `json:"id"`
	PlanID      string `json:"plano_mestre_id"`
	Time        string `json:"horario"`
	MealName    string `json:"nome_refeicao"`
	Description string `json:"descricao"`
}

type PlanWithItems struct {
	MealPlan
	Items []PlanItem `json:"itens"`
}

type CreateInput struct {
	PatientID      string        `json:"paciente_id" validate:"required"`
	PractitionerID string        `json:"nutricionista_id" validate:"required"`
	Title          string        `json:"titulo" validate:"required"`
	StartDate      datetime.Time `json:"data_inicio,omitzero"`
	EndDate        datetime.Time `json:"data_fim,omitzero"`
}

type UpdateInput struct {
	PatientID      *string        `json:"paciente_id,omitempty"`
	PractitionerID *string        `json:"nutricionista_id,omitempty"`
	Title          *string        `json:"titulo,omitempty"`
	StartDate      *datetime.Time `json:"data_inicio,omitempty"`
	EndDate        *datetime.Time `json:"data_fim,omitempty"`
}

type ItemInput struct {
	PlanID      string `json:"plano_mestre_id" validate:"required"`
	Time        string `json:"horario" validate:"required"`
	MealName    string `json:"nome_refeicao" validate:"required"`
	Description string `json:"descricao"`
}

type ItemUpdateInput struct {
	Time        *string `json:"horario,omitempty"`
	MealName    *string `json:"nome_refeicao,omitempty"`
	Description *string `json:"descricao,omitempty"`
}

// ListFilter se aplica localmente: el servicio de planos no filtra por query.
type ListFilter struct {
	PatientID      string
	PractitionerID string
}

func (f ListFilter) Match(p MealPlan) bool {
	if f.PatientID != "" && p.PatientID != f.PatientID {
		return false
	}
	if f.PractitionerID != "" && p.PractitionerID != f.PractitionerID {
		return false
	}
	return true
}
