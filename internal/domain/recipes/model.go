package recipes

import (
	"encoding/json"
	"strings"

	"nutriplan-dashboard/internal/platform/datetime"
	"nutriplan-dashboard/internal/platform/wire"
)

// QuickPrepMinutes: hasta este tiempo una receta cuenta como rápida.
const QuickPrepMinutes = 30

type Recipe struct {
	ID             string        `json:"id"`
	Name           string        `json:"nome"`
	Category       string        `json:"categoria"`
	PrepMinutes    int           `json:"tempoPreparo"`
	Ingredients    []string      `json:"ingredientes"`
	Steps          []string      `json:"modoPreparo"`
	PractitionerID string        `json:"nutricionistaId"`
	PatientID      string        `json:"pacienteId"`
	CreatedAt      datetime.Time `json:"data_criacao,omitzero"`
}

// UnmarshalJSON acepta ids numéricos y tempoPreparo como string ("30").
func (r *Recipe) UnmarshalJSON(b []byte) error {
	type plain Recipe
	aux := struct {
		*plain
		ID             wire.ID  `json:"id"`
		PrepMinutes    wire.Int `json:"tempoPreparo"`
		PractitionerID wire.ID  `json:"nutricionistaId"`
		PatientID      wire.ID  `json:"pacienteId"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.ID = string(aux.ID)
	r.PrepMinutes = int(aux.PrepMinutes)
	r.PractitionerID = string(aux.PractitionerID)
	r.PatientID = string(aux.PatientID)
	return nil
}

func (r Recipe) IsQuick() bool {
	return r.PrepMinutes <= QuickPrepMinutes
}

// Matches busca en nombre y categoría.
func (r Recipe) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), term) ||
		strings.Contains(strings.ToLower(r.Category), term)
}

type CreateInput struct {
	Name           string        `json:"nome" validate:"required"`
	Category       string        `json:"categoria" validate:"required"`
	PrepMinutes    int           `json:"tempoPreparo" validate:"gte=0"`
	Ingredients    []string      `json:"ingredientes"`
	Steps          []string      `json:"modoPreparo"`
	PractitionerID string        `json:"nutricionistaId" validate:"required"`
	PatientID      string        `json:"pacienteId" validate:"required"`
	CreatedAt      datetime.Time `json:"data_criacao,omitzero"`
}

type UpdateInput struct {
	Name           *string   `json:"nome,omitempty"`
	Category       *string   `json:"categoria,omitempty"`
	PrepMinutes    *int      `json:"tempoPreparo,omitempty" validate:"omitempty,gte=0"`
	Ingredients    *[]string `json:"ingredientes,omitempty"`
	Steps          *[]string `json:"modoPreparo,omitempty"`
	PractitionerID *string   `json:"nutricionistaId,omitempty"`
	PatientID      *string   `json:"pacienteId,omitempty"`
}

// ListFilter: PatientID y PractitionerID usan endpoints propios del servicio;
// si vienen los dos gana PatientID.
type ListFilter struct {
	PatientID      string
	PractitionerID string
}

func (f ListFilter) Match(r Recipe) bool {
	if f.PatientID != "" {
		return r.PatientID == f.PatientID
	}
	if f.PractitionerID != "" {
		return r.PractitionerID == f.PractitionerID
	}
	return true
}
