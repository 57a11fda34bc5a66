package users

import (
	"encoding/json"
	"strings"

	"nutriplan-dashboard/internal/platform/datetime"
	"nutriplan-dashboard/internal/platform/wire"
)

// Role define el tipo de usuario.
// @Enum nutricionista, paciente
type Role string

const (
	RolePractitioner Role = "nutricionista"
	RolePatient      Role = "paciente"
)

func (r Role) Valid() bool {
	return r == RolePractitioner || r == RolePatient
}

// User es un nutricionista o un paciente. PractitionerID solo aplica a pacientes.
type User struct {
	ID             string        `json:"id"`
	Name           string        `json:"nome"`
	Email          string        `json:"email"`
	Role           Role          `json:"role"`
	PractitionerID string        `json:"nutricionista_id,omitempty"`
	CreatedAt      datetime.Time `json:"data_criacao,omitzero"`
}

// UnmarshalJSON acepta ids numéricos además de strings.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	aux := struct {
		*plain
		ID             wire.ID `json:"id"`
		PractitionerID wire.ID `json:"nutricionista_id"`
	}{plain: (*plain)(u)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	u.ID = string(aux.ID)
	u.PractitionerID = string(aux.PractitionerID)
	return nil
}

type CreateInput struct {
	Name           string        `json:"nome" validate:"required"`
	Email          string        `json:"email" validate:"required,email"`
	Role           Role          `json:"role" validate:"required,oneof=nutricionista paciente"`
	PractitionerID string        `json:"nutricionista_id,omitempty" validate:"required_if=Role paciente"`
	CreatedAt      datetime.Time `json:"data_criacao,omitzero"`
}

// UpdateInput es un PATCH semántico: nil = no tocar.
type UpdateInput struct {
	Name           *string        `json:"nome,omitempty"`
	Email          *string        `json:"email,omitempty" validate:"omitempty,email"`
	PractitionerID *string        `json:"nutricionista_id,omitempty"`
	CreatedAt      *datetime.Time `json:"data_criacao,omitempty"`
}

// ListFilter: PractitionerID tiene prioridad sobre Role (lista pacientes de ese nutricionista).
type ListFilter struct {
	Role           Role
	PractitionerID string
}

func (f ListFilter) Match(u User) bool {
	if f.PractitionerID != "" {
		return u.Role == RolePatient && u.PractitionerID == f.PractitionerID
	}
	if f.Role != "" {
		return u.Role == f.Role
	}
	return true
}

// Matches hace búsqueda case-insensitive por nombre o email.
func (u User) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.Name), term) ||
		strings.Contains(strings.ToLower(u.Email), term)
}
