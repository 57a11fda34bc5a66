package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"nome" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=nutricionista paciente"`
	Ref   string `json:"nutricionista_id" validate:"required_if=Role paciente"`
	Prep  int    `json:"tempoPreparo" validate:"gte=0"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(payload{Name: "Ana", Email: "ana@email.com", Role: "nutricionista"}))
}

func TestStruct_MessagesUseJSONNames(t *testing.T) {
	err := Struct(payload{Email: "nope", Role: "paciente", Prep: -1})
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "field nome is a required field")
	assert.Contains(t, msg, "field email must be a valid email")
	assert.Contains(t, msg, "field nutricionista_id is a required field")
	assert.Contains(t, msg, "field tempoPreparo must be >= 0")
}

func TestStruct_OneOf(t *testing.T) {
	err := Struct(payload{Name: "x", Email: "x@y.com", Role: "admin"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field role must be one of [nutricionista paciente]")
}
