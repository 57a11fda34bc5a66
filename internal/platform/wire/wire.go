// Package wire tiene tipos JSON tolerantes para campos que los microservicios
// no siempre mandan con el mismo tipo (ids numéricos, números como string).
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var null = []byte("null")

// ID acepta "abc", 123 o null. Se serializa siempre como string.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, null) {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("wire: id must be string or number, got %s", b)
	}
	*id = ID(n.String())
	return nil
}

// Int acepta 30, 30.0, "30" o null (= 0).
type Int int

func (i *Int) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, null) {
		*i = 0
		return nil
	}

	raw := string(b)
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		raw = strings.TrimSpace(s)
		if raw == "" {
			*i = 0
			return nil
		}
	}

	if n, err := strconv.Atoi(raw); err == nil {
		*i = Int(n)
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("wire: %s is not a number", b)
	}
	*i = Int(f)
	return nil
}
