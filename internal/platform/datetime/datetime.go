// Package datetime define un timestamp tolerante a los distintos formatos
// que devuelven los microservicios (RFC3339, ISO sin zona, solo fecha).
package datetime

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"
)

const DateOnly = "2006-01-02"

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	DateOnly,
}

var location atomic.Pointer[time.Location]

// SetLocation fija la zona de los timestamps sin offset ("2006-01-02T15:04:05")
// y de Now. nil vuelve a UTC. Se llama una vez al arrancar.
func SetLocation(loc *time.Location) {
	location.Store(loc)
}

func Location() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}
	return time.UTC
}

// Now es time.Now en la zona configurada.
func Now() time.Time {
	return time.Now().In(Location())
}

// Time es un time.Time que recuerda el layout con el que fue parseado.
// El valor cero significa "desconocido".
type Time struct {
	time.Time
	layout string
}

func New(t time.Time) Time {
	return Time{Time: t}
}

// Date construye un Time que se serializa como YYYY-MM-DD.
func Date(year int, month time.Month, day int) Time {
	return Time{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), layout: DateOnly}
}

func Parse(s string) (Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Time{}, false
	}
	for _, l := range layouts {
		// solo fecha es UTC; fecha y hora sin offset es hora local de la zona configurada
		loc := Location()
		if l == DateOnly {
			loc = time.UTC
		}
		t, err := time.ParseInLocation(l, s, loc)
		if err == nil {
			return Time{Time: t, layout: l}, true
		}
	}
	return Time{}, false
}

// Known es false para valores ausentes o en/antes del epoch.
func (t Time) Known() bool {
	return !t.IsZero() && t.Unix() > 0
}

// UnmarshalJSON nunca falla por contenido: un valor ilegible queda como desconocido.
func (t *Time) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// números u otros tipos: lo tratamos como desconocido
		*t = Time{}
		return nil
	}

	parsed, ok := Parse(s)
	if !ok {
		*t = Time{}
		return nil
	}
	*t = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

func (t Time) String() string {
	if t.IsZero() {
		return ""
	}
	if t.layout == DateOnly {
		return t.Format(DateOnly)
	}
	if t.layout != "" && t.layout != time.RFC3339Nano {
		// ISO sin zona: se reemite igual para no inventar un offset
		return t.Format("2006-01-02T15:04:05.999999999")
	}
	return t.Format(time.RFC3339Nano)
}

// StartOfMonth devuelve el primer instante del mes calendario de now.
func StartOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// Since reporta si t es conocido y no anterior a from.
func (t Time) Since(from time.Time) bool {
	return t.Known() && !t.Before(from)
}
