package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		"INFO":    Info,
		"":        Info,
		"warning": Warn,
		"error":   Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_JSONIncludesBaseAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Debug, Format: FormatJSON, App: "nutriplan", Out: &buf})

	log.With(map[string]any{"service": "planos"}).Warn("upstream failed", map[string]any{
		"error":  errors.New("boom"),
		"status": 503,
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "upstream failed", entry["msg"])
	assert.Equal(t, "nutriplan", entry["app"])
	assert.Equal(t, "planos", entry["service"])
	assert.Equal(t, "boom", entry["error"])
	assert.EqualValues(t, 503, entry["status"])
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Warn, Format: FormatText, Out: &buf})

	log.Info("hidden", nil)
	log.Error("shown", Err(errors.New("x")))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "shown") && strings.Contains(out, "error=x"))
}
