package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_CountersIncrement(t *testing.T) {
	m := New()

	m.ObserveUpstream("planos", "transport_error", 20*time.Millisecond)
	m.ObserveUpstream("planos", "transport_error", 10*time.Millisecond)
	m.Fallback("plans", "list")
	m.SourceFailed("plans")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.upstreamCalls.WithLabelValues("planos", "transport_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacks.WithLabelValues("plans", "list")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sourceFailures.WithLabelValues("plans")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveUpstream("x", "ok", time.Millisecond)
		m.Fallback("x", "list")
		m.SourceFailed("x")
		m.HTTPRequest("GET", "200")
	})
}
