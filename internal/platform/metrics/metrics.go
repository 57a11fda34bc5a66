// Package metrics agrupa los collectors de prometheus del BFF.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	upstreamCalls    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	fallbacks        *prometheus.CounterVec
	sourceFailures   *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
}

// New crea un registry propio (no el global) para que los tests puedan
// instanciar varios routers sin colisiones de registro.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutriplan",
			Name:      "upstream_requests_total",
			Help:      "Llamadas a microservicios upstream por resultado.",
		}, []string{"service", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nutriplan",
			Name:      "upstream_request_duration_seconds",
			Help:      "Duración de las llamadas upstream.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutriplan",
			Name:      "fallback_total",
			Help:      "Lecturas servidas con datos de fallback.",
		}, []string{"source", "op"}),
		sourceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutriplan",
			Name:      "dashboard_source_failures_total",
			Help:      "Fuentes marcadas como fallidas en cargas agregadas.",
		}, []string{"source"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutriplan",
			Name:      "http_requests_total",
			Help:      "Requests atendidos por el BFF.",
		}, []string{"method", "code"}),
	}

	reg.MustRegister(
		m.upstreamCalls,
		m.upstreamDuration,
		m.fallbacks,
		m.sourceFailures,
		m.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveUpstream(service, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamCalls.WithLabelValues(service, outcome).Inc()
	m.upstreamDuration.WithLabelValues(service).Observe(d.Seconds())
}

func (m *Metrics) Fallback(source, op string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(source, op).Inc()
}

func (m *Metrics) SourceFailed(source string) {
	if m == nil {
		return
	}
	m.sourceFailures.WithLabelValues(source).Inc()
}

func (m *Metrics) HTTPRequest(method, code string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, code).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
