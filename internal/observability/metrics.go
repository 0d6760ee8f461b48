package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the aggregation
// service.
type Metrics struct {
	// Upstream fetch metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: source={nws,openmeteo,cotrip,cdot,openai}, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec // labels: source
	CacheLookups     *prometheus.CounterVec   // labels: source, result={hit,miss}

	// Chat metrics.
	ChatRequests *prometheus.CounterVec // labels: intent
	ChatPolish   *prometheus.CounterVec // labels: outcome={applied,skipped,error}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.CacheLookups,
		m.ChatRequests,
		m.ChatPolish,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cwn",
			Name:      "upstream_requests_total",
			Help:      "Upstream API requests by source and outcome.",
		}, []string{"source", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cwn",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cwn",
			Name:      "cache_lookups_total",
			Help:      "Adapter cache lookups by source and result.",
		}, []string{"source", "result"}),
		ChatRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cwn",
			Name:      "chat_requests_total",
			Help:      "Chat requests by classified intent.",
		}, []string{"intent"}),
		ChatPolish: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cwn",
			Name:      "chat_polish_total",
			Help:      "LLM polish attempts by outcome.",
		}, []string{"outcome"}),
	}
}
