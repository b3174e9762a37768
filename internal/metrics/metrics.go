// Package metrics defines the Prometheus collectors the server exports.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Draw outcomes.
const (
	OutcomeOK         = "ok"
	OutcomeInfeasible = "infeasible"
	OutcomeRejected   = "rejected"
)

// Metrics groups the collectors. Use New for a private registry, which keeps
// tests independent of each other.
type Metrics struct {
	Registry *prometheus.Registry

	Draws           *prometheus.CounterVec
	DrawAttempts    prometheus.Histogram
	RPCRequests     *prometheus.CounterVec
	RPCDuration     *prometheus.HistogramVec
	ShareDecodeFail prometheus.Counter
}

// New creates the collectors and registers them, along with the Go runtime
// and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Draws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "santa",
			Name:      "draws_total",
			Help:      "Draw requests by outcome.",
		}, []string{"outcome"}),
		DrawAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "santa",
			Name:      "draw_attempts",
			Help:      "Shuffles needed per successful draw.",
			Buckets:   []float64{1, 2, 3, 5, 10, 20, 50, 100},
		}),
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "santa",
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "santa",
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		ShareDecodeFail: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "santa",
			Name:      "share_decode_failures_total",
			Help:      "Share tokens that could not be decoded.",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Draws,
		m.DrawAttempts,
		m.RPCRequests,
		m.RPCDuration,
		m.ShareDecodeFail,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// ObserveDraw records a draw outcome. attempts is only used for OutcomeOK.
func (m *Metrics) ObserveDraw(outcome string, attempts int) {
	if m == nil {
		return
	}
	m.Draws.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.DrawAttempts.Observe(float64(attempts))
	}
}

// ObserveDecodeFailure counts a rejected share token.
func (m *Metrics) ObserveDecodeFailure() {
	if m == nil {
		return
	}
	m.ShareDecodeFail.Inc()
}
