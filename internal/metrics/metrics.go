// Package metrics holds the prometheus collectors for completion calls and
// summarization runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "recap"

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	CompletionRequests *prometheus.CounterVec
	CompletionDuration *prometheus.HistogramVec
	SummaryChunks      prometheus.Histogram
	SummaryRuns        *prometheus.CounterVec
	RefinementOutcomes *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CompletionRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "completion",
			Name:      "requests_total",
			Help:      "Completion calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		CompletionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "completion",
			Name:      "duration_seconds",
			Help:      "Latency of completion calls.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
		}, []string{"provider"}),
		SummaryChunks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "summary",
			Name:      "chunks",
			Help:      "Number of chunks per summarization (1 for the single-pass path).",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 12, 16},
		}),
		SummaryRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "summary",
			Name:      "runs_total",
			Help:      "Summarization runs by path and outcome.",
		}, []string{"path", "outcome"}),
		RefinementOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "refinement",
			Name:      "outcomes_total",
			Help:      "Refinement replies classified as replacement summary or conversational reply.",
		}, []string{"kind"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.CompletionRequests,
			m.CompletionDuration,
			m.SummaryChunks,
			m.SummaryRuns,
			m.RefinementOutcomes,
		)
	}
	return m
}

// ObserveCompletion records one completion call.
func (m *Metrics) ObserveCompletion(provider string, seconds float64, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.CompletionRequests.WithLabelValues(provider, outcome).Inc()
	m.CompletionDuration.WithLabelValues(provider).Observe(seconds)
}

// ObserveSummary records one summarization run. path is "single" or "chunked".
func (m *Metrics) ObserveSummary(path string, chunks int, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.SummaryRuns.WithLabelValues(path, outcome).Inc()
	if err == nil {
		m.SummaryChunks.Observe(float64(chunks))
	}
}

// ObserveRefinement records the classification of one refinement reply.
func (m *Metrics) ObserveRefinement(replaced bool) {
	if m == nil {
		return
	}
	kind := "reply"
	if replaced {
		kind = "summary"
	}
	m.RefinementOutcomes.WithLabelValues(kind).Inc()
}
