// Package metrics exposes Prometheus counters for session generation,
// feedback and HTTP traffic.
package metrics

import (
	"net/http"
	"time"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "myworkout"

// Manager holds the registered collectors. It implements engine.Recorder.
type Manager struct {
	// counters
	CounterSessions       *prometheus.CounterVec
	CounterDeloads        *prometheus.CounterVec
	CounterGenerationErrs *prometheus.CounterVec
	CounterFeedback       prometheus.Counter
	CounterRequests       *prometheus.CounterVec

	// histograms
	HistGenerationDuration prometheus.Histogram

	gatherer prometheus.Gatherer
}

// NewTestManager returns a Manager on a private registry.
func NewTestManager() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("test", reg), reg
}

// NewManager registers all collectors on reg under the given subsystem.
func NewManager(subsystem string, reg *prometheus.Registry) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterSessions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sessions_generated_total",
			Help:      "Generated workout sessions by block phase",
		}, []string{"phase"}),
		CounterDeloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "deloads_total",
			Help:      "Deload sessions by trigger (phase or readiness)",
		}, []string{"trigger"}),
		CounterGenerationErrs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "generation_errors_total",
			Help:      "Failed generation requests by kind",
		}, []string{"kind"}),
		CounterFeedback: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "feedback_records_total",
			Help:      "Stored per-exercise feedback records",
		}),
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status",
		}, []string{"method", "status"}),
		HistGenerationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "generation_duration_seconds",
			Help:      "Time to generate and persist one session",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		gatherer: reg,
	}
}

// SessionGenerated records a successful generation.
func (m *Manager) SessionGenerated(phase models.Phase, deloadTrigger string, elapsed time.Duration) {
	m.CounterSessions.WithLabelValues(string(phase)).Inc()
	if deloadTrigger != "" {
		m.CounterDeloads.WithLabelValues(deloadTrigger).Inc()
	}
	m.HistGenerationDuration.Observe(elapsed.Seconds())
}

// GenerationFailed records a failed generation.
func (m *Manager) GenerationFailed(kind string) {
	m.CounterGenerationErrs.WithLabelValues(kind).Inc()
}

// FeedbackRecorded adds n stored feedback records.
func (m *Manager) FeedbackRecorded(n int) {
	m.CounterFeedback.Add(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
