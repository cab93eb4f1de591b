package chat

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for a group chat. All methods are
// nil-safe so the orchestrator can run without metrics wired.
type Metrics struct {
	turnsTotal        *prometheus.CounterVec
	terminationsTotal *prometheus.CounterVec
	stepDuration      prometheus.Histogram
	stepErrors        prometheus.Counter
}

// NewMetrics creates and registers the group-chat collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agentchat",
			Name:      "turns_total",
			Help:      "Turns taken, by speaker.",
		}, []string{"speaker"}),
		terminationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agentchat",
			Name:      "terminations_total",
			Help:      "Conversations terminated, by reason.",
		}, []string{"reason"}),
		stepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "agentchat",
			Name:      "step_duration_seconds",
			Help:      "Wall time of one orchestrator step.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		stepErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agentchat",
			Name:      "step_errors_total",
			Help:      "Steps that failed before appending a turn.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.turnsTotal, m.terminationsTotal, m.stepDuration, m.stepErrors)
	}
	return m
}

func (m *Metrics) observeTurn(speaker string, took time.Duration) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(speaker).Inc()
	m.stepDuration.Observe(took.Seconds())
}

func (m *Metrics) observeTermination(reason TerminationReason) {
	if m == nil {
		return
	}
	m.terminationsTotal.WithLabelValues(string(reason)).Inc()
}

func (m *Metrics) observeError() {
	if m == nil {
		return
	}
	m.stepErrors.Inc()
}
