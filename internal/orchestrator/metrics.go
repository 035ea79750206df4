package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	probeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamdir_probe_total",
		Help: "Total number of stream validation probes, by outcome.",
	}, []string{"outcome"})

	taskCompletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamdir_task_completed_total",
		Help: "Total number of orchestrator tasks that reached a terminal state, by status.",
	}, []string{"status"})
)

// Metrics records probe and task outcomes against the default Prometheus
// registry. It carries no state of its own; every Orchestrator shares the
// same package-level collectors.
type Metrics struct{}

// NewMetrics returns a handle onto the package's shared collectors.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// ObserveProbe records one validation probe's outcome.
func (m *Metrics) ObserveProbe(valid bool) {
	if valid {
		probeTotal.WithLabelValues("valid").Inc()
		return
	}
	probeTotal.WithLabelValues("invalid").Inc()
}

// ObserveTaskStatus records a task reaching a terminal state.
func (m *Metrics) ObserveTaskStatus(status string) {
	taskCompletedTotal.WithLabelValues(status).Inc()
}
