package analytics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for event emission.
type Metrics struct {
	Emitted *prometheus.CounterVec
	Dropped *prometheus.CounterVec
}

// NewMetrics registers emitter metrics on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Emitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leadengine_events_emitted_total",
			Help: "Total number of analytics events pushed to the sink",
		}, []string{"event"}),
		Dropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leadengine_events_dropped_total",
			Help: "Total number of analytics events the sink rejected",
		}, []string{"event"}),
	}
}

// IncEmitted increments the emitted counter for an event name.
func (m *Metrics) IncEmitted(event string) {
	if m == nil {
		return
	}
	m.Emitted.WithLabelValues(event).Inc()
}

// IncDropped increments the dropped counter for an event name.
func (m *Metrics) IncDropped(event string) {
	if m == nil {
		return
	}
	m.Dropped.WithLabelValues(event).Inc()
}
