// Package metrics holds the HTTP-level Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP collectors.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	ActivePageViews prometheus.GaugeFunc
	reg             prometheus.Registerer
}

// New registers the HTTP collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "leadengine_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		reg: reg,
	}
}

// ObserveRequest records one finished request.
func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route, statusLabel(status)).Observe(seconds)
}

// TrackActivePageViews exposes a live page-view count.
func (m *Metrics) TrackActivePageViews(count func() int) {
	if m == nil || m.ActivePageViews != nil {
		return
	}
	m.ActivePageViews = promauto.With(m.reg).NewGaugeFunc(prometheus.GaugeOpts{
		Name: "leadengine_active_page_views",
		Help: "Page views mounted and not yet ended",
	}, func() float64 { return float64(count()) })
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
