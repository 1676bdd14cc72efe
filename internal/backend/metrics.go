package backend

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsObserver exports backend call counts and latencies to Prometheus.
type MetricsObserver struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsObserver registers its collectors on reg.
func NewMetricsObserver(reg prometheus.Registerer) *MetricsObserver {
	f := promauto.With(reg)
	return &MetricsObserver{
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "freightdesk",
				Subsystem: "backend",
				Name:      "requests_total",
				Help:      "Total number of backend calls by kind and outcome",
			},
			[]string{"call", "status_code", "outcome"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "freightdesk",
				Subsystem: "backend",
				Name:      "request_duration_seconds",
				Help:      "Duration of backend calls in seconds, retries included",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
			},
			[]string{"call"},
		),
	}
}

func (m *MetricsObserver) OnCallComplete(event CallEvent) {
	outcome := "ok"
	if !event.Success {
		outcome = "error"
	}
	m.requests.WithLabelValues(string(event.Call), strconv.Itoa(event.Status), outcome).Inc()
	m.duration.WithLabelValues(string(event.Call)).Observe((time.Duration(event.LatencyMs) * time.Millisecond).Seconds())
}
