package mockapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what the mock backend served. Each server owns its own
// registry so several servers can run side by side in tests.
type Metrics struct {
	Registry        *prometheus.Registry
	RequestsTotal   *prometheus.CounterVec
	RecordsStored   prometheus.Gauge
	RequestDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clientdesk_mock_requests_total",
			Help: "Requests served by the mock backend, by operation and status code",
		}, []string{"op", "code"}),
		RecordsStored: factory.NewGauge(prometheus.GaugeOpts{
			Name: "clientdesk_mock_records",
			Help: "Records currently held by the mock backend",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clientdesk_mock_request_duration_seconds",
			Help:    "Duration of mock backend requests",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"op"}),
	}
}
