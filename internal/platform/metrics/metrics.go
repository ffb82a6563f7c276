package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	AuthAttempts   *prometheus.CounterVec
	Transactions   *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		AuthAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "atm_auth_attempts_total",
			Help: "Total authentication attempts partitioned by outcome",
		}, []string{"result"}),
		Transactions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "atm_transactions_total",
			Help: "Total completed money movements partitioned by kind",
		}, []string{"kind"}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "atm_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// RecordAuthAttempt counts one authentication attempt by outcome.
func (m *Metrics) RecordAuthAttempt(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	m.AuthAttempts.WithLabelValues(result).Inc()
}

// RecordTransaction counts one completed money movement.
func (m *Metrics) RecordTransaction(kind string) {
	m.Transactions.WithLabelValues(kind).Inc()
}

// ObserveLatency records request latency for a route.
func (m *Metrics) ObserveLatency(route string, d time.Duration) {
	m.RequestLatency.WithLabelValues(route).Observe(d.Seconds())
}
