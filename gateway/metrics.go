package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK           = "ok"
	outcomeUnauthorized = "unauthorized"
	outcomeError        = "error"

	resultSuccess = "success"
	resultFailure = "failure"
)

// Metrics counts gateway traffic. A nil *Metrics records nothing.
type Metrics struct {
	requests        *prometheus.CounterVec
	refreshes       *prometheus.CounterVec
	refreshWaits    prometheus.Counter
	retries         prometheus.Counter
	refreshDuration prometheus.Histogram
}

// NewMetrics creates the gateway collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "filkompedia",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "HTTP sends by outcome, retries included.",
		}, []string{"outcome"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "filkompedia",
			Subsystem: "gateway",
			Name:      "refresh_total",
			Help:      "Session renewal calls by result.",
		}, []string{"result"}),
		refreshWaits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "filkompedia",
			Subsystem: "gateway",
			Name:      "refresh_waits_total",
			Help:      "Requests that waited on a session renewal, including the one that started it.",
		}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "filkompedia",
			Subsystem: "gateway",
			Name:      "retries_total",
			Help:      "Requests replayed after a session renewal settled.",
		}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "filkompedia",
			Subsystem: "gateway",
			Name:      "refresh_duration_seconds",
			Help:      "Latency of session renewal calls.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.requests, m.refreshes, m.refreshWaits, m.retries, m.refreshDuration)
	return m
}

func (m *Metrics) request(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) waited() {
	if m == nil {
		return
	}
	m.refreshWaits.Inc()
}

func (m *Metrics) retried() {
	if m == nil {
		return
	}
	m.retries.Inc()
}

func (m *Metrics) refreshed(err error, took time.Duration) {
	if m == nil {
		return
	}
	result := resultSuccess
	if err != nil {
		result = resultFailure
	}
	m.refreshes.WithLabelValues(result).Inc()
	m.refreshDuration.Observe(took.Seconds())
}
