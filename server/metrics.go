package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "filkompedia"
	metricsSubsystem = "server"
)

type serverMetrics struct {
	requests  *prometheus.CounterVec
	refreshes *prometheus.CounterVec
	throttled prometheus.Counter
}

func newServerMetrics(reg prometheus.Registerer) (*serverMetrics, error) {
	m := &serverMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "requests_total",
			Help:      "API requests by route pattern and status code.",
		}, []string{"route", "code"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "session_refreshes_total",
			Help:      "Calls to the session refresh endpoint by result.",
		}, []string{"result"}),
		throttled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "throttled_total",
			Help:      "Requests refused by the per address rate limit.",
		}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.refreshes, m.throttled} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
