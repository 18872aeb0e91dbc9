// Package metrics exposes Prometheus counters for check-in runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry      *prometheus.Registry
	checkIns      *prometheus.CounterVec
	notifications *prometheus.CounterVec
	runs          *prometheus.CounterVec
}

// New creates the collectors on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		checkIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hyv_checkin_total",
			Help: "Check-in attempts by game and outcome.",
		}, []string{"game", "outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hyv_notification_total",
			Help: "Discord webhook deliveries by outcome.",
		}, []string{"outcome"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hyv_runs_total",
			Help: "Check-in runs by trigger.",
		}, []string{"trigger"}),
	}
	m.registry.MustRegister(m.checkIns, m.notifications, m.runs)
	return m
}

func (m *Metrics) CheckIn(game, outcome string) {
	if m == nil {
		return
	}
	m.checkIns.WithLabelValues(game, outcome).Inc()
}

func (m *Metrics) Notification(success bool) {
	if m == nil {
		return
	}
	outcome := "failed"
	if success {
		outcome = "sent"
	}
	m.notifications.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Run(trigger string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(trigger).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
