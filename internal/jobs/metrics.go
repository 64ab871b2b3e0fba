package jobs

import (
	"takeout/internal/core/application/usecases/commands"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values of takeout_sweep_orders_total.
const (
	OutcomeTransitioned = "transitioned"
	OutcomeSkipped      = "skipped"
	OutcomeFailed       = "failed"
)

// Metrics counts sweeper runs and the orders they touched, labelled by rule.
type Metrics struct {
	runs   *prometheus.CounterVec
	orders *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "takeout",
			Name:      "sweep_runs_total",
			Help:      "Sweeper runs by rule and result.",
		}, []string{"rule", "result"}),
		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "takeout",
			Name:      "sweep_orders_total",
			Help:      "Orders handled by the sweeper by rule and outcome.",
		}, []string{"rule", "outcome"}),
	}
	reg.MustRegister(m.runs, m.orders)
	return m
}

func (m *Metrics) observe(rule string, report commands.SweepReport, err error) {
	if err != nil {
		m.runs.WithLabelValues(rule, "error").Inc()
		return
	}
	m.runs.WithLabelValues(rule, "ok").Inc()
	m.orders.WithLabelValues(rule, OutcomeTransitioned).Add(float64(report.Transitioned))
	m.orders.WithLabelValues(rule, OutcomeSkipped).Add(float64(report.Skipped))
	m.orders.WithLabelValues(rule, OutcomeFailed).Add(float64(len(report.Failures)))
}
