package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts account operations and times batch jobs.
type Metrics struct {
	operations *prometheus.CounterVec
	jobs       *prometheus.HistogramVec
	interest   prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "banking",
			Name:      "operations_total",
			Help:      "Account operations by kind and outcome.",
		}, []string{"operation", "outcome"}),
		jobs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "banking",
			Name:      "job_duration_seconds",
			Help:      "Duration of batch sweeps.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"}),
		interest: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "banking",
			Name:      "interest_credited_total",
			Help:      "Interest credited to transactional accounts by accrual sweeps.",
		}),
	}
	reg.MustRegister(m.operations, m.jobs, m.interest)
	return m
}
