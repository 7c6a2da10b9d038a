package async

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK        = "ok"
	outcomeCancelled = "cancelled"
	outcomeFailed    = "failed"
)

type poolMetrics struct {
	tasks    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newPoolMetrics(reg prometheus.Registerer) *poolMetrics {
	if reg == nil {
		return nil
	}

	m := &poolMetrics{
		tasks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "newsroom_offload_tasks_total",
				Help: "Tasks executed on the blocking work pool, by outcome.",
			},
			[]string{"task", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "newsroom_offload_task_duration_seconds",
				Help:    "Time from submission to completion of blocking work pool tasks.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"task"},
		),
	}
	reg.MustRegister(m.tasks, m.duration)
	return m
}

func (m *poolMetrics) observe(task string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.tasks.WithLabelValues(task, outcome(err)).Inc()
	m.duration.WithLabelValues(task).Observe(elapsed.Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrCancelled):
		return outcomeCancelled
	default:
		return outcomeFailed
	}
}
