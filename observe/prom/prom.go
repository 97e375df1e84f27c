// Package prom exports deferred-task metrics to Prometheus.
package prom

import (
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is an observer backed by Prometheus collectors. It satisfies the
// deferred.Observer interface and is safe for concurrent use.
type Metrics struct {
	started   prometheus.Counter
	completed prometheus.Counter
	failed    prometheus.Counter
	cancelled prometheus.Counter
	delivered prometheus.Counter
	discarded prometheus.Counter

	duration     prometheus.Histogram
	deliveryWait prometheus.Histogram
}

// New builds the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		started: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "deferred", Name: "tasks_started_total",
			Help: "Tasks submitted to an executor.",
		}),
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "deferred", Name: "tasks_completed_total",
			Help: "Tasks whose work returned a value.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "deferred", Name: "tasks_failed_total",
			Help: "Tasks whose work returned an error or panicked.",
		}),
		cancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "deferred", Name: "tasks_cancelled_total",
			Help: "Tasks cancelled before their outcome was recorded.",
		}),
		delivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "deferred", Name: "callbacks_delivered_total",
			Help: "Consumer callbacks invoked.",
		}),
		discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "deferred", Name: "outcomes_discarded_total",
			Help: "Outcomes dropped because the task was already cancelled.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "deferred", Name: "task_duration_seconds",
			Help:    "Wall time of the work function.",
			Buckets: prometheus.DefBuckets,
		}),
		deliveryWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "deferred", Name: "delivery_wait_seconds",
			Help:    "Time an outcome sat recorded before its callback ran.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		m.started, m.completed, m.failed, m.cancelled,
		m.delivered, m.discarded, m.duration, m.deliveryWait,
	)
	return m
}

func (m *Metrics) TaskStarted(uuid.UUID) { m.started.Inc() }

func (m *Metrics) TaskFinished(_ uuid.UUID, dur time.Duration, err error) {
	if err != nil {
		m.failed.Inc()
	} else {
		m.completed.Inc()
	}
	m.duration.Observe(dur.Seconds())
}

func (m *Metrics) TaskCancelled(uuid.UUID) { m.cancelled.Inc() }

func (m *Metrics) CallbackDelivered(_ uuid.UUID, wait time.Duration) {
	m.delivered.Inc()
	m.deliveryWait.Observe(wait.Seconds())
}

func (m *Metrics) OutcomeDiscarded(uuid.UUID) { m.discarded.Inc() }
