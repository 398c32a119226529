// Package observability provides a Prometheus-backed implementation of the
// runtime's lifecycle hooks.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aretw0/hsm"
)

// Collector counts drive loop activity and observes loop durations.
type Collector struct {
	steps    prometheus.Counter
	lifts    prometheus.Counter
	failures prometheus.Counter
	duration prometheus.Histogram
}

// NewCollector creates a Collector registered on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		steps: factory.NewCounter(prometheus.CounterOpts{
			Name: "hsm_steps_total",
			Help: "State computations resumed by drive loops.",
		}),
		lifts: factory.NewCounter(prometheus.CounterOpts{
			Name: "hsm_lifts_total",
			Help: "Drive loops terminated by a lift.",
		}),
		failures: factory.NewCounter(prometheus.CounterOpts{
			Name: "hsm_failures_total",
			Help: "Drive loops terminated by an error.",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hsm_loop_duration_seconds",
			Help:    "Wall time of drive loops from Init to termination.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Steps exposes the step counter, mainly for tests.
func (c *Collector) Steps() prometheus.Counter { return c.steps }

// Lifts exposes the lift counter, mainly for tests.
func (c *Collector) Lifts() prometheus.Counter { return c.lifts }

// Failures exposes the failure counter, mainly for tests.
func (c *Collector) Failures() prometheus.Counter { return c.failures }

// Hooks returns the hook set to pass to hsm.WithHooks.
func (c *Collector) Hooks() hsm.Hooks {
	return hsm.Hooks{
		OnStep: func(_ context.Context, _ *hsm.StepEvent) {
			c.steps.Inc()
		},
		OnLift: func(_ context.Context, e *hsm.LiftEvent) {
			c.lifts.Inc()
			c.duration.Observe(e.Elapsed.Seconds())
		},
		OnError: func(_ context.Context, e *hsm.ErrorEvent) {
			c.failures.Inc()
			c.duration.Observe(e.Elapsed.Seconds())
		},
	}
}
