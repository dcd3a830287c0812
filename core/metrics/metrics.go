// Package metrics exports invocation counters and latencies to Prometheus.
package metrics

import (
	"context"

	"squeezer/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is a reconcile.Observer that records Prometheus metrics.
type Collector struct {
	invocations *prometheus.CounterVec
	failures    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// New creates a collector and registers its metrics with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "squeezer",
			Name:      "invocations_total",
			Help:      "Module invocations by entity, action and outcome.",
		}, []string{"entity", "action", "changed", "dry_run"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "squeezer",
			Name:      "invocation_failures_total",
			Help:      "Module invocations that ended with an error.",
		}, []string{"entity", "state"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "squeezer",
			Name:      "invocation_duration_seconds",
			Help:      "Module invocation latency.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 300},
		}, []string{"entity"}),
	}

	for _, col := range []prometheus.Collector{c.invocations, c.failures, c.duration} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Observe records one invocation.
func (c *Collector) Observe(ctx context.Context, rec reconcile.Record) error {
	entity := rec.Kind.Singular
	if rec.Failed() {
		c.failures.WithLabelValues(entity, string(rec.State)).Inc()
	} else {
		c.invocations.WithLabelValues(entity, string(rec.Action), boolLabel(rec.Changed), boolLabel(rec.DryRun)).Inc()
	}
	c.duration.WithLabelValues(entity).Observe(rec.Duration.Seconds())
	return nil
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
