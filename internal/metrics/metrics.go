// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package metrics exports blend tree activity as
// Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gviegas/anim/blend"
)

// Collector records tree evaluations.
// It implements blend.Observer.
type Collector struct {
	evals     prometheus.Counter
	nodes     prometheus.Counter
	fallbacks *prometheus.CounterVec
	duration  prometheus.Histogram
}

var _ blend.Observer = (*Collector)(nil)

// New creates a collector whose metrics are registered
// with reg. It panics if registration fails.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		evals: f.NewCounter(prometheus.CounterOpts{
			Name: "anim_tree_evaluations_total",
			Help: "Total blend tree evaluations",
		}),
		nodes: f.NewCounter(prometheus.CounterOpts{
			Name: "anim_node_evaluations_total",
			Help: "Total blend node evaluations",
		}),
		fallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "anim_node_fallbacks_total",
			Help: "Total blend nodes replaced by the identity operation",
		}, []string{"type"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "anim_tree_evaluation_duration_seconds",
			Help:    "Blend tree evaluation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10), // 1µs to ~260ms
		}),
	}
}

// Evaluated implements blend.Observer.
func (c *Collector) Evaluated(nodes int, elapsed time.Duration) {
	c.evals.Inc()
	c.nodes.Add(float64(nodes))
	c.duration.Observe(elapsed.Seconds())
}

// Fallback implements blend.Observer.
func (c *Collector) Fallback(typ blend.NodeType, _ string) {
	c.fallbacks.WithLabelValues(typ.String()).Inc()
}
