package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "shopfront"
)

var (
	regionDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

	// Access gate
	GateDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Access gate decisions by requirement and outcome.",
	}, []string{"requirement", "outcome", "reason"})

	SessionResolveFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolve_failures_total",
		Help:      "Session lookups that errored and were treated as denied.",
	})

	// Progressive regions
	RegionResolveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "region_resolve_duration_seconds",
		Help:      "Time from region start until its content was ready.",
		Buckets:   regionDurationBuckets,
	}, []string{"region"})

	RegionOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "region_outcomes_total",
		Help:      "Progressive region outcomes: resolved, fallback or canceled.",
	}, []string{"region", "outcome"})
)
