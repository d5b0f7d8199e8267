// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coverage",
		Name:      "analyses_total",
		Help:      "Analyses run, by outcome (ok, invalid).",
	}, []string{"outcome"})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "coverage",
		Name:      "analysis_duration_seconds",
		Help:      "Time spent computing one analysis.",
		Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})

	AnalysisPoints = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "coverage",
		Name:      "analysis_points",
		Help:      "Number of input points per analysis.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})

	FrontierSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "coverage",
		Name:      "frontier_size",
		Help:      "Number of frontier points per analysis, anchors included.",
		Buckets:   prometheus.ExponentialBuckets(2, 2, 10),
	})

	Comparisons = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "coverage",
		Name:      "comparisons",
		Help:      "Stored comparisons at the last stats run.",
	})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coverage",
		Name:      "events_published_total",
		Help:      "Hermes events published, by kind and outcome.",
	}, []string{"kind", "outcome"})
)
