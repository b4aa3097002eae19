package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	VariantsBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vod",
			Subsystem: "pipeline",
			Name:      "variants_built_total",
			Help:      "Variants generated, by mode (normal or fast).",
		},
		[]string{"mode"},
	)

	VariantsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vod",
			Subsystem: "pipeline",
			Name:      "variants_skipped_total",
			Help:      "Variants skipped because their playlist already existed.",
		},
	)

	VariantFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vod",
			Subsystem: "pipeline",
			Name:      "variant_failures_total",
			Help:      "Failed variant builds, by pipeline step.",
		},
		[]string{"step"},
	)

	BuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vod",
			Subsystem: "pipeline",
			Name:      "build_duration_seconds",
			Help:      "Wall time of successful variant builds, by mode.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12),
		},
		[]string{"mode"},
	)
)
