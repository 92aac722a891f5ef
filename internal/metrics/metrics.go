// Package metrics provides Prometheus metrics for secondbrain.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SummaryOutcomes counts how content records got their summary.
	SummaryOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "secondbrain",
			Name:      "summary_outcomes_total",
			Help:      "Summary outcomes by source and status (summarized, reused, skipped, failed)",
		},
		[]string{"source", "status"},
	)

	// ContentCreated counts content creation attempts by result.
	ContentCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "secondbrain",
			Name:      "content_created_total",
			Help:      "Content creation attempts by result (created, duplicate)",
		},
		[]string{"result"},
	)

	// ShareResolutions counts share link lookups.
	ShareResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "secondbrain",
			Name:      "share_resolutions_total",
			Help:      "Share link resolutions by kind (collection, item) and result (ok, wrong_url, not_found)",
		},
		[]string{"kind", "result"},
	)
)

// RecordSummary records one summary outcome.
func RecordSummary(source, status string) {
	SummaryOutcomes.WithLabelValues(source, status).Inc()
}

// RecordContentCreated records a content creation attempt.
func RecordContentCreated(result string) {
	ContentCreated.WithLabelValues(result).Inc()
}

// RecordShareResolution records a share link lookup.
func RecordShareResolution(kind, result string) {
	ShareResolutions.WithLabelValues(kind, result).Inc()
}
