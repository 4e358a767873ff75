package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric vars follow the same package-level promauto.New*Vec pattern the
// teacher uses for its fraud-detection instrumentation, renamed into a
// poker_hand_* namespace for operational rather than fraud telemetry.
var (
	DecisionLatencyMean = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "poker_hand_decision_latency_mean_seconds",
		Help:    "Mean time between consecutive actions for a player within a hand",
		Buckets: prometheus.DefBuckets,
	}, []string{"table_id"})

	DecisionLatencyStdDev = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "poker_hand_decision_latency_stddev_seconds",
		Help:    "Standard deviation of per-player decision time within a hand",
		Buckets: prometheus.DefBuckets,
	}, []string{"table_id"})

	RaiseSizingEntropy = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "poker_hand_raise_sizing_entropy_bits",
		Help:    "Shannon entropy of a player's bet/raise size buckets within a hand",
		Buckets: []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4},
	}, []string{"table_id"})

	HandsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "poker_hand_telemetry_processed_total",
		Help: "Total number of completed hands telemetry has processed",
	}, []string{"table_id"})

	PublishErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "poker_hand_telemetry_publish_errors_total",
		Help: "Total number of failures publishing a hand summary to Kafka",
	}, []string{"table_id"})
)

// RecordSignals records one player's per-hand signals into the
// latency/entropy histograms.
func RecordSignals(tableID string, s Signals) {
	DecisionLatencyMean.WithLabelValues(tableID).Observe(s.DecisionLatencyMean)
	DecisionLatencyStdDev.WithLabelValues(tableID).Observe(s.DecisionLatencyStdDev)
	RaiseSizingEntropy.WithLabelValues(tableID).Observe(s.RaiseSizingEntropy)
}

// RecordHandProcessed increments the per-table processed-hand counter.
func RecordHandProcessed(tableID string) {
	HandsProcessed.WithLabelValues(tableID).Inc()
}

// RecordPublishError increments the per-table publish-failure counter.
func RecordPublishError(tableID string) {
	PublishErrors.WithLabelValues(tableID).Inc()
}
