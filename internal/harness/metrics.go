package harness

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics follow the same package-level promauto.New*Vec pattern as
// internal/fraud/metrics.go, renamed into a poker_harness_* namespace.
var (
	ActionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "poker_harness_action_duration_seconds",
		Help:    "Time spent applying one mutate cycle (load, transform, conditional write)",
		Buckets: prometheus.DefBuckets,
	})

	ConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "poker_harness_version_conflicts_total",
		Help: "Total number of optimistic version conflicts observed during mutate",
	})

	RetryBudgetExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "poker_harness_retry_budget_exhausted_total",
		Help: "Total number of mutate calls that exhausted their retry budget",
	})

	TimeoutClaimsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "poker_harness_timeout_claims_total",
		Help: "Total number of ClaimTimeout calls, by outcome",
	}, []string{"outcome"})

	ActionIdempotentReplays = promauto.NewCounter(prometheus.CounterOpts{
		Name: "poker_harness_action_idempotent_replays_total",
		Help: "Total number of Action calls served from the cached actionId replay",
	})
)

// RecordMutateAttempt records one mutate cycle's duration and whether it
// hit a version conflict.
func RecordMutateAttempt(durationSeconds float64, conflict bool) {
	ActionDuration.Observe(durationSeconds)
	if conflict {
		ConflictsTotal.Inc()
	}
}

// RecordRetryBudgetExhausted records a mutate call that never committed
// within maxAttempts/retryWindow.
func RecordRetryBudgetExhausted() {
	RetryBudgetExhausted.Inc()
}

// RecordTimeoutClaim records a ClaimTimeout outcome ("applied" or
// "rejected", the latter when the turn hadn't actually expired).
func RecordTimeoutClaim(outcome string) {
	TimeoutClaimsTotal.WithLabelValues(outcome).Inc()
}

// RecordActionReplay records an idempotent Action replay.
func RecordActionReplay() {
	ActionIdempotentReplays.Inc()
}
