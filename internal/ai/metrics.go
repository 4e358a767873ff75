package ai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SuggestionConfidence tracks the confidence of every Suggest call, by
// the action recommended, following the same package-level
// promauto.NewHistogramVec pattern internal/fraud/metrics.go uses.
var SuggestionConfidence = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "poker_ai_suggestion_confidence",
	Help:    "Distribution of AI suggester confidence values, by recommended action",
	Buckets: []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
}, []string{"action"})

// RecordSuggestion records one Suggest call's outcome.
func RecordSuggestion(s Suggestion) {
	SuggestionConfidence.WithLabelValues(s.Action.String()).Observe(s.Confidence)
}
