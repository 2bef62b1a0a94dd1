package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ranking Prometheus metrics.
var (
	RankRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cavist",
			Name:      "rank_requests_total",
			Help:      "Total number of ranking calls",
		},
		[]string{"catalog", "outcome"}, // outcome: "ok" / "no_match" / "empty_catalog"
	)

	RankCandidates = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cavist",
			Name:      "rank_candidates",
			Help:      "Candidates passing the keep-gate per ranking call",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"catalog"},
	)

	RankBudgetRelaxedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cavist",
			Name:      "rank_budget_relaxed_total",
			Help:      "Ranking calls that fell back to the relaxed budget pass",
		},
		[]string{"catalog"},
	)
)

// LLM Prometheus metrics.
var (
	ChatRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cavist",
			Name:      "chat_requests_total",
			Help:      "Total number of chat completion requests",
		},
		[]string{"provider", "model", "status"},
	)

	ChatRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cavist",
			Name:      "chat_request_duration_seconds",
			Help:      "Chat completion request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "model"},
	)

	ChatTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cavist",
			Name:      "chat_tokens_total",
			Help:      "Total chat completion tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)
)

var rankMetricsRegistered bool

// RegisterRankMetrics registers ranking and chat metrics. Must be called once from main.
func RegisterRankMetrics() {
	if rankMetricsRegistered {
		return
	}
	prometheus.MustRegister(RankRequestsTotal)
	prometheus.MustRegister(RankCandidates)
	prometheus.MustRegister(RankBudgetRelaxedTotal)
	prometheus.MustRegister(ChatRequestsTotal)
	prometheus.MustRegister(ChatRequestDuration)
	prometheus.MustRegister(ChatTokensTotal)
	rankMetricsRegistered = true
}
