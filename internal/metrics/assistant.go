package metrics

import "github.com/prometheus/client_golang/prometheus"

// Assistant pipeline collectors. Registered explicitly from main via
// RegisterAssistantMetrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tabula",
			Name:      "content_searches_total",
			Help:      "Total content searches by outcome",
		},
		[]string{"status"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tabula",
			Name:      "content_search_duration_seconds",
			Help:      "Content search duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	CommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tabula",
			Name:      "commands_total",
			Help:      "Total dispatched assistant commands by action and outcome",
		},
		[]string{"action", "status"},
	)

	ModelRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tabula",
			Name:      "model_requests_total",
			Help:      "Total LLM completion requests by model and outcome",
		},
		[]string{"model", "status"},
	)

	ModelRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tabula",
			Name:      "model_request_duration_seconds",
			Help:      "LLM completion request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"model"},
	)

	ModelTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tabula",
			Name:      "model_tokens_total",
			Help:      "Total LLM tokens consumed by model and kind",
		},
		[]string{"model", "kind"},
	)
)

// RegisterAssistantMetrics registers the assistant pipeline collectors.
func RegisterAssistantMetrics() {
	prometheus.MustRegister(
		SearchesTotal,
		SearchDuration,
		CommandsTotal,
		ModelRequestsTotal,
		ModelRequestDuration,
		ModelTokensTotal,
	)
}
