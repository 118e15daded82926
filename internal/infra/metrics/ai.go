package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	aiCallsLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_calls_latency_ms",
			Help:    "AI call latency distribution in milliseconds.",
			Buckets: []float64{50, 100, 200, 400, 800, 1600, 3000, 5000, 10000, 20000},
		},
		[]string{"provider", "kind", "success"},
	)

	aiFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_fallbacks_total",
			Help: "Degraded AI responses by kind and fallback source.",
		},
		[]string{"kind", "source"},
	)

	aiPromptTokens = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_prompt_tokens",
			Help:    "Prompt token counts per kind.",
			Buckets: []float64{64, 128, 256, 512, 1024, 2048, 4096},
		},
		[]string{"kind"},
	)
)

func init() {
	register(aiCallsLatencyMs, aiFallbacksTotal, aiPromptTokens)
}

func ObserveAICall(provider, kind string, latencyMs int, success bool) {
	aiCallsLatencyMs.WithLabelValues(norm(provider), norm(kind), strconv.FormatBool(success)).
		Observe(float64(latencyMs))
}

func IncAIFallback(kind, source string) {
	aiFallbacksTotal.WithLabelValues(norm(kind), norm(source)).Inc()
}

func ObservePromptTokens(kind string, tokens int) {
	aiPromptTokens.WithLabelValues(norm(kind)).Observe(float64(tokens))
}
