package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// toolCallsTotal counts tool calls by tool and outcome.
	// Labels: tool (derive, validate, ..., unknown), status (ok, error)
	toolCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "symdiff",
		Subsystem: "server",
		Name:      "tool_calls_total",
		Help:      "Total tool calls by tool and status",
	}, []string{"tool", "status"})

	// validationFailuresTotal counts rejected expressions by error kind.
	validationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "symdiff",
		Subsystem: "server",
		Name:      "validation_failures_total",
		Help:      "Rejected expressions by validation error kind",
	}, []string{"kind"})

	toolLatencySeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "symdiff",
		Subsystem: "server",
		Name:      "tool_latency_seconds",
		Help:      "Tool call latency",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"tool"})
)

func recordToolCall(tool string, resp ToolResponse, seconds float64) {
	if !knownTool(tool) {
		tool = "unknown"
	}
	status := "ok"
	if resp.Error != "" {
		status = "error"
	}
	toolCallsTotal.WithLabelValues(tool, status).Inc()
	toolLatencySeconds.WithLabelValues(tool).Observe(seconds)
	if resp.ErrorKind != "" {
		validationFailuresTotal.WithLabelValues(resp.ErrorKind).Inc()
	}
}
