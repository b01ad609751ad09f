// Package metrics provides Prometheus exporters for the sleep records API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Advice sources recorded by AdviceServedTotal.
const (
	AdviceSourceLLM      = "llm"
	AdviceSourceCache    = "cache"
	AdviceSourceFallback = "fallback"
	AdviceSourceEmpty    = "empty"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route pattern and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	SleepRecordMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sleep_record_mutations_total",
			Help: "Total sleep record create/update/delete operations",
		},
		[]string{"operation"},
	)

	AdviceServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sleep_advice_served_total",
			Help: "Total advice responses by source (llm, cache, fallback, empty)",
		},
		[]string{"source"},
	)

	LLMRequestDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Latency of outbound LLM advice requests",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 250ms to ~32s
		},
	)
)

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordMutation records a successful sleep record mutation.
func RecordMutation(operation string) {
	SleepRecordMutationsTotal.WithLabelValues(operation).Inc()
}

// RecordAdviceServed records where an advice response came from.
func RecordAdviceServed(source string) {
	AdviceServedTotal.WithLabelValues(source).Inc()
}

// ObserveLLMRequest records the latency of an LLM call.
func ObserveLLMRequest(duration time.Duration) {
	LLMRequestDurationSeconds.Observe(duration.Seconds())
}
