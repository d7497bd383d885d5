// Package slo exposes service level objective gauges for the blog backend.
//
// The gauges are published values, not raw measurements: the HTTP layer
// keeps a rolling window of request outcomes and pushes derived ratios and
// percentiles here once a minute. Alerting compares the gauges against the
// targets below.
package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SLO targets. The preview endpoint serves crawlers that retry on failure,
// so availability is the binding objective; latency targets cover the JSON
// API where a browser is waiting.
const (
	// AvailabilitySLO is the target non-5xx ratio in percent.
	AvailabilitySLO = 99.9

	// LatencyP95SLO is the p95 latency target in seconds.
	LatencyP95SLO = 0.200

	// LatencyP99SLO is the p99 latency target in seconds.
	LatencyP99SLO = 0.500

	// ErrorRateSLO is the maximum acceptable 5xx ratio.
	ErrorRateSLO = 0.001
)

var (
	// SLOAvailability is the current availability ratio (0-1):
	// (total requests - 5xx) / total requests over the last window.
	SLOAvailability = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_availability_ratio",
			Help: "Current availability ratio (0-1), target: 0.999",
		},
	)

	// SLOLatencyP95 is the p95 request latency over the last window.
	SLOLatencyP95 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_latency_p95_seconds",
			Help: "Current p95 latency in seconds, target: 0.200",
		},
	)

	// SLOLatencyP99 is the p99 request latency over the last window.
	SLOLatencyP99 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_latency_p99_seconds",
			Help: "Current p99 latency in seconds, target: 0.500",
		},
	)

	// SLOErrorRate is the 5xx ratio (0-1) over the last window.
	SLOErrorRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_error_rate_ratio",
			Help: "Current error rate ratio (0-1), target: 0.001",
		},
	)
)

// UpdateAvailability publishes the availability ratio for the last window.
func UpdateAvailability(ratio float64) {
	SLOAvailability.Set(ratio)
}

// UpdateLatencyP95 publishes the p95 latency for the last window.
func UpdateLatencyP95(seconds float64) {
	SLOLatencyP95.Set(seconds)
}

// UpdateLatencyP99 publishes the p99 latency for the last window.
func UpdateLatencyP99(seconds float64) {
	SLOLatencyP99.Set(seconds)
}

// UpdateErrorRate publishes the 5xx ratio for the last window.
func UpdateErrorRate(ratio float64) {
	SLOErrorRate.Set(ratio)
}
