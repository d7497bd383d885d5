package http

import (
	"context"
	"sort"
	"sync"
	"time"

	"savvy-blog/internal/observability/slo"
)

// sloWindow accumulates request outcomes for one reporting interval.
// MetricsMiddleware feeds it; StartSLOUpdater drains it periodically and
// publishes the derived SLO gauges.
type sloWindow struct {
	mu        sync.Mutex
	total     int64
	errors    int64 // 5xx responses
	durations []float64
}

var currentSLOWindow = &sloWindow{}

// observeSLO records one request outcome in the current window.
func observeSLO(status int, duration time.Duration) {
	w := currentSLOWindow
	w.mu.Lock()
	w.total++
	if status >= 500 {
		w.errors++
	}
	w.durations = append(w.durations, duration.Seconds())
	w.mu.Unlock()
}

// drain returns the window's counters and resets it.
func (w *sloWindow) drain() (total, errors int64, durations []float64) {
	w.mu.Lock()
	total, errors, durations = w.total, w.errors, w.durations
	w.total, w.errors, w.durations = 0, 0, nil
	w.mu.Unlock()
	return total, errors, durations
}

// quantile returns the q-th quantile of samples using nearest-rank.
// Sorts in place.
func quantile(samples []float64, q float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sort.Float64s(samples)
	rank := int(q*float64(len(samples))+0.5) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(samples) {
		rank = len(samples) - 1
	}
	return samples[rank]
}

// StartSLOUpdater publishes SLO gauges from recent request outcomes every
// interval until ctx is canceled. An empty window leaves the gauges at
// their previous values.
func StartSLOUpdater(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			total, errors, durations := currentSLOWindow.drain()
			if total == 0 {
				continue
			}

			errorRate := float64(errors) / float64(total)
			slo.UpdateAvailability(1 - errorRate)
			slo.UpdateErrorRate(errorRate)
			slo.UpdateLatencyP95(quantile(durations, 0.95))
			slo.UpdateLatencyP99(quantile(durations, 0.99))
		}
	}
}
