package preview

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// outcomesTotal counts render outcomes by kind.
// Labels: outcome (pass_through, not_found, server_error, document)
var outcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "preview_render_outcomes_total",
		Help: "Total number of preview render outcomes by kind",
	},
	[]string{"outcome"},
)

func recordOutcome(kind Kind) {
	outcomesTotal.WithLabelValues(kind.String()).Inc()
}
