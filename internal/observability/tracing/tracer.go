package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the tracer every span in this service starts from.
var tracer = otel.Tracer("savvy-blog")

// GetTracer returns the service tracer for creating spans outside the
// HTTP middleware.
func GetTracer() trace.Tracer {
	return tracer
}

// SetupPropagation installs the W3C trace context and baggage propagators
// so inbound traceparent headers join their originating trace. Called once
// at startup.
func SetupPropagation() {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}
