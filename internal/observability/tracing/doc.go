// Package tracing provides OpenTelemetry tracing for the HTTP layer.
//
// Middleware opens a server span per request, propagating any incoming
// W3C trace context and echoing the trace id in the X-Trace-Id response
// header. The logging middleware picks the same trace id out of the
// request context, so a log line and its trace can be joined on either id.
//
// No exporter is configured here; the process uses whatever tracer
// provider is installed globally (the no-op provider by default, an SDK
// provider in tests or when the deployment wires one up).
package tracing
