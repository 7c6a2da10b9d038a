// Package observability owns the private Prometheus registry, the /metrics
// handler and HTTP request instrumentation. Tracing uses whatever
// OpenTelemetry provider is installed globally.
package observability
