// Package instrumentation provides OpenTelemetry metrics and tracing for
// the render pipeline and the remote task API surface.
//
// The Provider owns the meter and tracer providers and is configured from
// environment variables. Metrics can be exported via Prometheus (scraped
// from the watch-mode metrics server), OTLP, or stdout; tracing is off by
// default. All metric recorders are safe to call on a disabled provider.
package instrumentation
