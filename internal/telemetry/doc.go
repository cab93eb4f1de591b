// Package telemetry builds the zap logger from configuration. Tracing uses
// the global OpenTelemetry tracer provider; exporter lifecycle belongs to the
// host process, not this library.
package telemetry
