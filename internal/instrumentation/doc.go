// Package instrumentation provides OpenTelemetry metrics and tracing for
// the Gmail MCP server.
//
// Instrumentation is disabled by default: the server speaks MCP over
// stdio, so telemetry must never touch stdout. When enabled via
// INSTRUMENTATION_ENABLED=true, metrics and traces are pushed to an OTLP
// collector over HTTP; there is no pull endpoint and no stdout exporter.
//
// The zero-value Metrics recorder is a no-op, so callers can record
// unconditionally without checking whether telemetry is configured.
package instrumentation
