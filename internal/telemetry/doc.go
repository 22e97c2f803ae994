// Package telemetry provides OpenTelemetry initialization and helpers
// for tracing, logs and metrics in the leftover recipe service.
//
// Export goes over OTLP/HTTP to any collector-compatible backend
// (Grafana Cloud, Better Stack, a local Tempo).
package telemetry
