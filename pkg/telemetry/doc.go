// Package telemetry provides structured logging and metrics collection for
// the ContentForge pipeline.
//
// # Overview
//
// The telemetry package is the diagnostics surface of the pipeline: every
// other package logs through its Logger and the shared error accumulator
// mirrors into its Prometheus Metrics collector. No other package imports
// zerolog or the Prometheus client directly.
//
// # Components
//
// Logger: a thin wrapper around zerolog with component child loggers and
// field helpers for the identifiers this domain cares about (content kind,
// document key, load-pass run ID).
//
// Metrics: a Prometheus collector for validation errors, warnings,
// registrations, overwrites, and loader sweeps. A nil *Metrics is valid and
// inert, so callers never need to branch on whether metrics are enabled.
package telemetry
