package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics provides Prometheus metrics for the content pipeline.
type Metrics struct {
	config MetricsConfig

	// Validation metrics
	validationErrors *prometheus.CounterVec
	warnings         *prometheus.CounterVec

	// Registration metrics
	registrations *prometheus.CounterVec
	overwrites    *prometheus.CounterVec

	// Loader metrics
	sweeps      prometheus.Counter
	kindsLoaded prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics collector with the given configuration.
// When metrics are disabled the returned collector is nil and safe to ignore;
// all call sites must tolerate a nil *Metrics.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	registry := prometheus.NewRegistry()

	m := &Metrics{
		config:   cfg,
		registry: registry,

		validationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "validation_errors_total",
			Help:      "Validation failures by error class.",
		}, []string{"class"}),

		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "warnings_total",
			Help:      "Non-blocking warnings by class.",
		}, []string{"class"}),

		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "registrations_total",
			Help:      "Registry entries accepted, by content kind.",
		}, []string{"kind"}),

		overwrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "overwrites_total",
			Help:      "Registry entries overwritten by a later registration, by kind.",
		}, []string{"kind"}),

		sweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "loader_sweeps_total",
			Help:      "Readiness sweeps performed by the loader.",
		}),

		kindsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "kinds_loaded",
			Help:      "Content kinds that have completed loading.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.validationErrors,
		m.warnings,
		m.registrations,
		m.overwrites,
		m.sweeps,
		m.kindsLoaded,
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Registry returns the underlying Prometheus registry for exposition.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordValidationError counts one validation failure of the given class.
func (m *Metrics) RecordValidationError(class string) {
	if m == nil {
		return
	}
	m.validationErrors.WithLabelValues(class).Inc()
}

// RecordWarning counts one non-blocking warning of the given class.
func (m *Metrics) RecordWarning(class string) {
	if m == nil {
		return
	}
	m.warnings.WithLabelValues(class).Inc()
}

// RecordRegistration counts one accepted registry entry for a kind.
func (m *Metrics) RecordRegistration(kind string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(kind).Inc()
}

// RecordOverwrite counts one last-write-wins overwrite for a kind.
func (m *Metrics) RecordOverwrite(kind string) {
	if m == nil {
		return
	}
	m.overwrites.WithLabelValues(kind).Inc()
}

// RecordSweep counts one loader readiness sweep.
func (m *Metrics) RecordSweep() {
	if m == nil {
		return
	}
	m.sweeps.Inc()
}

// RecordKindLoaded bumps the gauge of fully loaded kinds.
func (m *Metrics) RecordKindLoaded() {
	if m == nil {
		return
	}
	m.kindsLoaded.Inc()
}
