package document

import (
	"sync/atomic"

	"github.com/contentforge/contentforge/pkg/telemetry"
)

// Diagnostics is the shared error accumulator for one load pass. Validation
// failures never halt the pipeline; each failure degrades exactly one record
// and bumps these counters, which are read back for the post-load report.
type Diagnostics struct {
	errors   atomic.Int64
	warnings atomic.Int64
	metrics  *telemetry.Metrics
}

// NewDiagnostics creates an accumulator. The metrics collector may be nil.
func NewDiagnostics(metrics *telemetry.Metrics) *Diagnostics {
	return &Diagnostics{metrics: metrics}
}

// CountError records one validation failure of the given class.
func (d *Diagnostics) CountError(class ErrorClass) {
	d.errors.Add(1)
	d.metrics.RecordValidationError(string(class))
}

// CountWarning records one non-blocking warning of the given class.
func (d *Diagnostics) CountWarning(class ErrorClass) {
	d.warnings.Add(1)
	d.metrics.RecordWarning(string(class))
}

// CountRegistration records one accepted registry entry for a kind.
func (d *Diagnostics) CountRegistration(kind string) {
	d.metrics.RecordRegistration(kind)
}

// CountOverwrite records one last-write-wins registry overwrite for a kind.
// Overwrites are warnings, not errors.
func (d *Diagnostics) CountOverwrite(kind string) {
	d.warnings.Add(1)
	d.metrics.RecordOverwrite(kind)
}

// Errors returns the number of validation failures recorded so far.
func (d *Diagnostics) Errors() int64 {
	return d.errors.Load()
}

// Warnings returns the number of warnings recorded so far.
func (d *Diagnostics) Warnings() int64 {
	return d.warnings.Load()
}
