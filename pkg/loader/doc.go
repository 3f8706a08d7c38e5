// Package loader implements the dependency-gated, idempotent object loader.
//
// # Overview
//
// Each content kind carries a Descriptor: its document collection, the host
// modules it depends on, a manual WaitingForStart latch, and a monotonic
// loaded flag. The loader re-evaluates every kind (a "sweep") whenever the
// host module registry gains a module or a kind is released via MarkReady,
// and drives the kind's generator over its documents exactly once, only
// after all prerequisites exist.
//
// A kind whose module dependency never appears remains pending forever.
// That is a silent stall, not an error: module registration order belongs to
// the host and "will never happen" is not observable. Stalled exposes the
// diagnostic view.
package loader
