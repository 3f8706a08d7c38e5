// Package registry implements the type-index registry extension and the
// host module registry.
//
// # Overview
//
// The host simulation pre-allocates a dense integer index for every legal
// content key, per kind. A Store accepts (key, entry) pairs against that
// index map: unknown keys are rejected and discarded, already-stored keys
// are overwritten with a warning (last writer wins, to support override
// mods). The cached ordered view of all valid entries is invalidated on
// every registration and lazily rebuilt.
//
// Modules mirrors the host's asynchronously-appearing runtime modules and
// fires a subscription hook on each arrival; the loader gates content kinds
// on it.
package registry
