// Package discovery is the configuration-file discovery collaborator: it
// produces the raw configuration documents the pipeline consumes.
//
// # Overview
//
// Content definitions are authored as Lua scripts returning a table or as
// YAML files. The Finder walks the configured content roots, parses each
// recognized file into a document, and groups documents by the kind tag they
// declare. Parse failures degrade the single file, never the walk.
//
// The package also loads the host manifest, the stand-in for the host
// simulation's pre-allocated index maps and module arrival order, and
// provides an fsnotify-based watcher for reload-on-change workflows.
package discovery
