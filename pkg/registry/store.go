package registry

import (
	"fmt"
	"sort"

	"github.com/contentforge/contentforge/pkg/document"
	"github.com/contentforge/contentforge/pkg/telemetry"
)

// IndexMap is a host-provided mapping from content key to its pre-allocated
// dense integer index. It is the single source of truth for which keys are
// legal within a kind; this package never invents new indices.
type IndexMap map[string]int

// Index is a read-only view over an IndexMap. It satisfies document.Lookup
// for registries the pipeline only ever reads (craft area groups, action
// sequences, tools).
type Index struct {
	name  string
	index IndexMap
}

// NewIndex wraps a host index map for lookup.
func NewIndex(name string, m IndexMap) *Index {
	if m == nil {
		m = IndexMap{}
	}
	return &Index{name: name, index: m}
}

// Name identifies the registry in log messages.
func (ix *Index) Name() string { return ix.name }

// Has reports whether key has a pre-allocated index slot.
func (ix *Index) Has(key string) bool {
	_, ok := ix.index[key]
	return ok
}

// Registered always reports false: a bare Index stores no entries.
func (ix *Index) Registered(string) bool { return false }

// Index returns the dense integer index assigned to key.
func (ix *Index) Index(key string) (int, bool) {
	i, ok := ix.index[key]
	return i, ok
}

// Keys returns every legal key in sorted order.
func (ix *Index) Keys() []string {
	keys := make([]string, 0, len(ix.index))
	for k := range ix.index {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Store is a type-index registry for one content kind: a host-owned key to
// index map plus the entries registered against it. Registration of an
// unknown key is fatal to that entry; re-registration of a stored key is a
// logged overwrite with last-write-wins semantics, so override mods can
// replace base content.
type Store[E any] struct {
	index *Index

	entries map[string]E
	valid   []E
	dirty   bool

	log  *telemetry.Logger
	diag *document.Diagnostics
}

// NewStore creates a registry store named after its kind, wrapping the
// host-provided index map.
func NewStore[E any](name string, index IndexMap, log *telemetry.Logger, diag *document.Diagnostics) *Store[E] {
	return &Store[E]{
		index:   NewIndex(name, index),
		entries: make(map[string]E),
		log:     log.NewComponentLogger("registry").WithKind(name),
		diag:    diag,
	}
}

// Name identifies the registry in log messages.
func (s *Store[E]) Name() string { return s.index.Name() }

// Has reports whether key has a pre-allocated index slot.
func (s *Store[E]) Has(key string) bool { return s.index.Has(key) }

// Registered reports whether an entry is already stored at key.
func (s *Store[E]) Registered(key string) bool {
	_, ok := s.entries[key]
	return ok
}

// Index returns the dense integer index assigned to key.
func (s *Store[E]) Index(key string) (int, bool) { return s.index.Index(key) }

// Keys returns every legal key in sorted order.
func (s *Store[E]) Keys() []string { return s.index.Keys() }

// Register stores entry at key and returns the key's index. A key absent
// from the host index map declares a slot nobody pre-allocated: the
// registration is logged, counted, and discarded. A key that already holds
// an entry is overwritten, with a warning.
func (s *Store[E]) Register(key string, entry E) (int, bool) {
	idx, ok := s.index.Index(key)
	if !ok {
		ferr := &document.FieldError{
			Class:   document.ClassUnresolvedReference,
			Key:     key,
			Message: fmt.Sprintf("no pre-allocated index slot in %s", s.Name()),
		}
		s.log.WithError(ferr).Error("registration rejected")
		s.diag.CountError(document.ClassUnresolvedReference)
		return 0, false
	}

	if _, exists := s.entries[key]; exists {
		s.log.WithDocument(key).Warn("entry overwritten, last writer wins")
		s.diag.CountOverwrite(s.Name())
	}

	s.entries[key] = entry
	s.dirty = true
	s.diag.CountRegistration(s.Name())
	return idx, true
}

// Get returns the entry stored at key.
func (s *Store[E]) Get(key string) (E, bool) {
	e, ok := s.entries[key]
	return e, ok
}

// Len returns the number of stored entries.
func (s *Store[E]) Len() int { return len(s.entries) }

// Valid returns every stored entry ordered by index. The slice is cached and
// lazily rebuilt after any registration invalidates it.
func (s *Store[E]) Valid() []E {
	if !s.dirty && s.valid != nil {
		return s.valid
	}

	type slot struct {
		idx   int
		entry E
	}
	slots := make([]slot, 0, len(s.entries))
	for k, e := range s.entries {
		idx, _ := s.index.Index(k)
		slots = append(slots, slot{idx: idx, entry: e})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].idx < slots[j].idx })

	s.valid = make([]E, 0, len(slots))
	for _, sl := range slots {
		s.valid = append(s.valid, sl.entry)
	}
	s.dirty = false
	return s.valid
}

// compile-time check that stores satisfy the validator's lookup view.
var _ document.Lookup = (*Store[int])(nil)
var _ document.Lookup = (*Index)(nil)
