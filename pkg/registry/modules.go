package registry

import (
	"sort"

	"github.com/contentforge/contentforge/pkg/telemetry"
)

// Modules is the host module registry the loader gates on: it answers
// "is module X present" and notifies subscribers on every new registration.
// Module loading itself belongs to the host; this registry only mirrors its
// arrival order.
type Modules struct {
	present map[string]bool
	subs    []func(name string)
	log     *telemetry.Logger
}

// NewModules creates an empty module registry.
func NewModules(log *telemetry.Logger) *Modules {
	return &Modules{
		present: make(map[string]bool),
		log:     log.NewComponentLogger("modules"),
	}
}

// Register marks a module as present and fires every subscriber. Registering
// an already-present module is a no-op.
func (m *Modules) Register(name string) {
	if m.present[name] {
		return
	}
	m.present[name] = true
	m.log.WithField("module", name).Debug("module became available")
	for _, sub := range m.subs {
		sub(name)
	}
}

// Has reports whether the named module is present.
func (m *Modules) Has(name string) bool {
	return m.present[name]
}

// Subscribe registers a hook fired on every new module registration.
func (m *Modules) Subscribe(fn func(name string)) {
	m.subs = append(m.subs, fn)
}

// Names returns the present modules in sorted order.
func (m *Modules) Names() []string {
	names := make([]string, 0, len(m.present))
	for n := range m.present {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
