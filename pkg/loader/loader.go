package loader

import (
	"fmt"

	"github.com/contentforge/contentforge/pkg/registry"
	"github.com/contentforge/contentforge/pkg/telemetry"
)

// Loader orders the registration of content kinds against asynchronously
// appearing host modules and explicit readiness triggers. Each kind loads
// its configured documents exactly once, only after every prerequisite
// exists.
//
// The model is single-threaded and re-entrant-by-sweep: every module arrival
// and every MarkReady call performs one full synchronous sweep of all kinds.
// A sweep always covers every kind, since satisfying one kind's dependency
// can complete a second kind's dependency in the same instant.
type Loader struct {
	modules     *registry.Modules
	descriptors [kindCount]*Descriptor

	discoveryComplete bool

	log     *telemetry.Logger
	metrics *telemetry.Metrics
}

// New creates a loader gated on the given module registry. The loader
// subscribes itself to module arrivals; every new module triggers a sweep.
func New(modules *registry.Modules, log *telemetry.Logger, metrics *telemetry.Metrics) *Loader {
	l := &Loader{
		modules: modules,
		log:     log.NewComponentLogger("loader"),
		metrics: metrics,
	}
	modules.Subscribe(func(string) {
		l.Sweep()
	})
	return l
}

// Register binds a kind's descriptor to the loader. Each kind is registered
// exactly once, at pipeline initialization.
func (l *Loader) Register(d *Descriptor) error {
	if d.Kind < 0 || d.Kind >= kindCount {
		return fmt.Errorf("unknown kind %d", d.Kind)
	}
	if l.descriptors[d.Kind] != nil {
		return fmt.Errorf("kind %s already registered", d.Kind)
	}
	l.descriptors[d.Kind] = d
	return nil
}

// SetDiscoveryComplete marks the external configuration-discovery phase
// finished and sweeps. No kind loads before this point.
func (l *Loader) SetDiscoveryComplete() {
	l.discoveryComplete = true
	l.Sweep()
}

// MarkReady clears a kind's WaitingForStart latch and sweeps. After the
// latch clears, the kind behaves like any other dependency-gated kind for
// this and all future sweeps.
func (l *Loader) MarkReady(kind Kind) {
	d := l.descriptors[kind]
	if d == nil {
		l.log.WithKind(kind.String()).Warn("mark ready for unregistered kind")
		return
	}
	d.WaitingForStart = false
	l.Sweep()
}

// Sweep re-evaluates every kind's readiness guard once and loads those that
// pass. Sweeps are idempotent: the guard's test-and-set of the loaded flag
// guarantees each kind fires at most once no matter how many sweeps run.
func (l *Loader) Sweep() {
	l.metrics.RecordSweep()
	for _, d := range l.descriptors {
		if d == nil {
			continue
		}
		if l.canLoad(d) {
			l.load(d)
		}
	}
}

// canLoad is the Pending-to-Loaded transition guard. It is side-effect-free
// except for flipping the loaded flag the instant it returns true, so a
// re-evaluation in the same sweep cannot double-fire.
func (l *Loader) canLoad(d *Descriptor) bool {
	if !l.discoveryComplete || d.loaded || d.Disabled || d.WaitingForStart {
		return false
	}
	for _, mod := range d.DependsOn {
		if !l.modules.Has(mod) {
			return false
		}
	}
	d.loaded = true
	return true
}

// load drives the kind's generator over every document in declaration
// order. An absent document in the collection is logged and skipped, never
// fatal.
func (l *Loader) load(d *Descriptor) {
	log := l.log.WithKind(d.Kind.String())
	log.WithField("documents", len(d.Documents)).Info("loading content kind")

	for i, doc := range d.Documents {
		if doc == nil {
			log.WithField("position", i).Warn("absent document skipped")
			continue
		}
		d.Generate(doc)
	}

	l.metrics.RecordKindLoaded()
}

// Stalled returns, for every kind still pending after discovery, the module
// dependencies that have not appeared. A kind with an unsatisfiable
// dependency stays pending forever without erroring; this is the diagnostic
// view of that silent stall.
func (l *Loader) Stalled() map[Kind][]string {
	stalled := make(map[Kind][]string)
	for _, d := range l.descriptors {
		if d == nil || d.loaded || d.Disabled {
			continue
		}
		var missing []string
		for _, mod := range d.DependsOn {
			if !l.modules.Has(mod) {
				missing = append(missing, mod)
			}
		}
		if len(missing) > 0 || d.WaitingForStart {
			stalled[d.Kind] = missing
		}
	}
	return stalled
}
