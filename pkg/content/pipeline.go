package content

import (
	"github.com/contentforge/contentforge/pkg/document"
	"github.com/contentforge/contentforge/pkg/loader"
	"github.com/contentforge/contentforge/pkg/registry"
	"github.com/contentforge/contentforge/pkg/telemetry"
)

// DefaultDayLength is the host simulation's day length in seconds, used to
// convert evolving-object day counts into elapsed time when the host
// manifest does not override it.
const DefaultDayLength = 2066.0

// Config carries the host-provided inputs the pipeline needs at
// initialization.
type Config struct {
	// DayLength is the simulation day length in seconds.
	DayLength float64

	// Indexes are the host's pre-allocated key-to-index maps, one per
	// registry name: resource, storage, object, recipe, material, skill,
	// evolving_object, craft_area_group, action_sequence, tool.
	Indexes map[string]registry.IndexMap
}

// Pipeline owns the per-kind definition generators and the registries they
// write into. One pipeline serves one load pass; all state is mutated
// single-threaded by loader sweeps.
type Pipeline struct {
	ext *document.Extractor
	log *telemetry.Logger

	dayLength float64

	// Registries this pipeline registers entries into.
	Resources  *registry.Store[*ResourceEntry]
	Storages   *registry.Store[*StorageEntry]
	Objects    *registry.Store[*ObjectEntry]
	Recipes    *registry.Store[*RecipeEntry]
	Materials  *registry.Store[*MaterialEntry]
	Skills     *registry.Store[*SkillEntry]
	Evolutions *registry.Store[*EvolutionEntry]

	// Host-owned lookups the pipeline only reads.
	CraftAreaGroups *registry.Index
	ActionSequences *registry.Index
	Tools           *registry.Index

	// objectsForStorage is the forward-reference table: storage identifier
	// to the content identifiers that declared a link to it. Appended while
	// resources load, read and cleared per key when the storage generates.
	objectsForStorage map[string][]string

	// recipesByCraftArea is the auxiliary per-craft-area-group recipe
	// listing consumed by the UI collaborator.
	recipesByCraftArea map[string][]string
}

// NewPipeline creates a pipeline over the host's index maps.
func NewPipeline(cfg Config, ext *document.Extractor, log *telemetry.Logger) *Pipeline {
	if cfg.DayLength <= 0 {
		cfg.DayLength = DefaultDayLength
	}
	diag := ext.Diagnostics()
	idx := func(name string) registry.IndexMap { return cfg.Indexes[name] }

	return &Pipeline{
		ext:       ext,
		log:       log.NewComponentLogger("content"),
		dayLength: cfg.DayLength,

		Resources:  registry.NewStore[*ResourceEntry]("resource", idx("resource"), log, diag),
		Storages:   registry.NewStore[*StorageEntry]("storage", idx("storage"), log, diag),
		Objects:    registry.NewStore[*ObjectEntry]("object", idx("object"), log, diag),
		Recipes:    registry.NewStore[*RecipeEntry]("recipe", idx("recipe"), log, diag),
		Materials:  registry.NewStore[*MaterialEntry]("material", idx("material"), log, diag),
		Skills:     registry.NewStore[*SkillEntry]("skill", idx("skill"), log, diag),
		Evolutions: registry.NewStore[*EvolutionEntry]("evolving_object", idx("evolving_object"), log, diag),

		CraftAreaGroups: registry.NewIndex("craft_area_group", idx("craft_area_group")),
		ActionSequences: registry.NewIndex("action_sequence", idx("action_sequence")),
		Tools:           registry.NewIndex("tool", idx("tool")),

		objectsForStorage:  make(map[string][]string),
		recipesByCraftArea: make(map[string][]string),
	}
}

// kindDependencies lists the host modules each kind waits for.
var kindDependencies = map[loader.Kind][]string{
	loader.KindResource:       {"resource"},
	loader.KindStorage:        {"storage", "resource"},
	loader.KindObject:         {"gameObject", "resource"},
	loader.KindRecipe:         {"craftable", "skill", "tool", "gameObject"},
	loader.KindMaterial:       {"material"},
	loader.KindSkill:          {"skill"},
	loader.KindEvolvingObject: {"evolvingObject", "gameObject"},
}

// generator returns the statically bound generator for a kind.
func (p *Pipeline) generator(kind loader.Kind) loader.Generator {
	switch kind {
	case loader.KindResource:
		return p.GenerateResource
	case loader.KindStorage:
		return p.GenerateStorage
	case loader.KindObject:
		return p.GenerateObject
	case loader.KindRecipe:
		return p.GenerateRecipe
	case loader.KindMaterial:
		return p.GenerateMaterial
	case loader.KindSkill:
		return p.GenerateSkill
	case loader.KindEvolvingObject:
		return p.GenerateEvolvingObject
	default:
		return nil
	}
}

// Descriptors builds one loader descriptor per kind over the discovered
// document collections. Kinds named in latched start with their
// WaitingForStart latch set. The resource and evolving-object kinds consume
// the object document collection.
func (p *Pipeline) Descriptors(docs map[loader.Kind][]document.Document, latched map[loader.Kind]bool) []*loader.Descriptor {
	descriptors := make([]*loader.Descriptor, 0, len(kindDependencies))
	for _, kind := range loader.Kinds() {
		source := kind
		if kind == loader.KindResource || kind == loader.KindEvolvingObject {
			source = loader.KindObject
		}
		descriptors = append(descriptors, &loader.Descriptor{
			Kind:            kind,
			Documents:       docs[source],
			DependsOn:       kindDependencies[kind],
			WaitingForStart: latched[kind],
			Generate:        p.generator(kind),
		})
	}
	return descriptors
}

// ObjectsForStorage returns the pending forward references declared against
// a storage identifier, in declaration order.
func (p *Pipeline) ObjectsForStorage(storageID string) []string {
	refs := p.objectsForStorage[storageID]
	out := make([]string, len(refs))
	copy(out, refs)
	return out
}

// RecipesForCraftArea returns the recipe keys registered against one
// craft-area group, in registration order. Read by the UI collaborator.
func (p *Pipeline) RecipesForCraftArea(group string) []string {
	keys := p.recipesByCraftArea[group]
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// destructure splits a document into its description and components
// sub-records. The description is required; components default to empty.
func (p *Pipeline) destructure(doc document.Document) (desc, comps document.Document, ok bool) {
	dv, dok := p.ext.Field(doc, "description", document.Typed(document.TypeTable))
	if !dok {
		return nil, nil, false
	}
	desc, dok = document.AsDocument(dv)
	if !dok {
		p.ext.Report(document.ClassWrongType, "description", "expected a mapping, got %s", document.Describe(dv))
		return nil, nil, false
	}

	cv, cok := p.ext.Field(doc, "components", document.Typed(document.TypeTable).Default(document.Document{}))
	if !cok {
		return nil, nil, false
	}
	comps, cok = document.AsDocument(cv)
	if !cok {
		p.ext.Report(document.ClassWrongType, "components", "expected a mapping, got %s", document.Describe(cv))
		return nil, nil, false
	}
	return desc, comps, true
}

// identifier extracts the document's globally unique key from its
// description.
func (p *Pipeline) identifier(desc document.Document) (string, bool) {
	return p.ext.String(desc, "identifier", document.Typed(document.TypeString))
}
