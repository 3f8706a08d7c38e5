package loader

import "github.com/contentforge/contentforge/pkg/document"

// Kind is one of the fixed content categories the pipeline loads. The set is
// closed: each kind carries its own descriptor and a statically bound
// generator function.
type Kind int

const (
	// KindResource covers harvestable and craftable resources.
	KindResource Kind = iota

	// KindStorage covers storage containers.
	KindStorage

	// KindObject covers placeable game objects.
	KindObject

	// KindRecipe covers craftable recipes.
	KindRecipe

	// KindMaterial covers render materials.
	KindMaterial

	// KindSkill covers learnable skills.
	KindSkill

	// KindEvolvingObject covers timed object transitions.
	KindEvolvingObject

	kindCount
)

// kindNames maps kinds to their names and document kind tags.
var kindNames = [kindCount]string{
	KindResource:       "resource",
	KindStorage:        "storage",
	KindObject:         "object",
	KindRecipe:         "recipe",
	KindMaterial:       "material",
	KindSkill:          "skill",
	KindEvolvingObject: "evolving_object",
}

// String returns the kind's name.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Tag returns the document kind tag whose collection this kind consumes.
// Resources and evolving-object transitions are declared as components of
// object documents, so those kinds consume the object collection.
func (k Kind) Tag() string {
	switch k {
	case KindResource, KindObject, KindEvolvingObject:
		return "object_definition"
	default:
		return k.String() + "_definition"
	}
}

// Kinds returns every content kind in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		ks = append(ks, k)
	}
	return ks
}

// KindFromTag resolves a document kind tag to the kind that owns its source
// collection. Object documents are owned by KindObject; the resource and
// evolving-object descriptors receive the same collection at pipeline
// initialization.
func KindFromTag(tag string) (Kind, bool) {
	switch tag {
	case "object_definition":
		return KindObject, true
	case "storage_definition":
		return KindStorage, true
	case "recipe_definition":
		return KindRecipe, true
	case "material_definition":
		return KindMaterial, true
	case "skill_definition":
		return KindSkill, true
	default:
		return 0, false
	}
}

// Generator transforms one validated configuration document into registry
// entries. Generators never return errors; failures degrade the single
// document and are counted in the shared diagnostics.
type Generator func(doc document.Document)

// Descriptor is the per-kind control record the loader consults.
type Descriptor struct {
	// Kind is the content kind this descriptor controls.
	Kind Kind

	// Documents is the source collection of configuration documents, in
	// declaration order.
	Documents []document.Document

	// DependsOn lists the host module names this kind requires before its
	// generator may run.
	DependsOn []string

	// WaitingForStart suppresses loading until an external trigger clears
	// it, even when every module dependency is satisfied. It is a manual
	// latch, cleared exactly once via Loader.MarkReady.
	WaitingForStart bool

	// Disabled excludes this kind from loading entirely.
	Disabled bool

	// Generate is the generator bound to this kind.
	Generate Generator

	// loaded transitions false to true exactly once, never resets.
	loaded bool
}

// Loaded reports whether this kind has completed loading.
func (d *Descriptor) Loaded() bool {
	return d.loaded
}
