package content

import "github.com/contentforge/contentforge/pkg/document"

// ResourceEntry is the finished registry entry for a harvestable or
// craftable resource.
type ResourceEntry struct {
	// Key is the document's human-readable identifier, unique within the
	// resource kind.
	Key string

	// Index is the dense integer slot assigned by the host index map.
	Index int

	// Name is the display name.
	Name string

	// Plural is the plural display name.
	Plural string

	// DisplayObject is the object key rendered for this resource.
	DisplayObject string

	// Props carries the merged optional sub-component fields (food,
	// decoration) and any user-declared extension properties.
	Props document.Document
}

// StorageEntry is the finished registry entry for a storage container.
type StorageEntry struct {
	Key   string
	Index int
	Name  string

	// Size, Offset, and Rotation are the container geometry. Absent fields
	// default to zero/neutral vectors.
	Size     document.Vec3
	Offset   document.Vec3
	Rotation document.Vec3

	// Carry capacities per sub-mode, defaulting to 1 each.
	CarryCapacity        int
	CarryCapacityLimited int
	CarryCapacityRunning int

	// ResourceIndexes lists the resources stored here, resolved from the
	// forward-reference table in declaration order.
	ResourceIndexes []int

	Props document.Document
}

// ObjectEntry is the finished registry entry for a placeable game object.
type ObjectEntry struct {
	Key   string
	Index int
	Name  string

	// Model is the render model name.
	Model string

	// Scale is the render scale.
	Scale float64

	// Physics reports whether the object collides.
	Physics bool

	// ResourceIndex is the resource this object yields, resolved from the
	// object's own identifier or its declared resource link.
	ResourceIndex int

	Props document.Document
}

// EvolutionEntry is the finished registry entry for one evolving-object
// transition.
type EvolutionEntry struct {
	Key   string
	Index int

	// MinTime is the elapsed time before the transition fires, computed as
	// a day-length multiplier.
	MinTime float64

	// Categories group transitions for the host's evolution scheduler.
	Categories []string

	// TransformsTo lists the object indices this object may become.
	TransformsTo []int
}

// RecipeEntry is the finished registry entry for a craftable recipe.
type RecipeEntry struct {
	Key   string
	Index int
	Name  string

	// OutputIndex is the object produced, or -1 when the recipe declares
	// no output.
	OutputIndex int

	// RequiredSkill is the skill index gating the recipe, or -1.
	RequiredSkill int

	// DisabledUntilSkillDiscovered soft-gates the recipe behind a second
	// skill until it is discovered, or -1.
	DisabledUntilSkillDiscovered int

	// CraftAreaGroups lists the resolved craft-area-group indices.
	CraftAreaGroups []int

	// RequiredTools lists the resolved tool indices.
	RequiredTools []int

	// BuildSequence is nil when the recipe declares none, or when it
	// declares the not-yet-implemented custom form.
	BuildSequence *BuildSequence
}

// BuildSequence is a standard build sequence keyed by an action-sequence
// identifier.
type BuildSequence struct {
	// ActionSequenceIndex is the resolved action-sequence index.
	ActionSequenceIndex int

	// ToolIndex is the resolved tool used through the sequence, or -1.
	ToolIndex int
}

// MaterialEntry is the finished registry entry for a render material.
type MaterialEntry struct {
	Key   string
	Index int

	// Color is the base RGB color.
	Color document.Vec3

	// Roughness is the surface roughness.
	Roughness float64

	// Metal is the metalness factor, defaulting to 0.
	Metal float64
}

// SkillEntry is the finished registry entry for a learnable skill.
type SkillEntry struct {
	Key   string
	Index int
	Name  string

	// Description is the UI description, optional.
	Description string

	// ParentIndex is the parent skill in the skill tree, or -1 for roots.
	ParentIndex int
}
