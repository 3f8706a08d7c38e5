package content

import "github.com/contentforge/contentforge/pkg/document"

// GenerateStorage builds one storage entry from a storage document.
//
// The storage's resource list is resolved by reading the forward-reference
// table for its own identifier: every content identifier that declared a
// link to this storage maps to that resource's already-assigned index, in
// declaration order. The table entry is cleared once read. An empty resolved
// list is a warning, not an error: very likely a configuration mistake but
// not invalid.
func (p *Pipeline) GenerateStorage(doc document.Document) {
	desc, comps, ok := p.destructure(doc)
	if !ok {
		return
	}
	key, ok := p.identifier(desc)
	if !ok {
		return
	}
	log := p.log.WithKind("storage").WithDocument(key)

	name, ok := p.ext.String(desc, "name", document.Typed(document.TypeString))
	if !ok {
		return
	}

	st, ok := comps.Sub("storage")
	if !ok {
		st = document.Document{}
	}

	size, _ := p.ext.Vec3(st, "size", document.Typed(document.TypeTable).Default(document.Vec3{}))
	offset, _ := p.ext.Vec3(st, "offset", document.Typed(document.TypeTable).Default(document.Vec3{}))
	rotation, _ := p.ext.Vec3(st, "rotation", document.Typed(document.TypeTable).Default(document.Vec3{}))

	carry, _ := p.ext.Number(st, "carry_capacity", document.Typed(document.TypeNumber).Default(1.0))
	carryLimited, _ := p.ext.Number(st, "carry_capacity_limited", document.Typed(document.TypeNumber).Default(1.0))
	carryRunning, _ := p.ext.Number(st, "carry_capacity_running", document.Typed(document.TypeNumber).Default(1.0))

	refs := p.objectsForStorage[key]
	delete(p.objectsForStorage, key)

	resourceIndexes := make([]int, 0, len(refs))
	for _, id := range refs {
		idx, found := p.Resources.Index(id)
		if !found {
			p.ext.Report(document.ClassUnresolvedReference, "storage",
				"%q links storage %q but has no resource index", id, key)
			continue
		}
		resourceIndexes = append(resourceIndexes, idx)
	}
	if len(resourceIndexes) == 0 {
		log.Warn("storage resolves no resources")
	}

	var props document.Document
	if userProps, ok := st.Sub("props"); ok {
		props = document.Merge(document.Document{}, userProps)
	}

	entry := &StorageEntry{
		Key:                  key,
		Name:                 name,
		Size:                 size,
		Offset:               offset,
		Rotation:             rotation,
		CarryCapacity:        int(carry),
		CarryCapacityLimited: int(carryLimited),
		CarryCapacityRunning: int(carryRunning),
		ResourceIndexes:      resourceIndexes,
		Props:                props,
	}
	if idx, ok := p.Storages.Register(key, entry); ok {
		entry.Index = idx
		log.WithField("resources", len(resourceIndexes)).Debug("storage registered")
	}
}
