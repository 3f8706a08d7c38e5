package content

import "github.com/contentforge/contentforge/pkg/document"

// GenerateResource builds one resource entry from an object document's
// resource component.
//
// A component carrying a resource link aliases an existing resource and
// produces no new entry. A declared storage link is written into the
// forward-reference table before the resource itself registers, so storages
// resolve their members regardless of declaration order.
func (p *Pipeline) GenerateResource(doc document.Document) {
	desc, comps, ok := p.destructure(doc)
	if !ok {
		return
	}
	key, ok := p.identifier(desc)
	if !ok {
		return
	}
	log := p.log.WithKind("resource").WithDocument(key)

	res, ok := comps.Sub("resource")
	if !ok {
		// Not every object yields a resource.
		return
	}

	if link, ok := p.ext.String(res, "link", document.Typed(document.TypeString).Optional()); ok {
		log.WithField("link", link).Debug("resource link aliases an existing resource")
		return
	}

	if storageID, ok := p.ext.String(res, "storage", document.Typed(document.TypeString).Optional()); ok {
		p.objectsForStorage[storageID] = append(p.objectsForStorage[storageID], key)
	}

	name, ok := p.ext.String(desc, "name", document.Typed(document.TypeString))
	if !ok {
		return
	}
	plural, _ := p.ext.String(desc, "plural", document.Typed(document.TypeString).Default(name+"s"))
	displayObject, _ := p.ext.String(res, "display_object", document.Typed(document.TypeString).Default(key))

	props := document.Document{}
	if food, ok := comps.Sub("food"); ok {
		portions, pok := p.ext.Number(food, "portions", document.Typed(document.TypeNumber).Default(1.0))
		value, vok := p.ext.Number(food, "value", document.Typed(document.TypeNumber).Default(0.5))
		if pok && vok {
			document.Merge(props, document.Document{
				"food": document.Document{
					"portions": portions,
					"value":    value,
				},
			})
		}
	}
	if deco, ok := comps.Sub("decoration"); ok {
		document.Merge(props, document.Document{"decoration": deco})
	}
	if userProps, ok := res.Sub("props"); ok {
		document.Merge(props, userProps)
	}

	entry := &ResourceEntry{
		Key:           key,
		Name:          name,
		Plural:        plural,
		DisplayObject: displayObject,
		Props:         props,
	}
	if idx, ok := p.Resources.Register(key, entry); ok {
		entry.Index = idx
		log.Debug("resource registered")
	}
}
