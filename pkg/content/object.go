package content

import "github.com/contentforge/contentforge/pkg/document"

// GenerateObject builds one game-object entry from an object document.
//
// The object's resource index resolves either from its own identifier or
// from a resource link declared in its resource component. When neither
// resolves, the generator aborts for this one document without registering a
// partial object.
func (p *Pipeline) GenerateObject(doc document.Document) {
	desc, comps, ok := p.destructure(doc)
	if !ok {
		return
	}
	key, ok := p.identifier(desc)
	if !ok {
		return
	}
	log := p.log.WithKind("object").WithDocument(key)

	name, ok := p.ext.String(desc, "name", document.Typed(document.TypeString))
	if !ok {
		return
	}

	obj, ok := comps.Sub("object")
	if !ok {
		obj = document.Document{}
	}

	model, _ := p.ext.String(obj, "model", document.Typed(document.TypeString).Default(key))
	scale, _ := p.ext.Number(obj, "scale", document.Typed(document.TypeNumber).Default(1.0))
	physics, _ := p.ext.Bool(obj, "physics", document.Typed(document.TypeBool).Default(true))

	resIdx, resolved := p.Resources.Index(key)
	if !resolved {
		if res, rok := comps.Sub("resource"); rok {
			if link, lok := p.ext.String(res, "link", document.Typed(document.TypeString).Optional()); lok {
				resIdx, resolved = p.Resources.Index(link)
			}
		}
	}
	if !resolved {
		p.ext.Report(document.ClassUnresolvedReference, "identifier",
			"object %q resolves no resource from its identifier or resource link", key)
		return
	}

	var props document.Document
	if userProps, ok := obj.Sub("props"); ok {
		props = document.Merge(document.Document{}, userProps)
	}

	entry := &ObjectEntry{
		Key:           key,
		Name:          name,
		Model:         model,
		Scale:         scale,
		Physics:       physics,
		ResourceIndex: resIdx,
		Props:         props,
	}
	if idx, ok := p.Objects.Register(key, entry); ok {
		entry.Index = idx
		log.Debug("object registered")
	}
}
