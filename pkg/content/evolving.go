package content

import "github.com/contentforge/contentforge/pkg/document"

// GenerateEvolvingObject builds one evolution entry from an object
// document's evolving_object component.
//
// Absence of the component is a valid no-op: the document simply does not
// participate in evolution. When present, elapsed time is the declared day
// count times the simulation day length, and every transforms_to target must
// resolve to an object index; one unresolved target fails the whole entry.
func (p *Pipeline) GenerateEvolvingObject(doc document.Document) {
	desc, comps, ok := p.destructure(doc)
	if !ok {
		return
	}
	key, ok := p.identifier(desc)
	if !ok {
		return
	}

	evo, ok := comps.Sub("evolving_object")
	if !ok {
		return
	}
	log := p.log.WithKind("evolving_object").WithDocument(key)

	days, ok := p.ext.Number(evo, "days", document.Typed(document.TypeNumber))
	if !ok {
		return
	}

	var categories []string
	if raw, ok := p.ext.Table(evo, "categories", document.Typed(document.TypeString).Optional()); ok {
		for _, el := range raw {
			if s, sok := el.(string); sok {
				categories = append(categories, s)
			}
		}
	}

	resolveObject := func(v interface{}) (interface{}, bool) {
		s, sok := v.(string)
		if !sok {
			return nil, false
		}
		idx, iok := p.Objects.Index(s)
		if !iok {
			return nil, false
		}
		return idx, true
	}

	targets, ok := p.ext.Table(evo, "transforms_to",
		document.Typed(document.TypeString).Map(resolveObject))
	if !ok {
		return
	}

	transformsTo := make([]int, 0, len(targets))
	for _, t := range targets {
		transformsTo = append(transformsTo, t.(int))
	}

	entry := &EvolutionEntry{
		Key:          key,
		MinTime:      days * p.dayLength,
		Categories:   categories,
		TransformsTo: transformsTo,
	}
	if idx, ok := p.Evolutions.Register(key, entry); ok {
		entry.Index = idx
		log.WithField("targets", len(transformsTo)).Debug("evolution registered")
	}
}
