package content

import "github.com/contentforge/contentforge/pkg/document"

// materialRequiredFields is the required-field table material siblings
// compile against.
var materialRequiredFields = map[string]bool{
	"identifier": true,
	"color":      true,
	"roughness":  true,
	"metal":      false,
}

// GenerateMaterial builds material entries from one material document.
//
// A document holds a sequence of sibling records under "materials"; each
// sibling compiles independently against the required-field table, so one
// malformed sibling never blocks its neighbors.
func (p *Pipeline) GenerateMaterial(doc document.Document) {
	log := p.log.WithKind("material")

	siblings, ok := p.ext.Table(doc, "materials", document.Typed(document.TypeTable))
	if !ok {
		return
	}

	for _, sv := range siblings {
		rec, rok := document.AsDocument(sv)
		if !rok {
			p.ext.Report(document.ClassWrongType, "materials",
				"expected a mapping sibling, got %s", document.Describe(sv))
			continue
		}

		compiled, cok := p.ext.Compile(materialRequiredFields, rec)
		if !cok {
			continue
		}

		key, kok := p.ext.String(compiled, "identifier",
			document.Typed(document.TypeString).NotIn(p.Materials))
		if !kok {
			continue
		}

		color, colok := p.ext.Vec3(compiled, "color", document.Typed(document.TypeTable))
		roughness, rgok := p.ext.Number(compiled, "roughness", document.Typed(document.TypeNumber))
		metal, _ := p.ext.Number(compiled, "metal", document.Typed(document.TypeNumber).Default(0.0))
		if !colok || !rgok {
			continue
		}

		entry := &MaterialEntry{
			Key:       key,
			Color:     color,
			Roughness: roughness,
			Metal:     metal,
		}
		if idx, ok := p.Materials.Register(key, entry); ok {
			entry.Index = idx
			log.WithDocument(key).Debug("material registered")
		}
	}
}
