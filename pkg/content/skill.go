package content

import "github.com/contentforge/contentforge/pkg/document"

// skillRequiredFields is the required-field table skill siblings compile
// against.
var skillRequiredFields = map[string]bool{
	"identifier":  true,
	"name":        true,
	"description": false,
	"parent":      false,
}

// GenerateSkill builds skill entries from one skill document.
//
// Like materials, a document holds a sequence of sibling records under
// "skills", each validated independently.
func (p *Pipeline) GenerateSkill(doc document.Document) {
	log := p.log.WithKind("skill")

	siblings, ok := p.ext.Table(doc, "skills", document.Typed(document.TypeTable))
	if !ok {
		return
	}

	for _, sv := range siblings {
		rec, rok := document.AsDocument(sv)
		if !rok {
			p.ext.Report(document.ClassWrongType, "skills",
				"expected a mapping sibling, got %s", document.Describe(sv))
			continue
		}

		compiled, cok := p.ext.Compile(skillRequiredFields, rec)
		if !cok {
			continue
		}

		key, kok := p.ext.String(compiled, "identifier", document.Typed(document.TypeString))
		if !kok {
			continue
		}
		name, nok := p.ext.String(compiled, "name", document.Typed(document.TypeString))
		if !nok {
			continue
		}
		description, _ := p.ext.String(compiled, "description",
			document.Typed(document.TypeString).Default(""))

		parentIndex := -1
		if pi, pok := p.ext.FieldAsIndex(compiled, "parent", p.Skills,
			document.Typed(document.TypeString).Optional()); pok {
			parentIndex = pi
		}

		entry := &SkillEntry{
			Key:         key,
			Name:        name,
			Description: description,
			ParentIndex: parentIndex,
		}
		if idx, ok := p.Skills.Register(key, entry); ok {
			entry.Index = idx
			log.WithDocument(key).Debug("skill registered")
		}
	}
}
