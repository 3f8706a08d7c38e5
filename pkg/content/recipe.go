package content

import "github.com/contentforge/contentforge/pkg/document"

// GenerateRecipe builds one recipe entry from a recipe document.
//
// The first listed skill is required; a second acts as a soft gate that
// disables the recipe until that skill is discovered. Craft-area groups and
// tools resolve element by element; an unresolved element is reported and
// dropped without failing its neighbors. The build sequence is either a
// standard sequence keyed by an action-sequence identifier or the structured
// custom form, which is recognized but not implemented: the recipe proceeds
// without it.
func (p *Pipeline) GenerateRecipe(doc document.Document) {
	desc, comps, ok := p.destructure(doc)
	if !ok {
		return
	}
	key, ok := p.identifier(desc)
	if !ok {
		return
	}
	log := p.log.WithKind("recipe").WithDocument(key)

	name, ok := p.ext.String(desc, "name", document.Typed(document.TypeString))
	if !ok {
		return
	}

	rec, ok := comps.Sub("recipe")
	if !ok {
		rec = document.Document{}
	}

	outputIndex := -1
	if out, ok := p.ext.FieldAsIndex(rec, "output", p.Objects, document.Typed(document.TypeString).Optional()); ok {
		outputIndex = out
	}

	requiredSkill, disabledUntil := -1, -1
	if skills, ok := p.ext.Table(rec, "skills",
		document.Typed(document.TypeString).Optional().In(p.Skills)); ok {
		if len(skills) > 0 {
			requiredSkill, _ = p.Skills.Index(skills[0].(string))
		}
		if len(skills) > 1 {
			disabledUntil, _ = p.Skills.Index(skills[1].(string))
		}
		if len(skills) > 2 {
			log.Warn("skills beyond the second are ignored")
		}
	}

	groupIndexes, groupKeys := p.resolveEach(rec, "craft_area_groups", p.CraftAreaGroups)
	toolIndexes, _ := p.resolveEach(rec, "tools", p.Tools)

	var sequence *BuildSequence
	if bs, ok := rec.Sub("build_sequence"); ok {
		if _, custom := bs["custom"]; custom {
			ferr := &document.FieldError{
				Class:   document.ClassNotImplemented,
				Key:     "build_sequence",
				Message: "custom build sequences are not implemented",
			}
			log.WithError(ferr).Warn("recipe proceeds without a build sequence")
			p.ext.Diagnostics().CountWarning(document.ClassNotImplemented)
		} else if asIdx, aok := p.ext.FieldAsIndex(bs, "action_sequence", p.ActionSequences,
			document.Typed(document.TypeString)); aok {
			toolIdx := -1
			if ti, tok := p.ext.FieldAsIndex(bs, "tool", p.Tools,
				document.Typed(document.TypeString).Optional()); tok {
				toolIdx = ti
			}
			sequence = &BuildSequence{ActionSequenceIndex: asIdx, ToolIndex: toolIdx}
		}
	}

	entry := &RecipeEntry{
		Key:                          key,
		Name:                         name,
		OutputIndex:                  outputIndex,
		RequiredSkill:                requiredSkill,
		DisabledUntilSkillDiscovered: disabledUntil,
		CraftAreaGroups:              groupIndexes,
		RequiredTools:                toolIndexes,
		BuildSequence:                sequence,
	}
	idx, registered := p.Recipes.Register(key, entry)
	if !registered {
		return
	}
	entry.Index = idx

	for _, group := range groupKeys {
		p.recipesByCraftArea[group] = append(p.recipesByCraftArea[group], key)
	}
	log.Debug("recipe registered")
}

// resolveEach resolves every element of an optional string sequence against
// a lookup, independently: an unresolved element is reported and dropped,
// the rest keep.
func (p *Pipeline) resolveEach(rec document.Document, key string, reg document.Lookup) ([]int, []string) {
	raw, ok := p.ext.Table(rec, key, document.Typed(document.TypeString).Optional())
	if !ok {
		return nil, nil
	}

	indexes := make([]int, 0, len(raw))
	keys := make([]string, 0, len(raw))
	for _, el := range raw {
		s := el.(string)
		idx, found := reg.Index(s)
		if !found {
			p.ext.Report(document.ClassUnresolvedReference, key,
				"%q is not a key of %s", s, reg.Name())
			continue
		}
		indexes = append(indexes, idx)
		keys = append(keys, s)
	}
	return indexes, keys
}
