package content

import (
	"reflect"
	"testing"

	"github.com/contentforge/contentforge/pkg/document"
	"github.com/contentforge/contentforge/pkg/registry"
	"github.com/contentforge/contentforge/pkg/telemetry"
)

func testPipeline() (*Pipeline, *document.Diagnostics) {
	diag := document.NewDiagnostics(nil)
	ext := document.NewExtractor(telemetry.Nop(), diag)

	cfg := Config{
		DayLength: 10,
		Indexes: map[string]registry.IndexMap{
			"resource":         {"hs:raw_fish": 0, "hs:berry": 1, "hs:plank": 2},
			"storage":          {"hs:basket": 0},
			"object":           {"hs:raw_fish": 0, "hs:rotten_fish": 1, "hs:basket": 2, "hs:berry": 3},
			"recipe":           {"hs:cook_fish": 0},
			"material":         {"hs:wood": 0, "hs:stone": 1, "hs:iron": 2},
			"skill":            {"carving": 0, "fishing": 1},
			"evolving_object":  {"hs:raw_fish": 0},
			"craft_area_group": {"campfire": 0},
			"action_sequence":  {"cook": 0},
			"tool":             {"knife": 0},
		},
	}
	return NewPipeline(cfg, ext, telemetry.Nop()), diag
}

func objectDoc(id, name string, components document.Document) document.Document {
	if components == nil {
		components = document.Document{}
	}
	return document.Document{
		"kind": "object_definition",
		"description": document.Document{
			"identifier": id,
			"name":       name,
		},
		"components": components,
	}
}

func TestGenerateResource_ForwardReferenceThenStorage(t *testing.T) {
	p, diag := testPipeline()

	// Two documents declare a storage link to a storage that has not
	// loaded yet.
	p.GenerateResource(objectDoc("hs:raw_fish", "Raw fish", document.Document{
		"resource": document.Document{"storage": "hs:basket"},
	}))
	p.GenerateResource(objectDoc("hs:berry", "Berry", document.Document{
		"resource": document.Document{"storage": "hs:basket"},
	}))

	want := []string{"hs:raw_fish", "hs:berry"}
	if got := p.ObjectsForStorage("hs:basket"); !reflect.DeepEqual(got, want) {
		t.Fatalf("forward-reference table = %v, want %v", got, want)
	}

	// The storage resolves exactly those two resources, in declaration
	// order, and clears the table entry.
	p.GenerateStorage(document.Document{
		"kind": "storage_definition",
		"description": document.Document{
			"identifier": "hs:basket",
			"name":       "Basket",
		},
		"components": document.Document{},
	})

	entry, ok := p.Storages.Get("hs:basket")
	if !ok {
		t.Fatal("storage not registered")
	}
	if !reflect.DeepEqual(entry.ResourceIndexes, []int{0, 1}) {
		t.Errorf("resource indexes = %v, want [0 1]", entry.ResourceIndexes)
	}
	if refs := p.ObjectsForStorage("hs:basket"); len(refs) != 0 {
		t.Errorf("forward references must be cleared once read, got %v", refs)
	}
	if diag.Errors() != 0 {
		t.Errorf("expected clean pass, got %d errors", diag.Errors())
	}
}

func TestGenerateResource_LinkAliasesExistingResource(t *testing.T) {
	p, diag := testPipeline()

	p.GenerateResource(objectDoc("hs:plank", "Plank", document.Document{
		"resource": document.Document{"link": "hs:raw_fish"},
	}))

	if p.Resources.Len() != 0 {
		t.Error("a resource link must not produce a new resource entry")
	}
	if diag.Errors() != 0 {
		t.Errorf("alias is not an error, got %d", diag.Errors())
	}
}

func TestGenerateResource_FoodAndPropsMerge(t *testing.T) {
	p, _ := testPipeline()

	p.GenerateResource(objectDoc("hs:berry", "Berry", document.Document{
		"resource": document.Document{
			"props": document.Document{"stackable": true},
		},
		"food": document.Document{"portions": 3.0},
	}))

	entry, ok := p.Resources.Get("hs:berry")
	if !ok {
		t.Fatal("resource not registered")
	}
	food, ok := entry.Props.Sub("food")
	if !ok {
		t.Fatal("food fields must merge into props")
	}
	if food["portions"] != 3.0 {
		t.Errorf("portions = %v, want 3", food["portions"])
	}
	if food["value"] != 0.5 {
		t.Errorf("value = %v, want default 0.5", food["value"])
	}
	if entry.Props["stackable"] != true {
		t.Error("user props must merge into the entry")
	}
	if entry.Plural != "Berrys" {
		t.Errorf("plural default = %q, want name+s", entry.Plural)
	}
}

func TestGenerateStorage_DefaultsAndEmptyWarning(t *testing.T) {
	p, diag := testPipeline()

	p.GenerateStorage(document.Document{
		"kind": "storage_definition",
		"description": document.Document{
			"identifier": "hs:basket",
			"name":       "Basket",
		},
	})

	entry, ok := p.Storages.Get("hs:basket")
	if !ok {
		t.Fatal("storage not registered")
	}
	if entry.Size != (document.Vec3{}) || entry.Rotation != (document.Vec3{}) {
		t.Error("geometry must default to zero vectors")
	}
	if entry.CarryCapacity != 1 || entry.CarryCapacityLimited != 1 || entry.CarryCapacityRunning != 1 {
		t.Errorf("carry capacities must default to 1, got %d/%d/%d",
			entry.CarryCapacity, entry.CarryCapacityLimited, entry.CarryCapacityRunning)
	}
	if diag.Errors() != 0 {
		t.Errorf("an empty storage is a warning, not an error; got %d errors", diag.Errors())
	}
}

func TestGenerateObject_ResolvesResourceFromIdentifierOrLink(t *testing.T) {
	p, diag := testPipeline()

	// Own identifier has a resource slot.
	p.GenerateObject(objectDoc("hs:raw_fish", "Raw fish", nil))
	if entry, ok := p.Objects.Get("hs:raw_fish"); !ok || entry.ResourceIndex != 0 {
		t.Errorf("expected resource index 0 via own identifier, got %+v (ok=%v)", entry, ok)
	}

	// No own slot, but a declared resource link resolves.
	p.GenerateObject(objectDoc("hs:rotten_fish", "Rotten fish", document.Document{
		"resource": document.Document{"link": "hs:berry"},
	}))
	if entry, ok := p.Objects.Get("hs:rotten_fish"); !ok || entry.ResourceIndex != 1 {
		t.Errorf("expected resource index 1 via link, got %+v (ok=%v)", entry, ok)
	}
	if diag.Errors() != 0 {
		t.Errorf("expected clean pass, got %d errors", diag.Errors())
	}
}

func TestGenerateObject_UnresolvedResourceAbortsDocument(t *testing.T) {
	p, diag := testPipeline()

	p.GenerateObject(objectDoc("hs:basket", "Basket", nil))

	if p.Objects.Registered("hs:basket") {
		t.Error("no partial object may register when resource resolution fails")
	}
	if diag.Errors() != 1 {
		t.Errorf("expected one error, got %d", diag.Errors())
	}
}

func TestGenerateEvolvingObject_AbsentComponentIsNoOp(t *testing.T) {
	p, diag := testPipeline()

	p.GenerateEvolvingObject(objectDoc("hs:basket", "Basket", nil))

	if p.Evolutions.Len() != 0 {
		t.Error("document without the component must not register")
	}
	if diag.Errors() != 0 {
		t.Errorf("absence of the component is valid, got %d errors", diag.Errors())
	}
}

func TestGenerateEvolvingObject_DayMultiplierAndTargets(t *testing.T) {
	p, _ := testPipeline()

	p.GenerateEvolvingObject(objectDoc("hs:raw_fish", "Raw fish", document.Document{
		"evolving_object": document.Document{
			"days":          2.0,
			"transforms_to": []interface{}{"hs:rotten_fish"},
		},
	}))

	entry, ok := p.Evolutions.Get("hs:raw_fish")
	if !ok {
		t.Fatal("evolution not registered")
	}
	if entry.MinTime != 20 {
		t.Errorf("MinTime = %v, want days(2) * day length(10) = 20", entry.MinTime)
	}
	if !reflect.DeepEqual(entry.TransformsTo, []int{1}) {
		t.Errorf("TransformsTo = %v, want [1]", entry.TransformsTo)
	}
}

func TestGenerateEvolvingObject_UnresolvedTargetFailsEntry(t *testing.T) {
	p, diag := testPipeline()

	p.GenerateEvolvingObject(objectDoc("hs:raw_fish", "Raw fish", document.Document{
		"evolving_object": document.Document{
			"days":          1.0,
			"transforms_to": []interface{}{"hs:rotten_fish", "hs:nothing"},
		},
	}))

	if p.Evolutions.Len() != 0 {
		t.Error("an unresolved target must fail the whole entry")
	}
	if diag.Errors() != 1 {
		t.Errorf("expected one aggregate error, got %d", diag.Errors())
	}
}

func recipeDoc(rec document.Document) document.Document {
	return document.Document{
		"kind": "recipe_definition",
		"description": document.Document{
			"identifier": "hs:cook_fish",
			"name":       "Cook fish",
		},
		"components": document.Document{"recipe": rec},
	}
}

func TestGenerateRecipe_SkillPair(t *testing.T) {
	p, diag := testPipeline()

	p.GenerateRecipe(recipeDoc(document.Document{
		"skills": []interface{}{"carving", "fishing"},
	}))

	entry, ok := p.Recipes.Get("hs:cook_fish")
	if !ok {
		t.Fatal("recipe not registered")
	}
	if entry.RequiredSkill != 0 {
		t.Errorf("RequiredSkill = %d, want index of carving (0)", entry.RequiredSkill)
	}
	if entry.DisabledUntilSkillDiscovered != 1 {
		t.Errorf("DisabledUntilSkillDiscovered = %d, want index of fishing (1)",
			entry.DisabledUntilSkillDiscovered)
	}
	if diag.Errors() != 0 {
		t.Errorf("expected clean pass, got %d errors", diag.Errors())
	}
}

func TestGenerateRecipe_CraftAreaListingAndPartialResolution(t *testing.T) {
	p, diag := testPipeline()

	p.GenerateRecipe(recipeDoc(document.Document{
		"craft_area_groups": []interface{}{"campfire", "kiln"},
		"tools":             []interface{}{"knife"},
	}))

	entry, ok := p.Recipes.Get("hs:cook_fish")
	if !ok {
		t.Fatal("recipe not registered")
	}
	if !reflect.DeepEqual(entry.CraftAreaGroups, []int{0}) {
		t.Errorf("CraftAreaGroups = %v, want resolved [0] with the bad element dropped",
			entry.CraftAreaGroups)
	}
	if !reflect.DeepEqual(entry.RequiredTools, []int{0}) {
		t.Errorf("RequiredTools = %v, want [0]", entry.RequiredTools)
	}
	if diag.Errors() != 1 {
		t.Errorf("the unresolved element is reported, got %d errors", diag.Errors())
	}

	// The auxiliary per-craft-area listing is appended after registration.
	if got := p.RecipesForCraftArea("campfire"); !reflect.DeepEqual(got, []string{"hs:cook_fish"}) {
		t.Errorf("RecipesForCraftArea = %v, want [hs:cook_fish]", got)
	}
	if got := p.RecipesForCraftArea("kiln"); len(got) != 0 {
		t.Errorf("unresolved group must not list the recipe, got %v", got)
	}
}

func TestGenerateRecipe_StandardBuildSequence(t *testing.T) {
	p, _ := testPipeline()

	p.GenerateRecipe(recipeDoc(document.Document{
		"build_sequence": document.Document{
			"action_sequence": "cook",
			"tool":            "knife",
		},
	}))

	entry, _ := p.Recipes.Get("hs:cook_fish")
	if entry.BuildSequence == nil {
		t.Fatal("expected a standard build sequence")
	}
	if entry.BuildSequence.ActionSequenceIndex != 0 || entry.BuildSequence.ToolIndex != 0 {
		t.Errorf("build sequence = %+v, want action 0, tool 0", entry.BuildSequence)
	}
}

func TestGenerateRecipe_CustomBuildSequenceNotImplemented(t *testing.T) {
	p, diag := testPipeline()

	p.GenerateRecipe(recipeDoc(document.Document{
		"build_sequence": document.Document{
			"custom": []interface{}{"step1", "step2"},
		},
	}))

	entry, ok := p.Recipes.Get("hs:cook_fish")
	if !ok {
		t.Fatal("the recipe must proceed without its build sequence")
	}
	if entry.BuildSequence != nil {
		t.Error("custom build sequences are unimplemented; entry must carry none")
	}
	if diag.Warnings() == 0 {
		t.Error("expected a not-implemented warning")
	}
	if diag.Errors() != 0 {
		t.Errorf("not-implemented is a warning, got %d errors", diag.Errors())
	}
}

func TestGenerateMaterial_SiblingDegradation(t *testing.T) {
	p, diag := testPipeline()

	p.GenerateMaterial(document.Document{
		"kind": "material_definition",
		"materials": []interface{}{
			document.Document{
				"identifier": "hs:wood",
				"color":      []interface{}{0.5, 0.4, 0.3},
				"roughness":  1.0,
			},
			document.Document{
				// roughness missing: this sibling is dropped.
				"identifier": "hs:stone",
				"color":      []interface{}{0.6, 0.6, 0.6},
			},
			document.Document{
				"identifier": "hs:iron",
				"color":      []interface{}{0.9, 0.9, 0.9},
				"roughness":  0.2,
				"metal":      1.0,
			},
		},
	})

	if !p.Materials.Registered("hs:wood") || !p.Materials.Registered("hs:iron") {
		t.Error("siblings before and after the malformed record must register")
	}
	if p.Materials.Registered("hs:stone") {
		t.Error("the malformed sibling must be dropped")
	}
	if diag.Errors() != 1 {
		t.Errorf("expected one missing-field error, got %d", diag.Errors())
	}

	iron, _ := p.Materials.Get("hs:iron")
	if iron.Metal != 1.0 {
		t.Errorf("Metal = %v, want 1", iron.Metal)
	}
	wood, _ := p.Materials.Get("hs:wood")
	if wood.Metal != 0 {
		t.Errorf("Metal default = %v, want 0", wood.Metal)
	}
}

func TestGenerateSkill_SiblingsAndParent(t *testing.T) {
	p, diag := testPipeline()

	p.GenerateSkill(document.Document{
		"kind": "skill_definition",
		"skills": []interface{}{
			document.Document{
				"identifier": "carving",
				"name":       "Carving",
			},
			document.Document{
				"identifier": "fishing",
				"name":       "Fishing",
				"parent":     "carving",
			},
		},
	})

	carving, ok := p.Skills.Get("carving")
	if !ok || carving.ParentIndex != -1 {
		t.Errorf("carving = %+v (ok=%v), want registered root", carving, ok)
	}
	fishing, ok := p.Skills.Get("fishing")
	if !ok || fishing.ParentIndex != 0 {
		t.Errorf("fishing = %+v (ok=%v), want parent index 0", fishing, ok)
	}
	if diag.Errors() != 0 {
		t.Errorf("expected clean pass, got %d errors", diag.Errors())
	}
}

func TestGenerateMaterial_DuplicateSiblingCollision(t *testing.T) {
	p, diag := testPipeline()

	sibling := document.Document{
		"identifier": "hs:wood",
		"color":      []interface{}{0.5, 0.4, 0.3},
		"roughness":  1.0,
	}
	p.GenerateMaterial(document.Document{
		"kind":      "material_definition",
		"materials": []interface{}{sibling, sibling},
	})

	if p.Materials.Len() != 1 {
		t.Errorf("expected one registration, got %d", p.Materials.Len())
	}
	if diag.Errors() != 1 {
		t.Errorf("expected one collision error, got %d", diag.Errors())
	}
}
