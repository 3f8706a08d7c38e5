package document

import (
	"testing"

	"github.com/contentforge/contentforge/pkg/telemetry"
)

// fakeLookup is a minimal Lookup for extraction tests.
type fakeLookup struct {
	name       string
	index      map[string]int
	registered map[string]bool
}

func (f *fakeLookup) Name() string             { return f.name }
func (f *fakeLookup) Has(key string) bool      { _, ok := f.index[key]; return ok }
func (f *fakeLookup) Registered(k string) bool { return f.registered[k] }
func (f *fakeLookup) Index(k string) (int, bool) {
	i, ok := f.index[k]
	return i, ok
}
func (f *fakeLookup) Keys() []string {
	keys := make([]string, 0, len(f.index))
	for k := range f.index {
		keys = append(keys, k)
	}
	return keys
}

func newTestExtractor() (*Extractor, *Diagnostics) {
	diag := NewDiagnostics(nil)
	return NewExtractor(telemetry.Nop(), diag), diag
}

func TestField_DefaultSubstitution(t *testing.T) {
	ext, diag := newTestExtractor()
	rec := Document{}

	v, ok := ext.Field(rec, "x", Typed(TypeNumber).Default(42.0))
	if !ok {
		t.Fatal("expected default substitution to succeed")
	}
	if v != 42.0 {
		t.Errorf("expected default 42.0, got %v", v)
	}
	if diag.Errors() != 0 {
		t.Errorf("default substitution must not count errors, got %d", diag.Errors())
	}
}

func TestField_PresentValueWinsOverDefault(t *testing.T) {
	ext, _ := newTestExtractor()
	rec := Document{"x": 7.0}

	v, ok := ext.Field(rec, "x", Typed(TypeNumber).Default(42.0))
	if !ok || v != 7.0 {
		t.Errorf("expected present value 7.0, got %v (ok=%v)", v, ok)
	}
}

func TestField_OptionalAbsentCountsNoError(t *testing.T) {
	ext, diag := newTestExtractor()
	rec := Document{}

	_, ok := ext.Field(rec, "x", Typed(TypeString).Optional())
	if ok {
		t.Error("expected absence")
	}
	if diag.Errors() != 0 {
		t.Errorf("optional absence must not count errors, got %d", diag.Errors())
	}
}

func TestField_RequiredAbsentCountsExactlyOneError(t *testing.T) {
	ext, diag := newTestExtractor()
	rec := Document{}

	_, ok := ext.Field(rec, "x", Typed(TypeString))
	if ok {
		t.Error("expected absence")
	}
	if diag.Errors() != 1 {
		t.Errorf("expected exactly one error, got %d", diag.Errors())
	}
}

func TestField_WrongTypeAborts(t *testing.T) {
	ext, diag := newTestExtractor()
	rec := Document{"x": "not a bool"}

	_, ok := ext.Field(rec, "x", Typed(TypeBool))
	if ok {
		t.Error("expected wrong type to abort extraction")
	}
	if diag.Errors() != 1 {
		t.Errorf("expected one error, got %d", diag.Errors())
	}
}

func TestField_PermissiveCoercions(t *testing.T) {
	ext, diag := newTestExtractor()

	// A string convertible to a number counts as numeric-valid.
	n, ok := ext.Number(Document{"x": "4.5"}, "x", Typed(TypeNumber))
	if !ok || n != 4.5 {
		t.Errorf("expected 4.5 from string coercion, got %v (ok=%v)", n, ok)
	}

	// The exact string "true" counts as boolean-valid.
	b, ok := ext.Bool(Document{"x": "true"}, "x", Typed(TypeBool))
	if !ok || !b {
		t.Errorf(`expected true from "true" coercion, got %v (ok=%v)`, b, ok)
	}

	// Any other string does not.
	_, ok = ext.Bool(Document{"x": "yes"}, "x", Typed(TypeBool))
	if ok {
		t.Error(`expected "yes" to fail boolean validation`)
	}
	if diag.Errors() != 1 {
		t.Errorf("expected one error, got %d", diag.Errors())
	}
}

func TestField_WithTransformAppliedLast(t *testing.T) {
	ext, _ := newTestExtractor()
	rec := Document{"x": "fish"}

	v, ok := ext.Field(rec, "x", Typed(TypeString).With(func(v interface{}) interface{} {
		return v.(string) + "!"
	}))
	if !ok || v != "fish!" {
		t.Errorf("expected transformed value, got %v", v)
	}
}

func TestField_InTypeTable(t *testing.T) {
	ext, diag := newTestExtractor()
	reg := &fakeLookup{name: "resource", index: map[string]int{"hs:fish": 3}}

	v, ok := ext.Field(Document{"x": "hs:fish"}, "x", Typed(TypeString).In(reg))
	if !ok || v != "hs:fish" {
		t.Errorf("expected valid key to pass, got %v (ok=%v)", v, ok)
	}

	_, ok = ext.Field(Document{"x": "hs:rock"}, "x", Typed(TypeString).In(reg))
	if ok {
		t.Error("expected unknown key to fail")
	}
	if diag.Errors() != 1 {
		t.Errorf("expected one error, got %d", diag.Errors())
	}
}

func TestField_NotInTypeTableCollision(t *testing.T) {
	ext, diag := newTestExtractor()
	reg := &fakeLookup{
		name:       "material",
		index:      map[string]int{"hs:wood": 0},
		registered: map[string]bool{"hs:wood": true},
	}

	_, ok := ext.Field(Document{"x": "hs:wood"}, "x", Typed(TypeString).NotIn(reg))
	if ok {
		t.Error("expected collision to fail")
	}
	if diag.Errors() != 1 {
		t.Errorf("expected one error, got %d", diag.Errors())
	}
}

func TestField_ChecksAbortAtFirstFailure(t *testing.T) {
	ext, diag := newTestExtractor()
	reg := &fakeLookup{name: "resource", index: map[string]int{}}

	// Wrong type and unknown key; only the type failure reports.
	_, ok := ext.Field(Document{"x": 5.0}, "x", Typed(TypeString).In(reg))
	if ok {
		t.Error("expected failure")
	}
	if diag.Errors() != 1 {
		t.Errorf("expected exactly one error from the first failed check, got %d", diag.Errors())
	}
}

func TestTable_LengthConstraint(t *testing.T) {
	ext, diag := newTestExtractor()

	_, ok := ext.Table(Document{"xs": []interface{}{1.0, 2.0}}, "xs", Typed(TypeNumber).Length(3))
	if ok {
		t.Error("expected length 2 to be rejected")
	}
	if diag.Errors() != 1 {
		t.Errorf("expected one error, got %d", diag.Errors())
	}

	seq, ok := ext.Table(Document{"xs": []interface{}{1.0, 2.0, 3.0}}, "xs", Typed(TypeNumber).Length(3))
	if !ok || len(seq) != 3 {
		t.Errorf("expected length 3 to be accepted, got %v (ok=%v)", seq, ok)
	}
}

func TestTable_MapAbsenceFailsWholeTable(t *testing.T) {
	ext, diag := newTestExtractor()
	resolve := func(v interface{}) (interface{}, bool) {
		if v == "good" {
			return 1, true
		}
		return nil, false
	}

	_, ok := ext.Table(Document{"xs": []interface{}{"good", "bad"}}, "xs",
		Typed(TypeString).Map(resolve))
	if ok {
		t.Error("expected one failing element to fail the whole table")
	}
	if diag.Errors() != 1 {
		t.Errorf("expected one error, got %d", diag.Errors())
	}

	out, ok := ext.Table(Document{"xs": []interface{}{"good", "good"}}, "xs",
		Typed(TypeString).Map(resolve))
	if !ok || len(out) != 2 {
		t.Errorf("expected mapped table, got %v (ok=%v)", out, ok)
	}
}

func TestTable_ElementValidationBeforeTransform(t *testing.T) {
	ext, diag := newTestExtractor()
	called := false

	_, ok := ext.Table(Document{"xs": []interface{}{"a", 5.0}}, "xs",
		Typed(TypeString).Map(func(v interface{}) (interface{}, bool) {
			called = true
			return v, true
		}))
	if ok {
		t.Error("expected element type failure")
	}
	if called {
		t.Error("transform must not run when element validation fails")
	}
	if diag.Errors() != 1 {
		t.Errorf("expected one error, got %d", diag.Errors())
	}
}

func TestFieldAsIndex(t *testing.T) {
	ext, diag := newTestExtractor()
	reg := &fakeLookup{name: "skill", index: map[string]int{"carving": 4}}

	idx, ok := ext.FieldAsIndex(Document{"skill": "carving"}, "skill", reg, Typed(TypeString))
	if !ok || idx != 4 {
		t.Errorf("expected index 4, got %d (ok=%v)", idx, ok)
	}

	_, ok = ext.FieldAsIndex(Document{"skill": "mining"}, "skill", reg, Typed(TypeString))
	if ok {
		t.Error("expected unknown key to fail")
	}
	if diag.Errors() != 1 {
		t.Errorf("expected one error, got %d", diag.Errors())
	}
}

func TestVec3(t *testing.T) {
	ext, diag := newTestExtractor()

	v, ok := ext.Vec3(Document{"size": []interface{}{1.0, 2.0, 3.0}}, "size", Typed(TypeTable))
	if !ok || v != (Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("expected {1 2 3}, got %+v (ok=%v)", v, ok)
	}

	_, ok = ext.Vec3(Document{"size": []interface{}{1.0, 2.0}}, "size", Typed(TypeTable))
	if ok {
		t.Error("expected 2-element sequence to be rejected")
	}

	d, ok := ext.Vec3(Document{}, "size", Typed(TypeTable).Default(Vec3{X: 9}))
	if !ok || d.X != 9 {
		t.Errorf("expected default vector, got %+v (ok=%v)", d, ok)
	}

	if diag.Errors() != 1 {
		t.Errorf("expected one error in total, got %d", diag.Errors())
	}
}

func TestCompile(t *testing.T) {
	ext, diag := newTestExtractor()
	required := map[string]bool{"identifier": true, "color": true, "metal": false}

	rec := Document{"identifier": "hs:wood", "color": []interface{}{1.0, 1.0, 1.0}}
	if _, ok := ext.Compile(required, rec); !ok {
		t.Error("expected complete record to compile")
	}

	incomplete := Document{"identifier": "hs:stone"}
	if _, ok := ext.Compile(required, incomplete); ok {
		t.Error("expected missing required field to fail compilation")
	}
	if diag.Errors() != 1 {
		t.Errorf("expected one error, got %d", diag.Errors())
	}
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		in   interface{}
		want string
	}{
		{nil, "<absent>"},
		{"fish", `"fish"`},
		{3.5, "3.5"},
		{true, "true"},
		{[]interface{}{1.0, "a"}, `[1, "a"]`},
		{Document{"b": 1.0, "a": "x"}, `{a="x", b=1}`},
	}
	for _, c := range cases {
		if got := Describe(c.in); got != c.want {
			t.Errorf("Describe(%v) = %q, want %q", c.in, got, c.want)
		}
	}

	long := make([]interface{}, 50)
	for i := range long {
		long[i] = 123456.0
	}
	if got := Describe(long); len(got) > describeLimit {
		t.Errorf("expected truncation to %d chars, got %d", describeLimit, len(got))
	}
}
