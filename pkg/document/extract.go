package document

import (
	"fmt"
	"sort"
	"strings"

	"github.com/contentforge/contentforge/pkg/telemetry"
)

// Extractor performs typed field extraction from configuration records with
// uniform validation semantics. Every failure is logged, counted in the
// shared Diagnostics, and degrades exactly the field (or record) being
// processed; nothing is ever raised to the caller.
type Extractor struct {
	log  *telemetry.Logger
	diag *Diagnostics
}

// NewExtractor creates an extractor bound to a logger and an error
// accumulator.
func NewExtractor(log *telemetry.Logger, diag *Diagnostics) *Extractor {
	return &Extractor{
		log:  log.NewComponentLogger("document"),
		diag: diag,
	}
}

// Diagnostics returns the accumulator this extractor counts into.
func (e *Extractor) Diagnostics() *Diagnostics {
	return e.diag
}

// fail logs a classified field error and counts it.
func (e *Extractor) fail(class ErrorClass, key, format string, args ...interface{}) {
	ferr := &FieldError{Class: class, Key: key, Message: fmt.Sprintf(format, args...)}
	e.log.WithError(ferr).Error("field validation failed")
	e.diag.CountError(class)
}

// Report logs and counts a classified failure discovered outside the
// extraction primitives, with the same degradation semantics: the caller
// drops the affected unit and continues.
func (e *Extractor) Report(class ErrorClass, key, format string, args ...interface{}) {
	e.fail(class, key, format, args...)
}

// Field extracts the value at key from record.
//
// An absent key yields the rule's default when one is set, or silent absence
// when the rule is optional, or a counted missing-field error otherwise. A
// present value passes through validation (type, then inTypeTable, then
// notInTypeTable); the first failed check aborts extraction for this field.
// The rule's transform, if any, is applied last.
func (e *Extractor) Field(record Document, key string, r Rule) (interface{}, bool) {
	v, present := record[key]
	if !present || v == nil {
		if r.hasDefault {
			return r.def, true
		}
		if r.optional {
			return nil, false
		}
		e.fail(ClassMissingField, key, "required field is missing")
		return nil, false
	}

	if !e.validate(key, v, r) {
		return nil, false
	}

	if r.with != nil {
		v = r.with(v)
	}
	return v, true
}

// validate checks one value against a rule. Checks run in a fixed order and
// the first failure aborts: type, then inTypeTable, then notInTypeTable.
func (e *Extractor) validate(key string, v interface{}, r Rule) bool {
	if !matchesType(r.typ, v) {
		e.fail(ClassWrongType, key, "expected %s, got %s", r.typ, Describe(v))
		return false
	}

	if r.in != nil {
		s, ok := v.(string)
		if !ok || !r.in.Has(s) {
			e.fail(ClassUnresolvedReference, key, "%s is not a key of %s (valid keys: %s)",
				Describe(v), r.in.Name(), strings.Join(r.in.Keys(), ", "))
			return false
		}
	}

	if r.notIn != nil {
		if s, ok := v.(string); ok && r.notIn.Registered(s) {
			e.fail(ClassKeyCollision, key, "%s already claims a key of %s",
				Describe(v), r.notIn.Name())
			return false
		}
	}

	return true
}

// String extracts a string field.
func (e *Extractor) String(record Document, key string, r Rule) (string, bool) {
	r.typ = TypeString
	v, ok := e.Field(record, key, r)
	if !ok {
		return "", false
	}
	s, sok := v.(string)
	return s, sok
}

// Number extracts a numeric field, applying the permissive string-to-number
// coercion.
func (e *Extractor) Number(record Document, key string, r Rule) (float64, bool) {
	r.typ = TypeNumber
	v, ok := e.Field(record, key, r)
	if !ok {
		return 0, false
	}
	n, nok := asNumber(v)
	return n, nok
}

// Bool extracts a boolean field, applying the permissive "true" string
// coercion.
func (e *Extractor) Bool(record Document, key string, r Rule) (bool, bool) {
	r.typ = TypeBool
	v, ok := e.Field(record, key, r)
	if !ok {
		return false, false
	}
	b, bok := asBool(v)
	return b, bok
}

// Table extracts a sequence field. The rule's cardinality constraint, if
// any, is checked first; each element then passes through validation before
// the element-wise transform runs. A transform returning absence for any
// element fails the whole table extraction.
func (e *Extractor) Table(record Document, key string, r Rule) ([]interface{}, bool) {
	v, present := record[key]
	if !present || v == nil {
		if r.hasDefault {
			seq, _ := r.def.([]interface{})
			return seq, true
		}
		if r.optional {
			return nil, false
		}
		e.fail(ClassMissingField, key, "required table is missing")
		return nil, false
	}

	seq, ok := v.([]interface{})
	if !ok {
		e.fail(ClassWrongType, key, "expected a sequence, got %s", Describe(v))
		return nil, false
	}

	if r.hasLength && len(seq) != r.length {
		e.fail(ClassWrongType, key, "expected exactly %d elements, got %d", r.length, len(seq))
		return nil, false
	}

	for _, el := range seq {
		if !e.validate(key, el, r) {
			return nil, false
		}
	}

	if r.mapFn == nil {
		return seq, true
	}

	out := make([]interface{}, 0, len(seq))
	for _, el := range seq {
		mapped, mok := r.mapFn(el)
		if !mok {
			e.fail(ClassUnresolvedReference, key, "element %s did not transform", Describe(el))
			return nil, false
		}
		out = append(out, mapped)
	}
	return out, true
}

// FieldAsIndex extracts a string field that must be a key of the given
// registry and resolves it straight to the registry's integer index.
func (e *Extractor) FieldAsIndex(record Document, key string, reg Lookup, r Rule) (int, bool) {
	r.typ = TypeString
	v, ok := e.Field(record, key, r.In(reg))
	if !ok {
		return 0, false
	}
	s, sok := v.(string)
	if !sok {
		e.fail(ClassWrongType, key, "expected string key, got %s", Describe(v))
		return 0, false
	}
	idx, iok := reg.Index(s)
	if !iok {
		e.fail(ClassUnresolvedReference, key, "%q has no index in %s", s, reg.Name())
		return 0, false
	}
	return idx, true
}

// Vec3 extracts a 3-element numeric sequence as a vector. A Vec3 default may
// be supplied via the rule.
func (e *Extractor) Vec3(record Document, key string, r Rule) (Vec3, bool) {
	v, present := record[key]
	if !present || v == nil {
		if r.hasDefault {
			d, dok := r.def.(Vec3)
			return d, dok
		}
		if r.optional {
			return Vec3{}, false
		}
		e.fail(ClassMissingField, key, "required vector is missing")
		return Vec3{}, false
	}

	seq, ok := v.([]interface{})
	if !ok || len(seq) != 3 {
		e.fail(ClassWrongType, key, "expected a 3-element numeric sequence, got %s", Describe(v))
		return Vec3{}, false
	}

	var parts [3]float64
	for i, el := range seq {
		n, nok := asNumber(el)
		if !nok {
			e.fail(ClassWrongType, key, "vector component %d is not numeric: %s", i, Describe(el))
			return Vec3{}, false
		}
		parts[i] = n
	}
	return Vec3{X: parts[0], Y: parts[1], Z: parts[2]}, true
}

// Compile verifies that every field marked required in the given table is
// present and non-absent in record. On the first missing required field it
// logs, counts one error, and returns absence for the whole record. Fields
// are checked in sorted order so failures are deterministic.
func (e *Extractor) Compile(required map[string]bool, record Document) (Document, bool) {
	keys := make([]string, 0, len(required))
	for k := range required {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !required[k] {
			continue
		}
		if v, ok := record[k]; !ok || v == nil {
			e.fail(ClassMissingField, k, "record %s is missing a required field", Describe(record))
			return nil, false
		}
	}
	return record, true
}
