package document

import "strconv"

// ValueType constrains the runtime kind of an extracted field value.
type ValueType int

const (
	// TypeAny accepts any value.
	TypeAny ValueType = iota

	// TypeString accepts strings.
	TypeString

	// TypeNumber accepts numeric values. A string convertible to a number
	// also counts as numeric-valid.
	TypeNumber

	// TypeBool accepts booleans. The exact string "true" also counts as
	// boolean-valid.
	TypeBool

	// TypeTable accepts sequences and nested mappings.
	TypeTable
)

// String returns the type name used in log messages.
func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBool:
		return "bool"
	case TypeTable:
		return "table"
	default:
		return "any"
	}
}

// MapFunc is an element-wise transform applied by table extraction. The
// second return value reports absence; absence of any element fails the
// whole table.
type MapFunc func(v interface{}) (interface{}, bool)

// Rule describes the validation and transformation applied to one field:
// required-ness, type constraint, default, cross-reference checks, and a
// post-transform. Checks run in a fixed order: type, then inTypeTable, then
// notInTypeTable, then the transform. The first failed check aborts
// extraction for that field.
//
// Rule values are built by chaining; the zero value of Typed(TypeAny) is a
// required field of any type.
type Rule struct {
	typ        ValueType
	optional   bool
	def        interface{}
	hasDefault bool
	in         Lookup
	notIn      Lookup
	length     int
	hasLength  bool
	mapFn      MapFunc
	with       func(v interface{}) interface{}
}

// Typed starts a rule requiring a value of the given type.
func Typed(t ValueType) Rule {
	return Rule{typ: t}
}

// Optional marks the field optional: absence is not an error.
func (r Rule) Optional() Rule {
	r.optional = true
	return r
}

// Default supplies the value substituted when the field is absent.
// A defaulted field never reports a missing-field error.
func (r Rule) Default(v interface{}) Rule {
	r.def = v
	r.hasDefault = true
	return r
}

// In requires the value to be a key of the given registry.
func (r Rule) In(reg Lookup) Rule {
	r.in = reg
	return r
}

// NotIn requires the value to not already hold an entry in the given
// registry.
func (r Rule) NotIn(reg Lookup) Rule {
	r.notIn = reg
	return r
}

// Length requires a table value to hold exactly n elements.
func (r Rule) Length(n int) Rule {
	r.length = n
	r.hasLength = true
	return r
}

// Map applies an element-wise transform during table extraction.
func (r Rule) Map(fn MapFunc) Rule {
	r.mapFn = fn
	return r
}

// With applies a final transform to the validated value.
func (r Rule) With(fn func(v interface{}) interface{}) Rule {
	r.with = fn
	return r
}

// asNumber reports whether v is numeric-valid under the permissive coercion
// rules, and its float64 value.
func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// asBool reports whether v is boolean-valid under the permissive coercion
// rules, and its bool value.
func asBool(v interface{}) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		// Only the exact string "true" coerces.
		return b == "true", b == "true"
	default:
		return false, false
	}
}

// matchesType checks v against the declared type constraint.
func matchesType(t ValueType, v interface{}) bool {
	switch t {
	case TypeAny:
		return true
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeNumber:
		_, ok := asNumber(v)
		return ok
	case TypeBool:
		_, ok := asBool(v)
		return ok
	case TypeTable:
		if _, ok := asDocument(v); ok {
			return true
		}
		_, ok := v.([]interface{})
		return ok
	default:
		return false
	}
}
