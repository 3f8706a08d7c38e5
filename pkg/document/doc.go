// Package document implements the field/record validation-and-extraction
// engine of the ContentForge pipeline.
//
// # Overview
//
// Configuration documents arrive as loosely-typed, partially-optional nested
// mappings. This package turns them into strongly-typed fields with uniform
// validation semantics: default substitution, optional markers,
// cross-reference resolution against type-index registries, and aggregated
// error reporting. A malformed field degrades only that field's record; the
// load as a whole never aborts.
//
// # Components
//
// Rule: a small builder describing one field's validation: required-ness,
// type constraint, default, cross-reference checks, post-transform. Checks
// run in a fixed order (type, inTypeTable, notInTypeTable, transform) and
// the first failure aborts extraction for that field.
//
// Extractor: the four extraction primitives every definition generator is
// built from (Field, Table, FieldAsIndex, Vec3), plus typed convenience
// getters, the Compile required-field check, and the shared Diagnostics
// accumulator they count failures into.
//
// Merge: in-place deep merge of nested mappings, override-wins for shared
// scalar keys.
//
// # Usage Example
//
//	diag := document.NewDiagnostics(metrics)
//	ext := document.NewExtractor(log, diag)
//
//	name, ok := ext.String(desc, "name", document.Typed(document.TypeString))
//	scale, _ := ext.Number(desc, "scale", document.Typed(document.TypeNumber).Default(1.0))
//	idx, ok := ext.FieldAsIndex(rec, "skill", skills, document.Typed(document.TypeString))
package document
