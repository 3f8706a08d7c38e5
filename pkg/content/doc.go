// Package content implements the per-kind definition generators: the
// transforms from a validated configuration document to a finished registry
// entry.
//
// # Overview
//
// Every generator follows the same shape: destructure the document into its
// description and components sub-records, build a candidate entry through
// the document package's extraction primitives, resolve cross-kind
// references (immediately when the referenced registry is populated, or via
// the forward-reference table when it is not), and register the entry with
// its kind's type-index store. Failures degrade the single field, sequence
// element, or sibling record involved; a generator that cannot finish an
// entry simply never calls the registration primitive.
//
// # Document shape
//
// Object documents ("object_definition") feed three kinds (resource, game
// object, evolving object) through their components:
//
//	kind: object_definition
//	description:
//	  identifier: "hs:raw_fish"
//	  name: "Raw fish"
//	components:
//	  resource:
//	    storage: "hs:basket"        # forward reference by name
//	  food:
//	    portions: 2
//	  object:
//	    model: "fish"
//	  evolving_object:
//	    days: 2
//	    transforms_to: ["hs:rotten_fish"]
//
// Storage, recipe, material, and skill documents carry their own kind tags.
// Material and skill documents hold sequences of sibling records, each
// compiled independently against a required-field table.
package content
