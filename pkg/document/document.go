package document

import (
	"fmt"
	"sort"
	"strings"
)

// Document is one parsed content definition: an arbitrarily nested mapping
// with string keys and heterogeneous values (scalars, sequences, nested
// mappings). Documents are produced by the discovery collaborator and are
// treated as read-only by the pipeline.
type Document map[string]interface{}

// KindTag is the document field that namespaces a definition by content kind
// (e.g. "object_definition", "storage_definition").
const KindTag = "kind"

// Kind returns the document's kind tag, or "" when absent.
func (d Document) Kind() string {
	s, _ := d[KindTag].(string)
	return s
}

// Sub returns the nested mapping stored at key. The second return value is
// false when the key is absent or the value is not a mapping.
func (d Document) Sub(key string) (Document, bool) {
	v, ok := d[key]
	if !ok {
		return nil, false
	}
	return asDocument(v)
}

// AsDocument normalizes a nested-mapping value into a Document. The second
// return value is false when v is not a mapping.
func AsDocument(v interface{}) (Document, bool) {
	return asDocument(v)
}

// asDocument normalizes the mapping representations produced by the
// discovery parsers (yaml.v3 and the Lua converter) into Document.
func asDocument(v interface{}) (Document, bool) {
	switch m := v.(type) {
	case Document:
		return m, true
	case map[string]interface{}:
		return Document(m), true
	default:
		return nil, false
	}
}

// Vec3 is a 3-component vector used for geometric content fields
// (size, offset, rotation).
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Lookup is the read-only view of a type-index registry that field
// validation needs: which keys are legal, which integer slot each key maps
// to, and whether an entry has already been stored at a key.
type Lookup interface {
	// Name identifies the registry in log messages.
	Name() string

	// Has reports whether key has a pre-allocated index slot.
	Has(key string) bool

	// Registered reports whether an entry is already stored at key.
	Registered(key string) bool

	// Index returns the dense integer index assigned to key.
	Index(key string) (int, bool)

	// Keys returns every legal key in sorted order.
	Keys() []string
}

// describeLimit caps the length of Describe output.
const describeLimit = 64

// Describe produces a short printable representation of any value for log
// messages. It never panics and never recurses unboundedly; nested
// structures are summarized and long output is truncated.
func Describe(v interface{}) string {
	s := describe(v, 0)
	if len(s) > describeLimit {
		return s[:describeLimit-3] + "..."
	}
	return s
}

func describe(v interface{}, depth int) string {
	if v == nil {
		return "<absent>"
	}
	if depth > 2 {
		return "..."
	}
	switch t := v.(type) {
	case string:
		return fmt.Sprintf("%q", t)
	case bool:
		return fmt.Sprintf("%v", t)
	case int, int64, float64:
		return fmt.Sprintf("%v", t)
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, describe(e, depth+1))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Document, map[string]interface{}:
		m, _ := asDocument(t)
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+describe(m[k], depth+1))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", t)
	}
}
