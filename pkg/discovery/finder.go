package discovery

import (
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/contentforge/contentforge/pkg/document"
	"github.com/contentforge/contentforge/pkg/loader"
	"github.com/contentforge/contentforge/pkg/telemetry"
)

// Finder walks content roots and parses the definition files it finds into
// configuration documents, grouped by the kind that owns each document
// collection.
type Finder struct {
	roots []string
	log   *telemetry.Logger
}

// NewFinder creates a finder over the given content roots.
func NewFinder(roots []string, log *telemetry.Logger) *Finder {
	return &Finder{
		roots: roots,
		log:   log.NewComponentLogger("discovery"),
	}
}

// Discover walks every root and returns the discovered documents per kind,
// in walk order. A file that fails to parse, or declares no recognized kind
// tag, is logged and skipped; only a failed walk itself is an error.
func (f *Finder) Discover() (map[loader.Kind][]document.Document, error) {
	docs := make(map[loader.Kind][]document.Document)

	for _, root := range f.roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			doc, parsed := f.parseFile(path)
			if !parsed {
				return nil
			}

			kind, known := loader.KindFromTag(doc.Kind())
			if !known {
				f.log.WithField("path", path).WithField("tag", doc.Kind()).
					Warn("unrecognized kind tag, file skipped")
				return nil
			}
			docs[kind] = append(docs[kind], doc)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	for kind, collection := range docs {
		f.log.WithKind(kind.String()).
			WithField("documents", len(collection)).Debug("documents discovered")
	}
	return docs, nil
}

// parseFile parses one definition file by extension. Unknown extensions are
// ignored silently; parse failures are logged and skipped.
func (f *Finder) parseFile(path string) (document.Document, bool) {
	var (
		doc document.Document
		err error
	)

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		doc, err = loadYAMLDocument(path)
	case ".lua":
		doc, err = loadLuaDocument(path)
	default:
		return nil, false
	}

	if err != nil {
		f.log.WithField("path", path).WithError(err).Error("definition file skipped")
		return nil, false
	}
	return doc, true
}

// loadYAMLDocument decodes a YAML content-definition file into a document.
func loadYAMLDocument(path string) (document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return document.Document(raw), nil
}
