package discovery

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/contentforge/contentforge/pkg/loader"
	"github.com/contentforge/contentforge/pkg/registry"
)

// HostManifest declares the host simulation's side of a load pass: the
// pre-allocated key-to-index maps per registry, the order in which the
// host's runtime modules register, and which kinds start latched behind
// WaitingForStart. The CLI replays the manifest to reproduce the host's
// asynchronous module arrival deterministically.
type HostManifest struct {
	// Indexes maps registry names to their key-to-index maps.
	Indexes map[string]registry.IndexMap `yaml:"indexes" validate:"required,min=1"`

	// Modules lists host module names in registration order.
	Modules []string `yaml:"modules"`

	// Latched names the kinds that start with WaitingForStart set.
	Latched []string `yaml:"latched"`

	// DayLength is the simulation day length in seconds; zero selects the
	// pipeline default.
	DayLength float64 `yaml:"day_length" validate:"gte=0"`
}

// LoadManifest reads and validates a host manifest file.
func LoadManifest(path string) (*HostManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m HostManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	if err := validator.New().Struct(&m); err != nil {
		return nil, fmt.Errorf("manifest invalid: %w", err)
	}

	for _, name := range m.Latched {
		if _, ok := kindByName(name); !ok {
			return nil, fmt.Errorf("manifest invalid: unknown latched kind %q", name)
		}
	}
	return &m, nil
}

// LatchedKinds returns the latched kind set keyed by loader kind.
func (m *HostManifest) LatchedKinds() map[loader.Kind]bool {
	latched := make(map[loader.Kind]bool, len(m.Latched))
	for _, name := range m.Latched {
		if kind, ok := kindByName(name); ok {
			latched[kind] = true
		}
	}
	return latched
}

// kindByName resolves a kind's name (e.g. "object") to its loader kind.
func kindByName(name string) (loader.Kind, bool) {
	for _, k := range loader.Kinds() {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}
