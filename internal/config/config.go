// Package config loads the engine's tunable limits and its format
// catalog from a YAML file via gopkg.in/yaml.v3, the same library the
// rest of the retrieval pack's config loaders reach for.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options holds limits on how far a decode or render pass may go
// (recursion depth, decode steps, rendered bytes). Load fills them from a
// catalog file; the decode driver and the renderer do not read them, so
// they bound nothing on their own.
type Options struct {
	MaxRecursionDepth int `yaml:"maxRecursionDepth"`
	MaxSteps          int `yaml:"maxSteps"`
	MaxRenderBytes    int `yaml:"maxRenderBytes"`
}

// Default holds conservative limits suitable for scanning untrusted input.
var Default = Options{
	MaxRecursionDepth: 64,
	MaxSteps:          1 << 20,
	MaxRenderBytes:    1 << 24,
}

// CatalogEntry names one registered format for candidate selection (§2):
// a human name, its magic signature, and the number of leading bytes
// MagicHex covers.
type CatalogEntry struct {
	Name      string `yaml:"name"`
	MagicHex  string `yaml:"magicHex"`
	MatchSize int    `yaml:"matchSize"`
}

// Catalog is the full set of engine options plus registered formats.
type Catalog struct {
	Options Options        `yaml:"options"`
	Entries []CatalogEntry `yaml:"formats"`
}

// Load reads and parses a catalog file at path. Missing Options fields
// fall back to Default.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}
	cat := &Catalog{Options: Default}
	if err := yaml.Unmarshal(data, cat); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cat, nil
}
