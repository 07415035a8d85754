// Package layers holds the static table of composition layers.
//
// The table is data (layers.yaml, embedded) rather than code, and the
// ordering rule is asserted once when a Registry is built: every layer may
// only reference layers of strictly lower level, so any composition graph
// that respects the registry is acyclic.
package layers

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/strata/pkg/strata"
)

// MaxLevel is the highest level a layer may have.
const MaxLevel = 6

//go:embed layers.yaml
var defaultTable []byte

// Layer is one tier of the composition hierarchy.
type Layer struct {
	Name   string   `yaml:"name"`
	Level  int      `yaml:"level"`
	Prefix string   `yaml:"prefix"`
	Allows []string `yaml:"allows"`
}

// Token returns the canonical level token, e.g. "L2".
func (l Layer) Token() string {
	return fmt.Sprintf("L%d", l.Level)
}

// CanReference reports whether documents of l may compose documents of the
// named layer.
func (l Layer) CanReference(name string) bool {
	for _, a := range l.Allows {
		if a == name {
			return true
		}
	}
	return false
}

type table struct {
	Layers []Layer `yaml:"layers"`
}

// Registry is a read-only, validated set of layers.
type Registry struct {
	ordered []Layer
	byName  map[string]Layer
}

// New validates defs and builds a Registry ordered by level.
// All problems are reported together, each wrapping strata.ErrInvalidRegistry.
func New(defs []Layer) (*Registry, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("no layers defined: %w", strata.ErrInvalidRegistry)
	}

	var errs []error
	byName := make(map[string]Layer, len(defs))
	prefixes := make(map[string]string, len(defs))
	levels := make(map[int]string, len(defs))

	for _, l := range defs {
		switch {
		case l.Name == "":
			errs = append(errs, fmt.Errorf("layer with level %d has no name: %w", l.Level, strata.ErrInvalidRegistry))
			continue
		case strings.ContainsAny(l.Name, `/\`) || l.Name == "." || l.Name == "..":
			errs = append(errs, fmt.Errorf("layer %q: name must be a plain directory name: %w", l.Name, strata.ErrInvalidRegistry))
		}
		if _, dup := byName[l.Name]; dup {
			errs = append(errs, fmt.Errorf("layer %q defined twice: %w", l.Name, strata.ErrInvalidRegistry))
			continue
		}
		if l.Level < 0 || l.Level > MaxLevel {
			errs = append(errs, fmt.Errorf("layer %q: level %d outside 0..%d: %w", l.Name, l.Level, MaxLevel, strata.ErrInvalidRegistry))
		}
		if other, dup := levels[l.Level]; dup {
			errs = append(errs, fmt.Errorf("layers %q and %q share level %d: %w", other, l.Name, l.Level, strata.ErrInvalidRegistry))
		}
		if l.Prefix == "" {
			errs = append(errs, fmt.Errorf("layer %q has no identifier prefix: %w", l.Name, strata.ErrInvalidRegistry))
		} else if other, dup := prefixes[l.Prefix]; dup {
			errs = append(errs, fmt.Errorf("layers %q and %q share prefix %q: %w", other, l.Name, l.Prefix, strata.ErrInvalidRegistry))
		}

		levels[l.Level] = l.Name
		prefixes[l.Prefix] = l.Name
		l.Allows = append([]string(nil), l.Allows...)
		byName[l.Name] = l
	}

	// Levels must strictly decrease along every allowed edge.
	for _, l := range byName {
		for _, target := range l.Allows {
			t, ok := byName[target]
			if !ok {
				errs = append(errs, fmt.Errorf("layer %q allows unknown layer %q: %w", l.Name, target, strata.ErrInvalidRegistry))
				continue
			}
			if t.Level >= l.Level {
				errs = append(errs, fmt.Errorf("layer %q (L%d) may not reference %q (L%d): references must point to strictly lower levels: %w",
					l.Name, l.Level, t.Name, t.Level, strata.ErrInvalidRegistry))
			}
		}
	}

	if len(errs) > 0 {
		sort.Slice(errs, func(i, j int) bool { return errs[i].Error() < errs[j].Error() })
		return nil, errors.Join(errs...)
	}

	ordered := make([]Layer, 0, len(byName))
	for _, l := range byName {
		ordered = append(ordered, l)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Level < ordered[j].Level })

	return &Registry{ordered: ordered, byName: byName}, nil
}

// Parse decodes a YAML layer table and builds a Registry from it.
func Parse(data []byte) (*Registry, error) {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode layer table: %v: %w", err, strata.ErrInvalidRegistry)
	}
	return New(t.Layers)
}

// LoadFile reads a layer table from path.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layer table %s: %v: %w", path, err, strata.ErrInvalidRegistry)
	}
	return Parse(data)
}

// Default returns the canonical registry:
// primitives < atoms < molecules < organisms < templates < patterns < recipes.
func Default() *Registry {
	r, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("embedded layer table is invalid: %v", err))
	}
	return r
}

// Lookup returns the layer with the given name.
func (r *Registry) Lookup(name string) (Layer, bool) {
	l, ok := r.byName[name]
	if !ok {
		return Layer{}, false
	}
	l.Allows = append([]string(nil), l.Allows...)
	return l, true
}

// Layers returns the layers ordered by level.
func (r *Registry) Layers() []Layer {
	out := make([]Layer, len(r.ordered))
	for i, l := range r.ordered {
		l.Allows = append([]string(nil), l.Allows...)
		out[i] = l
	}
	return out
}

// Names returns the layer names ordered by level.
func (r *Registry) Names() []string {
	names := make([]string, len(r.ordered))
	for i, l := range r.ordered {
		names[i] = l.Name
	}
	return names
}
