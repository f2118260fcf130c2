package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chunkgraph/pkg/depsort"
	"github.com/matzehuels/chunkgraph/pkg/errors"
	"github.com/matzehuels/chunkgraph/pkg/modgraph"
)

// Format identifies a manifest encoding.
type Format string

// Supported manifest formats.
const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Manifest describes one build: modules in dependency order, inputs, entry
// points and dependency options.
type Manifest struct {
	EntryPoints []string         `json:"entry_points,omitempty" toml:"entry_points"`
	Options     Options          `json:"options" toml:"options"`
	Modules     []ModuleSpec     `json:"modules" toml:"module"`
	Inputs      []*depsort.Input `json:"inputs" toml:"input"`
}

// ModuleSpec declares a module and the names of its direct dependencies.
type ModuleSpec struct {
	Name string   `json:"name" toml:"name"`
	Deps []string `json:"deps,omitempty" toml:"deps"`
}

// Options holds the dependency options set in a manifest. Unset fields
// keep their defaults.
type Options struct {
	Prune        *bool   `json:"prune,omitempty" toml:"prune"`
	Sort         *bool   `json:"sort,omitempty" toml:"sort"`
	DropMoochers *bool   `json:"drop_moochers,omitempty" toml:"drop_moochers"`
	BaseSymbol   *string `json:"base_symbol,omitempty" toml:"base_symbol"`
}

// FormatFromPath picks the manifest format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported manifest extension: %q", filepath.Ext(path))
	}
}

// ReadManifest decodes a manifest from r and validates it.
func ReadManifest(r io.Reader, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode toml")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported manifest format: %q", format)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseManifest decodes a manifest held in memory.
func ParseManifest(data []byte, format Format) (*Manifest, error) {
	return ReadManifest(bytes.NewReader(data), format)
}

// LoadManifest reads the manifest at path, choosing the format from the
// extension.
func LoadManifest(path string) (*Manifest, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	m, err := ReadManifest(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return m, nil
}

// Validate checks names and references. Module order is not checked here;
// that is the graph's job.
func (m *Manifest) Validate() error {
	modules := make(map[string]bool, len(m.Modules))
	for _, spec := range m.Modules {
		if err := errors.ValidateModuleName(spec.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidManifest, err, "module %q", spec.Name)
		}
		if modules[spec.Name] {
			return errors.New(errors.ErrCodeInvalidManifest, "module %q declared twice", spec.Name)
		}
		modules[spec.Name] = true
	}
	for _, spec := range m.Modules {
		for _, dep := range spec.Deps {
			if !modules[dep] {
				return errors.New(errors.ErrCodeInvalidManifest, "module %q depends on undeclared module %q", spec.Name, dep)
			}
		}
	}

	inputs := make(map[string]bool, len(m.Inputs))
	for i, in := range m.Inputs {
		if in == nil {
			return errors.New(errors.ErrCodeInvalidManifest, "input %d is empty", i)
		}
		if err := errors.ValidateInputName(in.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidManifest, err, "input %d", i)
		}
		if inputs[in.Name] {
			return errors.New(errors.ErrCodeInvalidManifest, "input %q declared twice", in.Name)
		}
		inputs[in.Name] = true
		for _, sym := range append(append([]string(nil), in.Provides...), in.Requires...) {
			if err := errors.ValidateSymbol(sym); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidManifest, err, "input %q", in.Name)
			}
		}
	}
	return nil
}

// Build creates the modules and binds them into a graph in manifest order.
func (m *Manifest) Build() (*modgraph.Graph, error) {
	specs := make(map[string]ModuleSpec, len(m.Modules))
	for _, spec := range m.Modules {
		specs[spec.Name] = spec
	}

	created := make(map[string]*modgraph.Module, len(m.Modules))
	visiting := make(map[string]bool)
	var create func(name string) (*modgraph.Module, error)
	create = func(name string) (*modgraph.Module, error) {
		if mod, ok := created[name]; ok {
			return mod, nil
		}
		if visiting[name] {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "dependency cycle through module %q", name)
		}
		visiting[name] = true
		spec, ok := specs[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "undeclared module %q", name)
		}
		deps := make([]*modgraph.Module, 0, len(spec.Deps))
		for _, d := range spec.Deps {
			dep, err := create(d)
			if err != nil {
				return nil, err
			}
			deps = append(deps, dep)
		}
		mod := modgraph.NewModule(name, deps...)
		created[name] = mod
		return mod, nil
	}

	ordered := make([]*modgraph.Module, 0, len(m.Modules))
	for _, spec := range m.Modules {
		mod, err := create(spec.Name)
		if err != nil {
			return nil, err
		}
		ordered = append(ordered, mod)
	}
	return modgraph.New(ordered)
}

// DependencyOptions returns the manifest's dependency options on top of
// the defaults: pruning and sorting on, moochers kept, and
// modgraph.DefaultBaseSymbol.
func (m *Manifest) DependencyOptions() (modgraph.DependencyOptions, error) {
	eps, err := modgraph.ParseEntryPoints(m.EntryPoints)
	if err != nil {
		return modgraph.DependencyOptions{}, err
	}
	opts := modgraph.DependencyOptions{
		EntryPoints: eps,
		Prune:       true,
		Sort:        true,
		BaseSymbol:  modgraph.DefaultBaseSymbol,
	}
	if m.Options.Prune != nil {
		opts.Prune = *m.Options.Prune
	}
	if m.Options.Sort != nil {
		opts.Sort = *m.Options.Sort
	}
	if m.Options.DropMoochers != nil {
		opts.DropMoochers = *m.Options.DropMoochers
	}
	if m.Options.BaseSymbol != nil {
		opts.BaseSymbol = *m.Options.BaseSymbol
	}
	return opts, nil
}
