// Package pipeline runs the load → graph → assign → render pipeline for
// chunkgraph.
//
// The CLI and the HTTP server both drive builds through a [Runner] so that
// manifest handling, option layering, logging and observability hooks
// behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read a project manifest from disk or take one already decoded
//  2. Graph: Bind the manifest's modules into a [modgraph.Graph]
//  3. Assign: Prune and sort inputs and assign each one to a module
//  4. Render: Produce the requested output formats
//
// Each stage can also be run on its own through the Runner methods.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    ManifestPath: "project.toml",
//	    Formats:      []string{pipeline.FormatJSON},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifacts[pipeline.FormatJSON])
//
// [modgraph.Graph]: github.com/matzehuels/chunkgraph/pkg/modgraph.Graph
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/chunkgraph/pkg/depsort"
	cgio "github.com/matzehuels/chunkgraph/pkg/io"
	"github.com/matzehuels/chunkgraph/pkg/modgraph"
)

// =============================================================================
// Formats
// =============================================================================

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatJSON

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatText: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, text, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
//
// Dependency fields left nil fall back to the manifest's [options] section,
// then to the defaults of [cgio.Manifest.DependencyOptions].
type Options struct {
	// Load options. Exactly one of ManifestPath and Manifest is set.
	ManifestPath string         `json:"manifest_path,omitempty"`
	Manifest     *cgio.Manifest `json:"manifest,omitempty"`

	// Dependency options
	EntryPoints  []string `json:"entry_points,omitempty"`
	Prune        *bool    `json:"prune,omitempty"`
	Sort         *bool    `json:"sort,omitempty"`
	DropMoochers *bool    `json:"drop_moochers,omitempty"`
	BaseSymbol   *string  `json:"base_symbol,omitempty"`
	SkipAssign   bool     `json:"skip_assign,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that a manifest source is given.
func (o *Options) ValidateForLoad() error {
	if o.ManifestPath == "" && o.Manifest == nil {
		return fmt.Errorf("manifest_path or manifest is required")
	}
	if o.ManifestPath != "" && o.Manifest != nil {
		return fmt.Errorf("manifest_path and manifest are mutually exclusive")
	}
	return nil
}

// DependencyOptions layers the run's overrides on the manifest's options.
func (o *Options) DependencyOptions(m *cgio.Manifest) (modgraph.DependencyOptions, error) {
	opts, err := m.DependencyOptions()
	if err != nil {
		return modgraph.DependencyOptions{}, err
	}
	if len(o.EntryPoints) > 0 {
		if opts.EntryPoints, err = modgraph.ParseEntryPoints(o.EntryPoints); err != nil {
			return modgraph.DependencyOptions{}, err
		}
	}
	if o.Prune != nil {
		opts.Prune = *o.Prune
	}
	if o.Sort != nil {
		opts.Sort = *o.Sort
	}
	if o.DropMoochers != nil {
		opts.DropMoochers = *o.DropMoochers
	}
	if o.BaseSymbol != nil {
		opts.BaseSymbol = *o.BaseSymbol
	}
	return opts, nil
}

// source names where the manifest came from, for logs and hooks.
func (o *Options) source() string {
	if o.ManifestPath != "" {
		return o.ManifestPath
	}
	return "inline"
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and API responses.
	RunID uuid.UUID

	// Manifest is the loaded project manifest.
	Manifest *cgio.Manifest

	// Graph is the bound module graph.
	Graph *modgraph.Graph

	// Assignment maps kept inputs to modules. Nil when SkipAssign is set.
	Assignment *modgraph.Assignment

	// Dropped lists the manifest inputs pruning left out, in manifest order.
	Dropped []*depsort.Input

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ModuleCount  int
	InputCount   int
	KeptCount    int
	DroppedCount int
	MaxDepth     int
	LoadTime     time.Duration
	GraphTime    time.Duration
	AssignTime   time.Duration
	RenderTime   time.Duration
}
