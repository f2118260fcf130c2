package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/chunkgraph/pkg/depsort"
	cgio "github.com/matzehuels/chunkgraph/pkg/io"
	"github.com/matzehuels/chunkgraph/pkg/modgraph"
	"github.com/matzehuels/chunkgraph/pkg/observability"
)

// Runner executes pipeline stages with logging and observability hooks.
//
// The Runner holds no per-run state, so multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger uses log.Default.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → graph → assign → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.New(),
		Artifacts: make(map[string][]byte),
	}
	logger := r.Logger.With("run_id", result.RunID.String()[:8])

	// Stage 1: Load
	loadStart := time.Now()
	m, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Manifest = m
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.InputCount = len(m.Inputs)

	logger.Debug("loaded manifest",
		"source", opts.source(),
		"modules", len(m.Modules),
		"inputs", len(m.Inputs),
		"duration", result.Stats.LoadTime)

	// Stage 2: Graph
	graphStart := time.Now()
	g, err := r.BuildGraph(ctx, m)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.GraphTime = time.Since(graphStart)
	result.Stats.ModuleCount = g.ModuleCount()
	result.Stats.MaxDepth = g.MaxDepth()

	logger.Info("built module graph",
		"modules", g.ModuleCount(),
		"max_depth", g.MaxDepth(),
		"duration", result.Stats.GraphTime)

	// Stage 3: Assign
	if !opts.SkipAssign {
		assignStart := time.Now()
		a, err := r.Assign(ctx, g, m, opts)
		if err != nil {
			return nil, err
		}
		result.Assignment = a
		result.Dropped = Dropped(m.Inputs, a)
		result.Stats.AssignTime = time.Since(assignStart)
		result.Stats.KeptCount = a.Len()
		result.Stats.DroppedCount = len(result.Dropped)

		logger.Info("assigned inputs",
			"kept", a.Len(),
			"dropped", len(result.Dropped),
			"duration", result.Stats.AssignTime)
	}

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, g, result.Assignment, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load returns the manifest named by opts, reading it from disk when only a
// path is given.
func (r *Runner) Load(ctx context.Context, opts Options) (m *cgio.Manifest, err error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	source := opts.source()
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()
	defer func() {
		modules, inputs := 0, 0
		if m != nil {
			modules, inputs = len(m.Modules), len(m.Inputs)
		}
		hooks.OnLoadComplete(ctx, source, modules, inputs, time.Since(start), err)
	}()

	if opts.Manifest != nil {
		if err := opts.Manifest.Validate(); err != nil {
			return nil, err
		}
		return opts.Manifest, nil
	}
	return cgio.LoadManifest(opts.ManifestPath)
}

// BuildGraph binds the manifest's modules into a graph.
func (r *Runner) BuildGraph(ctx context.Context, m *cgio.Manifest) (g *modgraph.Graph, err error) {
	hooks := observability.Pipeline()
	hooks.OnGraphStart(ctx, len(m.Modules))
	start := time.Now()
	defer func() {
		modules, depth := 0, -1
		if g != nil {
			modules, depth = g.ModuleCount(), g.MaxDepth()
		}
		hooks.OnGraphComplete(ctx, modules, depth, time.Since(start), err)
	}()

	return m.Build()
}

// Assign runs dependency management over the manifest's inputs.
func (r *Runner) Assign(ctx context.Context, g *modgraph.Graph, m *cgio.Manifest, opts Options) (a *modgraph.Assignment, err error) {
	depOpts, err := opts.DependencyOptions(m)
	if err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnAssignStart(ctx, len(m.Inputs), len(depOpts.EntryPoints))
	start := time.Now()
	defer func() {
		kept := 0
		if a != nil {
			kept = a.Len()
		}
		hooks.OnAssignComplete(ctx, kept, len(m.Inputs)-kept, time.Since(start), err)
	}()

	r.Logger.Debug("managing dependencies",
		"entry_points", len(depOpts.EntryPoints),
		"prune", depOpts.Prune,
		"sort", depOpts.Sort,
		"drop_moochers", depOpts.DropMoochers,
		"base_symbol", depOpts.BaseSymbol)

	return g.ManageDependenciesWithOptions(depOpts, m.Inputs)
}

// Render produces every format in opts.Formats. a may be nil.
func (r *Runner) Render(ctx context.Context, g *modgraph.Graph, a *modgraph.Assignment, opts Options) (map[string][]byte, error) {
	if len(opts.Formats) == 0 {
		opts.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	return Render(ctx, g, a, opts)
}

// Dropped returns the inputs a did not keep, in their original order.
func Dropped(inputs []*depsort.Input, a *modgraph.Assignment) []*depsort.Input {
	var out []*depsort.Input
	for _, in := range inputs {
		if _, ok := a.ModuleOf(in); !ok {
			out = append(out, in)
		}
	}
	return out
}
