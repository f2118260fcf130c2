package modgraph

import (
	"github.com/matzehuels/chunkgraph/pkg/depsort"
	"github.com/matzehuels/chunkgraph/pkg/errors"
)

// DefaultBaseSymbol is the symbol of the base unit that ManageDependencies
// always keeps when some input provides it.
const DefaultBaseSymbol = "base"

// Sorter orders compilation units so that providers precede requirers.
// *depsort.Sorter implements it.
type Sorter interface {
	DependenciesOf(roots []*depsort.Input, sorted bool) []*depsort.Input
	InputsWithoutProvides() []*depsort.Input
	InputProviding(symbol string) (*depsort.Input, error)
	MaybeInputProviding(symbol string) *depsort.Input
}

// DependencyOptions controls ManageDependenciesWithOptions.
type DependencyOptions struct {
	// EntryPoints seed reachability when pruning.
	EntryPoints []EntryPoint
	// Prune drops inputs no entry point reaches. When false every input is
	// an entry point.
	Prune bool
	// Sort orders closures by dependencies instead of by input order.
	Sort bool
	// DropMoochers excludes inputs without provides from the entry points.
	DropMoochers bool
	// BaseSymbol names a unit that is always an entry point if provided.
	BaseSymbol string
	// NewSorter builds the sorter for the inputs. Defaults to depsort.New.
	NewSorter func(inputs []*depsort.Input) Sorter
}

func defaultSorter(inputs []*depsort.Input) Sorter { return depsort.New(inputs) }

// Assignment is the outcome of dependency management: the owning module of
// every kept input and the final input order.
type Assignment struct {
	graph    *Graph
	owner    map[*depsort.Input]*Module
	byModule [][]*depsort.Input
	order    []*depsort.Input
}

// Inputs returns the kept inputs grouped by module, modules in dependency
// order.
func (a *Assignment) Inputs() []*depsort.Input {
	return append([]*depsort.Input(nil), a.order...)
}

// Len returns the number of kept inputs.
func (a *Assignment) Len() int { return len(a.order) }

// ModuleOf returns the module owning in, if in was kept.
func (a *Assignment) ModuleOf(in *depsort.Input) (*Module, bool) {
	m, ok := a.owner[in]
	return m, ok
}

// InputsOf returns the inputs owned by m in build order.
func (a *Assignment) InputsOf(m *Module) []*depsort.Input {
	a.graph.summaryOf(m)
	return append([]*depsort.Input(nil), a.byModule[m.index]...)
}

// ManageDependencies sorts and prunes inputs for the given entry points and
// assigns every kept input to a module. It is ManageDependenciesWithOptions
// with sorting and pruning enabled, moochers kept and DefaultBaseSymbol.
func (g *Graph) ManageDependencies(entryPoints []EntryPoint, inputs []*depsort.Input) (*Assignment, error) {
	return g.ManageDependenciesWithOptions(DependencyOptions{
		EntryPoints: entryPoints,
		Prune:       true,
		Sort:        true,
		BaseSymbol:  DefaultBaseSymbol,
	}, inputs)
}

// ManageDependenciesWithOptions decides which module owns each input.
//
// Entry point inputs start in their own module (Input.Module, or the module
// named by a qualified entry point). For each such module, in order of first
// appearance, the closure of its entry points is walked: an input nobody
// claimed yet joins the module, and an input already claimed by another
// module moves to the deepest module both can load it from. Inputs are then
// collected per module in the sorter's global order.
//
// It fails with ErrCodeMissingModule when an entry point or entry input names
// an unknown module, ErrCodeMissingProvide when an entry point symbol has no
// provider, ErrCodeUnassignedInput when an entry input has no module, and
// ErrCodeNoCommonModule when two modules claiming an input share no
// dependency. On failure nothing is assigned. Inputs are never modified.
func (g *Graph) ManageDependenciesWithOptions(opts DependencyOptions, inputs []*depsort.Input) (*Assignment, error) {
	newSorter := opts.NewSorter
	if newSorter == nil {
		newSorter = defaultSorter
	}
	sorter := newSorter(inputs)

	entries, pinned, err := g.entryPointInputs(opts, inputs, sorter)
	if err != nil {
		return nil, err
	}

	// The order of inputs, independent of modules.
	absoluteOrder := sorter.DependenciesOf(inputs, opts.Sort)

	// The inputs that must be in each module or one of its dependencies.
	var modules []*Module
	perModule := make(map[*Module][]*depsort.Input)
	for _, in := range entries {
		m, ok := pinned[in]
		if !ok {
			if m, err = g.initialModule(in); err != nil {
				return nil, err
			}
		}
		if _, seen := perModule[m]; !seen {
			modules = append(modules, m)
		}
		perModule[m] = append(perModule[m], in)
	}

	owner := make(map[*depsort.Input]*Module)
	for _, m := range modules {
		for _, in := range sorter.DependenciesOf(perModule[m], opts.Sort) {
			old, claimed := owner[in]
			if !claimed {
				owner[in] = m
				continue
			}
			common := g.DeepestCommonDependencyInclusive(old, m)
			if common == nil {
				return nil, errors.New(errors.ErrCodeNoCommonModule,
					"input %s is needed by %s and %s, which share no dependency", in.Name, old.name, m.name)
			}
			owner[in] = common
		}
	}

	a := &Assignment{
		graph:    g,
		owner:    owner,
		byModule: make([][]*depsort.Input, len(g.modules)),
	}
	for _, in := range absoluteOrder {
		if m, ok := owner[in]; ok {
			a.byModule[m.index] = append(a.byModule[m.index], in)
		}
	}
	a.order = make([]*depsort.Input, 0, len(owner))
	for _, ins := range a.byModule {
		a.order = append(a.order, ins...)
	}
	return a, nil
}

// entryPointInputs returns the entry inputs in first-seen order, plus the
// modules pinned by qualified entry points.
func (g *Graph) entryPointInputs(opts DependencyOptions, inputs []*depsort.Input, sorter Sorter) ([]*depsort.Input, map[*depsort.Input]*Module, error) {
	var entries []*depsort.Input
	seen := make(map[*depsort.Input]bool)
	add := func(in *depsort.Input) {
		if in != nil && !seen[in] {
			seen[in] = true
			entries = append(entries, in)
		}
	}
	pinned := make(map[*depsort.Input]*Module)

	if !opts.Prune {
		for _, in := range inputs {
			add(in)
		}
		return entries, pinned, nil
	}

	if !opts.DropMoochers {
		for _, in := range sorter.InputsWithoutProvides() {
			add(in)
		}
	}

	for _, ep := range opts.EntryPoints {
		var m *Module
		if ep.Module != "" {
			var ok bool
			if m, ok = g.byName[ep.Module]; !ok {
				return nil, nil, errors.New(errors.ErrCodeMissingModule,
					"entry point %s names unknown module %q", ep, ep.Module)
			}
		}
		in, err := sorter.InputProviding(ep.Symbol)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeMissingProvide, err, "entry point %s", ep)
		}
		if m != nil {
			pinned[in] = m
		}
		add(in)
	}

	if opts.BaseSymbol != "" {
		add(sorter.MaybeInputProviding(opts.BaseSymbol))
	}
	return entries, pinned, nil
}

// initialModule resolves the module an entry input starts in.
func (g *Graph) initialModule(in *depsort.Input) (*Module, error) {
	if in.Module == "" {
		return nil, errors.New(errors.ErrCodeUnassignedInput, "entry input %s has no module", in.Name)
	}
	m, ok := g.byName[in.Module]
	if !ok {
		return nil, errors.New(errors.ErrCodeMissingModule, "input %s names unknown module %q", in.Name, in.Module)
	}
	return m, nil
}
