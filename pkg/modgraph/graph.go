package modgraph

import (
	"fmt"
	"maps"

	"github.com/bits-and-blooms/bitset"

	"github.com/matzehuels/chunkgraph/pkg/errors"
)

// OrderError is returned by New when the module list is not a valid
// dependency order: Module was listed before Dependency, or Dependency
// belongs to a different graph. It unwraps to an ErrCodeDependencyOrder
// error.
type OrderError struct {
	Module     *Module
	Dependency *Module
	err        *errors.Error
}

// Error implements the error interface.
func (e *OrderError) Error() string { return e.err.Error() }

// Unwrap returns the coded error.
func (e *OrderError) Unwrap() error { return e.err }

// Graph is an immutable dependency graph over modules. Depths, transitive
// dependency sets and dependent counts are computed once by New.
//
// A Graph is safe for concurrent use by multiple readers.
type Graph struct {
	modules   []*Module
	summaries []*summary
	byDepth   [][]*Module
	byName    map[string]*Module
}

// New binds modules, listed in dependency order, into a graph.
//
// Every dependency of a module must appear earlier in the list. New fails
// with an ErrCodeDependencyOrder error (an *OrderError when a dependency is
// at fault) if that is not the case or if a module already belongs to
// another graph, and with ErrCodeDuplicateModule if two modules share a
// name. On failure no module stays bound and the modules can be reused.
func New(modules []*Module) (*Graph, error) {
	g := &Graph{
		modules:   make([]*Module, len(modules)),
		summaries: make([]*summary, len(modules)),
		byName:    make(map[string]*Module, len(modules)),
	}

	for i, m := range modules {
		if err := g.bind(i, m); err != nil {
			g.unbind(i)
			return nil, err
		}
	}

	for _, m := range g.modules {
		depth := 0
		for _, dep := range m.deps {
			depth = max(depth, dep.depth+1)
		}
		m.depth = depth
		if depth == len(g.byDepth) {
			g.byDepth = append(g.byDepth, nil)
		}
		g.byDepth[depth] = append(g.byDepth[depth], m)
	}

	return g, nil
}

// bind assigns index i to m and computes its summary from the summaries of
// its direct dependencies, which are complete because they come earlier.
func (g *Graph) bind(i int, m *Module) error {
	if m == nil {
		return errors.New(errors.ErrCodeInvalidInput, "module at position %d is nil", i)
	}
	if m.index != unbound {
		return errors.New(errors.ErrCodeDependencyOrder, "module used in more than one graph: %s", m.name)
	}
	if _, dup := g.byName[m.name]; dup {
		return errors.New(errors.ErrCodeDuplicateModule, "duplicate module name: %s", m.name)
	}

	deps := bitset.New(uint(i + 1))
	for _, dep := range m.deps {
		switch {
		case dep.index == unbound:
			return &OrderError{
				Module:     m,
				Dependency: dep,
				err: errors.New(errors.ErrCodeDependencyOrder,
					"modules not in dependency order: %s preceded %s", m.name, dep.name),
			}
		case dep.index >= i || g.modules[dep.index] != dep:
			return &OrderError{
				Module:     m,
				Dependency: dep,
				err: errors.New(errors.ErrCodeDependencyOrder,
					"module %s depends on %s from another graph", m.name, dep.name),
			}
		}
		deps.InPlaceUnion(g.summaries[dep.index].selfPlusDeps)
	}

	m.index = i
	g.modules[i] = m
	g.byName[m.name] = m

	s := &summary{transitive: make([]*Module, 0, deps.Count())}
	for idx, ok := deps.NextSet(0); ok; idx, ok = deps.NextSet(idx + 1) {
		s.transitive = append(s.transitive, g.modules[idx])
		g.summaries[idx].dependents++
	}
	deps.Set(uint(i))
	s.selfPlusDeps = deps
	g.summaries[i] = s
	return nil
}

// unbind releases every module bound so far, up to and including position n.
func (g *Graph) unbind(n int) {
	for i := 0; i <= n && i < len(g.modules); i++ {
		if m := g.modules[i]; m != nil {
			m.index = unbound
			m.depth = 0
		}
	}
}

// summaryOf returns the summary of m, panicking if m is not in g.
func (g *Graph) summaryOf(m *Module) *summary {
	if !g.Contains(m) {
		panic(errors.New(errors.ErrCodeInternal, "module %v is not part of this graph", m))
	}
	return g.summaries[m.index]
}

// Contains reports whether m is bound to g.
func (g *Graph) Contains(m *Module) bool {
	return m != nil && m.index >= 0 && m.index < len(g.modules) && g.modules[m.index] == m
}

// Modules returns all modules in dependency order.
func (g *Graph) Modules() []*Module {
	return append([]*Module(nil), g.modules...)
}

// ModuleCount returns the number of modules.
func (g *Graph) ModuleCount() int { return len(g.modules) }

// Module returns the module with the given name.
func (g *Graph) Module(name string) (*Module, bool) {
	m, ok := g.byName[name]
	return m, ok
}

// ModulesByName returns a copy of the name index.
func (g *Graph) ModulesByName() map[string]*Module {
	return maps.Clone(g.byName)
}

// RootModule returns the only module at depth 0. It reports false when the
// graph is empty or has more than one module without dependencies.
func (g *Graph) RootModule() (*Module, bool) {
	if len(g.byDepth) == 0 || len(g.byDepth[0]) != 1 {
		return nil, false
	}
	return g.byDepth[0][0], true
}

// ModulesAtDepth returns the modules at depth d in index order, or nil.
func (g *Graph) ModulesAtDepth(d int) []*Module {
	if d < 0 || d >= len(g.byDepth) {
		return nil
	}
	return append([]*Module(nil), g.byDepth[d]...)
}

// MaxDepth returns the greatest module depth, or -1 for an empty graph.
func (g *Graph) MaxDepth() int { return len(g.byDepth) - 1 }

// DependentCount returns how many modules depend on m, directly or not.
func (g *Graph) DependentCount(m *Module) int { return g.summaryOf(m).dependents }

// String returns a short description for logging.
func (g *Graph) String() string {
	return fmt.Sprintf("modgraph(%d modules, max depth %d)", len(g.modules), g.MaxDepth())
}
