package modgraph

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// unbound marks a module that has not been placed in a graph.
const unbound = -1

// Module is an output unit of the build. Its name and direct dependencies
// are fixed at creation; index and depth are assigned by the graph that
// binds it.
//
// The zero value is not usable - use NewModule.
type Module struct {
	name  string
	deps  []*Module
	index int
	depth int
}

// NewModule creates an unbound module with the given direct dependencies.
// Duplicate dependencies are collapsed.
func NewModule(name string, deps ...*Module) *Module {
	m := &Module{name: name, index: unbound}
	for _, d := range deps {
		if d != nil && !slices.Contains(m.deps, d) {
			m.deps = append(m.deps, d)
		}
	}
	return m
}

// Name returns the module name.
func (m *Module) Name() string { return m.name }

// String returns the module name.
func (m *Module) String() string { return m.name }

// Dependencies returns a copy of the direct dependencies in declaration order.
func (m *Module) Dependencies() []*Module { return slices.Clone(m.deps) }

// Index returns the module's position in its graph, or -1 if unbound.
func (m *Module) Index() int { return m.index }

// Depth returns the length of the longest dependency chain below the module.
// It is 0 for unbound modules.
func (m *Module) Depth() int { return m.depth }

// summary holds the precomputed dependency data for one module.
type summary struct {
	// transitive lists every module reachable through dependencies,
	// excluding the module itself, in index order.
	transitive []*Module
	// selfPlusDeps has the bits of the module and of every transitive
	// dependency set.
	selfPlusDeps *bitset.BitSet
	// dependents counts modules that depend on this one, directly or not.
	dependents int
}
