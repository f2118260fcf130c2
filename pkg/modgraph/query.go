package modgraph

import (
	"cmp"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/matzehuels/chunkgraph/pkg/errors"
)

// DependsOn reports whether src depends on m, directly or transitively.
// A module never depends on itself.
func (g *Graph) DependsOn(src, m *Module) bool {
	s := g.summaryOf(src)
	g.summaryOf(m)
	return src != m && s.selfPlusDeps.Test(uint(m.index))
}

// SmallestCoveringDependency returns a module that every module in
// dependents depends on or is, preferring the candidate with the fewest
// dependents and, among equals, the one latest in dependency order.
//
// It panics if dependents is empty or the modules share no dependency,
// which cannot happen for modules of a graph with a single root. Use
// TrySmallestCoveringDependency when the graph may have several roots.
func (g *Graph) SmallestCoveringDependency(dependents []*Module) *Module {
	if len(dependents) == 0 {
		panic(errors.New(errors.ErrCodeInternal, "smallest covering dependency of an empty module set"))
	}
	m, ok := g.TrySmallestCoveringDependency(dependents)
	if !ok {
		panic(errors.New(errors.ErrCodeInternal, "no common dependency found for %v", dependents))
	}
	return m
}

// TrySmallestCoveringDependency is SmallestCoveringDependency without the
// panic: it reports false when dependents is empty or the modules share no
// dependency.
//
// Candidates are scanned from the highest index down. Once a candidate has
// been considered, its own dependencies are removed from the remaining
// candidates, since it is a better choice than anything below it.
func (g *Graph) TrySmallestCoveringDependency(dependents []*Module) (*Module, bool) {
	switch len(dependents) {
	case 0:
		return nil, false
	case 1:
		g.summaryOf(dependents[0])
		return dependents[0], true
	}

	first := dependents[0]
	// Any common dependency has an index <= every index in dependents.
	maxCandidate := first.index
	common := g.summaryOf(first).selfPlusDeps.Clone()
	for _, m := range dependents[1:] {
		s := g.summaryOf(m)
		maxCandidate = min(maxCandidate, m.index)
		common.InPlaceIntersection(s.selfPlusDeps)
	}

	candidate := previousSet(common, maxCandidate)
	if candidate < 0 {
		return nil, false
	}
	best := g.summaries[candidate]
	bestIndex := candidate
	common.InPlaceDifference(best.selfPlusDeps)

	for candidate = previousSet(common, candidate-1); candidate >= 0; candidate = previousSet(common, candidate-1) {
		s := g.summaries[candidate]
		common.InPlaceDifference(s.selfPlusDeps)
		if s.dependents < best.dependents {
			best = s
			bestIndex = candidate
		}
	}
	return g.modules[bestIndex], true
}

// previousSet returns the highest set bit at or below from, or -1.
func previousSet(b *bitset.BitSet, from int) int {
	if from < 0 || b.Len() == 0 {
		return -1
	}
	i, ok := b.PreviousSet(min(uint(from), b.Len()-1))
	if !ok {
		return -1
	}
	return int(i)
}

// DeepestCommonDependency returns the deepest module that both m1 and m2
// depend on, not counting m1 and m2 themselves. Among modules of equal depth
// the one latest in dependency order wins. It returns nil when the two have
// no common dependency.
func (g *Graph) DeepestCommonDependency(m1, m2 *Module) *Module {
	g.summaryOf(m1)
	g.summaryOf(m2)

	// The result is strictly shallower than both m1 and m2.
	for depth := min(m1.depth, m2.depth) - 1; depth >= 0; depth-- {
		atDepth := g.byDepth[depth]
		for i := len(atDepth) - 1; i >= 0; i-- {
			m := atDepth[i]
			if g.DependsOn(m1, m) && g.DependsOn(m2, m) {
				return m
			}
		}
	}
	return nil
}

// DeepestCommonDependencyInclusive is like DeepestCommonDependency but
// returns m1 or m2 when one of them is a dependency of the other (or they
// are the same module).
func (g *Graph) DeepestCommonDependencyInclusive(m1, m2 *Module) *Module {
	if m2 == m1 || g.DependsOn(m2, m1) {
		g.summaryOf(m1)
		return m1
	}
	if g.DependsOn(m1, m2) {
		return m2
	}
	return g.DeepestCommonDependency(m1, m2)
}

// DeepestCommonDependencyInclusiveAll folds DeepestCommonDependencyInclusive
// over modules from left to right. It returns nil for an empty slice or when
// some pair along the fold has no common dependency.
func (g *Graph) DeepestCommonDependencyInclusiveAll(modules []*Module) *Module {
	if len(modules) == 0 {
		return nil
	}
	dep := modules[0]
	for _, m := range modules[1:] {
		dep = g.DeepestCommonDependencyInclusive(dep, m)
		if dep == nil {
			return nil
		}
	}
	return dep
}

// TransitiveDeps returns every module m depends on, in dependency order.
func (g *Graph) TransitiveDeps(m *Module) []*Module {
	return slices.Clone(g.summaryOf(m).transitive)
}

// TransitiveDepsDeepestFirst returns every module m depends on, sorted by
// decreasing depth. Modules of equal depth are ordered by name, then index.
// The result never includes m.
func (g *Graph) TransitiveDepsDeepestFirst(m *Module) []*Module {
	deps := g.TransitiveDeps(m)
	slices.SortFunc(deps, func(a, b *Module) int {
		return cmp.Or(
			cmp.Compare(b.depth, a.depth),
			cmp.Compare(a.name, b.name),
			cmp.Compare(a.index, b.index),
		)
	})
	return deps
}
