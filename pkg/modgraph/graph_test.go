package modgraph

import (
	stderrors "errors"
	"testing"

	"github.com/matzehuels/chunkgraph/pkg/errors"
)

// chain returns A <- B <- C (C depends on B, B on A).
func chain(t *testing.T) (*Graph, *Module, *Module, *Module) {
	t.Helper()
	a := NewModule("A")
	b := NewModule("B", a)
	c := NewModule("C", b)
	g, err := New([]*Module{a, b, c})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g, a, b, c
}

// diamond returns D -> {B, C}, B -> A, C -> A.
func diamond(t *testing.T) (*Graph, *Module, *Module, *Module, *Module) {
	t.Helper()
	a := NewModule("A")
	b := NewModule("B", a)
	c := NewModule("C", a)
	d := NewModule("D", b, c)
	g, err := New([]*Module{a, b, c, d})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g, a, b, c, d
}

// lattice returns R, X(R), Y(R), P(X, Y), Q(X, Y) plus any extra modules.
func lattice(t *testing.T, extra func(x, y *Module) []*Module) (*Graph, map[string]*Module) {
	t.Helper()
	r := NewModule("R")
	x := NewModule("X", r)
	y := NewModule("Y", r)
	p := NewModule("P", x, y)
	q := NewModule("Q", x, y)
	mods := []*Module{r, x, y, p, q}
	if extra != nil {
		mods = append(mods, extra(x, y)...)
	}
	g, err := New(mods)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g, g.ModulesByName()
}

func TestNewAssignsIndexAndDepth(t *testing.T) {
	g, a, b, c := chain(t)

	tests := []struct {
		m          *Module
		index      int
		depth      int
		dependents int
	}{
		{a, 0, 0, 2},
		{b, 1, 1, 1},
		{c, 2, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.m.Name(), func(t *testing.T) {
			if tt.m.Index() != tt.index {
				t.Errorf("Index() = %d, want %d", tt.m.Index(), tt.index)
			}
			if tt.m.Depth() != tt.depth {
				t.Errorf("Depth() = %d, want %d", tt.m.Depth(), tt.depth)
			}
			if got := g.DependentCount(tt.m); got != tt.dependents {
				t.Errorf("DependentCount() = %d, want %d", got, tt.dependents)
			}
		})
	}

	if g.ModuleCount() != 3 {
		t.Errorf("ModuleCount() = %d, want 3", g.ModuleCount())
	}
	if g.MaxDepth() != 2 {
		t.Errorf("MaxDepth() = %d, want 2", g.MaxDepth())
	}
}

func TestNewDepthUsesDeepestDependency(t *testing.T) {
	a := NewModule("a")
	b := NewModule("b", a)
	c := NewModule("c", b)
	d := NewModule("d", a, c)
	if _, err := New([]*Module{a, b, c, d}); err != nil {
		t.Fatal(err)
	}
	if d.Depth() != 3 {
		t.Errorf("d.Depth() = %d, want 3", d.Depth())
	}
}

func TestNewRejectsBadOrder(t *testing.T) {
	a := NewModule("A")
	b := NewModule("B", a)

	g, err := New([]*Module{b, a})
	if g != nil {
		t.Fatal("New() returned a graph for an invalid order")
	}
	if !errors.Is(err, errors.ErrCodeDependencyOrder) {
		t.Fatalf("New() error = %v, want DEPENDENCY_ORDER", err)
	}

	var orderErr *OrderError
	if !stderrors.As(err, &orderErr) {
		t.Fatalf("error %T is not an *OrderError", err)
	}
	if orderErr.Module != b || orderErr.Dependency != a {
		t.Errorf("OrderError = (%v, %v), want (B, A)", orderErr.Module, orderErr.Dependency)
	}

	// Failed construction releases the modules.
	if a.Index() != -1 || b.Index() != -1 {
		t.Errorf("indexes after failure = (%d, %d), want (-1, -1)", a.Index(), b.Index())
	}
	if _, err := New([]*Module{a, b}); err != nil {
		t.Errorf("New() after failed attempt error = %v", err)
	}
}

func TestNewRejectsModuleFromAnotherGraph(t *testing.T) {
	a := NewModule("A")
	if _, err := New([]*Module{a}); err != nil {
		t.Fatal(err)
	}

	t.Run("reused module", func(t *testing.T) {
		_, err := New([]*Module{a})
		if !errors.Is(err, errors.ErrCodeDependencyOrder) {
			t.Errorf("New() error = %v, want DEPENDENCY_ORDER", err)
		}
		if a.Index() != 0 {
			t.Errorf("original binding changed: Index() = %d", a.Index())
		}
	})

	t.Run("dependency in another graph", func(t *testing.T) {
		b := NewModule("B", a)
		_, err := New([]*Module{b})
		if !errors.Is(err, errors.ErrCodeDependencyOrder) {
			t.Errorf("New() error = %v, want DEPENDENCY_ORDER", err)
		}
		if b.Index() != -1 {
			t.Errorf("b.Index() = %d, want -1", b.Index())
		}
	})

	t.Run("listed twice", func(t *testing.T) {
		c := NewModule("C")
		_, err := New([]*Module{c, c})
		if !errors.Is(err, errors.ErrCodeDependencyOrder) {
			t.Errorf("New() error = %v, want DEPENDENCY_ORDER", err)
		}
		if c.Index() != -1 {
			t.Errorf("c.Index() = %d, want -1", c.Index())
		}
	})
}

func TestNewRejectsDuplicateNamesAndNil(t *testing.T) {
	_, err := New([]*Module{NewModule("x"), NewModule("x")})
	if !errors.Is(err, errors.ErrCodeDuplicateModule) {
		t.Errorf("New() error = %v, want DUPLICATE_MODULE", err)
	}

	_, err = New([]*Module{NewModule("x"), nil})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("New() error = %v, want INVALID_INPUT", err)
	}
}

func TestEmptyGraph(t *testing.T) {
	g, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.ModuleCount() != 0 || g.MaxDepth() != -1 {
		t.Errorf("empty graph: count=%d maxDepth=%d", g.ModuleCount(), g.MaxDepth())
	}
	if _, ok := g.RootModule(); ok {
		t.Error("RootModule() of empty graph should report false")
	}
}

func TestRootAndDepthBuckets(t *testing.T) {
	g, a, b, c, d := diamond(t)

	root, ok := g.RootModule()
	if !ok || root != a {
		t.Errorf("RootModule() = %v, %v; want A, true", root, ok)
	}

	atOne := g.ModulesAtDepth(1)
	if len(atOne) != 2 || atOne[0] != b || atOne[1] != c {
		t.Errorf("ModulesAtDepth(1) = %v, want [B C]", atOne)
	}
	if got := g.ModulesAtDepth(2); len(got) != 1 || got[0] != d {
		t.Errorf("ModulesAtDepth(2) = %v, want [D]", got)
	}
	if g.ModulesAtDepth(7) != nil || g.ModulesAtDepth(-1) != nil {
		t.Error("ModulesAtDepth() out of range should be nil")
	}

	r1, r2 := NewModule("r1"), NewModule("r2")
	two, err := New([]*Module{r1, r2})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := two.RootModule(); ok {
		t.Error("RootModule() with two roots should report false")
	}
}

func TestModuleLookup(t *testing.T) {
	g, _, b, _ := chain(t)

	if m, ok := g.Module("B"); !ok || m != b {
		t.Errorf("Module(B) = %v, %v", m, ok)
	}
	if _, ok := g.Module("nope"); ok {
		t.Error("Module(nope) should report false")
	}

	byName := g.ModulesByName()
	delete(byName, "B")
	if _, ok := g.Module("B"); !ok {
		t.Error("ModulesByName() should return a copy")
	}
}

func TestNewModuleCollapsesDuplicates(t *testing.T) {
	a := NewModule("a")
	b := NewModule("b", a, a, nil)
	if deps := b.Dependencies(); len(deps) != 1 || deps[0] != a {
		t.Errorf("Dependencies() = %v, want [a]", deps)
	}
	if b.Index() != -1 {
		t.Errorf("new module Index() = %d, want -1", b.Index())
	}
}

func TestGraphProperties(t *testing.T) {
	g, _ := lattice(t, func(x, y *Module) []*Module {
		z := NewModule("Z", y)
		return []*Module{z, NewModule("W", z, x)}
	})

	for _, a := range g.Modules() {
		if g.DependsOn(a, a) {
			t.Errorf("DependsOn(%s, %s) = true", a, a)
		}
		if (a.Depth() == 0) != (len(a.Dependencies()) == 0) {
			t.Errorf("%s: depth %d with %d dependencies", a, a.Depth(), len(a.Dependencies()))
		}
		if g.DeepestCommonDependencyInclusive(a, a) != a {
			t.Errorf("DeepestCommonDependencyInclusive(%s, %s) != %s", a, a, a)
		}
		for _, b := range g.Modules() {
			if a != b && g.DependsOn(a, b) {
				if b.Index() >= a.Index() || b.Depth() >= a.Depth() {
					t.Errorf("%s depends on %s but index/depth do not decrease", a, b)
				}
			}
		}
	}
}
