package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/chunkgraph/pkg/depsort"
	"github.com/matzehuels/chunkgraph/pkg/modgraph"
)

func browserModel(t *testing.T) ModuleBrowserModel {
	t.Helper()
	base := modgraph.NewModule("base")
	app := modgraph.NewModule("app", base)
	g, err := modgraph.New([]*modgraph.Module{base, app})
	if err != nil {
		t.Fatal(err)
	}
	a, err := g.ManageDependencies([]modgraph.EntryPoint{{Symbol: "app.main"}}, []*depsort.Input{
		{Name: "base.js", Module: "base", Provides: []string{"base"}},
		{Name: "main.js", Module: "app", Provides: []string{"app.main"}, Requires: []string{"base"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return NewModuleBrowserModel(g, a)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModuleBrowserNavigation(t *testing.T) {
	m := browserModel(t)

	steps := []struct {
		key  string
		want int
	}{
		{"up", 0},
		{"down", 1},
		{"down", 1},
		{"k", 0},
		{"G", 1},
		{"g", 0},
	}
	for _, s := range steps {
		next, _ := m.Update(key(s.key))
		m = next.(ModuleBrowserModel)
		if m.Cursor != s.want {
			t.Errorf("after %q cursor = %d, want %d", s.key, m.Cursor, s.want)
		}
	}

	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestModuleBrowserView(t *testing.T) {
	m := browserModel(t)
	next, _ := m.Update(key("down"))
	view := next.(ModuleBrowserModel).View()

	for _, want := range []string{"Modules", "app", "base", "main.js", "[2/2]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModuleBrowserEmptyGraph(t *testing.T) {
	g, err := modgraph.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	m := NewModuleBrowserModel(g, nil)
	next, _ := m.Update(key("G"))
	if next.(ModuleBrowserModel).Cursor != 0 {
		t.Error("cursor should stay at 0 on an empty graph")
	}
	if !strings.Contains(m.View(), "no modules") {
		t.Errorf("empty view:\n%s", m.View())
	}
}
