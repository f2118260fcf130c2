package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chunkgraph/pkg/modgraph"
	"github.com/matzehuels/chunkgraph/pkg/pipeline"
)

// =============================================================================
// ModuleBrowserModel - Interactive module browser
// =============================================================================

// ModuleBrowserModel is the bubbletea model for browsing a module graph.
type ModuleBrowserModel struct {
	Graph      *modgraph.Graph
	Assignment *modgraph.Assignment
	Cursor     int
}

// NewModuleBrowserModel creates a browser positioned on the first module.
func NewModuleBrowserModel(g *modgraph.Graph, a *modgraph.Assignment) ModuleBrowserModel {
	return ModuleBrowserModel{Graph: g, Assignment: a}
}

func (m ModuleBrowserModel) Init() tea.Cmd {
	return nil
}

func (m ModuleBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < m.Graph.ModuleCount()-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(m.Graph.ModuleCount()-1, 0)
		}
	}
	return m, nil
}

func (m ModuleBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Modules"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if m.Graph.ModuleCount() == 0 {
		b.WriteString(StyleDim.Render("  no modules"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(renderModuleTable(m.Graph, m.Assignment, m.Cursor))
	b.WriteString("\n\n")
	b.WriteString(m.detail())
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.Graph.ModuleCount())))

	return b.String()
}

// detail describes the module under the cursor.
func (m ModuleBrowserModel) detail() string {
	mod := m.Graph.Modules()[m.Cursor]
	var b strings.Builder

	b.WriteString(iconCursor + styleSelected.Render(mod.Name()))
	b.WriteString("\n")

	deps := m.Graph.TransitiveDepsDeepestFirst(mod)
	names := make([]string, len(deps))
	for i, d := range deps {
		names[i] = d.Name()
	}
	writeDetailList(&b, "loads after", names)

	if m.Assignment != nil {
		inputs := m.Assignment.InputsOf(mod)
		names = make([]string, len(inputs))
		for i, in := range inputs {
			names[i] = in.Name
		}
		writeDetailList(&b, "inputs", names)
	}
	b.WriteString("\n")
	return b.String()
}

func writeDetailList(b *strings.Builder, label string, items []string) {
	value := "none"
	if len(items) > 0 {
		value = strings.Join(items, ", ")
	}
	fmt.Fprintf(b, "  %s %s\n", StyleDim.Render(fmt.Sprintf("%-12s", label)), StyleValue.Render(value))
}

// =============================================================================
// browse command
// =============================================================================

// browseCommand creates the browse command, an interactive view of the
// module graph and its assignment.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		noAssign bool
		deps     depFlags
	)

	cmd := &cobra.Command{
		Use:   "browse <project>",
		Short: "Browse modules, dependencies and owned inputs interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := pipeline.Options{
				ManifestPath: args[0],
				SkipAssign:   noAssign,
				Formats:      []string{pipeline.FormatText},
			}
			deps.apply(cmd, &popts)

			result, err := c.newRunner().Execute(cmd.Context(), popts)
			if err != nil {
				return err
			}

			model := NewModuleBrowserModel(result.Graph, result.Assignment)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noAssign, "no-assign", false, "skip input assignment")
	deps.register(cmd)

	return cmd
}
