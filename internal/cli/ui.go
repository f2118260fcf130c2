package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/chunkgraph/pkg/modgraph"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleSelected    = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleEmpty       = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconArrow   = "→"
	iconCursor  = "▸ "
)

// headerRow is the row index lipgloss tables pass to StyleFunc for headers.
const headerRow = -1

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printStats prints assignment statistics on a single line.
func printStats(modules, kept, dropped int) {
	parts := []string{
		fmt.Sprintf("%d modules", modules),
		fmt.Sprintf("%d inputs kept", kept),
	}
	dropStyle := StyleDim
	if dropped > 0 {
		dropStyle = StyleWarning
	}

	line := "  " + StyleDim.Render(strings.Join(parts, " · "))
	line += StyleDim.Render(" · ") + dropStyle.Render(fmt.Sprintf("%d dropped", dropped))
	fmt.Println(line)
}

// =============================================================================
// Module Table
// =============================================================================

// moduleRows returns one table row per module: name, depth, direct
// dependencies, dependent count and owned input count.
func moduleRows(g *modgraph.Graph, a *modgraph.Assignment) [][]string {
	modules := g.Modules()
	rows := make([][]string, len(modules))
	for i, m := range modules {
		deps := make([]string, 0)
		for _, d := range m.Dependencies() {
			deps = append(deps, d.Name())
		}
		inputs := "-"
		if a != nil {
			inputs = strconv.Itoa(len(a.InputsOf(m)))
		}
		rows[i] = []string{
			m.Name(),
			strconv.Itoa(m.Depth()),
			strings.Join(deps, ", "),
			strconv.Itoa(g.DependentCount(m)),
			inputs,
		}
	}
	return rows
}

// renderModuleTable renders the module table. The row at index selected is
// highlighted; pass -1 for none.
func renderModuleTable(g *modgraph.Graph, a *modgraph.Assignment, selected int) string {
	rows := moduleRows(g, a)
	modules := g.Modules()

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Module", "Depth", "Dependencies", "Dependents", "Inputs").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			if row == selected {
				return styleSelected
			}
			if a != nil && row < len(modules) && len(a.InputsOf(modules[row])) == 0 {
				return styleEmpty
			}
			return lipgloss.NewStyle()
		})

	return t.Render()
}
