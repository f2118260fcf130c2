package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/chunkgraph/pkg/modgraph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes index, depth and dependent count in node labels.
	Detailed bool
	// Assignment, when set, adds the owned input count to each label and
	// greys out modules that own nothing.
	Assignment *modgraph.Assignment
}

// ToDOT converts a module graph to Graphviz DOT.
func ToDOT(g *modgraph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, m := range g.Modules() {
		fmt.Fprintf(&buf, "  %q [%s];\n", m.Name(), strings.Join(fmtAttrs(g, m, opts), ", "))
	}

	for d := 0; d <= g.MaxDepth(); d++ {
		names := make([]string, 0)
		for _, m := range g.ModulesAtDepth(d) {
			names = append(names, strconv.Quote(m.Name()))
		}
		if len(names) > 1 {
			fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(names, "; "))
		}
	}

	buf.WriteString("\n")
	for _, m := range g.Modules() {
		for _, dep := range m.Dependencies() {
			fmt.Fprintf(&buf, "  %q -> %q;\n", m.Name(), dep.Name())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *modgraph.Graph, m *modgraph.Module, opts Options) string {
	parts := []string{m.Name()}
	if opts.Detailed {
		parts = append(parts,
			fmt.Sprintf("index: %d", m.Index()),
			fmt.Sprintf("depth: %d", m.Depth()),
			fmt.Sprintf("dependents: %d", g.DependentCount(m)),
		)
	}
	if opts.Assignment != nil {
		parts = append(parts, fmt.Sprintf("inputs: %d", len(opts.Assignment.InputsOf(m))))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(g *modgraph.Graph, m *modgraph.Module, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(g, m, opts))}
	if opts.Assignment != nil && len(opts.Assignment.InputsOf(m)) == 0 {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
