package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	cgio "github.com/matzehuels/chunkgraph/pkg/io"
	"github.com/matzehuels/chunkgraph/pkg/modgraph"
	"github.com/matzehuels/chunkgraph/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats. a may be nil,
// in which case module descriptions carry no inputs.
func Render(ctx context.Context, g *modgraph.Graph, a *modgraph.Assignment, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			err = cgio.WriteDescription(&buf, g, a)
			data = buf.Bytes()
		case FormatText:
			data = []byte(RenderText(g, a))
		case FormatDOT, FormatSVG, FormatPNG:
			if dot == "" {
				dot = nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed, Assignment: a})
			}
			switch format {
			case FormatDOT:
				data = []byte(dot)
			case FormatSVG:
				data, err = nodelink.RenderSVG(ctx, dot)
			case FormatPNG:
				data, err = nodelink.RenderPNG(ctx, dot)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderText lists each module with its dependencies and owned inputs.
//
//	base
//	  base.js
//	app <- base
//	  main.js
func RenderText(g *modgraph.Graph, a *modgraph.Assignment) string {
	var b strings.Builder
	for _, d := range g.Describe(a) {
		b.WriteString(d.Name)
		if len(d.Dependencies) > 0 {
			b.WriteString(" <- ")
			b.WriteString(strings.Join(d.Dependencies, ", "))
		}
		b.WriteByte('\n')
		for _, in := range d.Inputs {
			b.WriteString("  ")
			b.WriteString(in)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
