// Package nodelink renders module graphs as node-link diagrams.
//
// # Usage
//
// Convert a graph to DOT, then render it in-process with Graphviz:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Assignment: a})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Options
//
//   - Detailed: labels carry index, depth and dependent count
//   - Assignment: labels carry the number of inputs each module owns
//
// # DOT Format
//
// The output uses bottom-to-top layout (rankdir=BT) so the root module sits
// at the bottom and everything rests on what it depends on. Modules of the
// same depth share a rank. Edges point from a module to its direct
// dependencies, in declaration order.
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which embeds Graphviz as
// WebAssembly and needs no system install.
package nodelink
