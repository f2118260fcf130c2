// Package render holds the visual outputs for module graphs.
//
// The [nodelink] subpackage draws a graph as a Graphviz node-link diagram:
// one box per module, arrows from a module to each direct dependency, and
// modules of equal depth on the same rank.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
package render
