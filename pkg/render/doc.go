// Package render draws hitting set instances with Graphviz.
//
// An instance is shown as a bipartite graph: one box per set (labeled S1,
// S2, ... in input order) with an edge to an ellipse for each element it
// contains. Elements of the cover are filled, so every set visibly has at
// least one edge into the highlighted elements.
//
//	dot := render.ToDOT(inst, cover)
//	svg, err := render.RenderSVG(ctx, dot)
//
// [ToDOT] has no dependencies and its output can be fed to the dot tool.
// [RenderSVG] uses github.com/goccy/go-graphviz, which runs Graphviz
// in-process, so no external binaries are needed.
package render
