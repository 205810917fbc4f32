// Package graphviz renders flow networks as Graphviz diagrams.
//
// # Overview
//
// This package is the alternative to the fixed canvas drawing: Graphviz
// lays the network out automatically, which reads better once networks
// grow past a handful of intermediate nodes. The step semantics carry
// over unchanged: edges are labeled flow/capacity, the augmenting path
// is accented, and min-cut source-side nodes are tinted on terminal
// steps.
//
// # Usage
//
// Convert a step to DOT format, then render to SVG:
//
//	dot := graphviz.ToDOT(s)
//	svg, err := graphviz.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := graphviz.RenderPDF(dot)
//	png, err := graphviz.RenderPNG(dot, 2.0)  // 2x scale
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses left-to-right layout (rankdir=LR), so flow runs
// from the source on the left to the sink on the right, matching the
// canvas orientation.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package graphviz
