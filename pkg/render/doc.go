// Package render provides visualization rendering for flow-network steps.
//
// # Overview
//
// This package contains the rendering layer that turns built scenes into
// visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Canvas drawings (in [canvas] subpackage)
//   - Graphviz diagrams (in [graphviz] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). These are used by both
// canvas and graphviz renderers.
//
//	svg := canvas.RenderSVG(sc, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Canvas Drawings
//
// The [canvas] subpackage is the primary renderer. It draws the fixed
// 400x400 step picture: the source and sink anchored left and right,
// intermediate nodes on a ring, edges as arrows labeled flow/capacity,
// the augmenting path in the accent color, and optional legend and
// details panels below the drawing area.
//
// Key canvas subpackages:
//   - [canvas/styles]: Visual styles (classic, blueprint)
//
// # Graphviz Diagrams
//
// The [graphviz] subpackage renders the same network through Graphviz
// layout instead of the fixed canvas, for cases where automatic layout
// of larger networks reads better.
//
//	sc := graphviz.BuildScene(s, graphviz.Options{})
//	svg, err := graphviz.RenderSVG(sc.DOT)
//	pdf, err := render.ToPDF(svg)
//
// [canvas]: github.com/matzehuels/flowstep/pkg/render/canvas
// [canvas/styles]: github.com/matzehuels/flowstep/pkg/render/canvas/styles
// [graphviz]: github.com/matzehuels/flowstep/pkg/render/graphviz
package render
