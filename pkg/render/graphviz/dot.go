package graphviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	gv "github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowstep/pkg/layout"
	"github.com/matzehuels/flowstep/pkg/render"
	"github.com/matzehuels/flowstep/pkg/scene"
	"github.com/matzehuels/flowstep/pkg/step"
)

// DefaultEngine is the Graphviz layout engine recorded in built scenes.
const DefaultEngine = "dot"

// accentColor matches the classic canvas accent so the augmenting path
// reads the same across both renderers.
const accentColor = "#e11d48"

// Options configures diagram generation.
type Options struct {
	// Engine names the Graphviz layout engine recorded in the scene.
	// Empty means [DefaultEngine].
	Engine string
}

// BuildScene assembles a graphviz scene from a validated step. The DOT
// string carries the complete drawing; the step details ride along for
// the details panel.
func BuildScene(s step.Step, opts Options) scene.Scene {
	engine := opts.Engine
	if engine == "" {
		engine = DefaultEngine
	}
	return scene.Scene{
		VizType:      scene.VizTypeGraphviz,
		Width:        layout.DefaultWidth,
		Height:       layout.DefaultHeight,
		StepNumber:   s.Number,
		MaxFlow:      s.MaxFlow,
		PathCapacity: s.PathCapacity,
		Path:         s.PathString(),
		Terminal:     s.IsTerminal(),
		Explanation:  s.Explanation(),
		DOT:          ToDOT(s),
		Engine:       engine,
	}
}

// ToDOT converts a step to Graphviz DOT format.
//
// The network reads left to right. Source and sink render as double
// circles, augmenting-path edges in the accent color with a thicker pen,
// and min-cut source-side nodes with a tinted fill on terminal steps.
// The resulting DOT string can be rendered with [RenderSVG], [RenderPDF],
// or [RenderPNG].
func ToDOT(s step.Step) string {
	hl := s.Highlights()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14, fixedsize=true, width=0.55];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, id := range s.Nodes {
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(id), strings.Join(nodeAttrs(s, id), ", "))
	}

	buf.WriteString("\n")
	for _, e := range s.Edges {
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n",
			quote(e.From), quote(e.To), strings.Join(edgeAttrs(e, hl[step.EdgeKey(e.From, e.To)]), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// quote wraps s in DOT double quotes. Only backslash and double quote
// need escaping; Go's %q is unsuitable because its \u and \x forms are
// not DOT escape syntax.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func nodeAttrs(s step.Step, id string) []string {
	attrs := []string{"label=" + quote(id)}
	if id == step.SourceID || id == step.SinkID {
		attrs = append(attrs, "shape=doublecircle")
	}
	if s.InSSet(id) {
		attrs = append(attrs, "fillcolor=lightyellow")
	}
	return attrs
}

func edgeAttrs(e step.Edge, highlighted bool) []string {
	label := step.FormatAmount(e.Flow) + "/" + step.FormatAmount(e.Capacity)
	attrs := []string{"label=" + quote(label)}
	if highlighted {
		attrs = append(attrs,
			"color="+quote(accentColor),
			"fontcolor="+quote(accentColor),
			"penwidth=2.5")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	g, err := gv.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer g.Close()

	graph, err := gv.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := g.Render(ctx, graph, gv.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
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

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
