// Package canvas renders step scenes as self-contained SVG drawings:
// node circles with centered labels, edge arrows with flow/capacity
// labels, and optional legend and details panels below the drawing area.
package canvas

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/flowstep/pkg/geom"
	"github.com/matzehuels/flowstep/pkg/render/canvas/styles"
	"github.com/matzehuels/flowstep/pkg/scene"
	"github.com/matzehuels/flowstep/pkg/step"
)

const arrowInteractionCSS = `
    .arrow line, .arrow polygon { transition: stroke-width 0.2s ease; }
    .arrow:hover line { stroke-width: 4; }
    .arrow:hover text { font-weight: bold; }`

// Panel metrics for the optional legend and details sections appended
// below the drawing area.
const (
	legendHeight      = 44.0
	detailsBaseHeight = 56.0
	detailsLineHeight = 15.0
	panelPadding      = 14.0
	explanationWrap   = 58 // characters per wrapped explanation line
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style   styles.Style
	legend  bool
	details bool
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithLegend() SVGOption              { return func(r *svgRenderer) { r.legend = true } }
func WithDetails() SVGOption             { return func(r *svgRenderer) { r.details = true } }

// StyleFor maps a scene style name to its implementation. Unknown names
// fall back to classic.
func StyleFor(name string) styles.Style {
	if name == scene.StyleBlueprint {
		return styles.Blueprint{}
	}
	return styles.Classic{}
}

// RenderSVG renders a canvas scene as a self-contained SVG document.
//
// Drawing order is edges first, then nodes, both in payload order, so
// arrows tuck under the circles and parallel edges overlap the same way
// on every render.
func RenderSVG(sc scene.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	total := sc.Height + r.panelHeight(sc)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		sc.Width, total, sc.Width, total)

	r.style.RenderDefs(&buf)
	r.style.RenderBackground(&buf, sc.Width, total)

	for _, e := range sc.Edges {
		r.style.RenderArrow(&buf, arrowFor(e))
	}
	for _, n := range sc.Nodes {
		r.style.RenderNode(&buf, nodeFor(n))
	}

	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", arrowInteractionCSS)

	y := sc.Height
	if r.legend {
		renderLegend(&buf, sc, r.style.Palette(), y)
		y += legendHeight
	}
	if r.details {
		renderDetails(&buf, sc, r.style.Palette(), y)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Classic{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) panelHeight(sc scene.Scene) float64 {
	var h float64
	if r.legend {
		h += legendHeight
	}
	if r.details {
		lines := len(styles.Wrap(sc.Explanation, explanationWrap))
		h += detailsBaseHeight + float64(lines)*detailsLineHeight
	}
	return h
}

func arrowFor(e scene.Edge) styles.Arrow {
	return styles.Arrow{
		FromID:      e.From,
		ToID:        e.To,
		X1:          e.Arrow.Start.X,
		Y1:          e.Arrow.Start.Y,
		X2:          e.Arrow.End.X,
		Y2:          e.Arrow.End.Y,
		Head:        e.Arrow.Head,
		LabelX:      e.Arrow.Label.X,
		LabelY:      e.Arrow.Label.Y,
		Label:       e.Label,
		Highlighted: e.Highlighted,
	}
}

func nodeFor(n scene.Node) styles.Node {
	return styles.Node{ID: n.ID, CX: n.Pos.X, CY: n.Pos.Y, R: geom.NodeRadius, InCut: n.InCut}
}

func renderLegend(buf *bytes.Buffer, sc scene.Scene, p styles.Palette, top float64) {
	y := top + legendHeight/2

	fmt.Fprintf(buf, `  <g class="legend" font-family="sans-serif" font-size="10">`+"\n")
	fmt.Fprintf(buf, `    <line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="0.5"/>`+"\n",
		top, sc.Width, top, p.Muted)

	x := panelPadding
	fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
		x, y, x+24, y, p.Accent, styles.HighlightStrokeWidth)
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" dominant-baseline="central" fill="%s">Augmenting path</text>`+"\n",
		x+30, y, p.Ink)

	x += 136
	fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
		x, y, x+24, y, p.Edge, styles.PlainStrokeWidth)
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" dominant-baseline="central" fill="%s">Edge flow/capacity</text>`+"\n",
		x+30, y, p.Ink)

	x += 146
	fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="6" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		x+6, y, p.CutFill, p.Ink)
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" dominant-baseline="central" fill="%s">Min-cut S side</text>`+"\n",
		x+18, y, p.Ink)

	buf.WriteString("  </g>\n")
}

func renderDetails(buf *bytes.Buffer, sc scene.Scene, p styles.Palette, top float64) {
	fmt.Fprintf(buf, `  <g class="details" font-family="sans-serif">`+"\n")
	fmt.Fprintf(buf, `    <line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="0.5"/>`+"\n",
		top, sc.Width, top, p.Muted)

	y := top + 20
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="12" font-weight="bold" fill="%s">Step %d</text>`+"\n",
		panelPadding, y, p.Ink, sc.StepNumber)

	y += 16
	path := sc.Path
	if path == "" {
		path = "none"
	}
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="10" fill="%s">Max flow: %s   Path capacity: %s   Path: %s</text>`+"\n",
		panelPadding, y, p.Muted,
		step.FormatAmount(sc.MaxFlow), step.FormatAmount(sc.PathCapacity), styles.EscapeXML(path))

	y += 6
	for _, line := range styles.Wrap(sc.Explanation, explanationWrap) {
		y += detailsLineHeight
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="11" fill="%s">%s</text>`+"\n",
			panelPadding, y, p.Ink, styles.EscapeXML(line))
	}

	buf.WriteString("  </g>\n")
}
