package styles

import (
	"bytes"
	"fmt"
)

// Classic is the default light style: white canvas, dark ink, rose
// accent on the augmenting path.
type Classic struct{}

// Palette implements [Style].
func (Classic) Palette() Palette {
	return Palette{
		Background: "#ffffff",
		Ink:        "#1f2937",
		Muted:      "#6b7280",
		Edge:       "#9ca3af",
		Accent:     "#e11d48",
		NodeFill:   "#f9fafb",
		CutFill:    "#fef3c7",
	}
}

// RenderDefs implements [Style]. Classic needs no defs.
func (Classic) RenderDefs(buf *bytes.Buffer) {}

// RenderBackground implements [Style].
func (s Classic) RenderBackground(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		width, height, s.Palette().Background)
}

// RenderArrow implements [Style]. Highlighted drawings get the accent
// color and thick stroke on shaft, head, and label alike.
func (s Classic) RenderArrow(buf *bytes.Buffer, a Arrow) {
	p := s.Palette()
	color := p.Edge
	weight := ""
	if a.Highlighted {
		color = p.Accent
		weight = ` font-weight="bold"`
	}

	fmt.Fprintf(buf, `  <g class="arrow" data-edge="%s-%s">`+"\n", EscapeXML(a.FromID), EscapeXML(a.ToID))
	fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
		a.X1, a.Y1, a.X2, a.Y2, color, StrokeWidth(a.Highlighted))
	fmt.Fprintf(buf, `    <polygon points="%s" fill="%s"/>`+"\n", HeadPoints(a.Head), color)
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" font-size="%.0f" font-family="sans-serif" fill="%s"%s>%s</text>`+"\n",
		a.LabelX, a.LabelY, LabelFontSize, color, weight, EscapeXML(a.Label))
	buf.WriteString("  </g>\n")
}

// RenderNode implements [Style].
func (s Classic) RenderNode(buf *bytes.Buffer, n Node) {
	p := s.Palette()
	fill := p.NodeFill
	if n.InCut {
		fill = p.CutFill
	}

	fmt.Fprintf(buf, `  <g class="node" id="node-%s">`+"\n", EscapeXML(n.ID))
	fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
		n.CX, n.CY, n.R, fill, p.Ink, PlainStrokeWidth)
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-size="%.0f" font-family="sans-serif" fill="%s">%s</text>`+"\n",
		n.CX, n.CY, NodeFontSize, p.Ink, EscapeXML(n.ID))
	buf.WriteString("  </g>\n")
}
