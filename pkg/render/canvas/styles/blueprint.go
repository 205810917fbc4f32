package styles

import (
	"bytes"
	"fmt"
)

// Blueprint is a drafting-table look: deep blue canvas with a faint
// grid, chalk linework, and an amber accent on the augmenting path.
// Plain edges are dashed so the solid accent stands out.
type Blueprint struct{}

const blueprintGridID = "blueprint-grid"

// Palette implements [Style].
func (Blueprint) Palette() Palette {
	return Palette{
		Background: "#10395f",
		Ink:        "#e7f0fa",
		Muted:      "#9db8d6",
		Edge:       "#9db8d6",
		Accent:     "#ffc53d",
		NodeFill:   "#164a78",
		CutFill:    "#1d6091",
	}
}

// RenderDefs implements [Style], defining the background grid pattern.
func (Blueprint) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <defs>
    <pattern id="%s" width="20" height="20" patternUnits="userSpaceOnUse">
      <path d="M 20 0 L 0 0 0 20" fill="none" stroke="#1d5c8f" stroke-width="0.5"/>
    </pattern>
  </defs>
`, blueprintGridID)
}

// RenderBackground implements [Style].
func (s Blueprint) RenderBackground(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		width, height, s.Palette().Background)
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="url(#%s)"/>`+"\n",
		width, height, blueprintGridID)
}

// RenderArrow implements [Style].
func (s Blueprint) RenderArrow(buf *bytes.Buffer, a Arrow) {
	p := s.Palette()
	color := p.Edge
	dash := ` stroke-dasharray="6 3"`
	weight := ""
	if a.Highlighted {
		color = p.Accent
		dash = ""
		weight = ` font-weight="bold"`
	}

	fmt.Fprintf(buf, `  <g class="arrow" data-edge="%s-%s">`+"\n", EscapeXML(a.FromID), EscapeXML(a.ToID))
	fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
		a.X1, a.Y1, a.X2, a.Y2, color, StrokeWidth(a.Highlighted), dash)
	fmt.Fprintf(buf, `    <polygon points="%s" fill="%s"/>`+"\n", HeadPoints(a.Head), color)
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" font-size="%.0f" font-family="monospace" fill="%s"%s>%s</text>`+"\n",
		a.LabelX, a.LabelY, LabelFontSize, color, weight, EscapeXML(a.Label))
	buf.WriteString("  </g>\n")
}

// RenderNode implements [Style].
func (s Blueprint) RenderNode(buf *bytes.Buffer, n Node) {
	p := s.Palette()
	fill := p.NodeFill
	if n.InCut {
		fill = p.CutFill
	}

	fmt.Fprintf(buf, `  <g class="node" id="node-%s">`+"\n", EscapeXML(n.ID))
	fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
		n.CX, n.CY, n.R, fill, p.Ink, PlainStrokeWidth)
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-size="%.0f" font-family="monospace" fill="%s">%s</text>`+"\n",
		n.CX, n.CY, NodeFontSize, p.Ink, EscapeXML(n.ID))
	buf.WriteString("  </g>\n")
}
