package styles

import (
	"bytes"

	"github.com/matzehuels/flowstep/pkg/geom"
)

// Style defines the visual appearance for canvas rendering.
// Implementations control how the background, arrows, and node circles
// are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (patterns, filters).
	RenderDefs(buf *bytes.Buffer)
	// RenderBackground writes the canvas background.
	RenderBackground(buf *bytes.Buffer, width, height float64)
	// RenderArrow writes the SVG for one edge drawing: shaft, arrowhead,
	// and label, with the accent treatment when highlighted.
	RenderArrow(buf *bytes.Buffer, a Arrow)
	// RenderNode writes the SVG for a node circle with its centered label.
	RenderNode(buf *bytes.Buffer, n Node)
	// Palette exposes the colors shared panels (legend, details) reuse so
	// they match the style.
	Palette() Palette
}

// Stroke widths in pixels. The accent treatment on augmenting-path edges
// applies the thick width to shaft and head alike.
const (
	PlainStrokeWidth     = 1.5
	HighlightStrokeWidth = 3.0
)

// Font sizes in pixels.
const (
	NodeFontSize  = 13.0
	LabelFontSize = 11.0
)

// Node contains all data needed to render a single node circle.
type Node struct {
	ID     string
	CX, CY float64
	R      float64
	InCut  bool // min-cut source side on terminal steps
}

// Arrow contains positioning data for rendering one edge drawing.
type Arrow struct {
	FromID, ToID   string
	X1, Y1, X2, Y2 float64       // shaft coordinates
	Head           [3]geom.Point // arrowhead polygon, tip first
	LabelX, LabelY float64
	Label          string
	Highlighted    bool
}

// StrokeWidth returns the shaft width for a drawing.
func StrokeWidth(highlighted bool) float64 {
	if highlighted {
		return HighlightStrokeWidth
	}
	return PlainStrokeWidth
}

// Palette names the colors a style draws with.
type Palette struct {
	Background string // canvas fill
	Ink        string // primary stroke and text
	Muted      string // secondary text
	Edge       string // plain edge stroke
	Accent     string // augmenting path stroke and label
	NodeFill   string // node circle fill
	CutFill    string // node fill on the min-cut source side
}
