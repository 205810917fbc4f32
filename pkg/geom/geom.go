// Package geom computes arrow and label geometry for directed edge
// drawings.
//
// Everything here is pure math over already-positioned points: given the
// centers of two nodes, [BuildArrow] produces the shaft, the arrowhead
// polygon, and the label anchor for the edge between them. Highlighting
// and color are presentation concerns and live with the renderers, not
// here.
package geom

import "math"

// Point is a 2D canvas coordinate. Y grows downward, matching SVG.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Drawing constants, in pixels. Tuned for the default canvas size;
// renderers scale finished geometry rather than recomputing it.
const (
	NodeRadius  = 16.0 // node circle radius
	ArrowOffset = 20.0 // shaft pull-back from the target node center
	HeadLength  = 10.0 // arrowhead edge length
	LabelOffset = 12.0 // vertical distance from segment midpoint to label
)

// headAngle is the half-opening of the arrowhead.
const headAngle = math.Pi / 4

// Arrow is the complete drawing geometry for one directed edge.
//
// Start and End delimit the shaft. End is pulled back from the target
// center by ArrowOffset so the head clears the node circle. Head is the
// arrowhead triangle with the tip first. Label anchors the edge text,
// offset from the midpoint of the unshortened segment so it never sits
// on the shaft.
type Arrow struct {
	Start Point    `json:"start" bson:"start"`
	End   Point    `json:"end" bson:"end"`
	Head  [3]Point `json:"head" bson:"head"`
	Label Point    `json:"label" bson:"label"`
	Angle float64  `json:"angle" bson:"angle"`
}

// BuildArrow computes the drawing geometry for an edge from one node
// center to another. Parallel edges between the same pair produce
// identical geometry and overlap when drawn; nothing deduplicates them.
func BuildArrow(from, to Point) Arrow {
	dx := to.X - from.X
	dy := to.Y - from.Y
	angle := math.Atan2(dy, dx)

	end := Point{
		X: to.X - ArrowOffset*math.Cos(angle),
		Y: to.Y - ArrowOffset*math.Sin(angle),
	}

	label := Point{
		X: (from.X + to.X) / 2,
		Y: (from.Y+to.Y)/2 + labelSide(dx, dy)*LabelOffset,
	}

	return Arrow{
		Start: from,
		End:   end,
		Head:  headPolygon(end, angle),
		Label: label,
		Angle: angle,
	}
}

// labelSide picks which side of the segment the label sits on. Downward
// edges carry the label above the midpoint, upward and horizontal edges
// below. Degenerate zero-length edges fall on the upper side.
func labelSide(dx, dy float64) float64 {
	if dy > 0 || (dy == 0 && dx == 0) {
		return -1
	}
	return 1
}

// headPolygon returns the arrowhead triangle with the tip first. The two
// back points sit HeadLength from the tip, swept 45 degrees to either
// side of the shaft direction.
func headPolygon(tip Point, angle float64) [3]Point {
	left := Point{
		X: tip.X - HeadLength*math.Cos(angle-headAngle),
		Y: tip.Y - HeadLength*math.Sin(angle-headAngle),
	}
	right := Point{
		X: tip.X - HeadLength*math.Cos(angle+headAngle),
		Y: tip.Y - HeadLength*math.Sin(angle+headAngle),
	}
	return [3]Point{tip, left, right}
}
