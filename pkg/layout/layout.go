// Package layout positions flow-network nodes on a fixed canvas.
//
// The scheme is intentionally simple: the source sits on a fixed left
// anchor, the sink on a fixed right anchor at the same height, and every
// other node is spaced evenly on a circle around the canvas center, in
// payload order. Positioning is pure and deterministic, so the same step
// always produces the same picture.
package layout

import (
	"math"

	"github.com/matzehuels/flowstep/pkg/geom"
	"github.com/matzehuels/flowstep/pkg/step"
)

// Default canvas dimensions in pixels.
const (
	DefaultWidth  = 400.0
	DefaultHeight = 400.0
)

// Geometry ratios relative to the canvas. The anchors sit a fixed
// fraction in from the left and right edges on the horizontal midline;
// the intermediate ring scales with the smaller dimension.
const (
	anchorInset = 0.10
	ringRadius  = 0.275
)

// Frame is a positioned canvas: a width and height plus the anchor and
// ring geometry derived from them.
type Frame struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// NewFrame returns a frame for the given canvas size. Non-positive
// dimensions fall back to the defaults.
func NewFrame(width, height float64) Frame {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return Frame{Width: width, Height: height}
}

// DefaultFrame returns the standard 400x400 canvas.
func DefaultFrame() Frame {
	return NewFrame(DefaultWidth, DefaultHeight)
}

// Source returns the fixed left anchor where the source node sits.
func (f Frame) Source() geom.Point {
	return geom.Point{X: f.Width * anchorInset, Y: f.Height / 2}
}

// Sink returns the fixed right anchor, at the same height as the source.
func (f Frame) Sink() geom.Point {
	return geom.Point{X: f.Width * (1 - anchorInset), Y: f.Height / 2}
}

// Center returns the canvas center, which anchors the intermediate ring
// and serves as the fallback position for unknown nodes.
func (f Frame) Center() geom.Point {
	return geom.Point{X: f.Width / 2, Y: f.Height / 2}
}

func (f Frame) radius() float64 {
	return ringRadius * math.Min(f.Width, f.Height)
}

// Position returns the canvas coordinates for node among allNodes.
//
// The source and sink take their fixed anchors regardless of allNodes.
// Every other node is placed on the ring at angle 2*pi*i/n, where i is
// its index among the intermediates (allNodes minus source and sink,
// order preserved) and n the intermediate count. A node absent from
// allNodes lands on the center rather than failing; well-formed steps
// never hit that path.
func (f Frame) Position(node string, allNodes []string) geom.Point {
	switch node {
	case step.SourceID:
		return f.Source()
	case step.SinkID:
		return f.Sink()
	}

	i, n := 0, 0
	found := false
	for _, id := range allNodes {
		if id == step.SourceID || id == step.SinkID {
			continue
		}
		if id == node && !found {
			i = n
			found = true
		}
		n++
	}
	if !found {
		return f.Center()
	}

	theta := 2 * math.Pi * float64(i) / float64(n)
	c := f.Center()
	r := f.radius()
	return geom.Point{X: c.X + r*math.Cos(theta), Y: c.Y + r*math.Sin(theta)}
}

// Positions maps every node in nodes to its coordinates in one pass.
func (f Frame) Positions(nodes []string) map[string]geom.Point {
	out := make(map[string]geom.Point, len(nodes))
	for _, id := range nodes {
		out[id] = f.Position(id, nodes)
	}
	return out
}
