// Package scene defines the unified serialization format for rendered
// step visualizations.
package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/flowstep/pkg/geom"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visualization types.
const (
	VizTypeCanvas   = "canvas"
	VizTypeGraphviz = "graphviz"
)

// Visual styles for canvas rendering.
const (
	StyleClassic   = "classic"
	StyleBlueprint = "blueprint"
)

// =============================================================================
// Scene - Unified Visualization Format
// =============================================================================

// Scene is the unified serialization format for all step visualizations.
//
// This is a discriminated union type - check VizType to determine which
// fields are populated:
//
//	Canvas ("canvas"):
//	  - Nodes: positioned node circles
//	  - Edges: arrows with full drawing geometry
//
//	Graphviz ("graphviz"):
//	  - DOT: Graphviz DOT string for rendering
//	  - Engine: Graphviz layout engine (e.g., "dot")
//
// Shared fields (both types):
//   - Width, Height: frame dimensions
//   - Style: visual style ("classic", "blueprint")
//   - StepNumber, MaxFlow, PathCapacity, Path, Terminal: step details,
//     echoed verbatim for the details panel
//   - Explanation: the one-paragraph narration of the step
type Scene struct {
	// Discriminator
	VizType string `json:"viz_type" bson:"viz_type"`

	// Common dimensions and style
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Style  string  `json:"style,omitempty" bson:"style,omitempty"`

	// Step details (shared)
	StepNumber   int     `json:"step" bson:"step"`
	MaxFlow      float64 `json:"max_flow" bson:"max_flow"`
	PathCapacity float64 `json:"path_capacity" bson:"path_capacity"`
	Path         string  `json:"path,omitempty" bson:"path,omitempty"`
	Terminal     bool    `json:"terminal,omitempty" bson:"terminal,omitempty"`
	Explanation  string  `json:"explanation" bson:"explanation"`

	// Canvas-specific
	Nodes []Node `json:"nodes,omitempty" bson:"nodes,omitempty"`
	Edges []Edge `json:"edges,omitempty" bson:"edges,omitempty"`

	// Graphviz-specific
	DOT    string `json:"dot,omitempty" bson:"dot,omitempty"`
	Engine string `json:"engine,omitempty" bson:"engine,omitempty"`
}

// IsCanvas returns true if this is a canvas scene.
func (s *Scene) IsCanvas() bool { return s.VizType == VizTypeCanvas }

// IsGraphviz returns true if this is a graphviz scene.
func (s *Scene) IsGraphviz() bool { return s.VizType == VizTypeGraphviz }

// =============================================================================
// Node and Edge - Canvas Scene Elements
// =============================================================================

// Node is a positioned node circle with its centered label.
type Node struct {
	ID  string     `json:"id" bson:"id"`
	Pos geom.Point `json:"pos" bson:"pos"`

	// InCut marks source-side nodes of the minimum cut on terminal steps.
	InCut bool `json:"in_cut,omitempty" bson:"in_cut,omitempty"`
}

// Edge is a drawn arrow with its flow state and label text.
//
// Highlighted edges belong to the augmenting path and are rendered in the
// accent color with a thicker stroke, applied consistently to shaft,
// head, and label.
type Edge struct {
	From     string  `json:"from" bson:"from"`
	To       string  `json:"to" bson:"to"`
	Capacity float64 `json:"capacity" bson:"capacity"`
	Flow     float64 `json:"flow" bson:"flow"`

	Label       string     `json:"label" bson:"label"`
	Arrow       geom.Arrow `json:"arrow" bson:"arrow"`
	Highlighted bool       `json:"highlighted,omitempty" bson:"highlighted,omitempty"`
}

// =============================================================================
// Scene Serialization API
// =============================================================================

// Marshal serializes a Scene to pretty-printed JSON bytes.
func Marshal(s Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Scene.
// Validates that required fields are present for the viz type.
func Unmarshal(data []byte) (Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("unmarshal scene: %w", err)
	}

	if s.VizType == "" {
		s.VizType = VizTypeCanvas
	}

	if s.IsCanvas() && len(s.Nodes) == 0 {
		return Scene{}, fmt.Errorf("canvas scene must contain nodes")
	}
	if s.IsGraphviz() && s.DOT == "" {
		return Scene{}, fmt.Errorf("graphviz scene must contain DOT string")
	}

	return s, nil
}

// WriteFile writes a Scene to a JSON file.
func WriteFile(s Scene, path string) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Scene from a JSON file.
func ReadFile(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
