package scene

import (
	"github.com/matzehuels/flowstep/pkg/geom"
	"github.com/matzehuels/flowstep/pkg/layout"
	"github.com/matzehuels/flowstep/pkg/step"
)

// Build assembles a canvas scene from a validated step.
//
// Node positions come from the frame, edge geometry from [geom.BuildArrow],
// and highlighting from the step's augmenting path. Edges are kept in
// payload order; parallel edges between the same pair get identical
// geometry and simply overlap when drawn.
func Build(s step.Step, f layout.Frame, style string) Scene {
	hl := s.Highlights()

	nodes := make([]Node, len(s.Nodes))
	for i, id := range s.Nodes {
		nodes[i] = Node{
			ID:    id,
			Pos:   f.Position(id, s.Nodes),
			InCut: s.InSSet(id),
		}
	}

	edges := make([]Edge, len(s.Edges))
	for i, e := range s.Edges {
		edges[i] = Edge{
			From:        e.From,
			To:          e.To,
			Capacity:    e.Capacity,
			Flow:        e.Flow,
			Label:       step.FormatAmount(e.Flow) + "/" + step.FormatAmount(e.Capacity),
			Arrow:       buildEdgeArrow(e, s.Nodes, f),
			Highlighted: hl[step.EdgeKey(e.From, e.To)],
		}
	}

	return Scene{
		VizType:      VizTypeCanvas,
		Width:        f.Width,
		Height:       f.Height,
		Style:        style,
		StepNumber:   s.Number,
		MaxFlow:      s.MaxFlow,
		PathCapacity: s.PathCapacity,
		Path:         s.PathString(),
		Terminal:     s.IsTerminal(),
		Explanation:  s.Explanation(),
		Nodes:        nodes,
		Edges:        edges,
	}
}

// buildEdgeArrow positions both endpoints and computes the arrow. Edges
// referencing nodes absent from the payload fall back to the frame
// center, same as the layout contract for unknown nodes.
func buildEdgeArrow(e step.Edge, nodes []string, f layout.Frame) geom.Arrow {
	from := f.Position(e.From, nodes)
	to := f.Position(e.To, nodes)
	return geom.BuildArrow(from, to)
}
