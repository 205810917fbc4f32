// Package step parses, validates, and narrates externally computed
// Edmonds-Karp algorithm steps.
//
// A step payload describes one iteration of the algorithm: the network
// topology, per-edge flow and capacity values, the augmenting path chosen
// in this iteration, and the running maximum flow. Payloads arrive as JSON
// from whatever tool ran the algorithm; this package never computes flows
// itself, it only interprets what it is given.
//
// Parsing is strict about shape and lenient about values. Required fields
// are enumerated explicitly (maxFlow is checked for presence, since 0 is a
// legal value), every edge must carry from, to, capacity, and flow, and
// all failures are returned as coded errors from pkg/errors so callers can
// distinguish syntax problems from schema problems.
package step

// Well-known node identifiers. The layout engine anchors these two nodes;
// every other node is treated as intermediate.
const (
	SourceID = "S"
	SinkID   = "T"
)

// =============================================================================
// Wire Types
// =============================================================================

// Segment is one hop of an augmenting path. Unlike Edge it carries no
// capacity or flow; it only names a direction.
type Segment struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// Edge is a directed edge of the flow network with its current state.
// Parallel edges between the same node pair are legal and kept distinct.
type Edge struct {
	From     string  `json:"from" bson:"from"`
	To       string  `json:"to" bson:"to"`
	Capacity float64 `json:"capacity" bson:"capacity"`
	Flow     float64 `json:"flow" bson:"flow"`
}

// Step is one fully validated algorithm iteration.
//
// PathCapacity 0 marks a terminal step: no augmenting path remains and
// MaxFlow is final. SSet is optional and only meaningful on terminal
// steps, where it lists the nodes still reachable from the source in the
// residual graph (the source side of the minimum cut).
type Step struct {
	Number         int       `json:"step" bson:"step"`
	MaxFlow        float64   `json:"maxFlow" bson:"maxFlow"`
	PathCapacity   float64   `json:"pathCapacity" bson:"pathCapacity"`
	AugmentingPath []Segment `json:"augmentingPath" bson:"augmentingPath"`
	Nodes          []string  `json:"nodes" bson:"nodes"`
	Edges          []Edge    `json:"edges" bson:"edges"`
	SSet           []string  `json:"sSet,omitempty" bson:"sSet,omitempty"`
}

// =============================================================================
// Derived State
// =============================================================================

// EdgeKey returns the direction-sensitive identity of an edge. "A-B" and
// "B-A" are different keys.
func EdgeKey(from, to string) string {
	return from + "-" + to
}

// IsTerminal reports whether this step ends the algorithm. A terminal step
// has no augmenting path capacity regardless of what AugmentingPath holds.
func (s Step) IsTerminal() bool {
	return s.PathCapacity == 0
}

// Highlights returns the set of edge keys on the augmenting path. Edges
// whose key appears in the set are drawn emphasized; reverse edges are not
// affected because keys are direction-sensitive.
func (s Step) Highlights() map[string]bool {
	hl := make(map[string]bool, len(s.AugmentingPath))
	for _, seg := range s.AugmentingPath {
		hl[EdgeKey(seg.From, seg.To)] = true
	}
	return hl
}

// InSSet reports whether node belongs to the min-cut source side. Always
// false on non-terminal steps, where SSet is ignored.
func (s Step) InSSet(node string) bool {
	if !s.IsTerminal() {
		return false
	}
	for _, id := range s.SSet {
		if id == node {
			return true
		}
	}
	return false
}

// Intermediates returns the nodes that are neither source nor sink, in
// payload order. The layout engine spaces these around a circle.
func (s Step) Intermediates() []string {
	out := make([]string, 0, len(s.Nodes))
	for _, id := range s.Nodes {
		if id != SourceID && id != SinkID {
			out = append(out, id)
		}
	}
	return out
}
