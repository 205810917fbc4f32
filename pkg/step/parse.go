package step

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/flowstep/pkg/errors"
)

// stepEnvelope mirrors the wire shape with pointer fields so absent keys
// are distinguishable from legal zero values. maxFlow in particular may be
// 0 on a first step and must still count as present.
type stepEnvelope struct {
	Step           *float64        `json:"step"`
	MaxFlow        *float64        `json:"maxFlow"`
	PathCapacity   *float64        `json:"pathCapacity"`
	AugmentingPath *[]Segment      `json:"augmentingPath"`
	Nodes          *[]string       `json:"nodes"`
	Edges          *[]edgeEnvelope `json:"edges"`
	SSet           []string        `json:"sSet"`
}

type edgeEnvelope struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Capacity *float64 `json:"capacity"`
	Flow     *float64 `json:"flow"`
}

// Parse decodes and validates a raw step payload.
//
// Failures come back as coded errors:
//   - ErrCodeMalformedInput: not valid JSON, or a field of the wrong type
//   - ErrCodeMissingField: required top-level fields absent, each named once
//   - ErrCodeMalformedEdge: an edge missing from, to, capacity, or flow
//
// pathCapacity is optional. Absent means 0, which marks the step terminal.
// sSet is optional and passed through untouched.
func Parse(data []byte) (Step, error) {
	var env stepEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Step{}, errors.Wrap(errors.ErrCodeMalformedInput, err, "Invalid JSON format. Please check your input.")
	}

	var missing []string
	if env.Step == nil {
		missing = append(missing, "step")
	}
	if env.Nodes == nil {
		missing = append(missing, "nodes")
	}
	if env.Edges == nil {
		missing = append(missing, "edges")
	}
	if env.MaxFlow == nil {
		missing = append(missing, "maxFlow")
	}
	if env.AugmentingPath == nil {
		missing = append(missing, "augmentingPath")
	}
	if len(missing) > 0 {
		return Step{}, errors.New(errors.ErrCodeMissingField, "Missing required field(s): %s", strings.Join(missing, ", "))
	}

	edges := make([]Edge, len(*env.Edges))
	for i, e := range *env.Edges {
		if e.From == "" || e.To == "" || e.Capacity == nil || e.Flow == nil {
			return Step{}, errors.New(errors.ErrCodeMalformedEdge, "Invalid edge at index %d: every edge requires from, to, capacity, and flow.", i)
		}
		edges[i] = Edge{From: e.From, To: e.To, Capacity: *e.Capacity, Flow: *e.Flow}
	}

	s := Step{
		Number:         int(*env.Step),
		MaxFlow:        *env.MaxFlow,
		AugmentingPath: *env.AugmentingPath,
		Nodes:          *env.Nodes,
		Edges:          edges,
		SSet:           env.SSet,
	}
	if env.PathCapacity != nil {
		s.PathCapacity = *env.PathCapacity
	}
	return s, nil
}
