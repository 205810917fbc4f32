package step

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/flowstep/pkg/errors"
)

func TestParse(t *testing.T) {
	payload := `{
		"step": 1,
		"maxFlow": 4,
		"pathCapacity": 4,
		"augmentingPath": [{"from": "S", "to": "A"}, {"from": "A", "to": "T"}],
		"nodes": ["S", "A", "B", "T"],
		"edges": [
			{"from": "S", "to": "A", "capacity": 4, "flow": 4},
			{"from": "A", "to": "T", "capacity": 4, "flow": 4}
		]
	}`

	s, err := Parse([]byte(payload))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if s.Number != 1 {
		t.Errorf("Number = %v, want 1", s.Number)
	}
	if s.MaxFlow != 4 {
		t.Errorf("MaxFlow = %v, want 4", s.MaxFlow)
	}
	if s.PathCapacity != 4 {
		t.Errorf("PathCapacity = %v, want 4", s.PathCapacity)
	}
	wantPath := []Segment{{From: "S", To: "A"}, {From: "A", To: "T"}}
	if !reflect.DeepEqual(s.AugmentingPath, wantPath) {
		t.Errorf("AugmentingPath = %v, want %v", s.AugmentingPath, wantPath)
	}
	wantNodes := []string{"S", "A", "B", "T"}
	if !reflect.DeepEqual(s.Nodes, wantNodes) {
		t.Errorf("Nodes = %v, want %v", s.Nodes, wantNodes)
	}
	if len(s.Edges) != 2 {
		t.Fatalf("len(Edges) = %v, want 2", len(s.Edges))
	}
	if s.Edges[0] != (Edge{From: "S", To: "A", Capacity: 4, Flow: 4}) {
		t.Errorf("Edges[0] = %v", s.Edges[0])
	}
}

func TestParseMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unquoted key", `{step: 1`},
		{"truncated", `{"step": 1,`},
		{"empty", ``},
		{"not an object", `[1, 2, 3]`},
		{"wrong field type", `{"step": "one", "nodes": [], "edges": [], "maxFlow": 0, "augmentingPath": []}`},
		{"nodes not an array", `{"step": 1, "nodes": "S", "edges": [], "maxFlow": 0, "augmentingPath": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("Parse() error = nil, want malformed input")
			}
			if !errors.Is(err, errors.ErrCodeMalformedInput) {
				t.Errorf("Parse() code = %v, want %v", errors.GetCode(err), errors.ErrCodeMalformedInput)
			}
		})
	}
}

func TestParseMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		missing []string
	}{
		{
			name:    "only step",
			input:   `{"step": 1}`,
			missing: []string{"nodes", "edges", "maxFlow", "augmentingPath"},
		},
		{
			name:    "empty object",
			input:   `{}`,
			missing: []string{"step", "nodes", "edges", "maxFlow", "augmentingPath"},
		},
		{
			name:    "maxFlow absent",
			input:   `{"step": 1, "nodes": [], "edges": [], "augmentingPath": []}`,
			missing: []string{"maxFlow"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("Parse() error = nil, want missing field")
			}
			if !errors.Is(err, errors.ErrCodeMissingField) {
				t.Fatalf("Parse() code = %v, want %v", errors.GetCode(err), errors.ErrCodeMissingField)
			}
			msg := errors.UserMessage(err)
			for _, field := range tt.missing {
				if n := strings.Count(msg, field); n != 1 {
					t.Errorf("message names %q %d times, want once: %q", field, n, msg)
				}
			}
		})
	}
}

func TestParseMaxFlowZeroIsPresent(t *testing.T) {
	input := `{"step": 1, "nodes": ["S", "T"], "edges": [], "maxFlow": 0, "augmentingPath": []}`
	s, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.MaxFlow != 0 {
		t.Errorf("MaxFlow = %v, want 0", s.MaxFlow)
	}
}

func TestParseMalformedEdge(t *testing.T) {
	tests := []struct {
		name string
		edge string
	}{
		{"missing from", `{"to": "T", "capacity": 1, "flow": 0}`},
		{"empty from", `{"from": "", "to": "T", "capacity": 1, "flow": 0}`},
		{"missing to", `{"from": "S", "capacity": 1, "flow": 0}`},
		{"missing capacity", `{"from": "S", "to": "T", "flow": 0}`},
		{"missing flow", `{"from": "S", "to": "T", "capacity": 1}`},
		{"null capacity", `{"from": "S", "to": "T", "capacity": null, "flow": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := `{"step": 1, "nodes": ["S", "T"], "edges": [` + tt.edge + `], "maxFlow": 0, "augmentingPath": []}`
			_, err := Parse([]byte(input))
			if err == nil {
				t.Fatal("Parse() error = nil, want malformed edge")
			}
			if !errors.Is(err, errors.ErrCodeMalformedEdge) {
				t.Errorf("Parse() code = %v, want %v", errors.GetCode(err), errors.ErrCodeMalformedEdge)
			}
		})
	}
}

func TestParseOptionalFields(t *testing.T) {
	t.Run("pathCapacity defaults to zero", func(t *testing.T) {
		input := `{"step": 3, "nodes": ["S", "T"], "edges": [], "maxFlow": 9, "augmentingPath": []}`
		s, err := Parse([]byte(input))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if s.PathCapacity != 0 {
			t.Errorf("PathCapacity = %v, want 0", s.PathCapacity)
		}
		if !s.IsTerminal() {
			t.Error("IsTerminal() = false, want true")
		}
	})

	t.Run("sSet passes through", func(t *testing.T) {
		input := `{"step": 3, "nodes": ["S", "T"], "edges": [], "maxFlow": 9, "augmentingPath": [], "sSet": ["S", "B"]}`
		s, err := Parse([]byte(input))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if !reflect.DeepEqual(s.SSet, []string{"S", "B"}) {
			t.Errorf("SSet = %v, want [S B]", s.SSet)
		}
	})

	t.Run("fractional step number truncates", func(t *testing.T) {
		input := `{"step": 1.0, "nodes": ["S", "T"], "edges": [], "maxFlow": 0, "augmentingPath": []}`
		s, err := Parse([]byte(input))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if s.Number != 1 {
			t.Errorf("Number = %v, want 1", s.Number)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	orig := Step{
		Number:         2,
		MaxFlow:        9,
		PathCapacity:   5,
		AugmentingPath: []Segment{{From: "S", To: "B"}, {From: "B", To: "T"}},
		Nodes:          []string{"S", "A", "B", "T"},
		Edges: []Edge{
			{From: "S", To: "B", Capacity: 6, Flow: 5},
			{From: "B", To: "T", Capacity: 5, Flow: 5},
		},
	}

	data, err := Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !reflect.DeepEqual(got, orig) {
		t.Errorf("round trip = %+v, want %+v", got, orig)
	}
}

func TestHighlights(t *testing.T) {
	s := Step{
		AugmentingPath: []Segment{{From: "S", To: "A"}, {From: "A", To: "T"}},
	}

	hl := s.Highlights()
	if len(hl) != 2 {
		t.Fatalf("len(Highlights()) = %v, want 2", len(hl))
	}
	if !hl["S-A"] || !hl["A-T"] {
		t.Errorf("Highlights() = %v, want S-A and A-T", hl)
	}

	// Keys are direction-sensitive: the reverse edge is not highlighted.
	if hl["A-S"] {
		t.Error("Highlights() contains A-S, want direction-sensitive keys")
	}

	if got := (Step{}).Highlights(); len(got) != 0 {
		t.Errorf("empty path Highlights() = %v, want empty", got)
	}
}

func TestIntermediates(t *testing.T) {
	s := Step{Nodes: []string{"S", "C", "A", "B", "T"}}
	want := []string{"C", "A", "B"}
	if got := s.Intermediates(); !reflect.DeepEqual(got, want) {
		t.Errorf("Intermediates() = %v, want %v", got, want)
	}
}

func TestInSSet(t *testing.T) {
	terminal := Step{PathCapacity: 0, SSet: []string{"S", "B"}}
	if !terminal.InSSet("B") {
		t.Error("InSSet(B) = false on terminal step, want true")
	}
	if terminal.InSSet("T") {
		t.Error("InSSet(T) = true, want false")
	}

	// SSet is ignored on non-terminal steps.
	active := Step{PathCapacity: 4, SSet: []string{"S", "B"}}
	if active.InSSet("B") {
		t.Error("InSSet(B) = true on non-terminal step, want false")
	}
}
