package graphviz

import (
	"strings"
	"testing"

	"github.com/matzehuels/flowstep/pkg/scene"
	"github.com/matzehuels/flowstep/pkg/step"
)

func sampleStep() step.Step {
	return step.Step{
		Number:         1,
		MaxFlow:        4,
		PathCapacity:   4,
		AugmentingPath: []step.Segment{{From: "S", To: "A"}, {From: "A", To: "T"}},
		Nodes:          []string{"S", "A", "B", "T"},
		Edges: []step.Edge{
			{From: "S", To: "A", Capacity: 4, Flow: 4},
			{From: "S", To: "B", Capacity: 6, Flow: 0},
			{From: "A", To: "T", Capacity: 4, Flow: 4},
			{From: "B", To: "T", Capacity: 5, Flow: 0},
			{From: "B", To: "A", Capacity: 3, Flow: 0},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleStep())

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("missing digraph header: %.40s", dot)
	}
	if !strings.Contains(dot, "rankdir=LR") {
		t.Error("missing left-to-right rankdir")
	}
	if !strings.Contains(dot, `"S" -> "A"`) {
		t.Error("missing S -> A edge")
	}
	if !strings.Contains(dot, `label="4/4"`) {
		t.Error("missing 4/4 edge label")
	}
	if !strings.Contains(dot, `label="0/6"`) {
		t.Error("missing 0/6 edge label")
	}
}

func TestToDOTAnchorsAndHighlights(t *testing.T) {
	dot := ToDOT(sampleStep())

	// Source and sink render as double circles.
	if got := strings.Count(dot, "shape=doublecircle"); got != 2 {
		t.Errorf("doublecircle count = %d, want 2", got)
	}

	// Exactly the two path edges carry the accent pen.
	if got := strings.Count(dot, "penwidth=2.5"); got != 2 {
		t.Errorf("accented edge count = %d, want 2", got)
	}

	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, `"S" -> "B"`) && strings.Contains(line, accentColor) {
			t.Error("S -> B accented, want plain")
		}
		if strings.Contains(line, `"S" -> "A"`) && !strings.Contains(line, accentColor) {
			t.Error("S -> A not accented")
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "S", `"S"`},
		{"embedded quote", `a"b`, `"a\"b"`},
		{"backslash", `a\b`, `"a\\b"`},
		{"backslash then quote", `\"`, `"\\\""`},
		// DOT has no \u escape form; non-ASCII passes through as UTF-8.
		{"unicode", "nœud", `"nœud"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quote(tt.in); got != tt.want {
				t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestToDOTExoticIDs(t *testing.T) {
	s := step.Step{
		Number:         1,
		MaxFlow:        0,
		PathCapacity:   1,
		AugmentingPath: []step.Segment{},
		Nodes:          []string{"S", `nœud "x"`, "T"},
		Edges:          []step.Edge{{From: "S", To: `nœud "x"`, Capacity: 1, Flow: 0}},
	}

	dot := ToDOT(s)

	if !strings.Contains(dot, `"nœud \"x\"" [label="nœud \"x\""]`) {
		t.Errorf("exotic node not DOT-quoted:\n%s", dot)
	}
	if !strings.Contains(dot, `"S" -> "nœud \"x\""`) {
		t.Errorf("exotic edge endpoint not DOT-quoted:\n%s", dot)
	}
	if strings.Contains(dot, `\u`) || strings.Contains(dot, `\x`) {
		t.Errorf("Go escape forms leaked into DOT:\n%s", dot)
	}
}

func TestToDOTTerminal(t *testing.T) {
	s := sampleStep()
	s.PathCapacity = 0
	s.AugmentingPath = nil
	s.SSet = []string{"S", "B", "A"}

	dot := ToDOT(s)

	if strings.Contains(dot, "penwidth") {
		t.Error("terminal step has accented edges")
	}
	if got := strings.Count(dot, "fillcolor=lightyellow"); got != 3 {
		t.Errorf("tinted node count = %d, want 3", got)
	}
	if strings.Contains(dot, `"T" [label="T", shape=doublecircle, fillcolor=lightyellow]`) {
		t.Error("sink tinted, want plain")
	}
}

func TestBuildScene(t *testing.T) {
	sc := BuildScene(sampleStep(), Options{})

	if sc.VizType != scene.VizTypeGraphviz {
		t.Fatalf("VizType = %v, want %v", sc.VizType, scene.VizTypeGraphviz)
	}
	if !sc.IsGraphviz() {
		t.Error("IsGraphviz() = false")
	}
	if sc.Engine != DefaultEngine {
		t.Errorf("Engine = %v, want %v", sc.Engine, DefaultEngine)
	}
	if sc.DOT == "" {
		t.Fatal("DOT empty")
	}
	if sc.Path != "S→A → A→T" {
		t.Errorf("Path = %q", sc.Path)
	}
	if !strings.Contains(sc.Explanation, "Bottleneck capacity: 4") {
		t.Errorf("Explanation = %q", sc.Explanation)
	}

	custom := BuildScene(sampleStep(), Options{Engine: "neato"})
	if custom.Engine != "neato" {
		t.Errorf("Engine = %v, want neato", custom.Engine)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>
<svg width="134pt" height="284pt" viewBox="0.00 0.00 134.00 284.00" xmlns="http://www.w3.org/2000/svg">
<g></g>
</svg>`)

	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 134.00 284.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="134" height="284"`) {
		t.Errorf("dimensions not rewritten: %s", out)
	}

	// SVG without a viewBox passes through untouched.
	plain := []byte(`<svg width="10"><g></g></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Error("svg without viewBox modified")
	}
}
