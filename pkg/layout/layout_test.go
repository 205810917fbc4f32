package layout

import (
	"math"
	"sort"
	"testing"

	"github.com/matzehuels/flowstep/pkg/geom"
)

const epsilon = 1e-9

func TestNewFrameDefaults(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantW, wantH  float64
	}{
		{"explicit", 800, 600, 800, 600},
		{"zero width", 0, 600, DefaultWidth, 600},
		{"negative height", 400, -1, 400, DefaultHeight},
		{"both zero", 0, 0, DefaultWidth, DefaultHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame(tt.width, tt.height)
			if f.Width != tt.wantW || f.Height != tt.wantH {
				t.Errorf("NewFrame() = %+v, want %vx%v", f, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestPositionAnchors(t *testing.T) {
	f := DefaultFrame()
	nodes := []string{"S", "A", "B", "T"}

	s := f.Position("S", nodes)
	sink := f.Position("T", nodes)

	if s != (geom.Point{X: 40, Y: 200}) {
		t.Errorf("Position(S) = %v, want (40, 200)", s)
	}
	if sink != (geom.Point{X: 360, Y: 200}) {
		t.Errorf("Position(T) = %v, want (360, 200)", sink)
	}
	if s.Y != sink.Y {
		t.Errorf("anchor heights differ: %v vs %v", s.Y, sink.Y)
	}
}

func TestPositionAnchorsIndependentOfNodeCount(t *testing.T) {
	f := DefaultFrame()

	small := f.Position("S", []string{"S", "A", "T"})
	large := f.Position("S", []string{"S", "A", "B", "C", "D", "E", "T"})
	if small != large {
		t.Errorf("source anchor moved with node count: %v vs %v", small, large)
	}
}

func TestPositionEvenSpacing(t *testing.T) {
	f := DefaultFrame()
	nodes := []string{"S", "A", "B", "C", "D", "T"}

	c := f.Center()
	angles := make([]float64, 0, 4)
	for _, id := range []string{"A", "B", "C", "D"} {
		p := f.Position(id, nodes)
		angles = append(angles, math.Atan2(p.Y-c.Y, p.X-c.X))
	}
	sort.Float64s(angles)

	want := 2 * math.Pi / 4
	for i := 1; i < len(angles); i++ {
		gap := angles[i] - angles[i-1]
		if math.Abs(gap-want) > epsilon {
			t.Errorf("angular gap %d = %v, want %v", i, gap, want)
		}
	}
}

func TestPositionOrderPreserved(t *testing.T) {
	f := DefaultFrame()
	nodes := []string{"S", "C", "A", "T"}

	// The first intermediate in payload order sits at angle 0, directly
	// right of the center.
	first := f.Position("C", nodes)
	want := geom.Point{X: 310, Y: 200}
	if math.Abs(first.X-want.X) > epsilon || math.Abs(first.Y-want.Y) > epsilon {
		t.Errorf("Position(C) = %v, want %v", first, want)
	}

	second := f.Position("A", nodes)
	if math.Abs(second.X-90) > epsilon || math.Abs(second.Y-200) > epsilon {
		t.Errorf("Position(A) = %v, want (90, 200)", second)
	}
}

func TestPositionSingleIntermediate(t *testing.T) {
	f := DefaultFrame()
	p := f.Position("A", []string{"S", "A", "T"})
	if math.Abs(p.X-310) > epsilon || math.Abs(p.Y-200) > epsilon {
		t.Errorf("Position(A) = %v, want (310, 200)", p)
	}
}

func TestPositionUnknownNode(t *testing.T) {
	f := DefaultFrame()
	if p := f.Position("Z", []string{"S", "A", "T"}); p != f.Center() {
		t.Errorf("Position(Z) = %v, want center %v", p, f.Center())
	}
}

func TestPositionDeterministic(t *testing.T) {
	f := DefaultFrame()
	nodes := []string{"S", "A", "B", "T"}
	for _, id := range nodes {
		if a, b := f.Position(id, nodes), f.Position(id, nodes); a != b {
			t.Errorf("Position(%s) not deterministic: %v vs %v", id, a, b)
		}
	}
}

func TestPositions(t *testing.T) {
	f := DefaultFrame()
	nodes := []string{"S", "A", "B", "T"}

	got := f.Positions(nodes)
	if len(got) != len(nodes) {
		t.Fatalf("len(Positions()) = %v, want %v", len(got), len(nodes))
	}
	for _, id := range nodes {
		if got[id] != f.Position(id, nodes) {
			t.Errorf("Positions()[%s] = %v, want %v", id, got[id], f.Position(id, nodes))
		}
	}
}
