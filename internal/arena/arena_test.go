package arena

import (
	"testing"

	"github.com/vovakirdan/park-guardian/internal/core"
)

func TestClampKeepsBodyInside(t *testing.T) {
	got := Default.Clamp(core.V(-50, 900), 20)
	if got != core.V(20, 580) {
		t.Errorf("Clamp = %v, want {20 580}", got)
	}
	if !Default.Contains(core.V(800, 0)) || Default.Contains(core.V(801, 10)) {
		t.Error("Contains edge handling wrong")
	}
}

func TestOverlaps(t *testing.T) {
	a := Circle{Pos: core.V(0, 0), Radius: 10}
	if !Overlaps(a, Circle{Pos: core.V(20, 0), Radius: 10}) {
		t.Error("touching circles should overlap")
	}
	if Overlaps(a, Circle{Pos: core.V(21, 0), Radius: 10}) {
		t.Error("separated circles overlap")
	}
}

func TestPairsOrdered(t *testing.T) {
	shots := []Circle{
		{ID: 1, Pos: core.V(100, 100), Radius: 4},
		{ID: 2, Pos: core.V(500, 500), Radius: 4},
		{ID: 3, Pos: core.V(105, 100), Radius: 4},
	}
	enemies := []Circle{
		{ID: 10, Pos: core.V(100, 110), Radius: 16},
		{ID: 11, Pos: core.V(700, 100), Radius: 16},
	}

	pairs := Pairs(shots, enemies)
	want := []Pair{{A: 1, B: 10}, {A: 3, B: 10}}
	if len(pairs) != len(want) {
		t.Fatalf("Pairs = %v, want %v", pairs, want)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("pair %d = %v, want %v", i, pairs[i], want[i])
		}
	}
}

func TestGridRoundTrip(t *testing.T) {
	g := Grid{Bounds: Default, Cols: 80, Rows: 24}
	x, y := g.ToCell(core.V(400, 300))
	if x != 40 || y != 12 {
		t.Errorf("ToCell = %d,%d want 40,12", x, y)
	}
	w := g.ToWorld(40, 12)
	if cx, cy := g.ToCell(w); cx != 40 || cy != 12 {
		t.Errorf("round trip = %d,%d", cx, cy)
	}
	if cx, cy := g.ToCell(core.V(800, 600)); cx != 79 || cy != 23 {
		t.Errorf("far corner = %d,%d want 79,23", cx, cy)
	}
}
