package layout

import (
	"math/rand"
	"testing"
)

func TestAssignLanesScenario(t *testing.T) {
	got := AssignLanes([]Extent{{0, 100}, {50, 150}, {200, 250}}, MarkerPad)
	want := []int{0, 1, 0}
	for i := range want {
		if got.Lanes[i] != want[i] {
			t.Fatalf("lane %d: got %d, want %d (all %v)", i, got.Lanes[i], want[i], got.Lanes)
		}
	}
	if got.MaxLane != 1 {
		t.Fatalf("expected max lane 1, got %d", got.MaxLane)
	}
}

func TestAssignLanesEmptyAndSingle(t *testing.T) {
	if p := AssignLanes(nil, MarkerPad); len(p.Lanes) != 0 || p.MaxLane != 0 {
		t.Fatalf("expected empty packing, got %+v", p)
	}
	if p := AssignLanes([]Extent{{40, 60}}, MarkerPad); p.Lanes[0] != 0 || p.MaxLane != 0 {
		t.Fatalf("single item must land in lane 0, got %+v", p)
	}
	if p := StackLabels(nil, LabelPad); len(p.Lanes) != 0 || p.MaxLane != 0 {
		t.Fatalf("expected empty label packing, got %+v", p)
	}
}

func TestAssignLanesTieKeepsInputOrder(t *testing.T) {
	p := AssignLanes([]Extent{{10, 20}, {10, 30}, {10, 25}}, 0)
	for i, want := range []int{0, 1, 2} {
		if p.Lanes[i] != want {
			t.Fatalf("tie order broken: %v", p.Lanes)
		}
	}
}

func TestAssignLanesNoOverlapWithinLane(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		n := r.Intn(40)
		extents := make([]Extent, n)
		for i := range extents {
			left := r.Float64() * 1000
			extents[i] = Extent{Left: left, Right: left + r.Float64()*120}
		}
		p := AssignLanes(extents, MarkerPad)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if p.Lanes[i] == p.Lanes[j] && extents[i].Overlaps(extents[j], MarkerPad) {
					t.Fatalf("round %d: items %d and %d share lane %d and overlap", round, i, j, p.Lanes[i])
				}
			}
		}
		// Left-sorted greedy packing of intervals is optimal: the lane count
		// equals the deepest stack of items covering a single point.
		if n > 0 {
			if depth := maxDepth(extents, MarkerPad); p.MaxLane+1 != depth {
				t.Fatalf("round %d: used %d lanes, depth is %d", round, p.MaxLane+1, depth)
			}
		}
		if again := AssignLanes(extents, MarkerPad); !equalInts(again.Lanes, p.Lanes) {
			t.Fatalf("packing is not deterministic")
		}
	}
}

func TestAssignLanesUsesLowestFreeLane(t *testing.T) {
	// Lane 0 frees up before the fourth item starts but lane 1 is still busy.
	p := AssignLanes([]Extent{{0, 50}, {40, 300}, {45, 60}, {80, 100}}, 0)
	want := []int{0, 1, 2, 0}
	if !equalInts(p.Lanes, want) {
		t.Fatalf("got %v, want %v", p.Lanes, want)
	}
}

func TestStackLabels(t *testing.T) {
	// Three 60px labels at 0, 30 and 200: the second collides with the
	// first, the third collides with nothing.
	p := StackLabels([]Label{{Anchor: 0, Width: 60}, {Anchor: 30, Width: 60}, {Anchor: 200, Width: 60}}, LabelPad)
	if !equalInts(p.Lanes, []int{0, 1, 0}) {
		t.Fatalf("unexpected rows %v", p.Lanes)
	}
	// A label colliding with rows 0 and 1 goes below both.
	p = StackLabels([]Label{{Anchor: 0, Width: 100}, {Anchor: 40, Width: 100}, {Anchor: 80, Width: 100}}, LabelPad)
	if !equalInts(p.Lanes, []int{0, 1, 2}) || p.MaxLane != 2 {
		t.Fatalf("unexpected rows %v", p.Lanes)
	}
}

func TestEstimateLabelWidth(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"", 50},
		{"abc", 50},
		{"abcdefghij", 82},
		{"漢字漢字", 68},
		{"a very long label that certainly overflows", 150},
	}
	for _, tt := range tests {
		if got := EstimateLabelWidth(tt.text); got != tt.want {
			t.Fatalf("EstimateLabelWidth(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestStickyLabel(t *testing.T) {
	tests := []struct {
		name                                 string
		barLeft, barWidth, label, scroll, vw float64
		want                                 float64
		visible                              bool
	}{
		{"narrow bar hidden", 0, 39, 20, 0, 500, StickyPadding, false},
		{"centred in fully visible bar", 100, 200, 40, 0, 1000, 80, true},
		{"centred in visible part", 0, 1000, 100, 600, 200, 650, true},
		{"pinned to scroll edge when cramped", 0, 1000, 300, 600, 200, 608, true},
		{"clamped to bar end", 0, 400, 100, 350, 1000, 292, true},
	}
	for _, tt := range tests {
		got, vis := StickyLabel(tt.barLeft, tt.barWidth, tt.label, tt.scroll, tt.vw)
		if got != tt.want || vis != tt.visible {
			t.Fatalf("%s: got (%v, %v), want (%v, %v)", tt.name, got, vis, tt.want, tt.visible)
		}
	}
}

// maxDepth widens every extent by pad/2 on each side and counts, at each left
// edge, how many widened extents cover it.
func maxDepth(extents []Extent, pad float64) int {
	best := 0
	for _, e := range extents {
		x := e.Left - pad/2
		depth := 0
		for _, o := range extents {
			if o.Left-pad/2 <= x && o.Right+pad/2 > x {
				depth++
			}
		}
		if depth > best {
			best = depth
		}
	}
	return best
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
