package protocol

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testGraph() *Graph {
	return NewGraph([]Decl{
		{Name: "Equatable"},
		{Name: "Comparable", Inherits: []string{"Equatable"}},
		{Name: "Hashable", Inherits: []string{"Equatable"}},
		{Name: "Collection", Inherits: []string{"Sequence"}},
		{Name: "Sequence"},
		{Name: "BidirectionalCollection", Inherits: []string{"Collection"}},
	})
}

func TestGraphClosure(t *testing.T) {
	g := testGraph()

	testCases := []struct {
		name      string
		proto     string
		inherited []string
	}{
		{"root protocol", "Equatable", []string{}},
		{"direct", "Comparable", []string{"Equatable"}},
		{"transitive", "BidirectionalCollection", []string{"Collection", "Sequence"}},
		{"unknown", "Codable", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Inherited(tc.proto).Slice()
			if len(got) != len(tc.inherited) {
				t.Fatalf("inherited set of %s expected %v, got %v", tc.proto, tc.inherited, got)
			}
			for _, p := range tc.inherited {
				if !g.Inherits(tc.proto, p) {
					t.Errorf("expected %s to inherit %s", tc.proto, p)
				}
			}
		})
	}
}

func TestGraphDepth(t *testing.T) {
	g := testGraph()

	testCases := []struct {
		proto string
		depth int
	}{
		{"Equatable", 0},
		{"Comparable", 1},
		{"BidirectionalCollection", 2},
		{"Codable", 0},
	}

	for _, tc := range testCases {
		if got := g.Depth(tc.proto); got != tc.depth {
			t.Errorf("depth of %s expected %d, got %d", tc.proto, tc.depth, got)
		}
	}
}

func TestGraphCompare(t *testing.T) {
	g := testGraph()

	// A protocol precedes everything it inherits from.
	if g.Compare("Comparable", "Equatable") >= 0 {
		t.Errorf("expected Comparable to precede Equatable")
	}
	if g.Compare("BidirectionalCollection", "Sequence") >= 0 {
		t.Errorf("expected BidirectionalCollection to precede Sequence")
	}
	// Unrelated protocols of equal depth order by name.
	if g.Compare("Comparable", "Hashable") >= 0 {
		t.Errorf("expected Comparable to precede Hashable")
	}
	if g.Compare("Equatable", "Equatable") != 0 {
		t.Errorf("expected a protocol to compare equal to itself")
	}

	// The order is linear on the declared protocols.
	names := g.Names()
	for i, a := range names {
		for _, b := range names[i+1:] {
			if g.Compare(a, b)+g.Compare(b, a) != 0 {
				t.Errorf("compare of %s and %s is not antisymmetric", a, b)
			}
			if g.Compare(a, b) == 0 {
				t.Errorf("distinct protocols %s and %s compare equal", a, b)
			}
		}
	}
}

func TestNilGraph(t *testing.T) {
	var g *Graph

	if g.Known("Equatable") {
		t.Errorf("nil graph should know no protocols")
	}
	if g.Depth("Equatable") != 0 {
		t.Errorf("nil graph depth should be zero")
	}
	if got := g.Compare("A", "B"); got >= 0 {
		t.Errorf("nil graph should fall back to name order, got %d", got)
	}
	if !cmp.Equal(g.Names(), []string(nil)) {
		t.Errorf("nil graph should have no names")
	}
}

func TestGraphCyclePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected inheritance cycle to panic")
		}
	}()
	NewGraph([]Decl{
		{Name: "A", Inherits: []string{"B"}},
		{Name: "B", Inherits: []string{"A"}},
	})
}
