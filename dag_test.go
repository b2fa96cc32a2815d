package trapmap

import (
	"math/rand/v2"
	"testing"
)

func TestLocateMatchesRecursive(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 3))
	m, err := Build(polygonGrid(r, 10), canvas, WithRand(r), WithoutTrace())
	if err != nil {
		t.Fatal(err)
	}
	box := m.Box()
	for range 1000 {
		q := Pt(box.X0+r.Float64()*box.Width(), box.Y0+r.Float64()*box.Height())
		if a, b := Locate(m.Root(), q), locateRecursive(m.Root(), q); a != b {
			t.Errorf("%v: iterative descent found %v, recursive found %v", q, a, b)
		}
	}
	// Every vertex stops the descent at some node.
	for _, s := range m.Segments() {
		if n := Locate(m.Root(), s.Left.Point); n.Kind == TrapezoidNode {
			t.Errorf("locating vertex %v returned leaf %v", s.Left, n)
		}
	}
}

func TestLocateSegmentStart(t *testing.T) {
	s, err := NewSession(canvas)
	if err != nil {
		t.Fatal(err)
	}
	s1, err := s.Insert(LP(100, 100, "A"), LP(400, 200, "B"))
	if err != nil {
		t.Fatal(err)
	}
	m := s.Map()

	tests := []struct {
		right Point
		want  *Segment
		above bool
	}{
		{Pt(450, 50), s1, false},
		{Pt(450, 300), s1, true},
		// Steeper than s1 but ending left of B.
		{Pt(300, 250), s1, true},
	}
	for _, tt := range tests {
		seg := &Segment{Left: s1.Left, Right: &Vertex{Point: tt.right}}
		n := locateSegmentStart(m.Root(), seg)
		if n.Kind != TrapezoidNode {
			t.Fatalf("%v: got internal node %v", tt.right, n)
		}
		tr := m.Trapezoid(n.Trapezoid)
		if tt.above && tr.Bottom != tt.want || !tt.above && tr.Top != tt.want {
			t.Errorf("%v: got %v", tt.right, tr)
		}
		if tr.LeftP != s1.Left {
			t.Errorf("%v: got %v, which doesn't start at A", tt.right, tr)
		}
	}
}

func TestDepth(t *testing.T) {
	s, err := NewSession(canvas)
	if err != nil {
		t.Fatal(err)
	}
	if d := s.Map().Depth(); d != 1 {
		t.Errorf("got depth %d for the empty map, want 1", d)
	}
	r := rand.New(rand.NewPCG(5, 5))
	points := stripSegments(r, 50)
	m, err := Build(points, canvas, WithRand(r), WithoutTrace())
	if err != nil {
		t.Fatal(err)
	}
	// Every leaf is reachable and no path is longer than the number of nodes.
	nodes := len(m.Snapshot().Nodes)
	if d := m.Depth(); d < 2 || d > nodes {
		t.Errorf("got depth %d for %d nodes", d, nodes)
	}
}

func TestNodeKindString(t *testing.T) {
	diff(t, []string{"trapezoid", "segment", "vertex", "NodeKind(7)"},
		[]string{TrapezoidNode.String(), SegmentNode.String(), VertexNode.String(), NodeKind(7).String()})
}
