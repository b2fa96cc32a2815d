package trapmap

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/pkg/errors"
)

func TestSingleSegment(t *testing.T) {
	points := []LabeledPoint{LP(100, 100, "A"), LP(700, 500, "B")}
	m, err := Build(points, canvas, WithCheck(true))
	if err != nil {
		t.Fatal(err)
	}
	if n := m.NumTrapezoids(); n != 4 {
		t.Errorf("got %d trapezoids, want 4", n)
	}
	box := m.Trapezoid(0)
	if !box.Retired {
		t.Error("bounding box trapezoid wasn't retired")
	}
	if box.Leaf.Kind == TrapezoidNode {
		t.Error("bounding box leaf is still a leaf")
	}
	if m.Root() != box.Leaf {
		t.Error("root isn't the former bounding box leaf")
	}
	diff(t, Rect{-40, -40, 840, 640}, m.Box())

	tests := []struct {
		q                   Point
		label, top, bottom string
	}{
		{Pt(50, 300), "T1", "top", "bottom"},
		{Pt(400, 500), "T2", "top", "s1"},
		{Pt(400, 100), "T3", "s1", "bottom"},
		{Pt(800, 300), "T4", "top", "bottom"},
	}
	for _, tt := range tests {
		tr, ok := m.LocateTrapezoid(tt.q)
		if !ok {
			t.Errorf("%v: no trapezoid", tt.q)
			continue
		}
		diff(t, []string{tt.label, tt.top, tt.bottom}, []string{tr.Label(), tr.Top.Label, tr.Bottom.Label})
	}

	if _, ok := m.LocateTrapezoid(Pt(100, 300)); ok {
		t.Error("located a trapezoid on a vertex's vertical line")
	}
	if _, ok := m.LocateTrapezoid(Pt(400, 300)); ok {
		t.Error("located a trapezoid on a segment")
	}

	s := m.Segments()[0]
	for _, v := range [2]*Vertex{s.Left, s.Right} {
		if v.ExtensionTop == nil || v.ExtensionTop.Label != "top" {
			t.Errorf("%v: got top extension %v, want top", v, v.ExtensionTop)
		}
		if v.ExtensionBottom == nil || v.ExtensionBottom.Label != "bottom" {
			t.Errorf("%v: got bottom extension %v, want bottom", v, v.ExtensionBottom)
		}
	}
	if d := m.Depth(); d != 4 {
		t.Errorf("got depth %d, want 4", d)
	}
}

func TestSingleSegmentNeighbors(t *testing.T) {
	m, err := Build([]LabeledPoint{LP(100, 100, "A"), LP(700, 500, "B")}, canvas)
	if err != nil {
		t.Fatal(err)
	}
	got := map[string][4]TrapID{}
	for _, tr := range m.Trapezoids() {
		got[tr.Label()] = tr.Neighbors()
	}
	const no = NoTrapezoid
	want := map[string][4]TrapID{
		"T1": {no, no, 2, 3},
		"T2": {1, no, 4, no},
		"T3": {no, 1, no, 4},
		"T4": {2, 3, no, no},
	}
	diff(t, want, got)
}

func TestSeparatedSegments(t *testing.T) {
	points := []LabeledPoint{
		LP(100, 100, "A"), LP(700, 200, "B"),
		LP(150, 400, "C"), LP(650, 500, "D"),
	}
	for _, perm := range [][]int{{0, 1}, {1, 0}} {
		s, err := NewSession(canvas, WithCheck(true))
		if err != nil {
			t.Fatal(err)
		}
		i := perm[0]
		if _, err := s.Insert(points[2*i], points[2*i+1]); err != nil {
			t.Fatal(err)
		}
		first := s.Map().NumTrapezoids()
		i = perm[1]
		if _, err := s.Insert(points[2*i], points[2*i+1]); err != nil {
			t.Fatal(err)
		}
		if n := s.Map().NumTrapezoids(); n > first+4 || n != 7 {
			t.Errorf("order %v: got %d trapezoids after %d, want 7", perm, n, first)
		}
	}
}

func TestSharedLeftEndpoint(t *testing.T) {
	s, err := NewSession(canvas, WithCheck(true))
	if err != nil {
		t.Fatal(err)
	}
	s1, err := s.Insert(LP(100, 100, "A"), LP(400, 200, "B"))
	if err != nil {
		t.Fatal(err)
	}

	// The probe for the second segment lies below s1, right of A.
	s2 := &Segment{Left: s1.Left, Right: &Vertex{Point: Pt(450, 50)}}
	x := 100 + s.opts.probe
	n := Locate(s.Map().Root(), Pt(x, s2.YAt(x)))
	if n.Kind != TrapezoidNode {
		t.Fatalf("probe located %v", n)
	}
	if got := s.Map().Trapezoid(n.Trapezoid); got.Top != s1 || got.Bottom.Label != "bottom" {
		t.Errorf("probe located %v, want the trapezoid below s1", got)
	}

	seg, err := s.Insert(LP(100, 100, "A'"), LP(450, 50, "C"))
	if err != nil {
		t.Fatal(err)
	}
	m := s.Map()
	if seg.Left != s1.Left {
		t.Fatal("shared endpoint wasn't folded into one vertex")
	}
	if seg.Left.Label != "A" {
		t.Errorf("got label %q, want the first one", seg.Left.Label)
	}
	if n := m.NumTrapezoids(); n != 6 {
		t.Errorf("got %d trapezoids, want 6", n)
	}

	ext := func(v *Vertex) [2]string {
		var out [2]string
		if v.ExtensionTop != nil {
			out[0] = v.ExtensionTop.Label
		}
		if v.ExtensionBottom != nil {
			out[1] = v.ExtensionBottom.Label
		}
		return out
	}
	diff(t, [2]string{"top", "bottom"}, ext(seg.Left))
	// B's downward extension now ends at s2.
	diff(t, [2]string{"top", "s2"}, ext(s1.Right))
	diff(t, [2]string{"top", "bottom"}, ext(seg.Right))

	wedge, ok := m.LocateTrapezoid(Pt(200, 100))
	if !ok {
		t.Fatal("no trapezoid between s1 and s2")
	}
	if wedge.Top != s1 || wedge.Bottom != seg {
		t.Errorf("got %v, want the wedge between s1 and s2", wedge)
	}
	if wedge.UpperLeft != NoTrapezoid || wedge.LowerLeft != NoTrapezoid {
		t.Errorf("wedge has left neighbors: %v", wedge.Neighbors())
	}
	right, _ := m.LocateTrapezoid(Pt(420, 150))
	if wedge.LowerRight != right.ID || right.LowerLeft != wedge.ID {
		t.Errorf("wedge %v and %v aren't linked", wedge, right)
	}
}

func TestLongProbeWalksBack(t *testing.T) {
	// The probe overshoots B and lands right of B's wall, so the engine has to walk back
	// to the trapezoid starting at A.
	s, err := NewSession(canvas, WithCheck(true), WithProbeDistance(150))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Insert(LP(100, 100, "A"), LP(200, 300, "B")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Insert(LP(100, 100, "A"), LP(500, 50, "C")); err != nil {
		t.Fatal(err)
	}
	if n := s.Map().NumTrapezoids(); n != 6 {
		t.Errorf("got %d trapezoids, want 6", n)
	}
}

func TestSharedRightEndpoint(t *testing.T) {
	s, err := NewSession(canvas, WithCheck(true))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Insert(LP(100, 300, "A"), LP(500, 200, "B")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Insert(LP(200, 50, "C"), LP(500, 200, "B")); err != nil {
		t.Fatal(err)
	}
	m := s.Map()
	if n := m.NumTrapezoids(); n != 6 {
		t.Errorf("got %d trapezoids, want 6", n)
	}
	wedge, ok := m.LocateTrapezoid(Pt(450, 200))
	if !ok {
		t.Fatal("no trapezoid between the segments")
	}
	if wedge.RightP.Label != "B" || wedge.UpperRight != NoTrapezoid || wedge.LowerRight != NoTrapezoid {
		t.Errorf("got %v with neighbors %v, want a wedge ending in B", wedge, wedge.Neighbors())
	}
}

func TestRandomSegments(t *testing.T) {
	for seed := range uint64(20) {
		r := rand.New(rand.NewPCG(seed, 1))
		points := stripSegments(r, 40)
		m, err := Build(points, canvas, WithRand(r), WithCheck(true))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		// Segments without shared endpoints always produce 3n+1 trapezoids.
		if n := m.NumTrapezoids(); n != 3*40+1 {
			t.Errorf("seed %d: got %d trapezoids, want %d", seed, n, 3*40+1)
		}
	}
}

func TestRandomPolygons(t *testing.T) {
	for seed := range uint64(20) {
		r := rand.New(rand.NewPCG(seed, 2))
		points := polygonGrid(r, 9)
		m, err := Build(points, canvas, WithRand(r), WithCheck(true))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		n := len(points) / 2
		if got := m.NumTrapezoids(); got > 3*n+1 {
			t.Errorf("seed %d: got %d trapezoids for %d segments", seed, got, n)
		}
	}
}

func TestMixedInput(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 42))
	// One polygon in the upper half, free segments in strips in the lower half.
	points := starPolygon(r, Pt(400, 450), 140, 16)
	for _, p := range stripSegments(r, 30) {
		p.Y *= 0.45
		points = append(points, p)
	}
	if _, err := Build(points, canvas, WithRand(r), WithCheck(true)); err != nil {
		t.Fatal(err)
	}
}

func TestPermutationInvariance(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	inputs := map[string][]LabeledPoint{
		"segments": stripSegments(r, 30),
		"polygons": polygonGrid(r, 7),
	}
	for name, points := range inputs {
		t.Run(name, func(t *testing.T) {
			m1, err := Build(points, canvas, WithPermutation(InOrder), WithoutTrace())
			if err != nil {
				t.Fatal(err)
			}
			want := shapes(m1)
			for seed := range uint64(5) {
				m2, err := Build(points, canvas, WithRand(rand.New(rand.NewPCG(seed, 3))), WithoutTrace())
				if err != nil {
					t.Fatal(err)
				}
				diff(t, want, shapes(m2))
			}
		})
	}
}

func TestCoverage(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 1))
	m, err := Build(polygonGrid(r, 8), canvas, WithRand(r))
	if err != nil {
		t.Fatal(err)
	}
	box := m.Box()
	live := m.Trapezoids()
	for range 2000 {
		q := Pt(box.X0+r.Float64()*box.Width(), box.Y0+r.Float64()*box.Height())
		tr, ok := m.LocateTrapezoid(q)
		if !ok {
			continue
		}
		if !tr.Contains(q) {
			t.Errorf("%v located in %v, which doesn't contain it", q, tr)
		}
		n := 0
		for _, o := range live {
			if o.Contains(q) {
				n++
			}
		}
		if n != 1 {
			t.Errorf("%v is contained in %d trapezoids", q, n)
		}
	}
}

func TestConcurrentLocate(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 3))
	m, err := Build(polygonGrid(r, 6), canvas, WithRand(r))
	if err != nil {
		t.Fatal(err)
	}
	box := m.Box()
	queries := make([]Point, 500)
	want := make([]*Node, len(queries))
	for i := range queries {
		queries[i] = Pt(box.X0+r.Float64()*box.Width(), box.Y0+r.Float64()*box.Height())
		want[i] = m.Locate(queries[i])
	}

	const workers = 8
	errs := make([]int, workers)
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, q := range queries {
				if m.Locate(q) != want[i] {
					errs[w]++
				}
				tr, ok := m.LocateTrapezoid(q)
				if ok != (want[i].Kind == TrapezoidNode) || ok && tr.ID != want[i].Trapezoid {
					errs[w]++
				}
			}
		}()
	}
	wg.Wait()
	for w, n := range errs {
		if n != 0 {
			t.Errorf("worker %d: %d queries disagree with the serial result", w, n)
		}
	}
}

func TestInputErrors(t *testing.T) {
	if _, err := NewSession(Sz(0, 600)); !errors.Is(err, ErrEmptyViewport) {
		t.Errorf("got %v, want %v", err, ErrEmptyViewport)
	}
	if _, err := NewSession(canvas, WithMargin(-1)); err == nil {
		t.Error("expected an error for a negative margin")
	}
	if _, err := Build([]LabeledPoint{LP(1, 1, "A")}, canvas); !errors.Is(err, ErrOddPointCount) {
		t.Errorf("got %v, want %v", err, ErrOddPointCount)
	}

	tests := []struct {
		name string
		a, b LabeledPoint
		want error
	}{
		{"outside", LP(100, 100, "A"), LP(900, 100, "B"), ErrOutOfBounds},
		{"negative", LP(-1, 100, "A"), LP(100, 100, "B"), ErrOutOfBounds},
		{"vertical", LP(100, 100, "A"), LP(100, 200, "B"), ErrDegenerateSegment},
		{"point", LP(100, 100, "A"), LP(100, 100, "B"), ErrDegenerateSegment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSession(canvas)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := s.Insert(tt.a, tt.b); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if n := s.Map().NumTrapezoids(); n != 1 {
				t.Errorf("rejected segment changed the map, got %d trapezoids", n)
			}
			if _, err := Build([]LabeledPoint{LP(10, 10, "X"), LP(20, 20, "Y"), tt.a, tt.b}, canvas); !errors.Is(err, tt.want) {
				t.Errorf("Build: got %v, want %v", err, tt.want)
			}
		})
	}

	s, err := NewSession(canvas)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Insert(LP(100, 100, "A"), LP(200, 200, "B")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Insert(LP(200, 200, "B"), LP(100, 100, "A")); !errors.Is(err, ErrDuplicateSegment) {
		t.Errorf("got %v, want %v", err, ErrDuplicateSegment)
	}

	bad := WithPermutation(func(n int) []int { return make([]int, n) })
	points := []LabeledPoint{LP(100, 100, "A"), LP(200, 200, "B"), LP(300, 100, "C"), LP(400, 200, "D")}
	if _, err := Build(points, canvas, bad); !errors.Is(err, ErrBadPermutation) {
		t.Errorf("got %v, want %v", err, ErrBadPermutation)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	points := []LabeledPoint{LP(100, 100, "A"), LP(700, 500, "B")}
	m1, err := Build(points, canvas)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := Build(points, canvas)
	if err != nil {
		t.Fatal(err)
	}
	// IDs start over for every construction.
	diff(t, m1.Snapshot(), m2.Snapshot())
	if m1.Segments()[0].Left == m2.Segments()[0].Left {
		t.Error("vertices are shared between maps")
	}
}
