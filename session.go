package trapmap

import (
	"log/slog"
	"math/rand/v2"
	"strconv"

	"github.com/pkg/errors"
)

var (
	ErrOddPointCount     = errors.New("trapmap: odd number of points")
	ErrEmptyViewport     = errors.New("trapmap: viewport has no area")
	ErrOutOfBounds       = errors.New("trapmap: point outside of viewport")
	ErrDegenerateSegment = errors.New("trapmap: segment is vertical or has zero length")
	ErrDuplicateSegment  = errors.New("trapmap: segment inserted twice")
	ErrBadPermutation    = errors.New("trapmap: not a permutation")
)

// A Session builds one [Map] by inserting segments one at a time. It holds all state of
// the construction: the trapezoid arena, the ID counters and the endpoints inserted so
// far. Nothing is shared between sessions.
//
// A Session is not safe for concurrent use.
type Session struct {
	m    *Map
	opts options

	nextTrap TrapID
	nextNode int
	step     int

	// vertices maps coordinates to vertices, so that segments sharing an endpoint share
	// the *Vertex.
	vertices map[Point]*Vertex
	// placed holds the endpoints of inserted segments.
	placed   map[*Vertex]struct{}
	inserted map[[2]*Vertex]struct{}
}

// NewSession starts a construction for points lying in the rectangle from (0, 0) to
// (viewport.Width, viewport.Height). The map starts out as a single trapezoid covering
// the bounding box.
func NewSession(viewport Size, opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if viewport.IsEmpty() {
		return nil, errors.Wrapf(ErrEmptyViewport, "viewport %v", viewport)
	}
	if o.margin == 0 {
		o.margin = max(1, 0.05*viewport.MaxSide())
	}
	if !(o.margin > 0) {
		return nil, errors.Errorf("trapmap: margin must be positive, got %g", o.margin)
	}
	if o.probe < 0 {
		return nil, errors.Errorf("trapmap: probe distance must be positive, got %g", o.probe)
	}

	vp := NewRectFromOrigin(Pt(0, 0), viewport)
	box := vp.Inflate(o.margin, o.margin)
	if o.probe == 0 {
		o.probe = 2.5e-4 * box.Size().MaxSide()
	}

	s := &Session{
		m: &Map{
			viewport: vp,
			box:      box,
		},
		opts:     o,
		vertices: make(map[Point]*Vertex),
		placed:   make(map[*Vertex]struct{}),
		inserted: make(map[[2]*Vertex]struct{}),
	}

	corner := func(x, y float64) *Vertex {
		return &Vertex{Point: Pt(x, y), corner: true}
	}
	bl, br := corner(box.X0, box.Y0), corner(box.X1, box.Y0)
	tl, tr := corner(box.X0, box.Y1), corner(box.X1, box.Y1)
	s.m.top = &Segment{Left: tl, Right: tr, Label: "top"}
	s.m.bottom = &Segment{Left: bl, Right: br, Label: "bottom"}

	t := s.newTrapezoid(s.m.top, s.m.bottom, bl, br)
	s.m.root = t.Leaf
	s.emit(Event{
		Kind:    EventBoundingBoxCreated,
		Created: []TrapezoidInfo{trapezoidInfo(t)},
		DAG:     s.snapshot(),
	})
	Logger().Info("trapmap: session started", slog.String("viewport", viewport.String()), slog.String("box", box.String()))
	return s, nil
}

// Map returns the map built so far. The map must not be used concurrently with further
// insertions.
func (s *Session) Map() *Map {
	return s.m
}

// Insert inserts the segment between a and b. The segment must not cross or overlap any
// segment inserted before, and no two distinct endpoints may share an x coordinate.
// These preconditions are not checked; violating them leads to undefined behavior,
// including panics.
//
// Points with equal coordinates are the same endpoint; the label of the first one wins.
func (s *Session) Insert(a, b LabeledPoint) (*Segment, error) {
	return s.insertLabeled(a, b, "s"+strconv.Itoa(len(s.m.segments)+1))
}

func (s *Session) insertLabeled(a, b LabeledPoint, label string) (*Segment, error) {
	if err := s.validate(a, b); err != nil {
		return nil, err
	}
	if b.X < a.X {
		a, b = b, a
	}
	seg := &Segment{Left: s.vertex(a), Right: s.vertex(b), Label: label}
	key := [2]*Vertex{seg.Left, seg.Right}
	if _, ok := s.inserted[key]; ok {
		return nil, errors.Wrapf(ErrDuplicateSegment, "%v", seg)
	}
	s.inserted[key] = struct{}{}
	s.insert(seg)
	return seg, nil
}

func (s *Session) validate(a, b LabeledPoint) error {
	for _, p := range [2]LabeledPoint{a, b} {
		if p.IsNaN() || !s.m.viewport.Contains(p.Point) {
			return errors.Wrapf(ErrOutOfBounds, "%s%v not in %v", p.Label, p.Point, s.m.viewport)
		}
	}
	if a.X == b.X {
		return errors.Wrapf(ErrDegenerateSegment, "%s%v–%s%v", a.Label, a.Point, b.Label, b.Point)
	}
	return nil
}

func (s *Session) vertex(p LabeledPoint) *Vertex {
	if v, ok := s.vertices[p.Point]; ok {
		return v
	}
	v := &Vertex{Point: p.Point, Label: p.Label}
	s.vertices[p.Point] = v
	return v
}

func (s *Session) newNode(n Node) *Node {
	n.id = s.nextNode
	s.nextNode++
	return &n
}

func (s *Session) newTrapezoid(top, bottom *Segment, leftp, rightp *Vertex) *Trapezoid {
	t := &Trapezoid{
		ID:         s.nextTrap,
		Top:        top,
		Bottom:     bottom,
		LeftP:      leftp,
		RightP:     rightp,
		UpperLeft:  NoTrapezoid,
		LowerLeft:  NoTrapezoid,
		UpperRight: NoTrapezoid,
		LowerRight: NoTrapezoid,
	}
	s.nextTrap++
	t.Leaf = s.newNode(Node{Kind: TrapezoidNode, Trapezoid: t.ID})
	s.m.traps = append(s.m.traps, t)
	s.m.live++
	return t
}

func (s *Session) retire(t *Trapezoid) {
	invariant(!t.Retired, "%v retired twice", t)
	t.Retired = true
	s.m.live--
}

func (s *Session) emit(ev Event) {
	if !s.opts.trace {
		return
	}
	ev.Step = s.step
	s.m.trace = append(s.m.trace, ev)
}

func (s *Session) snapshot() *DAGSnapshot {
	if !s.opts.trace {
		return nil
	}
	return Snapshot(s.m.root)
}

func (s *Session) isPlaced(v *Vertex) bool {
	_, ok := s.placed[v]
	return ok
}

// Build constructs the trapezoidal map of the segments formed by consecutive pairs of
// points: points[0] and points[1] form the first segment, points[2] and points[3] the
// second, and so on. The segments are inserted in random order, see [WithRand] and
// [WithPermutation]. The segments are labeled s1, s2, … in input order.
//
// All segments are validated before any is inserted. The non-crossing and general
// position preconditions of [Session.Insert] apply.
func Build(points []LabeledPoint, viewport Size, opts ...Option) (*Map, error) {
	if len(points)%2 != 0 {
		return nil, errors.Wrapf(ErrOddPointCount, "got %d points", len(points))
	}
	s, err := NewSession(viewport, opts...)
	if err != nil {
		return nil, err
	}
	n := len(points) / 2
	for i := range n {
		if err := s.validate(points[2*i], points[2*i+1]); err != nil {
			return nil, errors.Wrapf(err, "segment %d", i+1)
		}
	}
	order, err := s.permutation(n)
	if err != nil {
		return nil, err
	}
	for _, i := range order {
		if _, err := s.insertLabeled(points[2*i], points[2*i+1], "s"+strconv.Itoa(i+1)); err != nil {
			return nil, errors.Wrapf(err, "segment %d", i+1)
		}
	}
	Logger().Info("trapmap: map built",
		slog.Int("segments", n),
		slog.Int("trapezoids", s.m.live),
		slog.Int("depth", s.m.Depth()))
	return s.m, nil
}

func (s *Session) permutation(n int) ([]int, error) {
	if s.opts.permutation == nil {
		if s.opts.rng != nil {
			return s.opts.rng.Perm(n), nil
		}
		return rand.Perm(n), nil
	}
	order := s.opts.permutation(n)
	if len(order) != n {
		return nil, errors.Wrapf(ErrBadPermutation, "got %d indices for %d segments", len(order), n)
	}
	seen := make([]bool, n)
	for _, i := range order {
		if i < 0 || i >= n || seen[i] {
			return nil, errors.Wrapf(ErrBadPermutation, "%v", order)
		}
		seen[i] = true
	}
	return order, nil
}
