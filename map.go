package trapmap

import "fmt"

// LabeledPoint is an input point together with its display label.
type LabeledPoint struct {
	Point
	Label string
}

// LP returns the labeled point (x, y).
func LP(x, y float64, label string) LabeledPoint {
	return LabeledPoint{Point: Pt(x, y), Label: label}
}

// A Map is a trapezoidal map together with its search structure.
//
// A Map is built by exactly one [Session]. Once the session is done, the map does not
// change anymore and may be queried from multiple goroutines concurrently.
type Map struct {
	viewport Rect
	box      Rect
	top      *Segment
	bottom   *Segment
	root     *Node

	// traps is the trapezoid arena, indexed by TrapID. Retired trapezoids stay in the
	// arena.
	traps    []*Trapezoid
	live     int
	segments []*Segment
	trace    []Event
}

// Viewport returns the rectangle input points have to lie in.
func (m *Map) Viewport() Rect { return m.viewport }

// Box returns the bounding box, which is strictly larger than the viewport.
func (m *Map) Box() Rect { return m.box }

// Root returns the root of the search structure.
func (m *Map) Root() *Node { return m.root }

// Segments returns the inserted segments in insertion order.
func (m *Map) Segments() []*Segment { return m.segments }

// Trace returns the recorded events. It is empty if tracing was disabled.
func (m *Map) Trace() []Event { return m.trace }

// NumTrapezoids returns the number of live trapezoids.
func (m *Map) NumTrapezoids() int { return m.live }

// Trapezoid returns the trapezoid with the given ID, which may be retired, or nil if
// there is none.
func (m *Map) Trapezoid(id TrapID) *Trapezoid {
	if id < 0 || int(id) >= len(m.traps) {
		return nil
	}
	return m.traps[id]
}

// Trapezoids returns the live trapezoids ordered by ID.
func (m *Map) Trapezoids() []*Trapezoid {
	out := make([]*Trapezoid, 0, m.live)
	for _, t := range m.traps {
		if !t.Retired {
			out = append(out, t)
		}
	}
	return out
}

// Locate returns the search structure node for q, see [Locate].
func (m *Map) Locate(q Point) *Node {
	return Locate(m.root, q)
}

// LocateTrapezoid returns the trapezoid containing q. It returns false if q lies on a
// segment or on the vertical line through a vertex that the search had to decide on.
func (m *Map) LocateTrapezoid(q Point) (*Trapezoid, bool) {
	n := Locate(m.root, q)
	if n.Kind != TrapezoidNode {
		return nil, false
	}
	return m.trap(n.Trapezoid), true
}

// Depth returns the number of nodes on the longest path through the search structure.
func (m *Map) Depth() int {
	return depth(m.root)
}

// Snapshot returns a serializable copy of the current search structure.
func (m *Map) Snapshot() *DAGSnapshot {
	return Snapshot(m.root)
}

func (m *Map) trap(id TrapID) *Trapezoid {
	invariant(id >= 0 && int(id) < len(m.traps), "no trapezoid %v", id)
	return m.traps[id]
}

// neighbor returns the trapezoid in a neighbor slot, or nil.
func (m *Map) neighbor(id TrapID) *Trapezoid {
	if id == NoTrapezoid {
		return nil
	}
	return m.trap(id)
}

// connect records that a and b share a vertical boundary, a on the left. They are
// linked through their upper slots if they have the same top segment and through their
// lower slots otherwise. This is the only place that links trapezoids.
func connect(a, b *Trapezoid) {
	invariant(a.RightP == b.LeftP, "connecting %v and %v across different vertices", a, b)
	if a.Top == b.Top {
		a.UpperRight = b.ID
		b.UpperLeft = a.ID
	} else {
		invariant(a.Bottom == b.Bottom, "connecting %v and %v, which share neither top nor bottom", a, b)
		a.LowerRight = b.ID
		b.LowerLeft = a.ID
	}
}

// adjacent reports whether a and b, a on the left, share a vertical boundary of
// positive length.
func adjacent(a, b *Trapezoid) bool {
	if a.RightP != b.LeftP || a.degenerateRight() || b.degenerateLeft() {
		return false
	}
	return a.Top == b.Top || a.Bottom == b.Bottom
}

func invariant(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("trapmap: internal error: "+format, args...))
	}
}
