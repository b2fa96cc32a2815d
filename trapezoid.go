package trapmap

import (
	"fmt"
	"strconv"
)

// A Vertex is a segment endpoint or a corner of the bounding box.
//
// ExtensionTop and ExtensionBottom are the segments hit by the vertical rays shot
// upwards and downwards from the vertex. They are set once the vertex has been inserted
// as part of a segment, and change when a later segment cuts one of the rays. A vertex
// does not own these segments.
type Vertex struct {
	Point
	Label string

	ExtensionTop    *Segment
	ExtensionBottom *Segment

	corner bool
}

// IsCorner reports whether v is a corner of the bounding box.
func (v *Vertex) IsCorner() bool { return v.corner }

func (v *Vertex) String() string {
	if v.Label != "" {
		return v.Label + v.Point.String()
	}
	return v.Point.String()
}

// A Segment is a non-vertical line segment with Left.X < Right.X. The edges of the
// bounding box are segments, too.
type Segment struct {
	Left  *Vertex
	Right *Vertex
	Label string
}

func (s *Segment) String() string {
	return fmt.Sprintf("%s[%v %v]", s.Label, s.Left, s.Right)
}

func (s *Segment) Line() Line {
	return Line{P0: s.Left.Point, P1: s.Right.Point}
}

// YAt evaluates the segment's supporting line at x.
func (s *Segment) YAt(x float64) float64 {
	return s.Line().YAt(x)
}

// HasEndpoint reports whether v is one of the segment's endpoints.
func (s *Segment) HasEndpoint(v *Vertex) bool {
	return s.Left == v || s.Right == v
}

// Orient classifies p against the segment directed from left to right. [Left] means
// above.
func (s *Segment) Orient(p Point) Orientation {
	return Orient(s.Left.Point, s.Right.Point, p)
}

// TrapID identifies a trapezoid within one [Map]. IDs are assigned in creation order,
// starting at zero for the bounding box.
type TrapID int32

// NoTrapezoid is the zero value of neighbor slots that have no neighbor.
const NoTrapezoid TrapID = -1

func (id TrapID) String() string {
	if id == NoTrapezoid {
		return "none"
	}
	return "T" + strconv.Itoa(int(id))
}

// A Trapezoid is a cell of the trapezoidal map. It is bounded by Top and Bottom and by
// the vertical lines through LeftP and RightP.
//
// Two trapezoids that share a vertical boundary are neighbors. The left one refers to
// the right one through UpperRight if both have the same top segment and through
// LowerRight otherwise, and the right one refers back through UpperLeft or LowerLeft,
// respectively.
type Trapezoid struct {
	ID TrapID

	Top    *Segment
	Bottom *Segment
	LeftP  *Vertex
	RightP *Vertex

	UpperLeft  TrapID
	LowerLeft  TrapID
	UpperRight TrapID
	LowerRight TrapID

	// Leaf is the trapezoid's node in the search structure. Once the trapezoid has been
	// retired, the node has been turned into an internal node.
	Leaf *Node

	// Retired is set once the trapezoid has been replaced. Retired trapezoids are never
	// modified again.
	Retired bool
}

func (t *Trapezoid) Label() string {
	return t.ID.String()
}

func (t *Trapezoid) String() string {
	return fmt.Sprintf("%s{top: %s, bottom: %s, left: %v, right: %v}",
		t.Label(), t.Top.Label, t.Bottom.Label, t.LeftP, t.RightP)
}

// Corners returns the trapezoid's corners in the order top left, top right, bottom
// right, bottom left.
func (t *Trapezoid) Corners() [4]Point {
	x0, x1 := t.LeftP.X, t.RightP.X
	return [4]Point{
		{x0, t.Top.YAt(x0)},
		{x1, t.Top.YAt(x1)},
		{x1, t.Bottom.YAt(x1)},
		{x0, t.Bottom.YAt(x0)},
	}
}

// Area returns the trapezoid's area.
func (t *Trapezoid) Area() float64 {
	c := t.Corners()
	left := c[0].Y - c[3].Y
	right := c[1].Y - c[2].Y
	return 0.5 * (left + right) * (c[1].X - c[0].X)
}

// Centroid returns a point in the interior of the trapezoid: the middle of the vertical
// line halfway between the left and right sides.
func (t *Trapezoid) Centroid() Point {
	x := 0.5 * (t.LeftP.X + t.RightP.X)
	return Point{X: x, Y: 0.5 * (t.Top.YAt(x) + t.Bottom.YAt(x))}
}

// Contains reports whether p lies strictly inside the trapezoid.
func (t *Trapezoid) Contains(p Point) bool {
	if p.X <= t.LeftP.X || p.X >= t.RightP.X {
		return false
	}
	return t.Top.Orient(p) == Right && t.Bottom.Orient(p) == Left
}

// Neighbors returns the four neighbor slots in the order upper left, lower left, upper
// right, lower right.
func (t *Trapezoid) Neighbors() [4]TrapID {
	return [4]TrapID{t.UpperLeft, t.LowerLeft, t.UpperRight, t.LowerRight}
}

// degenerateLeft reports whether the left side has zero height, i.e. whether top and
// bottom meet in LeftP.
func (t *Trapezoid) degenerateLeft() bool {
	return t.Top.Left == t.LeftP && t.Bottom.Left == t.LeftP
}

func (t *Trapezoid) degenerateRight() bool {
	return t.Top.Right == t.RightP && t.Bottom.Right == t.RightP
}
