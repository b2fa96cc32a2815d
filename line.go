package trapmap

import "fmt"

// Line represents a line segment from P0 to P1. Where a method speaks of the line, it
// means the infinite line through both points.
type Line struct {
	P0 Point
	P1 Point
}

func (l Line) String() string {
	return fmt.Sprintf("%v–%v", l.P0, l.P1)
}

func (l Line) Midpoint() Point {
	return l.P0.Midpoint(l.P1)
}

func (l Line) BoundingBox() Rect {
	return NewRectFromPoints(l.P0, l.P1)
}

// Implicit returns the coefficients of the line's implicit equation a·x + b·y + c = 0,
// with a = y1−y0, b = x0−x1 and c = x1·y0 − x0·y1.
func (l Line) Implicit() (a, b, c float64) {
	a = l.P1.Y - l.P0.Y
	b = l.P0.X - l.P1.X
	c = l.P1.X*l.P0.Y - l.P0.X*l.P1.Y
	return a, b, c
}

// YAt evaluates the line's y coordinate at x. The endpoints are returned exactly.
// The result is undefined for vertical lines.
func (l Line) YAt(x float64) float64 {
	switch x {
	case l.P0.X:
		return l.P0.Y
	case l.P1.X:
		return l.P1.Y
	}
	t := (x - l.P0.X) / (l.P1.X - l.P0.X)
	return l.P0.Y + t*(l.P1.Y-l.P0.Y)
}

// IntersectionKind classifies the result of [Line.Intersect].
type IntersectionKind uint8

const (
	// Intersects means the lines cross in exactly one point.
	Intersects IntersectionKind = iota
	// Parallel means the lines never meet.
	Parallel
	// Coincident means the lines are the same line.
	Coincident
)

func (k IntersectionKind) String() string {
	switch k {
	case Intersects:
		return "intersects"
	case Parallel:
		return "parallel"
	case Coincident:
		return "coincident"
	default:
		return fmt.Sprintf("IntersectionKind(%d)", k)
	}
}

// Intersection is the result of intersecting two lines. Point is only meaningful if Kind
// is [Intersects].
type Intersection struct {
	Kind  IntersectionKind
	Point Point
}

// Intersect intersects the infinite lines through l and o by solving the 2×2 system of
// their implicit equations. A zero determinant is reported as [Coincident] when the two
// equations are proportional and as [Parallel] otherwise. Lines of zero length have no
// direction and are reported as parallel to everything.
//
// No tolerance is applied; nearly parallel lines produce far away intersection points.
func (l Line) Intersect(o Line) Intersection {
	a1, b1, c1 := l.Implicit()
	a2, b2, c2 := o.Implicit()
	if (a1 == 0 && b1 == 0) || (a2 == 0 && b2 == 0) {
		return Intersection{Kind: Parallel}
	}
	det := a1*b2 - a2*b1
	if det == 0 {
		if a1*c2 == a2*c1 && b1*c2 == b2*c1 {
			return Intersection{Kind: Coincident}
		}
		return Intersection{Kind: Parallel}
	}
	return Intersection{
		Kind: Intersects,
		Point: Point{
			X: (b1*c2 - b2*c1) / det,
			Y: (a2*c1 - a1*c2) / det,
		},
	}
}
