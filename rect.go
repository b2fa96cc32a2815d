package trapmap

import "fmt"

// Rect is an axis-aligned rectangle spanning [X0, X1]×[Y0, Y1]. Constructors normalize
// it so that X0 ≤ X1 and Y0 ≤ Y1.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRectFromPoints returns the smallest rectangle containing p0 and p1.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{
		X0: min(p0.X, p1.X),
		Y0: min(p0.Y, p1.Y),
		X1: max(p0.X, p1.X),
		Y1: max(p0.Y, p1.Y),
	}
}

// NewRectFromOrigin returns the rectangle of the given size whose lower left corner
// is origin.
func NewRectFromOrigin(origin Point, size Size) Rect {
	return NewRectFromPoints(origin, origin.Translate(Vec(size.Width, size.Height)))
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g, %g]×[%g, %g]", r.X0, r.X1, r.Y0, r.Y1)
}

func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }
func (r Rect) Area() float64   { return r.Width() * r.Height() }

func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Contains reports whether pt lies in r or on its boundary.
func (r Rect) Contains(pt Point) bool {
	return r.X0 <= pt.X && pt.X <= r.X1 && r.Y0 <= pt.Y && pt.Y <= r.Y1
}

// Inflate grows r by dx on the left and right and by dy at the top and bottom.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{X0: r.X0 - dx, Y0: r.Y0 - dy, X1: r.X1 + dx, Y1: r.Y1 + dy}
}
