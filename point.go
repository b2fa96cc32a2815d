package trapmap

import (
	"fmt"
	"math"
)

// Point is a position in map space. Map space is y-up: a point with a larger Y
// lies above a point with a smaller Y.
type Point struct {
	X float64
	Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

// Translate moves pt by v.
func (pt Point) Translate(v Vec2) Point {
	return Point{X: pt.X + v.X, Y: pt.Y + v.Y}
}

// Sub returns the vector from o to pt.
func (pt Point) Sub(o Point) Vec2 {
	return Vec2{X: pt.X - o.X, Y: pt.Y - o.Y}
}

func (pt Point) Midpoint(o Point) Point {
	return Point{X: (pt.X + o.X) / 2, Y: (pt.Y + o.Y) / 2}
}

// IsNaN reports whether either coordinate is NaN. Such points compare unequal to
// everything and cannot be placed in a map.
func (pt Point) IsNaN() bool {
	return math.IsNaN(pt.X) || math.IsNaN(pt.Y)
}
