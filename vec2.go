package trapmap

import "fmt"

// Vec2 is a displacement in map space, such as the direction of a [Ray].
type Vec2 struct {
	X float64
	Y float64
}

func Vec(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) String() string {
	return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y)
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of v × o. It is positive when o points to the left of
// v, that is, when turning from v to o is anti-clockwise in y-up space.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Mul scales v by f.
func (v Vec2) Mul(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}
