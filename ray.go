package trapmap

import (
	"math"

	"github.com/golang/geo/s1"
)

// Ray is a half-line starting at Origin and extending in direction Dir, such as an
// unbounded half-edge of a Voronoi diagram.
type Ray struct {
	Origin Point
	Dir    Vec2
}

// At returns the point at parameter t ≥ 0 along the ray.
func (r Ray) At(t float64) Point {
	return r.Origin.Translate(r.Dir.Mul(t))
}

// IntersectRays returns the point where r1 and r2 meet. The rays are ordered: r2 has to
// turn anti-clockwise from r1 by an angle in (0, π). Rays that are parallel,
// anti-parallel, turn clockwise or diverge from each other yield false.
func IntersectRays(r1, r2 Ray) (Point, bool) {
	det := r1.Dir.Cross(r2.Dir)
	if det <= 0 {
		return Point{}, false
	}
	angle := s1.Angle(math.Atan2(det, r1.Dir.Dot(r2.Dir)))
	if angle <= 0 || angle >= s1.Angle(math.Pi) {
		return Point{}, false
	}
	d := r2.Origin.Sub(r1.Origin)
	t := d.Cross(r2.Dir) / det
	u := d.Cross(r1.Dir) / det
	if t < 0 || u < 0 {
		return Point{}, false
	}
	return r1.At(t), true
}
