package trapmap

import (
	"math"
	"math/rand/v2"
	"slices"
)

var canvas = Sz(800, 600)

// distinctXs returns n x coordinates in the canvas that are pairwise distinct.
func distinctXs(r *rand.Rand, n int) []float64 {
	perm := r.Perm(780)
	out := make([]float64, n)
	for i := range out {
		out[i] = 10 + float64(perm[i]) + 0.5*r.Float64()
	}
	return out
}

// stripSegments returns n disjoint segments, each in its own horizontal strip of the
// canvas. Every segment's walk passes vertices of other strips on both sides.
func stripSegments(r *rand.Rand, n int) []LabeledPoint {
	xs := distinctXs(r, 2*n)
	h := canvas.Height / float64(n)
	out := make([]LabeledPoint, 0, 2*n)
	for i := range n {
		y0 := float64(i) * h
		y := func() float64 { return y0 + h*(0.1+0.8*r.Float64()) }
		out = append(out,
			LabeledPoint{Point: Pt(xs[2*i], y())},
			LabeledPoint{Point: Pt(xs[2*i+1], y())})
	}
	return out
}

// starPolygon returns the edges of a random simple polygon with n ≥ 5 vertices that is
// star-shaped around center. Consecutive edges share their endpoints, and vertices
// occur with both edges to the left, both to the right, and one on each side.
func starPolygon(r *rand.Rand, center Point, radius float64, n int) []LabeledPoint {
	pts := make([]Point, n)
	for i := range pts {
		a := 2 * math.Pi * (float64(i) + 0.8*r.Float64()) / float64(n)
		d := radius * (0.4 + 0.6*r.Float64())
		pts[i] = Pt(center.X+d*math.Cos(a), center.Y+d*math.Sin(a))
	}
	out := make([]LabeledPoint, 0, 2*n)
	for i := range pts {
		out = append(out, LabeledPoint{Point: pts[i]}, LabeledPoint{Point: pts[(i+1)%n]})
	}
	return out
}

// polygonGrid places one star polygon in each cell of a 3×2 grid over the canvas.
func polygonGrid(r *rand.Rand, n int) []LabeledPoint {
	var out []LabeledPoint
	for i := range 3 {
		for j := range 2 {
			c := Pt(800.0/6*float64(2*i+1), 600.0/4*float64(2*j+1))
			out = append(out, starPolygon(r, c, 120, n)...)
		}
	}
	return out
}

// shapes returns the corners of all live trapezoids in a canonical order.
func shapes(m *Map) [][4]Point {
	var out [][4]Point
	for _, t := range m.Trapezoids() {
		out = append(out, t.Corners())
	}
	slices.SortFunc(out, func(a, b [4]Point) int {
		for i := range a {
			if c := cmpPoint(a[i], b[i]); c != 0 {
				return c
			}
		}
		return 0
	})
	return out
}

func cmpPoint(a, b Point) int {
	switch {
	case a.X < b.X:
		return -1
	case a.X > b.X:
		return 1
	case a.Y < b.Y:
		return -1
	case a.Y > b.Y:
		return 1
	default:
		return 0
	}
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}
