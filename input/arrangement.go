package input

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dhconnelly/rtreego"
	"github.com/pkg/errors"

	"honnef.co/go/trapmap"
)

// ProblemKind classifies a violation of the input preconditions.
type ProblemKind uint8

const (
	// Crossing means two segments cross in their interiors.
	Crossing ProblemKind = iota + 1
	// Touching means an endpoint of one segment lies in the interior of another.
	Touching
	// Overlap means two segments are collinear and share more than a point.
	Overlap
	// SharedX means two distinct endpoints have the same x coordinate.
	SharedX
	// Degenerate means a segment is vertical or has zero length.
	Degenerate
)

func (k ProblemKind) String() string {
	switch k {
	case Crossing:
		return "crossing"
	case Touching:
		return "touching"
	case Overlap:
		return "overlap"
	case SharedX:
		return "shared x"
	case Degenerate:
		return "degenerate"
	default:
		return fmt.Sprintf("ProblemKind(%d)", k)
	}
}

// A Problem is a single precondition violation. Segments are indices into the list of
// segments, that is, half the index of their first point. For problems involving a
// single segment, both indices are the same.
type Problem struct {
	Kind     ProblemKind
	Segments [2]int
	// Point is where the problem occurs: the crossing point, the touching endpoint, or
	// one of the endpoints sharing an x coordinate.
	Point trapmap.Point
}

func (p Problem) String() string {
	if p.Segments[0] == p.Segments[1] {
		return fmt.Sprintf("%v: s%d at %v", p.Kind, p.Segments[0]+1, p.Point)
	}
	return fmt.Sprintf("%v: s%d and s%d at %v", p.Kind, p.Segments[0]+1, p.Segments[1]+1, p.Point)
}

// ArrangementError lists all problems found by [CheckArrangement].
type ArrangementError struct {
	Problems []Problem
}

func (err *ArrangementError) Error() string {
	const maxShown = 3
	var b strings.Builder
	fmt.Fprintf(&b, "input: %d problems with the arrangement: ", len(err.Problems))
	for i, p := range err.Problems {
		if i == maxShown {
			fmt.Fprintf(&b, "; and %d more", len(err.Problems)-maxShown)
			break
		}
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(p.String())
	}
	return b.String()
}

type spatialSegment struct {
	index int
	line  trapmap.Line
	rect  rtreego.Rect
}

func (s *spatialSegment) Bounds() rtreego.Rect { return s.rect }

// CheckArrangement verifies the preconditions of the trapezoidal map construction:
// segments must not cross, touch or overlap except at shared endpoints, must not be
// vertical, and no two distinct endpoints may share an x coordinate. It returns nil or
// an [*ArrangementError].
//
// Candidate pairs are found with an R-tree over the segments' bounding boxes, so the
// check runs in about O(n log n) for typical inputs.
func CheckArrangement(points []trapmap.LabeledPoint) error {
	if len(points)%2 != 0 {
		return errors.Wrapf(trapmap.ErrOddPointCount, "input: %d points", len(points))
	}
	var problems []Problem

	byX := make(map[float64]trapmap.Point)
	for i, p := range points {
		if q, ok := byX[p.X]; ok && q != p.Point {
			problems = append(problems, Problem{Kind: SharedX, Segments: [2]int{i / 2, i / 2}, Point: p.Point})
			continue
		}
		byX[p.X] = p.Point
	}

	n := len(points) / 2
	segs := make([]*spatialSegment, 0, n)
	tree := rtreego.NewTree(2, 25, 50)
	for i := range n {
		l := trapmap.Line{P0: points[2*i].Point, P1: points[2*i+1].Point}
		if l.P0.X == l.P1.X {
			problems = append(problems, Problem{Kind: Degenerate, Segments: [2]int{i, i}, Point: l.P0})
			continue
		}
		rect, err := bounds(l)
		if err != nil {
			return errors.Wrapf(err, "input: segment s%d", i+1)
		}
		s := &spatialSegment{index: i, line: l, rect: rect}
		segs = append(segs, s)
		tree.Insert(s)
	}

	for _, s := range segs {
		for _, c := range tree.SearchIntersect(s.rect) {
			o := c.(*spatialSegment)
			if o.index <= s.index {
				continue
			}
			if p, ok := classify(s, o); ok {
				problems = append(problems, p)
			}
		}
	}
	if len(problems) == 0 {
		return nil
	}
	sort.SliceStable(problems, func(i, j int) bool {
		a, b := problems[i].Segments, problems[j].Segments
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		return a[1] < b[1]
	})
	return &ArrangementError{Problems: problems}
}

// bounds returns the bounding box of l, padded so that it has positive extent in both
// dimensions, as the R-tree requires.
func bounds(l trapmap.Line) (rtreego.Rect, error) {
	bb := l.BoundingBox()
	pad := 1e-9 * max(1, math.Abs(bb.X0), math.Abs(bb.X1), math.Abs(bb.Y0), math.Abs(bb.Y1))
	return rtreego.NewRect(
		rtreego.Point{bb.X0 - pad, bb.Y0 - pad},
		[]float64{bb.Width() + 2*pad, bb.Height() + 2*pad})
}

// classify reports how s and o conflict, if at all.
func classify(s, o *spatialSegment) (Problem, bool) {
	a, b := s.line.P0, s.line.P1
	c, d := o.line.P0, o.line.P1
	pair := [2]int{s.index, o.index}

	o1 := trapmap.Orient(a, b, c)
	o2 := trapmap.Orient(a, b, d)
	o3 := trapmap.Orient(c, d, a)
	o4 := trapmap.Orient(c, d, b)

	if o1 == trapmap.Collinear && o2 == trapmap.Collinear {
		// Collinear: they overlap if their x ranges share more than a point.
		lo := max(min(a.X, b.X), min(c.X, d.X))
		hi := min(max(a.X, b.X), max(c.X, d.X))
		if lo < hi {
			return Problem{Kind: Overlap, Segments: pair, Point: trapmap.Pt(lo, s.line.YAt(lo))}, true
		}
		return Problem{}, false
	}
	if a == c || a == d || b == c || b == d {
		return Problem{}, false
	}

	if o1*o2 < 0 && o3*o4 < 0 {
		p := s.line.Midpoint()
		if x := s.line.Intersect(o.line); x.Kind == trapmap.Intersects {
			p = x.Point
		}
		return Problem{Kind: Crossing, Segments: pair, Point: p}, true
	}

	// An endpoint lying on the other segment. Segments aren't vertical, so being
	// collinear and strictly inside the x range means being in the interior.
	inside := func(p, q0, q1 trapmap.Point) bool {
		return min(q0.X, q1.X) < p.X && p.X < max(q0.X, q1.X)
	}
	switch {
	case o1 == trapmap.Collinear && inside(c, a, b):
		return Problem{Kind: Touching, Segments: pair, Point: c}, true
	case o2 == trapmap.Collinear && inside(d, a, b):
		return Problem{Kind: Touching, Segments: pair, Point: d}, true
	case o3 == trapmap.Collinear && inside(a, c, d):
		return Problem{Kind: Touching, Segments: pair, Point: a}, true
	case o4 == trapmap.Collinear && inside(b, c, d):
		return Problem{Kind: Touching, Segments: pair, Point: b}, true
	}
	return Problem{}, false
}
