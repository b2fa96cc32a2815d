package trapmap

import (
	"math"

	"github.com/pkg/errors"
)

// Check verifies the map's invariants from scratch and returns an error describing the
// first violation it finds. It checks that
//
//   - the leaves reachable from the root are exactly the live trapezoids, each leaf
//     referring to the trapezoid whose Leaf it is;
//   - internal nodes have two children;
//   - every trapezoid has positive width and area, and its vertices lie within the x
//     range of its top and bottom segments;
//   - neighbor slots refer to live trapezoids, are symmetric, and follow the slot
//     convention described at [Trapezoid];
//   - every side of positive length away from the bounding box has a neighbor;
//   - the areas of all trapezoids add up to the area of the bounding box;
//   - the center of every trapezoid is located in that trapezoid.
//
// Check is linear in the size of the map.
func (m *Map) Check() error {
	leaves := 0
	var err error
	walk(m.root, func(n *Node) bool {
		switch n.Kind {
		case TrapezoidNode:
			leaves++
			t := m.Trapezoid(n.Trapezoid)
			switch {
			case t == nil:
				err = errors.Errorf("leaf %d refers to unknown trapezoid %v", n.id, n.Trapezoid)
			case t.Retired:
				err = errors.Errorf("leaf %d refers to retired %v", n.id, t)
			case t.Leaf != n:
				err = errors.Errorf("leaf %d refers to %v, whose leaf is %d", n.id, t, t.Leaf.id)
			}
		case SegmentNode, VertexNode:
			if n.Left == nil || n.Right == nil {
				err = errors.Errorf("internal node %v is missing a child", n)
			} else if (n.Kind == SegmentNode) != (n.Segment != nil) || (n.Kind == VertexNode) != (n.Vertex != nil) {
				err = errors.Errorf("node %d of kind %v has the wrong payload", n.id, n.Kind)
			}
		default:
			err = errors.Errorf("node %d has unknown kind %v", n.id, n.Kind)
		}
		return err == nil
	})
	if err != nil {
		return err
	}
	if leaves != m.live {
		return errors.Errorf("%d leaves reachable for %d live trapezoids", leaves, m.live)
	}

	area := 0.0
	live := 0
	for _, t := range m.traps {
		if t.Retired {
			continue
		}
		live++
		if t.Leaf == nil || t.Leaf.Kind != TrapezoidNode || t.Leaf.Trapezoid != t.ID {
			return errors.Errorf("%v does not own its leaf", t)
		}
		if err := m.checkShape(t); err != nil {
			return err
		}
		if err := m.checkNeighbors(t); err != nil {
			return err
		}
		area += t.Area()
		n := Locate(m.root, t.Centroid())
		if n.Kind != TrapezoidNode || n.Trapezoid != t.ID {
			return errors.Errorf("center %v of %v locates to %v", t.Centroid(), t, n)
		}
	}
	if live != m.live {
		return errors.Errorf("%d live trapezoids in arena, expected %d", live, m.live)
	}
	if want := m.box.Area(); math.Abs(area-want) > 1e-9*want {
		return errors.Errorf("trapezoids cover an area of %g, bounding box has %g", area, want)
	}
	return nil
}

func (m *Map) checkShape(t *Trapezoid) error {
	if !(t.LeftP.X < t.RightP.X) {
		return errors.Errorf("%v has no width", t)
	}
	for _, s := range [2]*Segment{t.Top, t.Bottom} {
		if t.LeftP.X < s.Left.X || t.RightP.X > s.Right.X {
			return errors.Errorf("%v extends beyond %v", t, s)
		}
	}
	if !(t.Area() > 0) {
		return errors.Errorf("%v has no area", t)
	}
	return nil
}

func (m *Map) checkNeighbors(t *Trapezoid) error {
	type slot struct {
		id    TrapID
		right bool
		upper bool
	}
	slots := [4]slot{
		{t.UpperLeft, false, true},
		{t.LowerLeft, false, false},
		{t.UpperRight, true, true},
		{t.LowerRight, true, false},
	}
	for _, sl := range slots {
		if sl.id == NoTrapezoid {
			continue
		}
		o := m.Trapezoid(sl.id)
		if o == nil || o.Retired {
			return errors.Errorf("%v refers to missing or retired neighbor %v", t, sl.id)
		}
		a, b := o, t
		if sl.right {
			a, b = t, o
		}
		if a.RightP != b.LeftP {
			return errors.Errorf("neighbors %v and %v do not meet at a vertex", a, b)
		}
		var back TrapID
		switch {
		case sl.right && sl.upper:
			back = o.UpperLeft
		case sl.right:
			back = o.LowerLeft
		case sl.upper:
			back = o.UpperRight
		default:
			back = o.LowerRight
		}
		if back != t.ID {
			return errors.Errorf("%v refers to %v, but not the other way around", t, o)
		}
		if sl.upper != (a.Top == b.Top) {
			return errors.Errorf("%v and %v are linked through the wrong slots", a, b)
		}
		if !adjacent(a, b) {
			return errors.Errorf("%v and %v are linked but not adjacent", a, b)
		}
	}
	if !t.degenerateLeft() && !t.LeftP.corner && t.UpperLeft == NoTrapezoid && t.LowerLeft == NoTrapezoid {
		return errors.Errorf("%v has no left neighbor", t)
	}
	if !t.degenerateRight() && !t.RightP.corner && t.UpperRight == NoTrapezoid && t.LowerRight == NoTrapezoid {
		return errors.Errorf("%v has no right neighbor", t)
	}
	return nil
}
