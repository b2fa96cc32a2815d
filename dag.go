package trapmap

import "fmt"

// NodeKind distinguishes the variants of [Node].
type NodeKind uint8

const (
	// TrapezoidNode is a leaf referring to a live trapezoid.
	TrapezoidNode NodeKind = iota
	// SegmentNode branches on the side of its segment a query point lies on. Left leads
	// above the segment, Right below it.
	SegmentNode
	// VertexNode branches on the x coordinate of its vertex. Left leads to smaller x,
	// Right to larger x.
	VertexNode
)

func (k NodeKind) String() string {
	switch k {
	case TrapezoidNode:
		return "trapezoid"
	case SegmentNode:
		return "segment"
	case VertexNode:
		return "vertex"
	default:
		return fmt.Sprintf("NodeKind(%d)", k)
	}
}

// A Node is a node of the search structure, a directed acyclic graph whose leaves are
// the trapezoids of the map. Only the fields belonging to Kind are set. Internal nodes
// may be shared by several parents.
//
// When a trapezoid is replaced, its leaf is turned into an internal node in place, so
// that every parent of the leaf sees the new subtree.
type Node struct {
	Kind      NodeKind
	Trapezoid TrapID
	Segment   *Segment
	Vertex    *Vertex
	Left      *Node
	Right     *Node

	id int
}

// ID returns the node's identifier, unique within its map. It stays the same when a
// leaf is turned into an internal node.
func (n *Node) ID() int { return n.id }

// Label returns a short human readable name for the node: the trapezoid's label, the
// segment's label or the vertex's label.
func (n *Node) Label() string {
	switch n.Kind {
	case TrapezoidNode:
		return n.Trapezoid.String()
	case SegmentNode:
		return n.Segment.Label
	case VertexNode:
		if n.Vertex.Label == "" {
			return n.Vertex.Point.String()
		}
		return n.Vertex.Label
	default:
		return "?"
	}
}

func (n *Node) String() string {
	return n.Kind.String() + " " + n.Label()
}

// become turns n into a copy of o while keeping n's identity.
func (n *Node) become(o *Node) {
	n.Kind = o.Kind
	n.Trapezoid = o.Trapezoid
	n.Segment = o.Segment
	n.Vertex = o.Vertex
	n.Left = o.Left
	n.Right = o.Right
}

// next returns the child to descend into for q, or nil if q lies on the node's vertical
// line or on its segment.
func (n *Node) next(q Point) *Node {
	switch n.Kind {
	case VertexNode:
		switch {
		case q.X < n.Vertex.X:
			return n.Left
		case q.X > n.Vertex.X:
			return n.Right
		default:
			return nil
		}
	case SegmentNode:
		switch n.Segment.Orient(q) {
		case Left:
			return n.Left
		case Right:
			return n.Right
		default:
			return nil
		}
	default:
		panic(fmt.Sprintf("trapmap: internal error: next called on %v", n))
	}
}

// Locate descends the search structure rooted at root and returns the leaf whose
// trapezoid contains q.
//
// If q lies on the vertical line through a vertex or on a segment that the descent has
// to decide on, Locate stops and returns that internal node instead. This happens for
// queries that hit existing vertices, segments, or the boundaries between trapezoids
// exactly. It is up to the caller to handle these.
func Locate(root *Node, q Point) *Node {
	n := root
	for n.Kind != TrapezoidNode {
		c := n.next(q)
		if c == nil {
			return n
		}
		n = c
	}
	return n
}

// locateRecursive is the textbook formulation of Locate. The depth of the search
// structure is only logarithmic in expectation, so Locate uses a loop instead.
func locateRecursive(n *Node, q Point) *Node {
	if n.Kind == TrapezoidNode {
		return n
	}
	c := n.next(q)
	if c == nil {
		return n
	}
	return locateRecursive(c, q)
}

// locateSegmentStart finds the leaf of the first trapezoid that s passes through. It
// behaves like locating a point an infinitesimal distance along s from its left
// endpoint, which lets it resolve ties exactly: on a vertex's vertical line it goes
// right, and at a segment that shares the left endpoint it compares the slopes by
// looking at s's right endpoint.
func locateSegmentStart(root *Node, s *Segment) *Node {
	q := s.Left.Point
	n := root
	for n.Kind != TrapezoidNode {
		switch n.Kind {
		case VertexNode:
			if q.X < n.Vertex.X {
				n = n.Left
			} else {
				n = n.Right
			}
		case SegmentNode:
			o := n.Segment.Orient(q)
			if o == Collinear {
				o = n.Segment.Orient(s.Right.Point)
			}
			switch o {
			case Left:
				n = n.Left
			case Right:
				n = n.Right
			default:
				panic(fmt.Sprintf("trapmap: %v overlaps %v", s, n.Segment))
			}
		}
	}
	return n
}

// walk calls fn for every node reachable from root exactly once, in depth-first order
// visiting left children before right children. It stops early if fn returns false.
func walk(root *Node, fn func(*Node) bool) {
	seen := make(map[*Node]struct{})
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		if !fn(n) {
			return
		}
		if n.Kind != TrapezoidNode {
			stack = append(stack, n.Right, n.Left)
		}
	}
}

// depth returns the number of nodes on the longest path from root to a leaf.
func depth(root *Node) int {
	memo := make(map[*Node]int)
	var rec func(n *Node) int
	rec = func(n *Node) int {
		if n.Kind == TrapezoidNode {
			return 1
		}
		if d, ok := memo[n]; ok {
			return d
		}
		d := 1 + max(rec(n.Left), rec(n.Right))
		memo[n] = d
		return d
	}
	return rec(root)
}
