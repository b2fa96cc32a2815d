package trapmap

import (
	"fmt"
	"log/slog"
)

// insert adds seg to the map: it finds the trapezoids seg intersects, replaces them
// with new ones, updates the search structure and the endpoints' extensions, and
// records the trace.
func (s *Session) insert(seg *Segment) {
	s.step++
	m := s.m
	leftNew := !s.isPlaced(seg.Left)
	rightNew := !s.isPlaced(seg.Right)

	chain := s.followSegment(seg, leftNew)
	Logger().Debug("trapmap: inserting segment",
		slog.String("segment", seg.String()),
		slog.Int("intersected", len(chain)),
		slog.Bool("leftNew", leftNew),
		slog.Bool("rightNew", rightNew))

	s.emit(Event{Kind: EventSegmentAdded, Segment: segmentInfo(seg)})
	s.emit(Event{Kind: EventTrapezoidsHighlighted, Trapezoids: trapezoidInfos(chain)})

	var created []*Trapezoid
	if len(chain) == 1 && leftNew && rightNew {
		created = s.splitSingle(seg, chain[0])
	} else {
		created = s.splitChain(seg, chain, leftNew, rightNew)
	}
	for _, t := range chain {
		s.retire(t)
	}
	s.placed[seg.Left] = struct{}{}
	s.placed[seg.Right] = struct{}{}
	m.segments = append(m.segments, seg)

	if s.opts.trace {
		s.emit(Event{
			Kind:      EventTrapezoidsReplaced,
			Segment:   segmentInfo(seg),
			Destroyed: trapezoidInfos(chain),
			Created:   trapezoidInfos(created),
			DAG:       s.snapshot(),
		})
		for _, t := range chain {
			leaf := nodeInfo(t.Leaf)
			s.emit(Event{
				Kind:       EventLeafRemoved,
				Trapezoids: []TrapezoidInfo{trapezoidInfo(t)},
				Leaf:       &leaf,
			})
		}
	}
	s.updateExtensions(created)

	if s.opts.check {
		if err := m.Check(); err != nil {
			panic(fmt.Sprintf("trapmap: map inconsistent after inserting %v: %v", seg, err))
		}
	}
}

// followSegment returns the trapezoids seg intersects, ordered from left to right.
func (s *Session) followSegment(seg *Segment, leftNew bool) []*Trapezoid {
	m := s.m
	var t *Trapezoid
	if leftNew {
		n := Locate(m.root, seg.Left.Point)
		invariant(n.Kind == TrapezoidNode, "left endpoint of %v lies on %v", seg, n)
		t = m.trap(n.Trapezoid)
	} else {
		t = s.locateShared(seg)
	}

	chain := []*Trapezoid{t}
	for t.RightP.X < seg.Right.X {
		var next TrapID
		switch seg.Orient(t.RightP.Point) {
		case Left:
			next = t.LowerRight
		case Right:
			next = t.UpperRight
		default:
			panic(fmt.Sprintf("trapmap: %v passes through vertex %v", seg, t.RightP))
		}
		invariant(next != NoTrapezoid, "%v has no right neighbor for %v", t, seg)
		t = m.trap(next)
		chain = append(chain, t)
	}
	return chain
}

// locateShared finds the first trapezoid intersected by seg when its left endpoint is
// already part of the map. Locating the endpoint itself would stop at an internal node,
// so it locates a probe point on seg a short distance to the right instead, then walks
// back to the endpoint.
func (s *Session) locateShared(seg *Segment) *Trapezoid {
	m := s.m
	d := min(s.opts.probe, 0.5*(seg.Right.X-seg.Left.X))
	x := seg.Left.X + d
	probe := Pt(x, seg.YAt(x))

	n := Locate(m.root, probe)
	if n.Kind != TrapezoidNode {
		Logger().Debug("trapmap: probe hit a boundary, descending exactly",
			slog.String("segment", seg.String()),
			slog.String("probe", probe.String()),
			slog.String("node", n.String()))
		n = locateSegmentStart(m.root, seg)
	}
	t := m.trap(n.Trapezoid)
	for t.LeftP.X > seg.Left.X {
		var prev TrapID
		switch seg.Orient(t.LeftP.Point) {
		case Left:
			prev = t.LowerLeft
		case Right:
			prev = t.UpperLeft
		default:
			panic(fmt.Sprintf("trapmap: %v passes through vertex %v", seg, t.LeftP))
		}
		invariant(prev != NoTrapezoid, "%v has no left neighbor for %v", t, seg)
		t = m.trap(prev)
	}
	invariant(t.LeftP == seg.Left, "located %v for %v, which does not start at the shared endpoint", t, seg)
	return t
}

// splitSingle handles a segment that lies inside a single trapezoid t with both
// endpoints new. t is split into four: left of seg, above it, below it, and right of
// it.
func (s *Session) splitSingle(seg *Segment, t *Trapezoid) []*Trapezoid {
	m := s.m
	L, R := seg.Left, seg.Right

	left := s.newTrapezoid(t.Top, t.Bottom, t.LeftP, L)
	above := s.newTrapezoid(t.Top, seg, L, R)
	below := s.newTrapezoid(seg, t.Bottom, L, R)
	right := s.newTrapezoid(t.Top, t.Bottom, R, t.RightP)

	if n := m.neighbor(t.UpperLeft); n != nil {
		connect(n, left)
	}
	if n := m.neighbor(t.LowerLeft); n != nil {
		connect(n, left)
	}
	if n := m.neighbor(t.UpperRight); n != nil {
		connect(right, n)
	}
	if n := m.neighbor(t.LowerRight); n != nil {
		connect(right, n)
	}
	connect(left, above)
	connect(left, below)
	connect(above, right)
	connect(below, right)

	t.Leaf.become(&Node{
		Kind:   VertexNode,
		Vertex: L,
		Left:   left.Leaf,
		Right: s.newNode(Node{
			Kind:   VertexNode,
			Vertex: R,
			Left: s.newNode(Node{
				Kind:    SegmentNode,
				Segment: seg,
				Left:    above.Leaf,
				Right:   below.Leaf,
			}),
			Right: right.Leaf,
		}),
	})
	t.Leaf.Trapezoid = NoTrapezoid
	return []*Trapezoid{left, above, below, right}
}

// splitChain handles the general case. The trapezoids of chain are cut along seg. The
// parts above seg are merged into as few trapezoids as possible: a part ends only at a
// right vertex lying above seg, because such a vertex's downward extension still
// separates the parts. Likewise, parts below seg end at right vertices below seg. New
// endpoints additionally cut off the part of the first or last trapezoid that lies left
// or right of seg.
func (s *Session) splitChain(seg *Segment, chain []*Trapezoid, leftNew, rightNew bool) []*Trapezoid {
	L, R := seg.Left, seg.Right
	k := len(chain)
	first, last := chain[0], chain[k-1]

	var created []*Trapezoid
	var left, right *Trapezoid
	if leftNew {
		left = s.newTrapezoid(first.Top, first.Bottom, first.LeftP, L)
		created = append(created, left)
	} else {
		invariant(first.LeftP == L, "%v does not start at %v", first, L)
	}

	aboveOf := make([]*Trapezoid, k)
	belowOf := make([]*Trapezoid, k)
	up := s.newTrapezoid(first.Top, seg, L, nil)
	down := s.newTrapezoid(seg, first.Bottom, L, nil)
	created = append(created, up, down)
	for i, t := range chain {
		invariant(t.Top == up.Top, "merged part above %v spans %v with a different top", seg, t)
		invariant(t.Bottom == down.Bottom, "merged part below %v spans %v with a different bottom", seg, t)
		aboveOf[i] = up
		belowOf[i] = down
		if i == k-1 {
			break
		}
		p := t.RightP
		switch seg.Orient(p.Point) {
		case Left:
			up.RightP = p
			up = s.newTrapezoid(chain[i+1].Top, seg, p, nil)
			created = append(created, up)
		case Right:
			down.RightP = p
			down = s.newTrapezoid(seg, chain[i+1].Bottom, p, nil)
			created = append(created, down)
		default:
			panic(fmt.Sprintf("trapmap: %v passes through vertex %v", seg, p))
		}
	}
	up.RightP = R
	down.RightP = R

	if rightNew {
		right = s.newTrapezoid(last.Top, last.Bottom, R, last.RightP)
		created = append(created, right)
	} else {
		invariant(last.RightP == R, "%v does not end at %v", last, R)
	}

	s.relink(chain, created)

	for i, t := range chain {
		split := s.newNode(Node{
			Kind:    SegmentNode,
			Segment: seg,
			Left:    aboveOf[i].Leaf,
			Right:   belowOf[i].Leaf,
		})
		var repl *Node
		switch {
		case i == 0 && left != nil && i == k-1 && right != nil:
			repl = &Node{
				Kind:   VertexNode,
				Vertex: L,
				Left:   left.Leaf,
				Right:  s.newNode(Node{Kind: VertexNode, Vertex: R, Left: split, Right: right.Leaf}),
			}
		case i == 0 && left != nil:
			repl = &Node{Kind: VertexNode, Vertex: L, Left: left.Leaf, Right: split}
		case i == k-1 && right != nil:
			repl = &Node{Kind: VertexNode, Vertex: R, Left: split, Right: right.Leaf}
		default:
			repl = split
		}
		t.Leaf.become(repl)
		t.Leaf.Trapezoid = NoTrapezoid
	}
	return created
}

// relink sets the neighbor slots of the trapezoids in created, which replace those in
// chain. A new trapezoid's neighbors are either other new trapezoids or former
// neighbors of the chain. Two trapezoids are neighbors if one's right vertex is the
// other's left vertex, their sides there have positive length, and they share their top
// or bottom segment.
func (s *Session) relink(chain, created []*Trapezoid) {
	m := s.m
	inChain := make(map[TrapID]bool, len(chain))
	for _, t := range chain {
		inChain[t.ID] = true
	}

	// Candidates keyed by the vertex of the side facing the new trapezoid.
	byRightP := make(map[*Vertex][]*Trapezoid)
	byLeftP := make(map[*Vertex][]*Trapezoid)
	var outer []*Trapezoid
	seen := make(map[TrapID]bool)
	for _, t := range chain {
		for _, id := range t.Neighbors() {
			if id == NoTrapezoid || inChain[id] || seen[id] {
				continue
			}
			seen[id] = true
			outer = append(outer, m.trap(id))
		}
	}
	for _, o := range outer {
		for _, slot := range [4]*TrapID{&o.UpperLeft, &o.LowerLeft, &o.UpperRight, &o.LowerRight} {
			if inChain[*slot] {
				*slot = NoTrapezoid
			}
		}
		byRightP[o.RightP] = append(byRightP[o.RightP], o)
		byLeftP[o.LeftP] = append(byLeftP[o.LeftP], o)
	}
	for _, t := range created {
		byRightP[t.RightP] = append(byRightP[t.RightP], t)
	}

	for _, t := range created {
		for _, o := range byRightP[t.LeftP] {
			if adjacent(o, t) {
				connect(o, t)
			}
		}
		for _, o := range byLeftP[t.RightP] {
			if adjacent(t, o) {
				connect(t, o)
			}
		}
	}
}

// updateExtensions points the vertical extensions of the new trapezoids' vertices at the
// segments that bound them now and records the changes.
func (s *Session) updateExtensions(created []*Trapezoid) {
	type change struct {
		v     *Vertex
		added bool
	}
	var changes []change
	seen := make(map[*Vertex]bool)
	for _, t := range created {
		for _, v := range [2]*Vertex{t.LeftP, t.RightP} {
			if v.corner {
				continue
			}
			top, bottom := v.ExtensionTop, v.ExtensionBottom
			if !t.Top.HasEndpoint(v) {
				top = t.Top
			}
			if !t.Bottom.HasEndpoint(v) {
				bottom = t.Bottom
			}
			if top == v.ExtensionTop && bottom == v.ExtensionBottom {
				continue
			}
			added := v.ExtensionTop == nil && v.ExtensionBottom == nil
			v.ExtensionTop, v.ExtensionBottom = top, bottom
			if !seen[v] {
				seen[v] = true
				changes = append(changes, change{v, added})
			}
		}
	}
	for _, c := range changes {
		kind := EventPointExtensionUpdated
		if c.added {
			kind = EventPointExtensionAdded
		}
		info := vertexInfo(c.v)
		s.emit(Event{Kind: kind, Vertex: &info})
	}
}
