package trapmap

// EventKind names a structural mutation recorded in the trace.
type EventKind string

const (
	EventBoundingBoxCreated    EventKind = "bounding-box-created"
	EventSegmentAdded          EventKind = "segment-added"
	EventTrapezoidsHighlighted EventKind = "trapezoids-highlighted"
	EventPointExtensionAdded   EventKind = "point-extension-added"
	EventPointExtensionUpdated EventKind = "point-extension-updated"
	EventTrapezoidsReplaced    EventKind = "trapezoids-replaced"
	EventLeafRemoved           EventKind = "leaf-removed"
)

// An Event is one entry of the construction trace. Which payload fields are set depends
// on Kind:
//
//   - bounding-box-created: Created (the bounding box) and DAG
//   - segment-added: Segment
//   - trapezoids-highlighted: Trapezoids, the trapezoids the new segment intersects
//   - trapezoids-replaced: Segment, Destroyed, Created and DAG
//   - leaf-removed: Trapezoids (the retired trapezoid) and Leaf, the node that used to
//     be its leaf
//   - point-extension-added, point-extension-updated: Vertex
//
// Events are value snapshots and do not change when the map is modified further.
type Event struct {
	// Step is the number of segments inserted so far, counting the one being inserted.
	// It is zero for the bounding box.
	Step       int             `json:"step"`
	Kind       EventKind       `json:"kind"`
	Segment    *SegmentInfo    `json:"segment,omitempty"`
	Vertex     *VertexInfo     `json:"vertex,omitempty"`
	Trapezoids []TrapezoidInfo `json:"trapezoids,omitempty"`
	Destroyed  []TrapezoidInfo `json:"destroyed,omitempty"`
	Created    []TrapezoidInfo `json:"created,omitempty"`
	Leaf       *NodeInfo       `json:"leaf,omitempty"`
	DAG        *DAGSnapshot    `json:"dag,omitempty"`
}

type VertexInfo struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	// Labels of the segments bounding the vertex's vertical extensions, if any.
	ExtensionTop    string `json:"extensionTop,omitempty"`
	ExtensionBottom string `json:"extensionBottom,omitempty"`
}

type SegmentInfo struct {
	Label string     `json:"label"`
	Left  VertexInfo `json:"left"`
	Right VertexInfo `json:"right"`
}

type TrapezoidInfo struct {
	ID     TrapID     `json:"id"`
	Label  string     `json:"label"`
	Top    string     `json:"top"`
	Bottom string     `json:"bottom"`
	LeftP  VertexInfo `json:"leftp"`
	RightP VertexInfo `json:"rightp"`
	// Corners in the order top left, top right, bottom right, bottom left.
	Corners   [4]Point  `json:"corners"`
	Neighbors [4]TrapID `json:"neighbors"`
}

// NodeInfo describes one node of a [DAGSnapshot]. Left and Right are node IDs, or -1
// for leaves.
type NodeInfo struct {
	ID    int    `json:"id"`
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Left  int    `json:"left"`
	Right int    `json:"right"`
}

// A DAGSnapshot is a serializable copy of the search structure. Nodes are listed in
// depth-first order starting at the root; shared nodes are listed once.
type DAGSnapshot struct {
	Root  int        `json:"root"`
	Nodes []NodeInfo `json:"nodes"`
}

func vertexInfo(v *Vertex) VertexInfo {
	info := VertexInfo{
		Label: v.Label,
		X:     v.X,
		Y:     v.Y,
	}
	if v.ExtensionTop != nil {
		info.ExtensionTop = v.ExtensionTop.Label
	}
	if v.ExtensionBottom != nil {
		info.ExtensionBottom = v.ExtensionBottom.Label
	}
	return info
}

func segmentInfo(s *Segment) *SegmentInfo {
	return &SegmentInfo{
		Label: s.Label,
		Left:  vertexInfo(s.Left),
		Right: vertexInfo(s.Right),
	}
}

func trapezoidInfo(t *Trapezoid) TrapezoidInfo {
	return TrapezoidInfo{
		ID:        t.ID,
		Label:     t.Label(),
		Top:       t.Top.Label,
		Bottom:    t.Bottom.Label,
		LeftP:     vertexInfo(t.LeftP),
		RightP:    vertexInfo(t.RightP),
		Corners:   t.Corners(),
		Neighbors: t.Neighbors(),
	}
}

func trapezoidInfos(ts []*Trapezoid) []TrapezoidInfo {
	out := make([]TrapezoidInfo, len(ts))
	for i, t := range ts {
		out[i] = trapezoidInfo(t)
	}
	return out
}

func nodeInfo(n *Node) NodeInfo {
	info := NodeInfo{
		ID:    n.id,
		Kind:  n.Kind.String(),
		Label: n.Label(),
		Left:  -1,
		Right: -1,
	}
	if n.Kind != TrapezoidNode {
		info.Left = n.Left.id
		info.Right = n.Right.id
	}
	return info
}

// Snapshot returns a serializable copy of the search structure rooted at root.
func Snapshot(root *Node) *DAGSnapshot {
	snap := &DAGSnapshot{Root: root.id}
	walk(root, func(n *Node) bool {
		snap.Nodes = append(snap.Nodes, nodeInfo(n))
		return true
	})
	return snap
}
