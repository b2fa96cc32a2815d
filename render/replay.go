// Package render turns construction traces into pictures.
//
// [Replay] folds a trace into one [Frame] per event, each describing the complete
// state of the map at that point. Frames can be written as SVG with [WriteSVG] or as
// PNG with [WritePNG].
package render

import (
	"slices"

	"honnef.co/go/trapmap"
)

// A Frame is the state of the map after one event.
type Frame struct {
	// Index is the position of the event in the trace.
	Index int
	Step  int
	Kind  trapmap.EventKind
	Box   trapmap.Rect
	// Trapezoids are the live trapezoids, ordered by ID.
	Trapezoids []trapmap.TrapezoidInfo
	Segments   []trapmap.SegmentInfo
	// Highlight holds the trapezoids the event is about: the ones intersected by the
	// new segment, the ones created by a replacement, or the one whose leaf was removed.
	Highlight []trapmap.TrapID
	// Segment is the segment being inserted, if any.
	Segment *trapmap.SegmentInfo
	// Vertex and Extension are set for extension events. Extension is the vertical
	// line through the vertex bounded by its extension segments.
	Vertex    *trapmap.VertexInfo
	Extension *trapmap.Line
}

// Replay folds events into frames, one per event. The trace has to start with a
// bounding box event.
func Replay(events []trapmap.Event) []Frame {
	var (
		box      trapmap.Rect
		live     = make(map[trapmap.TrapID]trapmap.TrapezoidInfo)
		segments []trapmap.SegmentInfo
		current  *trapmap.SegmentInfo
		frames   = make([]Frame, 0, len(events))
	)
	ids := func(infos []trapmap.TrapezoidInfo) []trapmap.TrapID {
		out := make([]trapmap.TrapID, len(infos))
		for i, info := range infos {
			out[i] = info.ID
		}
		return out
	}

	for i, ev := range events {
		f := Frame{Index: i, Step: ev.Step, Kind: ev.Kind}
		switch ev.Kind {
		case trapmap.EventBoundingBoxCreated:
			clear(live)
			segments, current = nil, nil
			for _, t := range ev.Created {
				live[t.ID] = t
				box = cornersRect(t.Corners)
			}
		case trapmap.EventSegmentAdded:
			current = ev.Segment
			segments = append(segments, *ev.Segment)
		case trapmap.EventTrapezoidsHighlighted:
			f.Highlight = ids(ev.Trapezoids)
		case trapmap.EventTrapezoidsReplaced:
			for _, t := range ev.Destroyed {
				delete(live, t.ID)
			}
			for _, t := range ev.Created {
				live[t.ID] = t
			}
			f.Highlight = ids(ev.Created)
		case trapmap.EventLeafRemoved:
			f.Highlight = ids(ev.Trapezoids)
		case trapmap.EventPointExtensionAdded, trapmap.EventPointExtensionUpdated:
			f.Vertex = ev.Vertex
			ext := extension(*ev.Vertex, box, segments)
			f.Extension = &ext
		}
		f.Box = box
		f.Segment = current
		f.Segments = slices.Clone(segments)
		f.Trapezoids = make([]trapmap.TrapezoidInfo, 0, len(live))
		for _, t := range live {
			f.Trapezoids = append(f.Trapezoids, t)
		}
		slices.SortFunc(f.Trapezoids, func(a, b trapmap.TrapezoidInfo) int {
			return int(a.ID) - int(b.ID)
		})
		frames = append(frames, f)
	}
	return frames
}

func cornersRect(c [4]trapmap.Point) trapmap.Rect {
	r := trapmap.NewRectFromPoints(c[0], c[2])
	for _, p := range c {
		r.X0, r.Y0 = min(r.X0, p.X), min(r.Y0, p.Y)
		r.X1, r.Y1 = max(r.X1, p.X), max(r.Y1, p.Y)
	}
	return r
}

// extension returns the vertical line through v that ends at its extension segments.
// The box edges are not part of the trace's segments; they bound missing extensions.
func extension(v trapmap.VertexInfo, box trapmap.Rect, segments []trapmap.SegmentInfo) trapmap.Line {
	yAt := func(label string, fallback float64) float64 {
		for _, s := range segments {
			if s.Label == label {
				return trapmap.Line{
					P0: trapmap.Pt(s.Left.X, s.Left.Y),
					P1: trapmap.Pt(s.Right.X, s.Right.Y),
				}.YAt(v.X)
			}
		}
		return fallback
	}
	top := v.Y
	if v.ExtensionTop != "" {
		top = yAt(v.ExtensionTop, box.Y1)
	}
	bottom := v.Y
	if v.ExtensionBottom != "" {
		bottom = yAt(v.ExtensionBottom, box.Y0)
	}
	return trapmap.Line{P0: trapmap.Pt(v.X, bottom), P1: trapmap.Pt(v.X, top)}
}
