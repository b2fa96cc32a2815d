package render

import (
	"math"

	"honnef.co/go/trapmap"
)

// Options control how frames are drawn.
type Options struct {
	// Scale is the number of pixels per map unit. Zero means 1.
	Scale float64
	// Labels enables trapezoid and vertex labels. Only SVG output draws text.
	Labels bool
}

func (opts Options) scale() float64 {
	if opts.Scale <= 0 {
		return 1
	}
	return opts.Scale
}

// transform maps from y-up map space to y-down image space, with the frame's box
// filling the image.
type transform struct {
	box   trapmap.Rect
	scale float64
}

func newTransform(f Frame, opts Options) transform {
	return transform{box: f.Box, scale: opts.scale()}
}

func (tr transform) size() (w, h float64) {
	return tr.box.Width() * tr.scale, tr.box.Height() * tr.scale
}

func (tr transform) pixels() (w, h int) {
	fw, fh := tr.size()
	return max(1, int(math.Ceil(fw))), max(1, int(math.Ceil(fh)))
}

func (tr transform) pt(p trapmap.Point) (x, y float64) {
	return (p.X - tr.box.X0) * tr.scale, (tr.box.Y1 - p.Y) * tr.scale
}

func (tr transform) polygon(corners [4]trapmap.Point) (xs, ys []float64) {
	xs = make([]float64, 0, 4)
	ys = make([]float64, 0, 4)
	for _, c := range corners {
		x, y := tr.pt(c)
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}

// Colors are shared by the SVG and PNG writers, as RGB in [0, 1].
var (
	colorBackground = [3]float64{1, 1, 1}
	colorTrapezoid  = [3]float64{0.93, 0.95, 0.98}
	colorHighlight  = [3]float64{1, 0.85, 0.45}
	colorOutline    = [3]float64{0.55, 0.6, 0.7}
	colorSegment    = [3]float64{0.1, 0.1, 0.1}
	colorCurrent    = [3]float64{0.8, 0.1, 0.1}
	colorExtension  = [3]float64{0.1, 0.4, 0.8}
)

func highlighted(f Frame) map[trapmap.TrapID]bool {
	out := make(map[trapmap.TrapID]bool, len(f.Highlight))
	for _, id := range f.Highlight {
		out[id] = true
	}
	return out
}
