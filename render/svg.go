package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo/float"
	"github.com/pkg/errors"

	"honnef.co/go/trapmap"
)

// errWriter remembers the first error returned by w. svgo doesn't report write errors.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(b []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(b)
	ew.err = err
	return n, err
}

func rgb(c [3]float64) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", int(c[0]*255), int(c[1]*255), int(c[2]*255))
}

// WriteSVG draws f as an SVG document.
func WriteSVG(w io.Writer, f Frame, opts Options) error {
	ew := &errWriter{w: w}
	tr := newTransform(f, opts)
	width, height := tr.size()
	hl := highlighted(f)

	canvas := svg.New(ew)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+rgb(colorBackground))

	for _, t := range f.Trapezoids {
		fill := colorTrapezoid
		if hl[t.ID] {
			fill = colorHighlight
		}
		xs, ys := tr.polygon(t.Corners)
		canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", rgb(fill), rgb(colorOutline)))
	}
	for _, s := range f.Segments {
		color := colorSegment
		if f.Segment != nil && s.Label == f.Segment.Label {
			color = colorCurrent
		}
		x0, y0 := tr.pt(trapmap.Pt(s.Left.X, s.Left.Y))
		x1, y1 := tr.pt(trapmap.Pt(s.Right.X, s.Right.Y))
		canvas.Line(x0, y0, x1, y1, fmt.Sprintf("stroke:%s;stroke-width:2", rgb(color)))
		canvas.Circle(x0, y0, 3, "fill:"+rgb(color))
		canvas.Circle(x1, y1, 3, "fill:"+rgb(color))
	}
	if f.Extension != nil {
		x0, y0 := tr.pt(f.Extension.P0)
		x1, y1 := tr.pt(f.Extension.P1)
		canvas.Line(x0, y0, x1, y1, fmt.Sprintf("stroke:%s;stroke-width:1.5;stroke-dasharray:4,3", rgb(colorExtension)))
	}

	if opts.Labels {
		const style = "font-family:sans-serif;font-size:11px;text-anchor:middle"
		for _, t := range f.Trapezoids {
			c := t.Corners
			x, y := tr.pt(trapmap.Pt(
				0.25*(c[0].X+c[1].X+c[2].X+c[3].X),
				0.25*(c[0].Y+c[1].Y+c[2].Y+c[3].Y)))
			canvas.Text(x, y, t.Label, style)
		}
		seen := make(map[trapmap.Point]bool)
		for _, s := range f.Segments {
			for _, v := range [2]trapmap.VertexInfo{s.Left, s.Right} {
				p := trapmap.Pt(v.X, v.Y)
				if v.Label == "" || seen[p] {
					continue
				}
				seen[p] = true
				x, y := tr.pt(p)
				canvas.Text(x+6, y-6, v.Label, style)
			}
		}
	}
	canvas.End()
	return errors.Wrap(ew.err, "render: writing SVG")
}
