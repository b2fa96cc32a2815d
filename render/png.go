package render

import (
	"io"

	"github.com/gogpu/gg"
	"github.com/pkg/errors"

	"honnef.co/go/trapmap"
)

// WritePNG rasterizes f and encodes it as PNG. Labels are not drawn.
func WritePNG(w io.Writer, f Frame, opts Options) error {
	tr := newTransform(f, opts)
	width, height := tr.pixels()
	dc := gg.NewContext(width, height)
	defer dc.Close()

	setRGB := func(c [3]float64) { dc.SetRGB(c[0], c[1], c[2]) }

	dc.ClearWithColor(gg.RGB(colorBackground[0], colorBackground[1], colorBackground[2]))
	hl := highlighted(f)
	for _, t := range f.Trapezoids {
		xs, ys := tr.polygon(t.Corners)
		dc.MoveTo(xs[0], ys[0])
		for i := 1; i < len(xs); i++ {
			dc.LineTo(xs[i], ys[i])
		}
		dc.ClosePath()
		if hl[t.ID] {
			setRGB(colorHighlight)
		} else {
			setRGB(colorTrapezoid)
		}
		if err := dc.FillPreserve(); err != nil {
			return errors.Wrapf(err, "render: filling %s", t.Label)
		}
		setRGB(colorOutline)
		dc.SetLineWidth(1)
		if err := dc.Stroke(); err != nil {
			return errors.Wrapf(err, "render: outlining %s", t.Label)
		}
	}

	for _, s := range f.Segments {
		color := colorSegment
		if f.Segment != nil && s.Label == f.Segment.Label {
			color = colorCurrent
		}
		setRGB(color)
		x0, y0 := tr.pt(trapmap.Pt(s.Left.X, s.Left.Y))
		x1, y1 := tr.pt(trapmap.Pt(s.Right.X, s.Right.Y))
		dc.SetLineWidth(2)
		dc.DrawLine(x0, y0, x1, y1)
		if err := dc.Stroke(); err != nil {
			return errors.Wrapf(err, "render: drawing %s", s.Label)
		}
		dc.DrawCircle(x0, y0, 3)
		dc.DrawCircle(x1, y1, 3)
		if err := dc.Fill(); err != nil {
			return errors.Wrapf(err, "render: drawing endpoints of %s", s.Label)
		}
	}

	if f.Extension != nil {
		setRGB(colorExtension)
		dc.SetLineWidth(1.5)
		dc.SetDash(4, 3)
		x0, y0 := tr.pt(f.Extension.P0)
		x1, y1 := tr.pt(f.Extension.P1)
		dc.DrawLine(x0, y0, x1, y1)
		err := dc.Stroke()
		dc.ClearDash()
		if err != nil {
			return errors.Wrap(err, "render: drawing extension")
		}
	}

	return errors.Wrap(dc.EncodePNG(w), "render: encoding PNG")
}
