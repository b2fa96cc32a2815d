package input

import (
	"bufio"
	"io"
	"strings"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/pkg/errors"

	"honnef.co/go/trapmap"
)

// ReadWKT reads line strings in Well Known Text, one geometry per line. Blank lines and
// lines starting with # are skipped. Every LINESTRING contributes a segment for each
// pair of consecutive coordinates, so a polyline's inner vertices are shared by two
// segments. MULTILINESTRING contributes each of its line strings. Repeated consecutive
// coordinates are dropped.
//
// The returned points are unlabeled; see [Labeled].
func ReadWKT(r io.Reader) ([]trapmap.LabeledPoint, error) {
	var out []trapmap.LabeledPoint
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 16<<20)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		g, err := geom.UnmarshalWKT(text)
		if err != nil {
			return nil, errors.Wrapf(err, "input: line %d", line)
		}
		var mls geom.MultiLineString
		if ls, ok := g.AsLineString(); ok {
			mls = ls.AsMultiLineString()
		} else if mls, ok = g.AsMultiLineString(); !ok {
			return nil, errors.Errorf("input: line %d: unsupported geometry type %v", line, g.Type())
		}
		out = appendSegments(out, mls)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "input: reading WKT")
	}
	return out, nil
}

func appendSegments(out []trapmap.LabeledPoint, mls geom.MultiLineString) []trapmap.LabeledPoint {
	for i := 0; i < mls.NumLineStrings(); i++ {
		seq := mls.LineStringN(i).Coordinates()
		for j := 1; j < seq.Length(); j++ {
			a, b := seq.GetXY(j-1), seq.GetXY(j)
			if a == b {
				continue
			}
			out = append(out,
				trapmap.LabeledPoint{Point: trapmap.Pt(a.X, a.Y)},
				trapmap.LabeledPoint{Point: trapmap.Pt(b.X, b.Y)})
		}
	}
	return out
}
