// Package input reads segment endpoints for trapezoidal maps and checks whether they
// form a valid arrangement.
//
// Endpoints come as a flat list of points; consecutive pairs form segments, the same
// as [trapmap.Build] expects them.
package input

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"honnef.co/go/trapmap"
)

// Point is a labeled endpoint as it appears in JSON documents.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}

// Document is the JSON form of an input: the size of the viewport and the endpoints.
//
//	{"width": 800, "height": 600, "points": [{"x": 100, "y": 100, "label": "A"}, ...]}
type Document struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Points []Point `json:"points"`
}

// Size returns the viewport size.
func (doc Document) Size() trapmap.Size {
	return trapmap.Sz(doc.Width, doc.Height)
}

// LabeledPoints converts the document's points.
func (doc Document) LabeledPoints() []trapmap.LabeledPoint {
	out := make([]trapmap.LabeledPoint, len(doc.Points))
	for i, p := range doc.Points {
		out[i] = trapmap.LP(p.X, p.Y, p.Label)
	}
	return out
}

// ReadJSON decodes a [Document] from r. Unknown fields are rejected.
func ReadJSON(r io.Reader) (Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, errors.Wrap(err, "input: decoding JSON document")
	}
	if len(doc.Points)%2 != 0 {
		return Document{}, errors.Wrapf(trapmap.ErrOddPointCount, "input: %d points", len(doc.Points))
	}
	return doc, nil
}

// WriteJSON encodes doc to w, indented.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(doc), "input: encoding JSON document")
}
