package input

import "honnef.co/go/trapmap"

// Label returns the i-th label of the sequence A, B, …, Z, AA, AB, …, ZZ, AAA, …
func Label(i int) string {
	var buf [16]byte
	n := len(buf)
	for i++; i > 0; i = (i - 1) / 26 {
		n--
		buf[n] = byte('A' + (i-1)%26)
	}
	return string(buf[n:])
}

// Labeled returns a copy of points in which unlabeled points carry sequential labels.
// Points with the same coordinates get the same label, and labels already in use are
// skipped.
func Labeled(points []trapmap.LabeledPoint) []trapmap.LabeledPoint {
	used := make(map[string]bool)
	byPoint := make(map[trapmap.Point]string)
	for _, p := range points {
		if p.Label != "" {
			used[p.Label] = true
			if _, ok := byPoint[p.Point]; !ok {
				byPoint[p.Point] = p.Label
			}
		}
	}

	out := make([]trapmap.LabeledPoint, len(points))
	next := 0
	for i, p := range points {
		if p.Label == "" {
			l, ok := byPoint[p.Point]
			if !ok {
				for used[Label(next)] {
					next++
				}
				l = Label(next)
				used[l] = true
				byPoint[p.Point] = l
			}
			p.Label = l
		}
		out[i] = p
	}
	return out
}
