package trapmap

import (
	"fmt"
	"math"
)

// Size is the extent of a viewport. Points of a map lie in [0, Width]×[0, Height].
type Size struct {
	Width  float64
	Height float64
}

func Sz(w, h float64) Size { return Size{Width: w, Height: h} }

func (sz Size) String() string {
	return fmt.Sprintf("%g×%g", sz.Width, sz.Height)
}

// MaxSide returns the larger of width and height. Default margins and probe
// distances scale with it.
func (sz Size) MaxSide() float64 {
	return max(sz.Width, sz.Height)
}

// IsEmpty reports whether sz cannot hold a map: a side that isn't positive and
// finite, including NaN, makes it empty.
func (sz Size) IsEmpty() bool {
	return !(sz.Width > 0 && sz.Height > 0) || math.IsInf(sz.Width, 0) || math.IsInf(sz.Height, 0)
}
