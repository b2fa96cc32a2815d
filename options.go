package trapmap

import "math/rand/v2"

// Option configures a [Session] or [Build].
//
// Example:
//
//	// Deterministic insertion order for reproducible traces
//	m, err := trapmap.Build(points, trapmap.Sz(800, 600),
//		trapmap.WithRand(rand.New(rand.NewPCG(1, 2))))
type Option func(*options)

type options struct {
	rng         *rand.Rand
	permutation func(n int) []int
	probe       float64
	margin      float64
	trace       bool
	check       bool
}

func defaultOptions() options {
	return options{
		trace: true,
	}
}

// WithRand sets the source of randomness used to shuffle the segments in [Build]. By
// default, the segments are shuffled with the randomly seeded global source.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithPermutation replaces the random shuffle in [Build]. perm is called with the number
// of segments n and has to return a permutation of [0, n); segment perm(n)[i] is
// inserted i-th. It takes precedence over [WithRand].
func WithPermutation(perm func(n int) []int) Option {
	return func(o *options) {
		o.permutation = perm
	}
}

// InOrder is a permutation for [WithPermutation] that inserts segments in input order.
func InOrder(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// WithProbeDistance sets how far to the right of a shared left endpoint the point
// location probe is placed. The default scales with the bounding box: 2.5e-4 times its
// larger side, which is about 0.2 for an 800×600 viewport. The probe never exceeds half
// the segment's horizontal extent.
func WithProbeDistance(d float64) Option {
	return func(o *options) {
		o.probe = d
	}
}

// WithMargin sets how far the bounding box extends beyond the viewport on each side. The
// default is 5% of the viewport's larger side, but at least 1.
func WithMargin(m float64) Option {
	return func(o *options) {
		o.margin = m
	}
}

// WithoutTrace disables recording of the event trace.
func WithoutTrace() Option {
	return func(o *options) {
		o.trace = false
	}
}

// WithCheck runs [Map.Check] after every insertion and panics if it fails. This is
// meant for tests and debugging; it makes every insertion linear in the size of the map.
func WithCheck(check bool) Option {
	return func(o *options) {
		o.check = check
	}
}
