package radar

import (
	"fmt"
	"math/rand"
	"time"

	"seehuhn.de/go/geom/vec"
)

// DefaultSamples is the number of Monte Carlo samples per estimate.
const DefaultSamples = 10_000

// Estimator approximates the intersection-over-union of two radar polygons
// by uniform sampling over their joint bounding box. Results carry sampling
// noise unless the random source is seeded.
//
// An Estimator is not safe for concurrent use.
type Estimator struct {
	samples int
	rng     *rand.Rand
}

// NewEstimator creates an Estimator with DefaultSamples and a fresh
// time-seeded random source unless overridden by options.
func NewEstimator(opts ...Option) *Estimator {
	e := &Estimator{
		samples: DefaultSamples,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // chart sampling, not security sensitive
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Samples returns the configured sample count.
func (e *Estimator) Samples() int { return e.samples }

// Estimate returns 100 * |A and B| / |A or B| in [0, 100]. Both polygons must
// share the same angle sequence. When no sample falls in either polygon the
// result is 0.
func (e *Estimator) Estimate(a, b Polygon) (float64, error) {
	if !sameAngles(a.Angles, b.Angles) {
		return 0, fmt.Errorf("%w: %d and %d angles", ErrAngleMismatch, len(a.Angles), len(b.Angles))
	}

	ringA, ringB := a.Points(), b.Points()
	if len(ringA) == 0 {
		return 0, nil
	}

	box := union(boundsOf(ringA), boundsOf(ringB))
	w, h := box.URx-box.LLx, box.URy-box.LLy
	if w <= 0 || h <= 0 {
		return 0, nil
	}

	var both, either int
	for range e.samples {
		pt := vec.Vec2{X: box.LLx + e.rng.Float64()*w, Y: box.LLy + e.rng.Float64()*h}
		inA, inB := Contains(ringA, pt), Contains(ringB, pt)
		if inA && inB {
			both++
		}
		if inA || inB {
			either++
		}
	}

	if either == 0 {
		return 0, nil
	}
	return 100 * float64(both) / float64(either), nil
}

func sameAngles(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
