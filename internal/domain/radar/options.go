package radar

import "math/rand"

// Option applies a configuration option to the Estimator.
type Option func(*Estimator)

// WithSamples sets the number of random points drawn per estimate.
func WithSamples(n int) Option {
	return func(e *Estimator) {
		if n > 0 {
			e.samples = n
		}
	}
}

// WithRand sets the random source. Use a seeded source for reproducible
// estimates.
func WithRand(rng *rand.Rand) Option {
	return func(e *Estimator) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSeed seeds a private random source. A zero seed keeps the default
// unseeded source.
func WithSeed(seed int64) Option {
	return func(e *Estimator) {
		if seed != 0 {
			e.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // chart sampling, not security sensitive
		}
	}
}
