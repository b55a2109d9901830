package eq

import (
	"errors"
	"math/rand/v2"
)

type config struct {
	rng *rand.Rand
}

// Option configures a [Processor].
type Option func(*config) error

// WithRNG sets a deterministic random number generator for reproducible
// noise-floor output.
func WithRNG(rng *rand.Rand) Option {
	return func(cfg *config) error {
		if rng == nil {
			return errors.New("eq: rng must not be nil")
		}

		cfg.rng = rng

		return nil
	}
}
