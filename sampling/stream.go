// Package sampling provides the single random stream that every stochastic
// decision of a simulation draws from, together with the distributions the
// epidemic model needs.
package sampling

import (
	"math"
	"math/rand"
	"time"
)

// A Sampler draws values from the distributions used by the model.
type Sampler interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64

	// Exponential returns an exponentially distributed value with the given
	// mean.
	Exponential(mean float64) float64

	// LogNormal returns a log-normally distributed value. The median is the
	// median of the distribution and sigma is the standard deviation of the
	// underlying normal distribution.
	LogNormal(median, sigma float64) float64

	// Bernoulli returns true with probability p.
	Bernoulli(p float64) bool

	// Shuffle pseudo-randomizes the order of n elements.
	Shuffle(n int, swap func(i, j int))
}

// Stream is a Sampler backed by one seeded pseudo-random stream.
type Stream struct {
	seed int64
	rand *rand.Rand
}

// NewStream creates a stream seeded with the given seed. A zero seed is
// replaced by one derived from the wall clock.
func NewStream(seed int64) *Stream {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Stream{
		seed: seed,
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed that the stream was created with.
func (s *Stream) Seed() int64 {
	return s.seed
}

// Float64 returns a uniform value in [0, 1).
func (s *Stream) Float64() float64 {
	return s.rand.Float64()
}

// Exponential returns an exponentially distributed value with the given mean.
func (s *Stream) Exponential(mean float64) float64 {
	return mean * -math.Log(1-s.rand.Float64())
}

// LogNormal returns a log-normally distributed value.
func (s *Stream) LogNormal(median, sigma float64) float64 {
	return math.Exp(sigma*s.rand.NormFloat64()) * median
}

// Bernoulli returns true with probability p.
func (s *Stream) Bernoulli(p float64) bool {
	return s.rand.Float64() < p
}

// Shuffle pseudo-randomizes the order of n elements.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	s.rand.Shuffle(n, swap)
}

// SigmaFromScatter converts the scatter of a log-normal distribution, given in
// the same unit as the median, into the sigma of the underlying normal
// distribution.
func SigmaFromScatter(median, scatter float64) float64 {
	return math.Log((scatter + median) / median)
}
