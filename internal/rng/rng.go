package rng

// #region source
// Source is a deterministic pseudo-random source owned by a single run.
// The core is SplitMix64 with a fixed output mapping, so two sources built
// from the same seed emit bit-identical draw sequences on every platform
// and toolchain version. There is no package-level generator; concurrent
// runs each hold their own Source.
type Source struct {
	state uint64
}

// NewSource creates a Source from an integer seed.
func NewSource(seed int64) *Source {
	return &Source{state: uint64(seed)}
}

// #endregion source

// #region next
// next64 advances the SplitMix64 state and returns the next 64-bit word.
func (s *Source) next64() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// #endregion next

// #region uniform
// Uniform returns the next draw in [0, 1) with 53 bits of precision.
func (s *Source) Uniform() float64 {
	return float64(s.next64()>>11) / (1 << 53)
}

// #endregion uniform

// #region bernoulli
// Bernoulli returns true with probability p. It always consumes exactly one
// uniform draw, so the consumption schedule is independent of p and the
// sequence stays aligned across runs with differing parameters.
func (s *Source) Bernoulli(p float64) bool {
	return s.Uniform() < p
}

// #endregion bernoulli

// #region symmetric
// Symmetric returns a uniform draw in [-mag, +mag]. One uniform is consumed.
func (s *Source) Symmetric(mag float64) float64 {
	u := s.Uniform()
	return (2.0*u - 1.0) * mag
}

// #endregion symmetric
