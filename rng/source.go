// Package rng provides the seedable random source shared by every
// stochastic model in this module: uniform, gaussian, log-normal,
// ex-gaussian, bivariate-normal, and truncated-gaussian samplers (spec
// §4.1).
//
// A Source is owned by exactly one Session for its lifetime (see the
// trajectory package) and must not be shared across goroutines without
// external synchronization — the same threading discipline the teacher
// repo applies to crownet/synaptic.NetworkWeights, which takes a
// *rand.Rand via its constructor rather than reaching for the package
// global math/rand functions. Two Sources built with the same seed and
// driven through an identical call sequence produce identical output,
// which is required for the reproducibility property in spec §8.8.
package rng

import (
	"math"
	"math/rand"
)

// maxTruncationAttempts bounds the rejection-sampling loop in
// TruncatedGaussian before it falls back to clamping (spec §4.1).
const maxTruncationAttempts = 32

// Source is a seedable random source. The zero value is not usable;
// construct one with New.
type Source struct {
	r *rand.Rand

	// onTruncationFallback, if set, is called whenever
	// TruncatedGaussian exhausts its rejection-sampling budget and
	// falls back to clamping. Session wires this to its optional
	// Logger seam; tests leave it nil.
	onTruncationFallback func()
}

// New returns a Source seeded with seed. Identical seeds driven through
// identical call sequences produce identical samples.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// SetTruncationFallbackHook installs a callback invoked whenever
// TruncatedGaussian must clamp instead of reject-sample. Passing nil
// disables the hook.
func (s *Source) SetTruncationFallbackHook(hook func()) {
	s.onTruncationFallback = hook
}

// Uniform returns a sample in [0,1).
func (s *Source) Uniform() float64 {
	return s.r.Float64()
}

// UniformRange returns a sample in [lo,hi).
func (s *Source) UniformRange(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Float64()*(hi-lo)
}

// Gaussian returns a sample from N(mu, sigma^2).
func (s *Source) Gaussian(mu, sigma float64) float64 {
	return mu + sigma*s.r.NormFloat64()
}

// LogNormal returns a sample from a log-normal distribution whose
// underlying normal has parameters (mu, sigma) in log-space, i.e.
// exp(N(mu, sigma^2)).
func (s *Source) LogNormal(mu, sigma float64) float64 {
	return expClamp(mu + sigma*s.r.NormFloat64())
}

// ExGaussian returns a sample from the ex-Gaussian distribution: the
// sum of an independent N(mu, sigma^2) and an Exp(1/tau) variate. This
// is the standard model for human reaction-time-like latencies with a
// positive skew.
func (s *Source) ExGaussian(mu, sigma, tau float64) float64 {
	normal := mu + sigma*s.r.NormFloat64()
	var exponential float64
	if tau > 0 {
		exponential = s.r.ExpFloat64() * tau
	}
	return normal + exponential
}

// BivariateNormal returns a sample (dx, dy) from an isotropic bivariate
// normal with the given per-axis standard deviation sigma, i.e.
// covariance sigma^2 * I2. Per spec §9, two independent N(0,1) draws
// scaled by sigma suffice since every covariance this module needs is
// isotropic; full Cholesky decomposition is unnecessary.
func (s *Source) BivariateNormal(sigma float64) (dx, dy float64) {
	return sigma * s.r.NormFloat64(), sigma * s.r.NormFloat64()
}

// TruncatedGaussian returns a sample from N(mu, sigma^2) truncated to
// [lo, hi]. Truncation is performed by rejection sampling with a
// 32-attempt cap (spec §4.1); if no sample lands in range within that
// budget, the last drawn value is clamped into range and the
// configured fallback hook (if any) is invoked.
func (s *Source) TruncatedGaussian(mu, sigma, lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	var v float64
	for attempt := 0; attempt < maxTruncationAttempts; attempt++ {
		v = s.Gaussian(mu, sigma)
		if v >= lo && v <= hi {
			return v
		}
	}
	if s.onTruncationFallback != nil {
		s.onTruncationFallback()
	}
	return clamp(v, lo, hi)
}

// SignChoice returns +1 or -1 with equal probability, used for the
// random curvature sign of a path leg (spec §4.4).
func (s *Source) SignChoice() float64 {
	if s.r.Float64() < 0.5 {
		return -1
	}
	return 1
}

// Bernoulli reports true with probability p (clamped to [0,1]).
func (s *Source) Bernoulli(p float64) bool {
	return s.r.Float64() < clamp(p, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// expClamp guards math.Exp against overflow for pathological (mu,
// sigma) pairs; legitimate click/dwell timings never approach this
// bound.
func expClamp(x float64) float64 {
	const maxExp = 700 // exp(700) is near the float64 overflow boundary
	if x > maxExp {
		x = maxExp
	}
	return math.Exp(x)
}
