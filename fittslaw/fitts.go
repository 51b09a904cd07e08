// Package fittslaw samples a movement duration from Fitts' Law (spec
// §4.2): distance and target width determine an index of difficulty,
// per-invocation coefficients (a, b) are drawn around configured means,
// and the result is clamped so it never implies a throughput above the
// human ceiling.
package fittslaw

import (
	"fmt"
	"math"

	"motorik/rng"
)

// Bounds on the returned duration, independent of any other clamp
// (spec §4.2 step 5).
const (
	MinDuration = 0.05 // seconds
	MaxDuration = 4.0  // seconds
)

// Params holds the per-session Fitts' Law coefficients (spec's
// FittsParams). AMean/BMean/AStd/BStd are in seconds; MaxThroughput is
// in bits/second; NominalErrorRate is a probability in [0,1], kept
// alongside the rest of the Fitts parameters since the spec groups
// them. It is validated here but not read by any package; the
// submovement planner takes its miss probability from
// submovement.Params.NominalErrorRate.
type Params struct {
	AMean, AStd           float64
	BMean, BStd           float64
	MaxThroughput         float64
	NominalErrorRate      float64
}

// DefaultParams returns coefficients in the range typically reported
// for mouse pointing tasks.
func DefaultParams() Params {
	return Params{
		AMean:            0.15,
		AStd:             0.02,
		BMean:            0.12,
		BStd:             0.015,
		MaxThroughput:    12.0,
		NominalErrorRate: 0.04,
	}
}

// Validate enforces the admissibility constraints spec §3 lists for
// FittsParams: all positive, and each std strictly below its mean.
func (p Params) Validate() error {
	if p.AMean <= 0 || p.BMean <= 0 {
		return fmt.Errorf("fittslaw: a_mean and b_mean must be positive, got a_mean=%f b_mean=%f", p.AMean, p.BMean)
	}
	if p.AStd < 0 || p.BStd < 0 {
		return fmt.Errorf("fittslaw: a_std and b_std must be non-negative, got a_std=%f b_std=%f", p.AStd, p.BStd)
	}
	if p.AStd >= p.AMean {
		return fmt.Errorf("fittslaw: a_std (%f) must be < a_mean (%f)", p.AStd, p.AMean)
	}
	if p.BStd >= p.BMean {
		return fmt.Errorf("fittslaw: b_std (%f) must be < b_mean (%f)", p.BStd, p.BMean)
	}
	if p.MaxThroughput <= 0 {
		return fmt.Errorf("fittslaw: max_throughput must be positive, got %f", p.MaxThroughput)
	}
	if p.NominalErrorRate < 0 || p.NominalErrorRate > 1 {
		return fmt.Errorf("fittslaw: nominal_error_rate must be in [0,1], got %f", p.NominalErrorRate)
	}
	return nil
}

// IndexOfDifficulty computes Shannon's formulation, ID = log2(2D/W + 1)
// (spec §4.2 step 1). The +1 keeps ID non-negative even when D < W/2.
func IndexOfDifficulty(distance, effectiveWidth float64) float64 {
	return math.Log2(2*distance/effectiveWidth + 1)
}

// Duration samples a movement duration in seconds for the given
// distance and effective target width, using source for every random
// draw. It returns a geometry error if distance is negative or width
// is non-positive.
func Duration(source *rng.Source, params Params, distance, effectiveWidth float64) (float64, error) {
	if distance < 0 {
		return 0, fmt.Errorf("fittslaw: distance must be non-negative, got %f", distance)
	}
	if effectiveWidth <= 0 {
		return 0, fmt.Errorf("fittslaw: effective width must be positive, got %f", effectiveWidth)
	}

	id := IndexOfDifficulty(distance, effectiveWidth)

	a := clampToMinFraction(source.Gaussian(params.AMean, params.AStd), params.AMean)
	b := clampToMinFraction(source.Gaussian(params.BMean, params.BStd), params.BMean)

	duration := a + b*id

	// Enforce the hard human throughput ceiling (spec §4.2 step 4):
	// if the implied throughput exceeds max, the duration is the
	// binding constraint and must be lengthened, never shortened.
	if duration > 0 {
		throughput := id / duration
		if throughput > params.MaxThroughput {
			duration = id / params.MaxThroughput
		}
	}

	return clamp(duration, MinDuration, MaxDuration), nil
}

// Throughput returns ID/duration in bits/second for an already-sampled
// (distance, effectiveWidth, duration) triple, used by tests asserting
// the throughput ceiling invariant (spec §8.1).
func Throughput(distance, effectiveWidth, duration float64) float64 {
	if duration <= 0 {
		return math.Inf(1)
	}
	return IndexOfDifficulty(distance, effectiveWidth) / duration
}

// clampToMinFraction clamps v to at least 10% of mean (spec §4.2 step
// 2: "each clamped to >= 10% of its mean").
func clampToMinFraction(v, mean float64) float64 {
	floor := 0.1 * mean
	if v < floor {
		return floor
	}
	return v
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
