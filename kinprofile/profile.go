// Package kinprofile generates the normalized minimum-jerk
// position/velocity curve a single submovement leg follows over time
// (spec §4.3). The base curve is the 5th-order minimum-jerk polynomial;
// a monotone time-warp relocates its velocity peak to an asymmetric
// fraction of the leg's duration, matching the asymmetric human
// velocity envelope (fast acceleration, long decelerating tail).
package kinprofile

import (
	"fmt"
	"math"
)

// Bounds on the velocity-peak fraction alpha (spec §4.3: "alpha in
// [0.30, 0.50], default 0.42").
const (
	MinAlpha     = 0.30
	MaxAlpha     = 0.50
	DefaultAlpha = 0.42
)

// ValidateAlpha returns ErrInvalidConfig-class detail if alpha is out
// of the admissible range; callers in this module wrap it with the
// package-level sentinel.
func ValidateAlpha(alpha float64) error {
	if alpha < MinAlpha || alpha > MaxAlpha {
		return fmt.Errorf("kinprofile: velocity_asymmetry must be in [%.2f,%.2f], got %f", MinAlpha, MaxAlpha, alpha)
	}
	return nil
}

// Profile is a normalized progress/velocity curve sampled uniformly in
// time over [0, duration]. S and V are parallel to T: S is progress in
// [0,1], V is progress-per-second (ds/dt, not ds/du).
type Profile struct {
	T []float64
	S []float64
	V []float64
}

// Generate samples the asymmetric minimum-jerk profile for a leg of the
// given duration at sampleRateHz, with the velocity peak placed at
// alpha*duration. It does not panic: a non-positive duration or
// sampleRate yields a single-sample profile (T=0, S=1, V=0).
func Generate(duration, sampleRateHz, alpha float64) Profile {
	if duration <= 0 || sampleRateHz <= 0 {
		return Profile{T: []float64{0}, S: []float64{1}, V: []float64{0}}
	}

	n := int(math.Round(duration*sampleRateHz)) + 1
	if n < 2 {
		n = 2
	}

	t := make([]float64, n)
	s := make([]float64, n)
	v := make([]float64, n)

	dt := duration / float64(n-1)
	// Central-difference step in normalized u-space for the
	// analytically-awkward dwarp/du term; small enough to resolve the
	// warp's curvature, large enough to stay numerically stable.
	const h = 1e-4

	for i := 0; i < n; i++ {
		u := float64(i) / float64(n-1)
		tau := warp(u, alpha)
		s[i] = minimumJerk(tau)

		// v(u) = ds/du = ds0/dtau * dtau/du; differentiate the warp
		// numerically (it is piecewise-cubic but its derivative is
		// continuous only at the knot under careful matching, so a
		// central difference is both simpler and robust to rounding).
		uLo, uHi := u-h, u+h
		if uLo < 0 {
			uLo = 0
		}
		if uHi > 1 {
			uHi = 1
		}
		dTau := warp(uHi, alpha) - warp(uLo, alpha)
		dU := uHi - uLo
		var dTauDu float64
		if dU > 0 {
			dTauDu = dTau / dU
		}
		dS0dTau := minimumJerkVelocity(tau)
		// Convert ds/du (per unit of normalized progress) into
		// ds/dt (per second) by dividing by the leg's duration.
		v[i] = dS0dTau * dTauDu / duration

		t[i] = float64(i) * dt
	}

	// Clamp endpoints to remove floating-point drift (spec §4.3
	// invariant: s(0)=0, s(duration)=1 exactly).
	s[0] = 0
	s[n-1] = 1
	t[n-1] = duration
	if v[0] < 0 {
		v[0] = 0
	}
	if v[n-1] < 0 {
		v[n-1] = 0
	}

	return Profile{T: t, S: s, V: v}
}

// PeakVelocityIndex returns the index of the maximum |V| in p, or -1
// for an empty profile.
func (p Profile) PeakVelocityIndex() int {
	if len(p.V) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(p.V); i++ {
		if math.Abs(p.V[i]) > math.Abs(p.V[best]) {
			best = i
		}
	}
	return best
}

// minimumJerk is the base symmetric 5th-order polynomial,
// s0(tau) = 10*tau^3 - 15*tau^4 + 6*tau^5, tau in [0,1].
func minimumJerk(tau float64) float64 {
	tau = clamp01(tau)
	t2 := tau * tau
	t3 := t2 * tau
	t4 := t3 * tau
	t5 := t4 * tau
	return 10*t3 - 15*t4 + 6*t5
}

// minimumJerkVelocity is the analytic derivative ds0/dtau,
// 30*tau^2 - 60*tau^3 + 30*tau^4.
func minimumJerkVelocity(tau float64) float64 {
	tau = clamp01(tau)
	t2 := tau * tau
	t3 := t2 * tau
	t4 := t3 * tau
	return 30*t2 - 60*t3 + 30*t4
}

// warp maps u in [0,1] to tau in [0,1] via a piecewise-cubic monotone
// time warp satisfying warp(0)=0, warp(1)=1, warp(0.5)=alpha, with
// matched first derivatives at the u=0.5 knot (spec §4.3).
//
// The three control points (0,0), (0.5,alpha), (1,1) are joined by two
// cubic Hermite segments. The knot tangent is the chord slope across
// both segments, dy/dx=1 (Catmull-Rom style); the two outer tangents
// are the one-sided chord slopes to the knot. This guarantees the
// knot's first derivative matches from both sides by construction.
func warp(u, alpha float64) float64 {
	u = clamp01(u)

	if u <= 0.5 {
		t := u / 0.5
		// m0 = dy/dx at u=0 (chord to the knot) scaled by the segment
		// width 0.5; m1 = dy/dx at the knot (chord across both
		// segments, =1) scaled the same way.
		return hermite(t, 0, alpha, alpha, 0.5)
	}
	t := (u - 0.5) / 0.5
	return hermite(t, alpha, 1, 0.5, 1-alpha)
}

// hermite evaluates the standard cubic Hermite interpolant on x in
// [0,1] with endpoint values p0,p1 and endpoint tangents m0,m1 (already
// scaled to the unit segment).
func hermite(x, p0, p1, m0, m1 float64) float64 {
	x = clamp01(x)
	x2 := x * x
	x3 := x2 * x
	h00 := 2*x3 - 3*x2 + 1
	h10 := x3 - 2*x2 + x
	h01 := -2*x3 + 3*x2
	h11 := x3 - x2
	return h00*p0 + h10*m0 + h01*p1 + h11*m1
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
