// Package noise adds signal-dependent gaussian jitter and a band-pass
// physiological tremor signal to an already-sampled (x, y, t) leg
// (spec §4.5). Both components are generated once per leg in a
// pre-computation step (the tremor signal needs the whole leg to
// band-pass filter), keeping the per-sample hot path O(1) as spec §5
// requires.
package noise

import (
	"fmt"
	"math"

	"motorik/common"
	"motorik/rng"
)

// Params controls the noise model (spec's NoiseParams).
type Params struct {
	KSignal      float64 // unitless signal-dependent noise coefficient
	TremorFreqHz float64 // center of the 8-12 Hz physiological tremor band
	TremorAmpPx  float64 // target post-filter tremor RMS, in pixels
	SampleRateHz float64
}

// DefaultParams returns values within the ranges spec §3 documents.
func DefaultParams() Params {
	return Params{
		KSignal:      0.03,
		TremorFreqHz: 10.0,
		TremorAmpPx:  0.6,
		SampleRateHz: 60.0,
	}
}

// tremorBandwidthHz is the fixed full width of the tremor pass-band,
// centered on TremorFreqHz: the band is TremorFreqHz +/- 1 Hz.
const tremorBandwidthHz = 2.0

// Validate enforces spec §3's NoiseParams constraints: tremor frequency
// within [8,12] Hz and a sample rate with enough Nyquist margin to
// resolve it (>= 4x the tremor frequency).
func (p Params) Validate() error {
	if p.KSignal < 0 {
		return fmt.Errorf("noise: k_signal must be non-negative, got %f", p.KSignal)
	}
	if p.TremorFreqHz < 8 || p.TremorFreqHz > 12 {
		return fmt.Errorf("noise: tremor_freq_hz must be in [8,12], got %f", p.TremorFreqHz)
	}
	if p.TremorAmpPx < 0 {
		return fmt.Errorf("noise: tremor_amp_px must be non-negative, got %f", p.TremorAmpPx)
	}
	if p.SampleRateHz < 4*p.TremorFreqHz {
		return fmt.Errorf("noise: sample_rate_hz (%f) must be >= 4x tremor_freq_hz (%f) for Nyquist margin", p.SampleRateHz, p.TremorFreqHz)
	}
	return nil
}

// Inject adds signal-dependent noise and physiological tremor to pts
// (positions already produced by pathgeom.Path) sampled at uniform
// times t, then snaps the final point back to finalPoint to preserve
// the leg's endpoint contract (spec §4.5 "Endpoint integrity"). It
// returns a new slice; pts is not modified.
func Inject(source *rng.Source, params Params, pts []common.Point, t []float64, finalPoint common.Point) []common.Point {
	n := len(pts)
	if n == 0 {
		return pts
	}

	speeds := instantaneousSpeeds(pts, t)

	dxTremor := tremorSignal(source, params, n)
	dyTremor := tremorSignal(source, params, n)

	out := make([]common.Point, n)
	for i := 0; i < n; i++ {
		sdSigma := params.KSignal * speeds[i]
		ndx, ndy := source.BivariateNormal(sdSigma)
		out[i] = common.Point{
			X: pts[i].X + ndx + dxTremor[i],
			Y: pts[i].Y + ndy + dyTremor[i],
		}
	}

	if n > 0 {
		out[n-1] = finalPoint
	}
	return out
}

// instantaneousSpeeds returns per-sample speed estimates in px/s,
// computed from consecutive position/time deltas. The first sample's
// speed is defined as the second sample's speed (no preceding delta
// to measure), so the signal-dependent noise at the leg's start is not
// spuriously zero.
func instantaneousSpeeds(pts []common.Point, t []float64) []float64 {
	n := len(pts)
	speeds := make([]float64, n)
	for i := 1; i < n; i++ {
		dt := t[i] - t[i-1]
		if dt <= 0 {
			speeds[i] = speeds[i-1]
			continue
		}
		speeds[i] = pts[i].Dist(pts[i-1]) / dt
	}
	if n > 1 {
		speeds[0] = speeds[1]
	}
	return speeds
}

// tremorSignal generates n IID gaussian samples, band-passes them to
// params.TremorFreqHz +/- tremorBandwidthHz/2, and rescales the result
// to an RMS of params.TremorAmpPx (spec §4.5: "scale to target RMS
// tremor_amp_px, measured post-filter").
func tremorSignal(source *rng.Source, params Params, n int) []float64 {
	if n == 0 || params.TremorAmpPx <= 0 {
		return make([]float64, n)
	}

	raw := make([]float64, n)
	for i := range raw {
		raw[i] = source.Gaussian(0, 1)
	}

	q := params.TremorFreqHz / tremorBandwidthHz
	filtered := zeroPhaseBandpass(raw, params.TremorFreqHz, q, params.SampleRateHz)

	signalRMS := rms(filtered)
	if signalRMS < 1e-12 {
		return filtered
	}
	scale := params.TremorAmpPx / signalRMS
	for i := range filtered {
		filtered[i] *= scale
	}
	return filtered
}

// rms returns the root-mean-square of x about zero, used for the
// tremor signal's post-filter amplitude scaling. gonum/stat has no
// RMS-about-zero primitive, so it's hand-written here rather than
// contorting stat.StdDev (which centers on the mean) to do a different
// job.
func rms(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sumSq float64
	for _, v := range x {
		sumSq += v * v
	}
	return math.Sqrt(sumSq / float64(len(x)))
}
