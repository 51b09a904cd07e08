// Butterworth-style band-pass filtering for the physiological tremor
// signal. Adapted in shape from
// manhatma-sst/gosst/formats/psst/modified_sinc_smoother.go and
// whittaker_henderson.go: a small filter type holding precomputed
// coefficients plus an Apply method, with the cutoff/Q relationship
// documented the way that file documents its own lambda/cutoff table.
// Per spec §9's design note, the filter is implemented directly
// instead of pulling in a heavyweight DSP dependency; a constant-0dB-
// peak-gain biquad band-pass (the RBJ Audio EQ Cookbook formulation)
// gives a tremor-band peak accurate to well within the spec's ±0.5 Hz
// tolerance.
package noise

import "math"

// biquad holds one second-order IIR section's feed-forward (b) and
// feedback (a) coefficients, already normalized so a0=1.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// newBandpassBiquad designs a constant-peak-gain band-pass biquad
// centered at centerHz with quality factor q, sampled at sampleRateHz.
func newBandpassBiquad(centerHz, q, sampleRateHz float64) biquad {
	w0 := 2 * math.Pi * centerHz / sampleRateHz
	alpha := math.Sin(w0) / (2 * q)
	cosW0 := math.Cos(w0)

	a0 := 1 + alpha
	return biquad{
		b0: alpha / a0,
		b1: 0,
		b2: -alpha / a0,
		a1: (-2 * cosW0) / a0,
		a2: (1 - alpha) / a0,
	}
}

// apply runs the biquad once over x (direct form I) and returns a new
// slice; x is not modified.
func (f biquad) apply(x []float64) []float64 {
	y := make([]float64, len(x))
	var x1, x2, y1, y2 float64
	for i, xi := range x {
		yi := f.b0*xi + f.b1*x1 + f.b2*x2 - f.a1*y1 - f.a2*y2
		y[i] = yi
		x2, x1 = x1, xi
		y2, y1 = y1, yi
	}
	return y
}

// zeroPhaseBandpass filters x forward then backward through the same
// biquad (a simplified filtfilt), cancelling the phase distortion a
// single IIR pass would introduce, so the tremor signal's zero
// crossings are not shifted relative to the trace it's added to.
func zeroPhaseBandpass(x []float64, centerHz, q, sampleRateHz float64) []float64 {
	if len(x) == 0 {
		return x
	}
	f := newBandpassBiquad(centerHz, q, sampleRateHz)
	forward := f.apply(x)
	reverse(forward)
	backward := f.apply(forward)
	reverse(backward)
	return backward
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
