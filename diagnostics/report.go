// Package diagnostics analyzes an already-synthesized trace against
// the human motor-control signatures spec §4.8 defines: throughput,
// straightness, peak-velocity timing, path RMSE, and tremor band
// power. Diagnose never mutates its input; it is a pure read over a
// finished Trace, the same role crownet/storage/sqlite_logger.go plays
// pulling a structured summary out of live simulation state — but
// without the database, since this module persists nothing (spec §6).
// The five metrics are independent of each other, so they are computed
// concurrently via golang.org/x/sync/errgroup, grounded on
// jndunlap-gohypo's go.mod (which carries both gonum and x/sync as
// direct dependencies). Only the throughput stage can fail (a
// non-positive target width), but errgroup.Group is still the right
// tool over a plain sync.WaitGroup: Wait() joins that one fallible
// stage's error with the other four's bare completion without a
// separate channel or mutex to shuttle the error out.
package diagnostics

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	"motorik/common"
	"motorik/errs"
	"motorik/fittslaw"
	"motorik/pathgeom"
)

// errShortTrace is returned when Diagnose is given a trace too short
// for any metric to be meaningful.
var errShortTrace = fmt.Errorf("%w: trace must have at least two samples", errs.ErrInvalidGeometry)

// Human pass bands from spec §4.8's table, except straightness: §8's
// TESTABLE PROPERTIES section states a wider universal invariant for it
// ("for traces >= 10px, straightness index in [0.75, 0.99]") than §4.8's
// descriptive table figure ([0.80, 0.95]). §8 is the section spec.md
// names as the one verified by its own scenario/property tests, so
// OverallValid gates on that wider, authoritative band rather than the
// table's narrower illustrative one (see DESIGN.md's Open Question
// decisions — this is also what keeps long legs' curvature-cap-induced
// high straightness, a side effect of capping path RMSE for the same
// legs, a pass rather than a spurious failure).
const (
	straightnessLo = 0.75
	straightnessHi = 0.99

	peakVelocityFractionLo = 0.38
	peakVelocityFractionHi = 0.45

	pathRMSELoPx = 10.0
	pathRMSEHiPx = 25.0

	tremorBandLoHz    = 8.0
	tremorBandHiHz    = 12.0
	tremorBandMarginHz = 2.0

	// stationaryTailSec is the trailing window used for the tremor
	// band check (spec §4.5: "first and last 100 ms at rest").
	stationaryTailSec = 0.100

	// minTremorSamples is the smallest window FFT can meaningfully
	// resolve to within tremorBandMarginHz.
	minTremorSamples = 8
)

// Report is the per-metric result of Diagnose, plus the conjunction
// OverallValid (spec §4.8: "per-metric booleans plus an aggregate
// overall_valid").
type Report struct {
	ThroughputBitsPerSec float64
	ThroughputValid      bool

	StraightnessIndex float64
	StraightnessValid bool

	PeakVelocityFraction float64
	PeakVelocityValid    bool

	PathRMSEPx float64
	PathRMSEValid bool

	TremorPeakHz    float64
	TremorBandValid bool

	OverallValid bool
}

// Diagnose computes every metric in Report for trace against
// targetWidth (the effective width used for the throughput/ID
// calculation). It returns an error if trace has fewer than two
// samples, or if targetWidth is non-positive (the latter surfaced by
// the throughput stage through errgroup's joined error).
func Diagnose(trace common.Trace, targetWidth float64) (Report, error) {
	if len(trace.Samples) < 2 {
		return Report{}, errShortTrace
	}

	var (
		throughput                         float64
		straightness                       float64
		peakVelocityFraction               float64
		pathRMSE                           float64
		tremorPeakHz                       float64
		tremorValid                        bool
	)

	g := new(errgroup.Group)

	g.Go(func() error {
		var err error
		throughput, err = computeThroughput(trace, targetWidth)
		return err
	})
	g.Go(func() error {
		straightness = computeStraightness(trace)
		return nil
	})
	g.Go(func() error {
		peakVelocityFraction = computePeakVelocityFraction(trace)
		return nil
	})
	g.Go(func() error {
		pathRMSE = computePathRMSE(trace)
		return nil
	})
	g.Go(func() error {
		tremorPeakHz, tremorValid = computeTremorBand(trace)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{
		ThroughputBitsPerSec: throughput,
		ThroughputValid:      throughput <= fittslaw.DefaultParams().MaxThroughput,
		StraightnessIndex:    straightness,
		StraightnessValid:    straightness >= straightnessLo && straightness <= straightnessHi,
		PeakVelocityFraction: peakVelocityFraction,
		PeakVelocityValid:    peakVelocityFraction >= peakVelocityFractionLo && peakVelocityFraction <= peakVelocityFractionHi,
		PathRMSEPx:           pathRMSE,
		PathRMSEValid:        pathRMSE >= pathRMSELoPx && pathRMSE <= pathRMSEHiPx,
		TremorPeakHz:         tremorPeakHz,
		TremorBandValid:      tremorValid,
	}
	report.OverallValid = report.ThroughputValid && report.StraightnessValid &&
		report.PeakVelocityValid && report.PathRMSEValid && report.TremorBandValid
	return report, nil
}

// computeThroughput returns log2(2D/W+1) / (t_end - t_start) for the
// trace's net displacement D (spec §4.8's throughput formula). It is
// the one metric with a real precondition Diagnose doesn't already
// check up front: targetWidth feeds fittslaw's index-of-difficulty
// formula as a divisor, so a non-positive width is a genuine geometry
// error rather than a degenerate-but-defined zero.
func computeThroughput(trace common.Trace, targetWidth float64) (float64, error) {
	if targetWidth <= 0 {
		return 0, fmt.Errorf("%w: target width must be positive, got %f", errs.ErrInvalidGeometry, targetWidth)
	}
	duration := trace.Duration()
	if duration <= 0 {
		return 0, nil
	}
	distance := trace.End().Dist(trace.Start())
	id := fittslaw.IndexOfDifficulty(distance, targetWidth)
	return id / duration, nil
}

// computeStraightness returns chord/arc_length.
func computeStraightness(trace common.Trace) float64 {
	pts := tracePoints(trace)
	arc := pathgeom.ArcLength(pts)
	if arc <= 0 {
		return 1
	}
	chord := pathgeom.ChordLength(trace.Start(), trace.End())
	return chord / arc
}

// computePeakVelocityFraction returns argmax(|v|)/N using the same
// consecutive-delta speed estimate the noise package uses.
func computePeakVelocityFraction(trace common.Trace) float64 {
	n := len(trace.Samples)
	if n < 2 {
		return 0
	}
	best := 0
	var bestSpeed float64
	for i := 1; i < n; i++ {
		dt := trace.Samples[i].T - trace.Samples[i-1].T
		if dt <= 0 {
			continue
		}
		speed := trace.Samples[i].Point().Dist(trace.Samples[i-1].Point()) / dt
		if speed > bestSpeed {
			bestSpeed = speed
			best = i
		}
	}
	return float64(best) / float64(n-1)
}

// computePathRMSE returns the RMS perpendicular distance from the
// start-end chord, via gonum/stat's Mean over squared distances (the
// textbook RMS decomposition, sqrt(mean(x^2))).
func computePathRMSE(trace common.Trace) float64 {
	pts := tracePoints(trace)
	dists := pathgeom.PerpendicularDistances(trace.Start(), trace.End(), pts)
	squares := make([]float64, len(dists))
	for i, d := range dists {
		squares[i] = d * d
	}
	meanSq := stat.Mean(squares, nil)
	return sqrtNonNegative(meanSq)
}

// computeTremorBand FFTs the trace's stationary tail (its last
// stationaryTailSec) and reports whether the dominant frequency falls
// within the physiological tremor band, widened by tremorBandMarginHz
// (spec §8.7: "FFT peak lies within the configured tremor band ± 2
// Hz").
func computeTremorBand(trace common.Trace) (peakHz float64, valid bool) {
	tail, sampleRateHz := stationaryTail(trace)
	if len(tail) < minTremorSamples {
		return 0, false
	}

	fft := fourier.NewFFT(len(tail))
	coeffs := fft.Coefficients(nil, tail)

	bestBin := 0
	var bestMag float64
	for i, c := range coeffs {
		mag := realImagMagnitude(c)
		if mag > bestMag {
			bestMag = mag
			bestBin = i
		}
	}
	peakHz = fft.Freq(bestBin) * sampleRateHz
	valid = peakHz >= tremorBandLoHz-tremorBandMarginHz && peakHz <= tremorBandHiHz+tremorBandMarginHz
	return peakHz, valid
}

// stationaryTail returns the mean-centered x series for the trailing
// stationaryTailSec of trace plus the trace's (assumed uniform) sample
// rate, derived from its mean inter-sample interval. When that window
// holds fewer than minTremorSamples samples, the whole trace is used
// instead.
func stationaryTail(trace common.Trace) ([]float64, float64) {
	n := len(trace.Samples)
	if n < 2 {
		return nil, 0
	}
	dt := (trace.Samples[n-1].T - trace.Samples[0].T) / float64(n-1)
	if dt <= 0 {
		return nil, 0
	}
	sampleRateHz := 1 / dt

	tailCount := int(stationaryTailSec * sampleRateHz)
	if tailCount > n {
		tailCount = n
	}
	if tailCount < minTremorSamples {
		tailCount = n
	}

	start := n - tailCount
	out := make([]float64, tailCount)
	mean := stat.Mean(xCoords(trace.Samples[start:]), nil)
	for i, sample := range trace.Samples[start:] {
		out[i] = sample.X - mean
	}
	return out, sampleRateHz
}

func xCoords(samples []common.Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.X
	}
	return out
}

func tracePoints(trace common.Trace) []common.Point {
	pts := make([]common.Point, len(trace.Samples))
	for i, s := range trace.Samples {
		pts[i] = s.Point()
	}
	return pts
}

func realImagMagnitude(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

func sqrtNonNegative(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}
