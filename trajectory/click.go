package trajectory

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"motorik/common"
	"motorik/errs"
	"motorik/fittslaw"
	"motorik/kinprofile"
	"motorik/noise"
	"motorik/submovement"
)

// ClickParams controls the pre-click verification dwell, the
// mouse_down/mouse_up hold, and (SPEC_FULL-supplemented) the
// inter-click interval for a double-click (spec §4.7 step 4 and §6's
// click.* configuration group). Durations are in seconds; Mu/Sigma
// pairs parameterize rng.Source.LogNormal/TruncatedGaussian in
// log-space or linear space as noted per field.
type ClickParams struct {
	DurationMu, DurationSigma float64 // log-space; hold duration ~ LogNormal
	DwellMu, DwellSigma       float64 // log-space; pre-click dwell ~ LogNormal

	InterClickMu, InterClickSigma float64 // linear seconds; double-click gap ~ TruncatedGaussian
	InterClickLo, InterClickHi    float64
}

// Hold/dwell clamp bounds (spec §4.7 step 4 and S3's scenario bounds).
const (
	minHoldSec  = 0.050
	maxHoldSec  = 0.350
	minDwellSec = 0.100
	maxDwellSec = 0.600
)

// DefaultClickParams returns values producing a hold duration near
// 100 ms and a dwell near 250 ms once exponentiated, matching spec
// §4.7's "duration_mu ... dwell_mu ≈ 250 ms" guidance.
func DefaultClickParams() ClickParams {
	return ClickParams{
		DurationMu:      math.Log(0.10),
		DurationSigma:   0.25,
		DwellMu:         math.Log(0.25),
		DwellSigma:      0.25,
		InterClickMu:    0.15,
		InterClickSigma: 0.04,
		InterClickLo:    0.08,
		InterClickHi:    0.35,
	}
}

// Validate enforces non-negative spreads and a well-formed
// inter-click range.
func (c ClickParams) Validate() error {
	if c.DurationSigma < 0 || c.DwellSigma < 0 {
		return fmt.Errorf("click: duration_sigma/dwell_sigma must be non-negative")
	}
	if c.InterClickSigma < 0 {
		return fmt.Errorf("click: inter_click_sigma must be non-negative")
	}
	if c.InterClickLo <= 0 || c.InterClickHi <= c.InterClickLo {
		return fmt.Errorf("click: inter_click range must satisfy 0 < lo < hi")
	}
	return nil
}

// appendClickEvents samples a pre-click dwell and a mouse_down/up hold
// relative to trace's current span and appends the resulting events
// (spec §4.7 step 4).
func (s *Session) appendClickEvents(trace common.Trace, button common.Button) common.Trace {
	base := trace.Duration()
	dwell := clamp(s.source.LogNormal(s.settings.Click.DwellMu, s.settings.Click.DwellSigma), minDwellSec, maxDwellSec)
	hold := clamp(s.source.LogNormal(s.settings.Click.DurationMu, s.settings.Click.DurationSigma), minHoldSec, maxHoldSec)

	downT := base + dwell
	upT := downT + hold

	trace.Events = append(trace.Events,
		common.TraceEvent{T: downT, Kind: common.EventMouseDown, Button: button},
		common.TraceEvent{T: upT, Kind: common.EventMouseUp, Button: button},
	)
	return trace
}

// appendDoubleClickEvents samples the inter-click interval
// (SPEC_FULL's double-click feature) and appends a second down/up
// cycle after the first.
func (s *Session) appendDoubleClickEvents(trace common.Trace, button common.Button) common.Trace {
	n := len(trace.Events)
	if n == 0 {
		return trace
	}
	lastUp := trace.Events[n-1].T
	gap := s.source.TruncatedGaussian(s.settings.Click.InterClickMu, s.settings.Click.InterClickSigma, s.settings.Click.InterClickLo, s.settings.Click.InterClickHi)
	hold := clamp(s.source.LogNormal(s.settings.Click.DurationMu, s.settings.Click.DurationSigma), minHoldSec, maxHoldSec)

	downT := lastUp + gap
	upT := downT + hold
	trace.Events = append(trace.Events,
		common.TraceEvent{T: downT, Kind: common.EventMouseDown, Button: button},
		common.TraceEvent{T: upT, Kind: common.EventMouseUp, Button: button},
	)
	return trace
}

// Click is the public click entry point (spec §6: "click(at?,
// button?, double?) -> void"). When at is non-nil, a near-zero-distance
// leg is synthesized first so the click carries the same
// signal-dependent/tremor micro-jitter a real movement would (spec
// S3's "< 3 px drift" bound); when at is nil, the click fires in place
// with no movement samples.
func (s *Session) Click(ctx context.Context, at *common.Point, button common.Button, double bool) (common.Trace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trace := common.Trace{MoveID: uuid.NewString()}

	if at != nil {
		if !at.IsFinite() {
			return trace, fmt.Errorf("%w: click target is not finite", errs.ErrInvalidGeometry)
		}
		nominal := common.Target{Center: *at, Width: 1, Height: 1}
		duration, err := fittslaw.Duration(s.source, s.settings.Fitts, 0, nominal.EffectiveWidth())
		if err != nil {
			return trace, fmt.Errorf("%w: %s", errs.ErrInvalidGeometry, err)
		}
		plan := submovement.Build(s.source, s.settings.Submovement, *at, nominal)
		trace.Samples = s.buildLegSamples(*at, plan, plan.Durations(duration))
	}

	trace = s.appendClickEvents(trace, button)
	if double {
		trace = s.appendDoubleClickEvents(trace, button)
	}

	watchCtx, cancel := context.WithTimeout(ctx, watchdogDeadline(trace))
	defer cancel()
	if err := s.drive(watchCtx, trace); err != nil {
		return trace, err
	}
	return trace, nil
}

// Scroll is the public scroll entry point (spec §6: "scroll(dx, dy) ->
// void"). SPEC_FULL supplements §4: scroll magnitude over time reuses
// the §4.3 minimum-jerk profile as a 1-D progress curve (no path
// geometry — there is no second endpoint or curvature for a scroll),
// driving a cumulative (dx, dy) offset through the driver's Scroll
// operation once per sample.
func (s *Session) Scroll(ctx context.Context, dx, dy float64) (common.Trace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	magnitude := math.Hypot(dx, dy)
	trace := common.Trace{MoveID: uuid.NewString()}
	if magnitude == 0 {
		return trace, nil
	}

	// Reuses fittslaw.Duration with a nominal 1 px "target width" to
	// get a magnitude-scaled duration without inventing a second Fitts
	// model for scroll gestures.
	duration, err := fittslaw.Duration(s.source, s.settings.Fitts, magnitude, 1)
	if err != nil {
		return trace, fmt.Errorf("%w: %s", errs.ErrInvalidGeometry, err)
	}
	profile := kinprofile.Generate(duration, s.settings.SampleRateHz, s.settings.VelocityAsymmetry)

	samples := make([]common.Sample, len(profile.S))
	for i, progress := range profile.S {
		samples[i] = common.Sample{T: profile.T[i], X: progress * dx, Y: progress * dy}
	}
	trace.Samples = samples

	watchCtx, cancel := context.WithTimeout(ctx, watchdogDeadline(trace))
	defer cancel()

	start := time.Now()
	var prevX, prevY float64
	for _, sample := range samples {
		if err := s.waitUntil(watchCtx, start, sample.T); err != nil {
			return trace, err
		}
		if err := s.driver.Scroll(watchCtx, sample.X-prevX, sample.Y-prevY); err != nil {
			return trace, fmt.Errorf("%w: %s", errs.ErrDriverError, err)
		}
		prevX, prevY = sample.X, sample.Y
	}
	return trace, nil
}

// Settle emits a few idle micro-jitter samples at the current position
// (SPEC_FULL's supplemented idle-jitter feature): a short burst of
// tremor-only noise around a fixed point, so a caller holding the
// pointer still between actions doesn't present an inhumanly frozen
// cursor to a behavioral-biometrics observer.
func (s *Session) Settle(ctx context.Context, at common.Point, durationSec float64) (common.Trace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if durationSec <= 0 {
		durationSec = 0.2
	}
	n := int(durationSec*s.settings.SampleRateHz) + 1
	if n < 2 {
		n = 2
	}

	t := make([]float64, n)
	pts := make([]common.Point, n)
	dt := durationSec / float64(n-1)
	for i := 0; i < n; i++ {
		t[i] = float64(i) * dt
		pts[i] = at
	}

	jittered := noise.Inject(s.source, s.settings.Noise, pts, t, at)

	samples := make([]common.Sample, n)
	for i, p := range jittered {
		samples[i] = common.Sample{T: t[i], X: p.X, Y: p.Y}
	}
	trace := common.Trace{MoveID: uuid.NewString(), Samples: samples}

	watchCtx, cancel := context.WithTimeout(ctx, watchdogDeadline(trace))
	defer cancel()
	if err := s.drive(watchCtx, trace); err != nil {
		return trace, err
	}
	return trace, nil
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
