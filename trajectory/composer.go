// Package trajectory is the integrative component (spec §4.7): it
// samples a Fitts' Law duration, plans submovements, lifts each leg
// through the minimum-jerk profile, path geometry, and noise injector,
// stitches the legs into one timestamped Trace, and drives a Driver
// through it. Its overall request shape — validate, build a plan,
// dispatch through a fixed sequence of stages, tear down — is modeled
// on crownet/cli/orchestrator.go's Run() (setup, dispatch by kind,
// teardown); the per-leg pipeline of independent stages mirrors the
// stage chain of crownet/pulse/strategy.go, with each stage a direct
// call into its own package (kinprofile, pathgeom, noise) rather than
// an interface.
package trajectory

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"motorik/common"
	"motorik/errs"
	"motorik/fittslaw"
	"motorik/kinprofile"
	"motorik/noise"
	"motorik/pathgeom"
	"motorik/rng"
	"motorik/submovement"
)

// Logger is the warning-level seam a Session logs through; it is
// satisfied directly by the standard library's *log.Logger, so
// callers pass one in or leave it nil for silence. Nothing in this
// module logs at any other level or to any other destination — this
// is a library, not a service.
type Logger interface {
	Printf(format string, v ...any)
}

// Settings aggregates every per-session parameter group named in spec
// §6's configuration surface. It is a plain value object, validated
// once at session construction (crownet/config/config.go's
// Default+Validate pattern).
type Settings struct {
	Fitts             fittslaw.Params
	Submovement       submovement.Params
	VelocityAsymmetry float64 // alpha, spec §4.3
	Curvature         float64 // c, spec §4.4
	Noise             noise.Params
	Click             ClickParams
	SampleRateHz      float64
}

// DefaultSettings returns the documented defaults for every group.
func DefaultSettings() Settings {
	return Settings{
		Fitts:             fittslaw.DefaultParams(),
		Submovement:       submovement.DefaultParams(),
		VelocityAsymmetry: kinprofile.DefaultAlpha,
		Curvature:         pathgeom.DefaultCurvature,
		Noise:             noise.DefaultParams(),
		Click:             DefaultClickParams(),
		SampleRateHz:      60.0,
	}
}

// Validate checks every group, short-circuiting on the first failure.
func (s Settings) Validate() error {
	if err := s.Fitts.Validate(); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInvalidConfig, err)
	}
	if err := s.Submovement.Validate(); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInvalidConfig, err)
	}
	if err := kinprofile.ValidateAlpha(s.VelocityAsymmetry); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInvalidConfig, err)
	}
	if s.Curvature < 0 || s.Curvature > pathgeom.MaxCurvature {
		return fmt.Errorf("%w: curvature must be in [0,%.2f], got %f", errs.ErrInvalidConfig, pathgeom.MaxCurvature, s.Curvature)
	}
	if err := s.Noise.Validate(); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInvalidConfig, err)
	}
	if err := s.Click.Validate(); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInvalidConfig, err)
	}
	if s.SampleRateHz <= 0 {
		return fmt.Errorf("%w: sample_rate_hz must be positive, got %f", errs.ErrInvalidConfig, s.SampleRateHz)
	}
	return nil
}

// Session owns the one PRNG source, the one Driver, and the mutex that
// serializes every Move/Click/Scroll/Settle call against it (spec §5:
// "a per-session mutex serializes execution ... the PRNG is owned by
// the session and accessed only under that mutex").
type Session struct {
	mu       sync.Mutex
	driver   Driver
	clock    Clock
	source   *rng.Source
	settings Settings
	logger   Logger
}

// NewSession constructs a Session. seed drives every stochastic draw;
// two Sessions built with the same seed and driven through an
// identical call sequence produce identical trace samples and events
// (spec §8.8). Each Trace's MoveID is a fresh random UUID and differs
// between them.
func NewSession(driver Driver, seed int64, settings Settings) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	source := rng.New(seed)
	s := &Session{
		driver:   driver,
		clock:    RealClock,
		source:   source,
		settings: settings,
	}
	source.SetTruncationFallbackHook(s.logTruncationFallback)
	return s, nil
}

// SetClock overrides the Session's Clock; intended for tests, which
// install a clock that returns immediately instead of sleeping in
// real wall-clock time.
func (s *Session) SetClock(c Clock) {
	s.clock = c
}

// SetLogger installs the Logger a Session warns through. A nil Logger
// (the default) silences every warning; this never affects Move,
// Click, Scroll, or Settle's return values.
func (s *Session) SetLogger(l Logger) {
	s.logger = l
}

// logTruncationFallback is rng.Source's hook, fired whenever
// TruncatedGaussian exhausts its rejection-sampling budget and falls
// back to clamping (spec §4.1). It is not an error: the sampler still
// returns an in-range value, just a statistically biased one.
func (s *Session) logTruncationFallback() {
	if s.logger != nil {
		s.logger.Printf("motorik: truncated-gaussian sampler exhausted its rejection budget, falling back to clamping")
	}
}

// Move is the public movement entry point (spec §6: "move(start,
// target, click?, button?) -> Trace"). It samples a duration, plans
// submovements, stitches their legs into a single trace, and drives
// the pointer through it sample by sample.
func (s *Session) Move(ctx context.Context, start common.Point, target common.Target, click bool, button common.Button) (common.Trace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !start.IsFinite() || !target.Center.IsFinite() || target.Width <= 0 || target.Height <= 0 {
		return common.Trace{}, fmt.Errorf("%w: invalid start/target for move", errs.ErrInvalidGeometry)
	}

	distance := target.Center.Dist(start)
	duration, err := fittslaw.Duration(s.source, s.settings.Fitts, distance, target.EffectiveWidth())
	if err != nil {
		return common.Trace{}, fmt.Errorf("%w: %s", errs.ErrInvalidGeometry, err)
	}

	plan := submovement.Build(s.source, s.settings.Submovement, start, target)
	durations := plan.Durations(duration)

	samples := s.buildLegSamples(start, plan, durations)

	moveID := uuid.NewString()
	trace := common.Trace{MoveID: moveID, Samples: samples}

	if click {
		trace = s.appendClickEvents(trace, button)
	}

	watchCtx, cancel := context.WithTimeout(ctx, watchdogDeadline(trace))
	defer cancel()

	if err := s.drive(watchCtx, trace); err != nil {
		return trace, err
	}
	return trace, nil
}

// watchdogDeadline enforces spec §5's "wall-clock watchdog of 2 x T",
// generalized to the trace's full span (movement samples plus any
// trailing click events) with a floor so a near-instant trace (e.g. a
// pure click) still gets a workable grace period.
func watchdogDeadline(trace common.Trace) time.Duration {
	span := trace.Duration()
	if n := len(trace.Events); n > 0 {
		if t := trace.Events[n-1].T; t > span {
			span = t
		}
	}
	d := time.Duration(2 * span * float64(time.Second))
	const floor = 200 * time.Millisecond
	if d < floor {
		d = floor
	}
	return d
}

// buildLegSamples stitches the minimum-jerk -> path -> noise pipeline
// across every submovement leg, skipping the first sample of every
// leg after the first to avoid duplicating the shared junction point
// (spec §4.7 step 3d).
func (s *Session) buildLegSamples(start common.Point, plan submovement.Plan, durations []float64) []common.Sample {
	var samples []common.Sample
	prev := start
	var tOffset float64

	for i, leg := range plan.Legs {
		legDuration := durations[i]
		profile := kinprofile.Generate(legDuration, s.settings.SampleRateHz, s.settings.VelocityAsymmetry)

		chord := pathgeom.ChordLength(prev, leg.Endpoint)
		curvature := s.settings.Curvature
		if i > 0 {
			curvature *= pathgeom.AttenuateShortLeg(chord)
		}
		sign := s.source.SignChoice()

		path := pathgeom.Path(prev, leg.Endpoint, profile.S, curvature, sign)
		noisy := noise.Inject(s.source, s.settings.Noise, path, profile.T, leg.Endpoint)
		if i == 0 && len(noisy) > 0 {
			// The trace's first sample is the requested start, unperturbed.
			noisy[0] = start
		}

		startIdx := 0
		if i > 0 {
			startIdx = 1
		}
		for j := startIdx; j < len(noisy); j++ {
			samples = append(samples, common.Sample{
				T: tOffset + profile.T[j],
				X: noisy[j].X,
				Y: noisy[j].Y,
			})
		}
		tOffset += legDuration
		prev = leg.Endpoint
	}

	return samples
}

// drive dispatches every sample through s.driver at its scheduled wall
// time, and fires any button-down/up events already appended to
// trace.Events at their own scheduled times, enforcing the watchdog
// and cancellation contracts of spec §5.
func (s *Session) drive(ctx context.Context, trace common.Trace) error {
	start := time.Now()
	eventIdx := 0
	downFired := false
	var downButton common.Button

	fireEventsUpTo := func(t float64) error {
		for eventIdx < len(trace.Events) && trace.Events[eventIdx].T <= t {
			ev := trace.Events[eventIdx]
			if err := s.waitUntil(ctx, start, ev.T); err != nil {
				return s.cancelDuringClick(ctx, downFired, downButton, err)
			}
			switch ev.Kind {
			case common.EventMouseDown:
				if err := s.driver.ButtonDown(ctx, ev.Button); err != nil {
					return fmt.Errorf("%w: %s", errs.ErrDriverError, err)
				}
				downFired = true
				downButton = ev.Button
			case common.EventMouseUp:
				if err := s.driver.ButtonUp(ctx, ev.Button); err != nil {
					return fmt.Errorf("%w: %s", errs.ErrDriverError, err)
				}
				downFired = false
			}
			eventIdx++
		}
		return nil
	}

	for _, sample := range trace.Samples {
		if err := fireEventsUpTo(sample.T); err != nil {
			return err
		}
		if err := s.waitUntil(ctx, start, sample.T); err != nil {
			return s.cancelDuringClick(ctx, downFired, downButton, err)
		}
		if err := s.driver.MoveTo(ctx, sample.X, sample.Y); err != nil {
			return fmt.Errorf("%w: %s", errs.ErrDriverError, err)
		}
	}
	if err := fireEventsUpTo(math.Inf(1)); err != nil {
		return err
	}
	return nil
}

// waitUntil sleeps (via s.clock) until targetT seconds after start,
// translating a context deadline exceeded into ErrDriverStalled and
// any other cancellation into ErrCancelled.
func (s *Session) waitUntil(ctx context.Context, start time.Time, targetT float64) error {
	target := start.Add(time.Duration(targetT * float64(time.Second)))
	remaining := time.Until(target)
	if err := s.clock.Sleep(ctx, remaining); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return errs.ErrDriverStalled
		}
		return errs.ErrCancelled
	}
	return nil
}

// cancelDuringClick implements spec §5's cancellation contract: if a
// mouse_down has fired without its matching mouse_up, emit the up
// before surfacing the triggering error. waitErr is always
// ErrDriverStalled or ErrCancelled.
func (s *Session) cancelDuringClick(ctx context.Context, downFired bool, button common.Button, waitErr error) error {
	if downFired {
		// Best-effort: use a background context so the forced
		// button_up is not itself cut short by the same deadline.
		_ = s.driver.ButtonUp(context.Background(), button)
	}
	return waitErr
}
