package motorik

import (
	"context"

	"motorik/common"
	"motorik/config"
	"motorik/diagnostics"
	"motorik/trajectory"
)

// Re-exported value types (spec §3/§7's public data model) so callers
// depend only on the root package, not on the internal package layout.
type (
	Point      = common.Point
	Target     = common.Target
	Sample     = common.Sample
	Trace      = common.Trace
	Button     = common.Button
	TraceEvent = common.TraceEvent
	EventKind  = common.EventKind
)

const (
	ButtonLeft   = common.ButtonLeft
	ButtonRight  = common.ButtonRight
	ButtonMiddle = common.ButtonMiddle
)

// Driver is the host-side pointer backend a Session drives. Implement
// it over whatever OS/automation layer is actually moving a real
// cursor (spec §5).
type Driver = trajectory.Driver

// Clock abstracts wall-clock delay so tests can drive a Session
// without waiting in real time (spec §9's scheduling seam).
type Clock = trajectory.Clock

// Logger is the warning-level seam a Session logs through, satisfied
// directly by the standard library's *log.Logger. A nil Logger (the
// default) silences every warning.
type Logger = trajectory.Logger

// Config is the full set of tunable parameters (spec §6). Use
// DefaultConfig, Preset, or LoadPreset to obtain one.
type Config = config.Config

// DiagnosticsReport is Diagnose's per-metric result (spec §4.8).
type DiagnosticsReport = diagnostics.Report

// DefaultConfig returns spec §6's documented defaults.
func DefaultConfig() Config { return config.DefaultConfig() }

// Preset returns one of the built-in named personas ("twitchy",
// "fatigued", "focused").
func Preset(name string) (Config, error) { return config.Preset(name) }

// LoadPreset decodes a Config from a TOML file.
func LoadPreset(path string) (Config, error) { return config.LoadPreset(path) }

// SavePreset encodes cfg as TOML to path.
func SavePreset(path string, cfg Config) error { return config.SavePreset(path, cfg) }

// Session is the module's single entry point (spec §6's "Public API"
// table): one seeded PRNG, one Driver, one validated Config, composing
// every model package behind Move/Click/Scroll/Settle/Diagnose.
type Session struct {
	inner *trajectory.Session
}

// NewSession validates cfg and constructs a Session bound to driver,
// seeded from cfg.Seed. Two Sessions built from the same seed and
// driven through the same call sequence produce identical trace
// samples and events (spec §8.8); only each Trace's MoveID, a fresh
// random UUID, differs.
func NewSession(driver Driver, cfg Config) (*Session, error) {
	inner, err := trajectory.NewSession(driver, cfg.Seed, cfg.Settings())
	if err != nil {
		return nil, err
	}
	return &Session{inner: inner}, nil
}

// SetClock overrides the Session's Clock; intended for tests.
func (s *Session) SetClock(c Clock) { s.inner.SetClock(c) }

// SetLogger installs the Logger a Session warns through, e.g. a
// standard log.Logger pointed at os.Stderr. Pass nil to silence
// warnings again.
func (s *Session) SetLogger(l Logger) { s.inner.SetLogger(l) }

// Move synthesizes and drives a human-like pointer trajectory from
// start to target, optionally firing a click at the end (spec §4.7).
func (s *Session) Move(ctx context.Context, start Point, target Target, click bool, button Button) (Trace, error) {
	return s.inner.Move(ctx, start, target, click, button)
}

// Click fires a down/up (or down/up/down/up, if double) cycle in
// place, or first moving to at if non-nil (spec §4.7 supplement).
func (s *Session) Click(ctx context.Context, at *Point, button Button, double bool) (Trace, error) {
	return s.inner.Click(ctx, at, button, double)
}

// Scroll drives an incremental wheel/trackpad scroll of dx, dy.
func (s *Session) Scroll(ctx context.Context, dx, dy float64) (Trace, error) {
	return s.inner.Scroll(ctx, dx, dy)
}

// Settle holds the cursor at at for durationSec, emitting only
// tremor-band micro-jitter — the idle-dwell signature between
// deliberate moves.
func (s *Session) Settle(ctx context.Context, at Point, durationSec float64) (Trace, error) {
	return s.inner.Settle(ctx, at, durationSec)
}

// Diagnose analyzes trace against targetWidth, returning the
// per-metric pass/fail report spec §4.8 defines. It does not consult
// or mutate Session state; it is provided on Session purely for call
// site convenience alongside Move/Click/Scroll.
func (s *Session) Diagnose(trace Trace, targetWidth float64) (DiagnosticsReport, error) {
	return diagnostics.Diagnose(trace, targetWidth)
}
