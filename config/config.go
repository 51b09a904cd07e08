// Package config aggregates every tunable group spec §6 documents —
// Fitts' Law coefficients, the submovement planner, the velocity and
// curvature shape parameters, noise/tremor, click timing, sample rate,
// and the session seed — into one TOML-loadable Config value, mirroring
// crownet/config/config.go's SimulationParameters/Validate shape.
package config

import (
	"fmt"

	"motorik/errs"
	"motorik/fittslaw"
	"motorik/kinprofile"
	"motorik/noise"
	"motorik/pathgeom"
	"motorik/submovement"
	"motorik/trajectory"
)

// Config is the full set of parameters a Session needs, plus the seed
// that (per spec §8.8) determines reproducibility. It is TOML-tagged so
// it round-trips through LoadPreset/SavePreset without a separate
// marshaling type, the same approach crownet/config takes for its own
// CLIConfig.
type Config struct {
	Seed int64 `toml:"seed"`

	Fitts             fittslaw.Params    `toml:"fitts"`
	Submovement       submovement.Params `toml:"submovement"`
	VelocityAsymmetry float64            `toml:"velocity_asymmetry"`
	Curvature         float64            `toml:"curvature"`
	Noise             noise.Params       `toml:"noise"`
	Click             trajectory.ClickParams `toml:"click"`
	SampleRateHz      float64            `toml:"sample_rate_hz"`
}

// DefaultConfig returns the spec's documented defaults across every
// group, seeded from 0 (callers synthesizing reproducible traces are
// expected to override Seed explicitly).
func DefaultConfig() Config {
	return Config{
		Seed:              0,
		Fitts:             fittslaw.DefaultParams(),
		Submovement:       submovement.DefaultParams(),
		VelocityAsymmetry: kinprofile.DefaultAlpha,
		Curvature:         pathgeom.DefaultCurvature,
		Noise:             noise.DefaultParams(),
		Click:             trajectory.DefaultClickParams(),
		SampleRateHz:      60.0,
	}
}

// Validate delegates to each group's own Validate, wrapping the first
// failure in errs.ErrInvalidConfig — the same short-circuit style as
// trajectory.Settings.Validate, which this mirrors field for field.
func (c Config) Validate() error {
	if err := c.Fitts.Validate(); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInvalidConfig, err)
	}
	if err := c.Submovement.Validate(); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInvalidConfig, err)
	}
	if err := kinprofile.ValidateAlpha(c.VelocityAsymmetry); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInvalidConfig, err)
	}
	if c.Curvature < 0 || c.Curvature > pathgeom.MaxCurvature {
		return fmt.Errorf("%w: curvature must be in [0,%.2f], got %f", errs.ErrInvalidConfig, pathgeom.MaxCurvature, c.Curvature)
	}
	if err := c.Noise.Validate(); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInvalidConfig, err)
	}
	if err := c.Click.Validate(); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInvalidConfig, err)
	}
	if c.SampleRateHz <= 0 {
		return fmt.Errorf("%w: sample_rate_hz must be positive, got %f", errs.ErrInvalidConfig, c.SampleRateHz)
	}
	return nil
}

// Settings converts c into the trajectory.Settings a Session
// constructs from, keeping the field grouping in one place rather than
// duplicating it at every call site.
func (c Config) Settings() trajectory.Settings {
	return trajectory.Settings{
		Fitts:             c.Fitts,
		Submovement:       c.Submovement,
		VelocityAsymmetry: c.VelocityAsymmetry,
		Curvature:         c.Curvature,
		Noise:             c.Noise,
		Click:             c.Click,
		SampleRateHz:      c.SampleRateHz,
	}
}
