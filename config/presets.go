package config

import (
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"
)

// Named presets supplementing spec §6's bare configuration surface
// with a small library of pre-tuned operator personas, the way a bot
// operator might want a "twitchy" or "fatigued" profile without
// hand-tuning every field. Each starts from DefaultConfig and adjusts
// only the parameters that distinguish the persona.
const (
	PresetTwitchy  = "twitchy"
	PresetFatigued = "fatigued"
	PresetFocused  = "focused"
)

// Preset returns the named built-in persona, or an error if name isn't
// recognized. Seed is left at the DefaultConfig zero value; callers
// wanting reproducible traces should set it explicitly after loading.
func Preset(name string) (Config, error) {
	switch name {
	case PresetTwitchy:
		c := DefaultConfig()
		c.Fitts.AMean, c.Fitts.BMean = 0.10, 0.09
		c.Noise.KSignal = 0.06
		c.Noise.TremorAmpPx = 1.1
		c.Submovement.MaxCorrections = 3
		c.Submovement.NominalErrorRate = 0.08
		c.Click.DurationMu = math.Log(0.067)
		return c, nil
	case PresetFatigued:
		c := DefaultConfig()
		c.Fitts.AMean, c.Fitts.BMean = 0.22, 0.17
		c.Fitts.AStd, c.Fitts.BStd = 0.04, 0.03
		c.Noise.KSignal = 0.05
		c.Noise.TremorAmpPx = 0.9
		c.Click.DwellMu = math.Log(0.37)
		return c, nil
	case PresetFocused:
		c := DefaultConfig()
		c.Fitts.AMean, c.Fitts.BMean = 0.12, 0.10
		c.Fitts.AStd, c.Fitts.BStd = 0.01, 0.008
		c.Submovement.MaxCorrections = 1
		c.Submovement.NominalErrorRate = 0.01
		c.Noise.KSignal = 0.015
		c.Noise.TremorAmpPx = 0.4
		return c, nil
	default:
		return Config{}, fmt.Errorf("config: unknown preset %q", name)
	}
}

// LoadPreset decodes a Config from a TOML file at path, the same
// toml.DecodeFile call crownet/cmd/sim.go uses for its own --configFile
// flag. The decoded Config is validated before being returned so a
// malformed preset file fails fast instead of surfacing downstream as
// an opaque Session construction error.
func LoadPreset(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SavePreset encodes cfg as TOML to path, overwriting any existing
// file. Useful for operators who tune a persona at runtime (e.g. via
// Preset plus manual field edits) and want to persist it.
func SavePreset(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: creating %s: %w", path, err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: encoding %s: %w", path, err)
	}
	return nil
}
