// Package submovement decomposes a macro-movement into an ordered
// sequence of submovements: one primary ballistic leg followed by 0-3
// visually-guided corrections (spec §4.6). Error sampling and
// incremental endpoint construction is modeled on
// crownet/synaptic/weights.go's pattern of an RNG-threaded constructor
// that validates its inputs and returns (value, error), adapted from
// weight initialization to endpoint planning.
package submovement

import (
	"fmt"
	"math"

	"motorik/common"
	"motorik/rng"
)

// Params controls the planner (spec's submovement.* config group).
type Params struct {
	PrimaryCoverage  float64 // fraction of the remaining distance the primary leg covers
	PrimaryErrorStd  float64 // std of the primary/correction error, as a fraction of remaining distance
	MaxCorrections   int
	NominalErrorRate float64 // probability of a deliberate miss, stopping correction early
}

// DefaultParams returns the spec's documented defaults.
func DefaultParams() Params {
	return Params{
		PrimaryCoverage:  0.95,
		PrimaryErrorStd:  0.08,
		MaxCorrections:   3,
		NominalErrorRate: 0.04,
	}
}

// Validate enforces admissible ranges for the planner's parameters.
func (p Params) Validate() error {
	if p.PrimaryCoverage <= 0 || p.PrimaryCoverage > 1 {
		return fmt.Errorf("submovement: primary_coverage must be in (0,1], got %f", p.PrimaryCoverage)
	}
	if p.PrimaryErrorStd < 0 {
		return fmt.Errorf("submovement: primary_error_std must be non-negative, got %f", p.PrimaryErrorStd)
	}
	if p.MaxCorrections < 0 {
		return fmt.Errorf("submovement: max_corrections must be non-negative, got %d", p.MaxCorrections)
	}
	if p.NominalErrorRate < 0 || p.NominalErrorRate > 1 {
		return fmt.Errorf("submovement: nominal_error_rate must be in [0,1], got %f", p.NominalErrorRate)
	}
	return nil
}

// primaryDurationFractionLo/Hi and correctionDurationFractionLo/Hi are
// the duration-fraction sampling ranges from spec §4.6 steps 2-3.
const (
	primaryDurationFractionLo    = 0.70
	primaryDurationFractionHi    = 0.85
	correctionDurationFractionLo = 0.08
	correctionDurationFractionHi = 0.15
)

// Leg is one submovement: an endpoint and its share of the macro
// movement's total duration, already normalized across the whole Plan
// to sum to 1.0 (spec's "submovement plan entry").
type Leg struct {
	Endpoint         common.Point
	DurationFraction float64
}

// Plan is an ordered list of Legs plus whether the planner elected a
// miss (spec §4.6 step 4): a deliberate stop before the final endpoint
// enters the target box, simulating a human overshoot that a
// higher-level policy would follow up on. Missed is also set when
// MaxCorrections runs out with the final endpoint still outside the
// box.
type Plan struct {
	Legs   []Leg
	Missed bool
}

// FinalEndpoint returns the last leg's endpoint, or the zero Point for
// an empty plan (which Build never returns).
func (p Plan) FinalEndpoint() common.Point {
	if len(p.Legs) == 0 {
		return common.Point{}
	}
	return p.Legs[len(p.Legs)-1].Endpoint
}

// Durations scales each leg's normalized DurationFraction by totalSec
// (the Fitts'-Law-sampled macro-movement duration) to get absolute
// per-leg durations (spec §4.6 step 5).
func (p Plan) Durations(totalSec float64) []float64 {
	out := make([]float64, len(p.Legs))
	for i, leg := range p.Legs {
		out[i] = leg.DurationFraction * totalSec
	}
	return out
}

// Build plans a macro-movement from p0 toward target, drawing every
// random quantity from source. At least one leg (the primary) is
// always present.
func Build(source *rng.Source, params Params, p0 common.Point, target common.Target) Plan {
	remaining := target.Center.Sub(p0)

	primaryErr := common.Point{}
	primaryErr.X, primaryErr.Y = source.BivariateNormal(params.PrimaryErrorStd * remaining.Norm())
	primaryEndpoint := p0.Add(remaining.Scale(params.PrimaryCoverage)).Add(primaryErr)
	primaryFraction := source.UniformRange(primaryDurationFractionLo, primaryDurationFractionHi)

	legs := []Leg{{Endpoint: primaryEndpoint, DurationFraction: primaryFraction}}

	current := primaryEndpoint
	missed := false

	for k := 1; k <= params.MaxCorrections; k++ {
		if target.Contains(current) {
			break
		}
		if source.Bernoulli(params.NominalErrorRate) {
			missed = true
			break
		}

		toCenter := target.Center.Sub(current)
		errStd := (params.PrimaryErrorStd / math.Pow(2, float64(k))) * toCenter.Norm()
		var errX, errY float64
		errX, errY = source.BivariateNormal(errStd)

		next := current.Add(toCenter.Scale(0.7)).Add(common.Point{X: errX, Y: errY})
		fraction := source.UniformRange(correctionDurationFractionLo, correctionDurationFractionHi)
		legs = append(legs, Leg{Endpoint: next, DurationFraction: fraction})
		current = next
	}

	if !missed && !target.Contains(current) {
		// Corrections were exhausted without acquiring the target;
		// this is functionally a miss even though it wasn't triggered
		// by the nominal_error_rate branch, and the final-endpoint
		// invariant (spec §4.6) must reflect that.
		missed = true
	}

	normalizeFractions(legs)
	return Plan{Legs: legs, Missed: missed}
}

func normalizeFractions(legs []Leg) {
	var total float64
	for _, leg := range legs {
		total += leg.DurationFraction
	}
	if total <= 0 {
		return
	}
	for i := range legs {
		legs[i].DurationFraction /= total
	}
}
