package submovement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorik/common"
	"motorik/rng"
)

func targetAt(x, y, w, h float64) common.Target {
	return common.Target{Center: common.Point{X: x, Y: y}, Width: w, Height: h}
}

func TestBuildAlwaysHasPrimaryLeg(t *testing.T) {
	s := rng.New(1)
	plan := Build(s, DefaultParams(), common.Point{}, targetAt(400, 0, 20, 20))
	require.GreaterOrEqual(t, len(plan.Legs), 1)
}

func TestBuildDurationFractionsSumToOne(t *testing.T) {
	s := rng.New(7)
	for i := 0; i < 50; i++ {
		plan := Build(s, DefaultParams(), common.Point{}, targetAt(300, 150, 24, 24))
		var total float64
		for _, leg := range plan.Legs {
			total += leg.DurationFraction
		}
		assert.InDelta(t, 1.0, total, 1e-9)
	}
}

func TestBuildAtMostPrimaryPlusMaxCorrections(t *testing.T) {
	s := rng.New(3)
	params := DefaultParams()
	for i := 0; i < 50; i++ {
		plan := Build(s, params, common.Point{}, targetAt(250, -80, 16, 16))
		assert.LessOrEqual(t, len(plan.Legs), 1+params.MaxCorrections)
	}
}

// TestS2SmallTargetScenarioTriggersCorrection is spec §8 S2:
// move((0,0), center=(1000,0), W=H=5) must plan at least one correction
// submovement in addition to the primary leg. The primary leg is aimed
// 50px short of the center (primary_coverage 0.95) and its error std
// (primary_error_std * remaining distance, 0.08*1000 = 80px) is 16
// times the 5px target width, so the primary leg essentially always
// misses the box.
func TestS2SmallTargetScenarioTriggersCorrection(t *testing.T) {
	s := rng.New(2)
	target := targetAt(1000, 0, 5, 5)
	for i := 0; i < 50; i++ {
		plan := Build(s, DefaultParams(), common.Point{X: 0, Y: 0}, target)
		assert.Greater(t, len(plan.Legs), 1)
	}
}

func TestBuildFinalEndpointInsideTargetUnlessMissed(t *testing.T) {
	s := rng.New(11)
	target := targetAt(600, 300, 30, 30)
	hits, misses := 0, 0
	for i := 0; i < 500; i++ {
		plan := Build(s, DefaultParams(), common.Point{}, target)
		if plan.Missed {
			misses++
			continue
		}
		hits++
		assert.True(t, target.Contains(plan.FinalEndpoint()))
	}
	assert.Greater(t, hits, 0)
	_ = misses
}

func TestBuildZeroMaxCorrectionsYieldsOnlyPrimary(t *testing.T) {
	s := rng.New(2)
	params := DefaultParams()
	params.MaxCorrections = 0
	plan := Build(s, params, common.Point{}, targetAt(100, 0, 10, 10))
	assert.Len(t, plan.Legs, 1)
}

func TestDurationsScaleByTotal(t *testing.T) {
	s := rng.New(4)
	plan := Build(s, DefaultParams(), common.Point{}, targetAt(200, 50, 20, 20))
	durations := plan.Durations(0.5)
	var total float64
	for _, d := range durations {
		total += d
	}
	assert.InDelta(t, 0.5, total, 1e-9)
}

func TestValidateParams(t *testing.T) {
	p := DefaultParams()
	require.NoError(t, p.Validate())

	bad := p
	bad.PrimaryCoverage = 0
	assert.Error(t, bad.Validate())

	bad2 := p
	bad2.MaxCorrections = -1
	assert.Error(t, bad2.Validate())

	bad3 := p
	bad3.NominalErrorRate = 1.5
	assert.Error(t, bad3.Validate())
}

func TestHighNominalErrorRateProducesMisses(t *testing.T) {
	s := rng.New(9)
	params := DefaultParams()
	params.NominalErrorRate = 1.0
	target := targetAt(500, 0, 10, 10)

	var sawMiss bool
	for i := 0; i < 20; i++ {
		plan := Build(s, params, common.Point{}, target)
		if plan.Missed {
			sawMiss = true
			break
		}
	}
	assert.True(t, sawMiss)
}
