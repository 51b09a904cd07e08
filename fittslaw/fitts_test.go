package fittslaw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorik/rng"
)

func TestDurationRejectsInvalidGeometry(t *testing.T) {
	s := rng.New(1)
	p := DefaultParams()

	_, err := Duration(s, p, -1, 10)
	assert.Error(t, err)

	_, err = Duration(s, p, 10, 0)
	assert.Error(t, err)

	_, err = Duration(s, p, 10, -5)
	assert.Error(t, err)
}

func TestDurationNeverExceedsThroughputCeiling(t *testing.T) {
	s := rng.New(42)
	p := DefaultParams()

	for i := 0; i < 5000; i++ {
		distance := 50 + s.Uniform()*1500
		width := 5 + s.Uniform()*195
		d, err := Duration(s, p, distance, width)
		require.NoError(t, err)

		tp := Throughput(distance, width, d)
		assert.LessOrEqual(t, tp, p.MaxThroughput+1e-9)
		assert.GreaterOrEqual(t, d, MinDuration)
		assert.LessOrEqual(t, d, MaxDuration)
	}
}

func TestIndexOfDifficultyMatchesShannon(t *testing.T) {
	id := IndexOfDifficulty(1000, 5)
	assert.InDelta(t, 8.65, id, 0.01)
}

func TestParamsValidate(t *testing.T) {
	p := DefaultParams()
	require.NoError(t, p.Validate())

	bad := p
	bad.AStd = bad.AMean
	assert.Error(t, bad.Validate())

	bad2 := p
	bad2.MaxThroughput = 0
	assert.Error(t, bad2.Validate())
}

// TestS2SmallTargetScenario checks the duration/ID half of spec §8's S2
// scenario; the other half ("at least one correction submovement in the
// plan") is exercised against submovement.Build in
// submovement/planner_test.go's TestS2SmallTargetScenarioTriggersCorrection.
func TestS2SmallTargetScenario(t *testing.T) {
	s := rng.New(42)
	p := DefaultParams()

	id := IndexOfDifficulty(1000, 5)
	d, err := Duration(s, p, 1000, 5)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, d, id/p.MaxThroughput-1e-9)
}
