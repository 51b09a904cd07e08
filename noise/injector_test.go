package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorik/common"
	"motorik/rng"
)

func straightLine(n int, spacing float64) ([]common.Point, []float64) {
	pts := make([]common.Point, n)
	t := make([]float64, n)
	for i := 0; i < n; i++ {
		pts[i] = common.Point{X: float64(i) * spacing, Y: 0}
		t[i] = float64(i) / 60.0
	}
	return pts, t
}

func TestInjectPreservesEndpoint(t *testing.T) {
	s := rng.New(1)
	p := DefaultParams()
	pts, ts := straightLine(120, 2.0)
	final := pts[len(pts)-1]

	out := Inject(s, p, pts, ts, final)
	assert.Equal(t, final, out[len(out)-1])
	assert.Len(t, out, len(pts))
}

func TestInjectZeroAmplitudeIsNearOriginal(t *testing.T) {
	s := rng.New(1)
	p := DefaultParams()
	p.KSignal = 0
	p.TremorAmpPx = 0
	pts, ts := straightLine(60, 1.0)
	final := pts[len(pts)-1]

	out := Inject(s, p, pts, ts, final)
	for i := range out[:len(out)-1] {
		assert.InDelta(t, pts[i].X, out[i].X, 1e-9)
		assert.InDelta(t, pts[i].Y, out[i].Y, 1e-9)
	}
}

func TestTremorSignalHitsTargetRMS(t *testing.T) {
	s := rng.New(5)
	p := DefaultParams()
	p.TremorAmpPx = 1.2
	p.SampleRateHz = 120

	sig := tremorSignal(s, p, 4096)
	got := rms(sig)
	assert.InDelta(t, p.TremorAmpPx, got, 0.15)
}

func TestValidateNoiseParams(t *testing.T) {
	p := DefaultParams()
	require.NoError(t, p.Validate())

	bad := p
	bad.TremorFreqHz = 15
	assert.Error(t, bad.Validate())

	bad2 := p
	bad2.SampleRateHz = 10
	assert.Error(t, bad2.Validate())

	bad3 := p
	bad3.KSignal = -1
	assert.Error(t, bad3.Validate())
}

func TestBandpassConcentratesPowerNearCenter(t *testing.T) {
	n := 2048
	sampleRate := 200.0
	raw := make([]float64, n)
	s := rng.New(2)
	for i := range raw {
		raw[i] = s.Gaussian(0, 1)
	}
	filtered := zeroPhaseBandpass(raw, 10, 2.5, sampleRate)

	// Crude DFT magnitude at 10 Hz vs. at 40 Hz (well outside the
	// passband) should show the passband is much stronger.
	magAt := func(freq float64) float64 {
		var re, im float64
		for i, v := range filtered {
			angle := 2 * math.Pi * freq * float64(i) / sampleRate
			re += v * math.Cos(angle)
			im -= v * math.Sin(angle)
		}
		return math.Hypot(re, im)
	}

	inBand := magAt(10)
	outOfBand := magAt(40)
	assert.Greater(t, inBand, outOfBand*2)
}
