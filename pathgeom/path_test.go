package pathgeom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorik/common"
)

func linspace(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = float64(i) / float64(n-1)
	}
	return s
}

func TestPathEndpointsExact(t *testing.T) {
	p0 := common.Point{X: 10, Y: 20}
	p1 := common.Point{X: 510, Y: 320}
	pts := Path(p0, p1, linspace(50), DefaultCurvature, 1)

	assert.Equal(t, p0, pts[0])
	assert.Equal(t, p1, pts[len(pts)-1])
}

func TestPathMaxDeviationNearMidpoint(t *testing.T) {
	p0 := common.Point{X: 0, Y: 0}
	p1 := common.Point{X: 400, Y: 0}
	pts := Path(p0, p1, linspace(101), DefaultCurvature, 1)

	_, atIndex := MaxDeviation(p0, p1, pts)
	midIndex := 50
	assert.InDelta(t, midIndex, atIndex, 3)
}

func TestPathZeroLengthSuppressesCurvature(t *testing.T) {
	p0 := common.Point{X: 5, Y: 5}
	p1 := common.Point{X: 5.2, Y: 5.1}
	pts := Path(p0, p1, linspace(20), DefaultCurvature, 1)
	for _, p := range pts {
		assert.Equal(t, p0, p)
	}
}

func TestAttenuateShortLeg(t *testing.T) {
	assert.Equal(t, 1.0, AttenuateShortLeg(40))
	assert.Equal(t, 1.0, AttenuateShortLeg(100))
	assert.InDelta(t, 0.5, AttenuateShortLeg(20), 1e-9)
	assert.Equal(t, 0.0, AttenuateShortLeg(0))
}

func TestChordLengthMatchesEuclidean(t *testing.T) {
	d := ChordLength(common.Point{X: 0, Y: 0}, common.Point{X: 3, Y: 4})
	assert.InDelta(t, 5.0, d, 1e-9)
}

func TestPerpendicularDistancesMatchesMaxDeviation(t *testing.T) {
	p0 := common.Point{X: 0, Y: 0}
	p1 := common.Point{X: 400, Y: 0}
	pts := Path(p0, p1, linspace(101), DefaultCurvature, 1)

	dists := PerpendicularDistances(p0, p1, pts)
	maxDist, atIndex := MaxDeviation(p0, p1, pts)
	require.Len(t, dists, len(pts))
	assert.InDelta(t, maxDist, dists[atIndex], 1e-9)
}

func TestPathCapsPeakDeviationForLongLegs(t *testing.T) {
	p0 := common.Point{X: 0, Y: 0}
	p1 := common.Point{X: 5000, Y: 0}
	pts := Path(p0, p1, linspace(201), DefaultCurvature, 1)

	maxDist, _ := MaxDeviation(p0, p1, pts)
	assert.LessOrEqual(t, maxDist, maxCurvaturePeakDeviationPx+1e-6)
}

func TestPathBelowCapMatchesLiteralFormula(t *testing.T) {
	p0 := common.Point{X: 0, Y: 0}
	p1 := common.Point{X: 100, Y: 0}
	pts := Path(p0, p1, linspace(101), DefaultCurvature, 1)

	maxDist, _ := MaxDeviation(p0, p1, pts)
	assert.InDelta(t, DefaultCurvature*100, maxDist, 1e-9)
}

func TestPathCapMatchesS1ScenarioDistance(t *testing.T) {
	p0 := common.Point{X: 100, Y: 100}
	p1 := common.Point{X: 500, Y: 300}
	pts := Path(p0, p1, linspace(201), DefaultCurvature, 1)

	maxDist, _ := MaxDeviation(p0, p1, pts)
	assert.InDelta(t, maxCurvaturePeakDeviationPx, maxDist, 1e-6)
}

func TestUnitNormalIsPerpendicular(t *testing.T) {
	p0 := common.Point{X: 0, Y: 0}
	p1 := common.Point{X: 10, Y: 0}
	n := UnitNormal(p0, p1)
	assert.InDelta(t, 0, n.X, 1e-9)
	assert.InDelta(t, 1, n.Y*n.Y, 1e-9)
}
