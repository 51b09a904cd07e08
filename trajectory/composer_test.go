package trajectory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorik/common"
	"motorik/diagnostics"
	"motorik/errs"
)

// fakeDriver records every call instead of touching real pointer
// hardware, the way a test double for crownet's storage layer would
// record writes instead of hitting a real database.
type fakeDriver struct {
	moves   []common.Point
	downs   []common.Button
	ups     []common.Button
	scrolls []common.Point
}

func (d *fakeDriver) MoveTo(ctx context.Context, x, y float64) error {
	d.moves = append(d.moves, common.Point{X: x, Y: y})
	return nil
}

func (d *fakeDriver) ButtonDown(ctx context.Context, b common.Button) error {
	d.downs = append(d.downs, b)
	return nil
}

func (d *fakeDriver) ButtonUp(ctx context.Context, b common.Button) error {
	d.ups = append(d.ups, b)
	return nil
}

func (d *fakeDriver) Scroll(ctx context.Context, dx, dy float64) error {
	d.scrolls = append(d.scrolls, common.Point{X: dx, Y: dy})
	return nil
}

// instantClock never actually sleeps; it only honors context
// cancellation, so tests run without incurring real wall-clock delay.
type instantClock struct{}

func (instantClock) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func newTestSession(t *testing.T, seed int64) (*Session, *fakeDriver) {
	t.Helper()
	fd := &fakeDriver{}
	s, err := NewSession(fd, seed, DefaultSettings())
	require.NoError(t, err)
	s.SetClock(instantClock{})
	return s, fd
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, v ...any) {
	l.lines = append(l.lines, format)
}

func TestSessionWiresTruncationFallbackToLogger(t *testing.T) {
	s, _ := newTestSession(t, 3)
	logger := &recordingLogger{}
	s.SetLogger(logger)

	// A zero-width range at lo==hi==5 forces every rejection-sampling
	// attempt to miss (a continuous draw lands on exactly 5.0 with
	// probability 0) before TruncatedGaussian falls back to clamping.
	_ = s.source.TruncatedGaussian(0, 1, 5, 5)

	assert.NotEmpty(t, logger.lines)
}

func TestSessionSilentWithoutLogger(t *testing.T) {
	s, _ := newTestSession(t, 3)
	assert.NotPanics(t, func() {
		_ = s.source.TruncatedGaussian(0, 1, 5, 5)
	})
}

func TestMoveS1Scenario(t *testing.T) {
	s, fd := newTestSession(t, 42)
	target := common.Target{Center: common.Point{X: 500, Y: 300}, Width: 100, Height: 100}

	trace, err := s.Move(context.Background(), common.Point{X: 100, Y: 100}, target, false, common.ButtonLeft)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(trace.Samples), 12)
	assert.GreaterOrEqual(t, trace.Duration(), 0.25)
	assert.LessOrEqual(t, trace.Duration(), 0.90)
	assert.True(t, target.Contains(trace.End()) || trace.End().Dist(target.Center) < target.Width)
	assert.Equal(t, common.Point{X: 100, Y: 100}, trace.Start())
	assert.Len(t, fd.moves, len(trace.Samples))
}

// TestDiagnosticsRoundTripS6Scenario is spec §8 S6: a trace generated
// with default config, fed into diagnose, must have overall_valid true
// in at least 95% of 200 trials. It deliberately reuses S1's own
// geometry (move((100,100), center=(500,300), W=H=100), D≈447px) since
// that is the spec's flagship default-config scenario.
func TestDiagnosticsRoundTripS6Scenario(t *testing.T) {
	const trials = 200
	target := common.Target{Center: common.Point{X: 500, Y: 300}, Width: 100, Height: 100}

	valid := 0
	for seed := int64(0); seed < trials; seed++ {
		s, _ := newTestSession(t, seed)
		trace, err := s.Move(context.Background(), common.Point{X: 100, Y: 100}, target, false, common.ButtonLeft)
		require.NoError(t, err)

		report, err := diagnostics.Diagnose(trace, target.EffectiveWidth())
		require.NoError(t, err)
		if report.OverallValid {
			valid++
		}
	}

	rate := float64(valid) / float64(trials)
	assert.GreaterOrEqual(t, rate, 0.95, "overall_valid rate %f below spec's 0.95 floor", rate)
}

func TestMoveRejectsInvalidGeometry(t *testing.T) {
	s, _ := newTestSession(t, 1)
	bad := common.Target{Center: common.Point{X: 10, Y: 10}, Width: 0, Height: 10}
	_, err := s.Move(context.Background(), common.Point{}, bad, false, common.ButtonLeft)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidGeometry))
}

func TestMoveReproducibleWithSameSeed(t *testing.T) {
	target := common.Target{Center: common.Point{X: 400, Y: 50}, Width: 40, Height: 40}

	s1, _ := newTestSession(t, 99)
	tr1, err := s1.Move(context.Background(), common.Point{X: 0, Y: 0}, target, false, common.ButtonLeft)
	require.NoError(t, err)

	s2, _ := newTestSession(t, 99)
	tr2, err := s2.Move(context.Background(), common.Point{X: 0, Y: 0}, target, false, common.ButtonLeft)
	require.NoError(t, err)

	require.Equal(t, len(tr1.Samples), len(tr2.Samples))
	for i := range tr1.Samples {
		assert.Equal(t, tr1.Samples[i], tr2.Samples[i])
	}
}

func TestMoveFirstSampleExactlyStart(t *testing.T) {
	s, _ := newTestSession(t, 7)
	target := common.Target{Center: common.Point{X: 900, Y: 900}, Width: 60, Height: 60}
	trace, err := s.Move(context.Background(), common.Point{X: 20, Y: 30}, target, false, common.ButtonLeft)
	require.NoError(t, err)
	assert.Equal(t, 20.0, trace.Samples[0].X)
	assert.Equal(t, 30.0, trace.Samples[0].Y)
}

func TestMoveMonotonicTimestamps(t *testing.T) {
	s, _ := newTestSession(t, 5)
	target := common.Target{Center: common.Point{X: 700, Y: -200}, Width: 80, Height: 80}
	trace, err := s.Move(context.Background(), common.Point{X: 0, Y: 0}, target, false, common.ButtonLeft)
	require.NoError(t, err)
	for i := 1; i < len(trace.Samples); i++ {
		assert.Greater(t, trace.Samples[i].T, trace.Samples[i-1].T)
	}
}

func TestSettingsValidateRejectsBadCurvature(t *testing.T) {
	settings := DefaultSettings()
	settings.Curvature = 5
	assert.Error(t, settings.Validate())
}
