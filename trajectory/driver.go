package trajectory

import (
	"context"
	"time"

	"motorik/common"
)

// Driver is the pointer backend the composer drives (spec §6's
// "Driver interface (consumed)"). Every method is expected to be
// non-blocking from the backend's perspective; ctx carries
// cancellation so the composer's cooperative-scheduling contract
// (spec §5) holds even when the driver itself suspends.
type Driver interface {
	// MoveTo dispatches an absolute-coordinate pointer move. It must
	// not silently coalesce with a prior call.
	MoveTo(ctx context.Context, x, y float64) error
	ButtonDown(ctx context.Context, button common.Button) error
	ButtonUp(ctx context.Context, button common.Button) error
	Scroll(ctx context.Context, dx, dy float64) error
}

// Clock abstracts the wall-clock sleep between scheduled samples
// (spec §5 suspension point 1) so tests can drive a composer without
// incurring real wall-clock delay.
type Clock interface {
	// Sleep blocks until d has elapsed or ctx is done, whichever comes
	// first, returning ctx.Err() in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// realClock sleeps in real wall-clock time via a timer racing ctx.Done.
type realClock struct{}

// RealClock is the default Clock, used by NewSession callers outside
// of tests.
var RealClock Clock = realClock{}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
