// Package common holds the small value types shared across the
// trajectory-synthesis packages: screen points, target boxes, trace
// samples, and the discrete events a completed move may carry.
package common

import "math"

// Point is a pair of floating-point screen coordinates. It carries no
// invariant beyond finiteness; callers constructing a Point from
// untrusted input should check IsFinite themselves.
type Point struct {
	X, Y float64
}

// IsFinite reports whether both coordinates are finite (not NaN/Inf).
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Scale returns p scaled by k.
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Norm returns the Euclidean length of p treated as a vector from the
// origin.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return p.Sub(q).Norm()
}

// Target is a rectangular click/acquisition zone centered at Center.
// Width and Height must both be positive; construction-time validation
// lives in the packages that consume a Target (fittslaw, trajectory)
// rather than here, since a bare Target is just a value.
type Target struct {
	Center        Point
	Width, Height float64
}

// EffectiveWidth returns the tighter of Width/Height, the width used by
// Fitts' Law per spec §3: "the effective width used by Fitts' Law is
// min(width, height)". Width and Height are kept on Target unmodified
// so a future univariate-projection implementation remains possible.
func (t Target) EffectiveWidth() float64 {
	if t.Width < t.Height {
		return t.Width
	}
	return t.Height
}

// Contains reports whether p lies within t's axis-aligned bounding box.
func (t Target) Contains(p Point) bool {
	halfW, halfH := t.Width/2, t.Height/2
	return p.X >= t.Center.X-halfW && p.X <= t.Center.X+halfW &&
		p.Y >= t.Center.Y-halfH && p.Y <= t.Center.Y+halfH
}

// Sample is a single timestamped cursor position within a Trace. T is
// seconds since the trace's first sample and is strictly monotonic
// within a well-formed Trace.
type Sample struct {
	T    float64
	X, Y float64
}

// Point returns the sample's position as a Point.
func (s Sample) Point() Point {
	return Point{X: s.X, Y: s.Y}
}

// Button identifies a pointer button for down/up events.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// EventKind enumerates the discrete input events a move/click may emit
// alongside its Samples.
type EventKind int

const (
	EventMouseDown EventKind = iota
	EventMouseUp
)

// TraceEvent is a discrete input event timestamped on the same clock as
// the Trace's Samples.
type TraceEvent struct {
	T      float64
	Kind   EventKind
	Button Button
}

// Trace is the ordered output of a single move/click/scroll: a
// strictly-increasing-time sequence of cursor Samples plus any discrete
// Events (button down/up) that occurred along the way. MoveID
// correlates a Trace with logs/metrics emitted during its generation.
type Trace struct {
	MoveID  string
	Samples []Sample
	Events  []TraceEvent
}

// Duration returns the trace's total span, t_end - t_start, or 0 for an
// empty or single-sample trace.
func (tr Trace) Duration() float64 {
	if len(tr.Samples) < 2 {
		return 0
	}
	return tr.Samples[len(tr.Samples)-1].T - tr.Samples[0].T
}

// Start returns the trace's first sample position, or the zero Point
// for an empty trace.
func (tr Trace) Start() Point {
	if len(tr.Samples) == 0 {
		return Point{}
	}
	return tr.Samples[0].Point()
}

// End returns the trace's last sample position, or the zero Point for
// an empty trace.
func (tr Trace) End() Point {
	if len(tr.Samples) == 0 {
		return Point{}
	}
	return tr.Samples[len(tr.Samples)-1].Point()
}
