// Package errs holds the sentinel errors shared across every package
// in this module (spec §7's error-handling design). It exists as its
// own leaf package, rather than living on the module root, so that
// internal packages (fittslaw, submovement, trajectory, ...) can return
// them without the root package importing them back — the root
// package re-exports these same values under its own names for the
// public API.
package errs

import "errors"

var (
	// ErrInvalidGeometry is returned for a negative distance, a
	// non-positive target dimension, or non-finite coordinates. Fatal
	// to the call that triggered it.
	ErrInvalidGeometry = errors.New("motorik: invalid geometry")

	// ErrInvalidConfig is returned at construction time when a
	// configuration parameter falls outside its admissible range.
	ErrInvalidConfig = errors.New("motorik: invalid config")

	// ErrDriverStalled is returned when the composer's wall-clock
	// watchdog (2x the planned duration) expires before a move
	// completes. The caller may retry.
	ErrDriverStalled = errors.New("motorik: driver stalled")

	// ErrDriverError wraps a failure surfaced verbatim by the
	// underlying pointer driver.
	ErrDriverError = errors.New("motorik: driver error")

	// ErrCancelled is returned when a move is stopped by cooperative
	// cancellation. Never retried internally.
	ErrCancelled = errors.New("motorik: cancelled")
)
