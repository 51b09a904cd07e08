// Package motorik synthesizes human-like pointer trajectories and click
// schedules whose statistical signatures match published human
// motor-control data: Fitts' Law throughput, an asymmetric minimum-jerk
// velocity profile, submovement-based corrections, signal-dependent
// noise, 8-12 Hz physiological tremor, and log-normal click timings.
//
// The package composes several independent stochastic models — see
// fittslaw, kinprofile, pathgeom, noise, submovement, trajectory, and
// diagnostics — behind a single Session entry point.
package motorik

import "motorik/errs"

// Error kinds returned by this module, per the error-handling design:
// no error is silently swallowed and the core never retries internally.
// These alias the errs package's sentinels so every internal package
// can return them (errs has no dependents, avoiding an import cycle
// through this root package) while callers of the public API see them
// under the motorik.Err* names.
var (
	ErrInvalidGeometry = errs.ErrInvalidGeometry
	ErrInvalidConfig   = errs.ErrInvalidConfig
	ErrDriverStalled   = errs.ErrDriverStalled
	ErrDriverError     = errs.ErrDriverError
	ErrCancelled       = errs.ErrCancelled
)
