package cad

import "gopkg.in/src-d/go-errors.v1"

// Error kinds for the CAD core's error taxonomy. Recoverable kinds
// (ErrCancelled, ErrNumericFailure) are caught in Check and converted to
// Unknown; ErrUnsupportedProjection propagates synchronously from
// PrepareElimination; ErrInvariantViolation is fatal in debug builds (see
// Settings.Debug) and degrades to Unknown otherwise.
var (
	// ErrCancelled reports that a Check call observed a raised interrupt
	// flag and returned Unknown.
	ErrCancelled = errors.NewKind("cad: check cancelled via interrupt flag")

	// ErrUnsupportedProjection reports that the configured projection
	// operator variant is not implemented (e.g. Hong).
	ErrUnsupportedProjection = errors.NewKind("cad: unsupported projection operator %s")

	// ErrNumericFailure reports that a polynomial primitive failed on a
	// degenerate input (e.g. factorization of a non-factorizable shape).
	ErrNumericFailure = errors.NewKind("cad: numeric primitive failed: %s")

	// ErrInvariantViolation reports detected corruption of the Sample Tree
	// or an Elimination Set. This is a programming bug.
	ErrInvariantViolation = errors.NewKind("cad: invariant violation: %s")
)
