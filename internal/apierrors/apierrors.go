// Package apierrors carries the sentinel error taxonomy (§7) shared by
// every pipeline stage and the engine that orchestrates them. It is kept
// as its own leaf package, with no internal dependencies, so every stage
// package (expand, solver, roomassign, ga) can wrap these sentinels
// without importing the engine package that orchestrates them — which
// itself imports the stage packages.
package apierrors

import "errors"

// Wrap with fmt.Errorf("...: %w", Err...) at the point of failure so
// callers can still errors.Is/errors.As against the sentinel while
// getting a specific message.
var (
	// ErrInvalidInput covers malformed course/room input: bad divisibility,
	// k > P, duplicate ids, or an unknown group or faculty reference.
	ErrInvalidInput = errors.New("timetable: invalid input")

	// ErrInfeasible means the exact solver found no feasible assignment
	// within its time budget.
	ErrInfeasible = errors.New("timetable: infeasible")

	// ErrSolverTimeout means the exact solver exhausted its time budget
	// without reaching a conclusion. Reported separately from ErrInfeasible
	// in logs, but also satisfies errors.Is(err, ErrInfeasible) for callers
	// that don't distinguish.
	ErrSolverTimeout = errors.New("timetable: solver timeout")

	// ErrInternalAssertion means the engine's own post-condition check (a
	// clash-free re-verification of its output) failed. This indicates a
	// bug in the engine, not bad input.
	ErrInternalAssertion = errors.New("timetable: internal assertion failed")
)
