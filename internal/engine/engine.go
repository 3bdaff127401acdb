// Package engine orchestrates the four pipeline stages (expand, exact
// solve, greedy room assignment, genetic refinement) into the single
// generate transformation described by §4, and carries the input
// validation and structured logging every stage shares.
//
// Constructor and validation shape are grounded on
// noah-isme-sma-adp-api/internal/service's services: a *validator.Validate
// and *zap.Logger held on the struct, defaulted by New (a fresh validator,
// a no-op logger) when no option supplies them, with every public method
// validating its request struct first.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/latticeforge/hybrid-timetable/internal/apierrors"
	"github.com/latticeforge/hybrid-timetable/internal/clash"
	"github.com/latticeforge/hybrid-timetable/internal/domain"
	"github.com/latticeforge/hybrid-timetable/internal/expand"
	"github.com/latticeforge/hybrid-timetable/internal/ga"
	"github.com/latticeforge/hybrid-timetable/internal/metrics"
	"github.com/latticeforge/hybrid-timetable/internal/roomassign"
	"github.com/latticeforge/hybrid-timetable/internal/solver"
)

// Request is the full §6 input surface: one call generates one timetable.
type Request struct {
	Calendar domain.Calendar `validate:"required"`
	Limits   domain.Limits   `validate:"required"`
	Courses  []domain.Course `validate:"required,min=1,dive"`
	Rooms    []domain.Room   `validate:"omitempty,dive"`

	GroupSizes   map[string]int
	FacultyPrefs map[string]domain.FacultyPreference

	// ProjectBlockPositions marks calendar in-day positions reserved
	// for project work (§4.4's projectBlockPositions soft penalty).
	ProjectBlockPositions []int
	ElectiveGroups        []string
}

// Result is what GenerateTimetable hands back: the final schedule plus
// enough provenance to explain how it got there.
type Result struct {
	Schedule        domain.Schedule
	RoomAssigned    bool
	RoomFailures    []roomassign.Failure
	Refined         bool
	GenerationsRun  int
	BestFitness     float64
	SolverDuration  time.Duration
	ClashFreeAtExit bool
}

// Engine holds the shared, reusable dependencies: a validator, a logger,
// an optional metrics sink. It is cheap to construct and safe for
// concurrent use, since each Generate call builds its own solver/GA state.
type Engine struct {
	validate *validator.Validate
	log      *zap.Logger
	metrics  *metrics.Sink

	useRoomAssign bool
	useGA         bool
	gaParams      ga.Params
	solverSeed    int64
	solverMaxTime time.Duration
	solverWorkers int
}

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(l *zap.Logger) Option          { return func(e *Engine) { e.log = l } }
func WithMetrics(m *metrics.Sink) Option       { return func(e *Engine) { e.metrics = m } }
func WithRoomAssignment(enabled bool) Option   { return func(e *Engine) { e.useRoomAssign = enabled } }
func WithGA(enabled bool) Option               { return func(e *Engine) { e.useGA = enabled } }
func WithGAParams(p ga.Params) Option          { return func(e *Engine) { e.gaParams = p } }
func WithSolverSeed(seed int64) Option         { return func(e *Engine) { e.solverSeed = seed } }
func WithSolverMaxTime(d time.Duration) Option { return func(e *Engine) { e.solverMaxTime = d } }
func WithSolverWorkers(n int) Option           { return func(e *Engine) { e.solverWorkers = n } }

// New builds an Engine. Room assignment and genetic refinement both
// default to enabled, matching the three-stage pipeline description in §4.
func New(opts ...Option) *Engine {
	e := &Engine{
		validate:      validator.New(),
		log:           zap.NewNop(),
		useRoomAssign: true,
		useGA:         true,
		gaParams:      ga.DefaultParams(),
		solverSeed:    1,
		solverMaxTime: 10 * time.Second,
		solverWorkers: solver.DefaultWorkers,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// With returns a copy of the Engine with additional options layered on
// top, leaving the receiver untouched. Useful for one-off per-request
// overrides (e.g. a caller disabling GA for a single call) without
// rebuilding the shared validator/logger/metrics on every request.
func (e *Engine) With(opts ...Option) *Engine {
	clone := *e
	for _, o := range opts {
		o(&clone)
	}
	return &clone
}

// Generate runs the full pipeline: expand -> exact solve -> (optional)
// greedy room assignment -> (optional) genetic refinement, with a
// clash-free post-condition check before returning (§7).
func (e *Engine) Generate(ctx context.Context, req Request) (Result, error) {
	if err := e.validate.Struct(req); err != nil {
		return Result{}, fmt.Errorf("%w: %v", apierrors.ErrInvalidInput, err)
	}
	if err := validateCrossReferences(req); err != nil {
		return Result{}, err
	}

	sessions, err := expand.Sessions(req.Courses)
	if err != nil {
		return Result{}, err
	}
	e.log.Info("sessions expanded", zap.Int("session_count", len(sessions)))

	sv := solver.New(req.Calendar, req.Limits, sessions,
		solver.WithSeed(e.solverSeed),
		solver.WithMaxTime(e.solverMaxTime),
		solver.WithWorkers(e.solverWorkers),
		solver.WithLogger(e.log),
	)

	solveStart := time.Now()
	sch, err := sv.Solve(ctx)
	solverDuration := time.Since(solveStart)
	if err != nil {
		e.metrics.ObserveSolver(solverDuration, solveOutcome(err))
		e.metrics.ObserveRun("infeasible")
		e.log.Warn("exact solve failed", zap.Error(err), zap.Duration("elapsed", solverDuration))
		return Result{}, err
	}
	e.metrics.ObserveSolver(solverDuration, "solved")
	e.log.Info("exact solve succeeded", zap.Duration("elapsed", solverDuration))

	result := Result{Schedule: sch, SolverDuration: solverDuration}

	if e.useRoomAssign && len(req.Rooms) > 0 {
		assigned, failures := roomassign.Assign(sch, req.Rooms, req.GroupSizes, req.Calendar.T(), e.log)
		sch = assigned
		result.Schedule = sch
		result.RoomAssigned = true
		result.RoomFailures = failures
		e.metrics.ObserveRoomFailures(len(failures))
		if len(failures) > 0 {
			e.log.Warn("room assignment left sessions unplaced", zap.Int("failure_count", len(failures)))
		}
	}

	if e.useGA {
		cfg := &ga.Config{
			Cal:                   req.Calendar,
			Limits:                req.Limits,
			Sessions:              sessions,
			Rooms:                 req.Rooms,
			GroupSizes:            req.GroupSizes,
			FacultyPrefs:          req.FacultyPrefs,
			ProjectBlockPositions: toPositionSet(req.ProjectBlockPositions),
			ElectiveGroups:        toStringSet(req.ElectiveGroups),
			Multiplier:            ga.MultiplierFor(len(req.Rooms)),
		}
		seedGenes := ga.EncodeSchedule(cfg, sch)

		refined, fitness, err := ga.Run(ctx, cfg, e.gaParams, seedGenes, e.log)
		if err != nil {
			e.metrics.ObserveRun("ga_error")
			return Result{}, fmt.Errorf("genetic refinement: %w", err)
		}
		sch = refined
		result.Schedule = sch
		result.Refined = true
		result.GenerationsRun = e.gaParams.Generations
		result.BestFitness = fitness
		e.metrics.ObserveGA(e.gaParams.Generations, fitness)
		e.log.Info("genetic refinement complete", zap.Float64("best_fitness", fitness))
	}

	report := clash.Detect(sch, roomCapacityOf(req.Rooms), req.GroupSizes)
	result.ClashFreeAtExit = report.Empty()
	if !report.Empty() {
		e.log.Error("post-condition clash check failed",
			zap.Int("faculty_overlaps", len(report.Faculty)),
			zap.Int("group_overlaps", len(report.Group)),
			zap.Int("room_overlaps", len(report.Room)),
			zap.Int("capacity_violations", len(report.RoomCapacity)),
		)
		e.metrics.ObserveRun("assertion_failed")
		return Result{}, fmt.Errorf("%w: output schedule has clashes after generation", apierrors.ErrInternalAssertion)
	}

	e.metrics.ObserveRun("ok")
	return result, nil
}

// validateCrossReferences catches the duplicate-id and unknown-reference
// cases struct-tag validation can't express: two Course entries sharing an
// ID but disjoint Groups produce no colliding session id in
// expand.Sessions, so the duplicate has to be caught here instead. Checked
// in one pass over req.Courses/req.Rooms before expansion so a caller gets
// ErrInvalidInput rather than a schedule built over ambiguous input.
func validateCrossReferences(req Request) error {
	seenCourseIDs := make(map[string]bool, len(req.Courses))
	validGroups := make(map[string]bool)
	validFaculty := make(map[string]bool)
	for _, c := range req.Courses {
		if seenCourseIDs[c.ID] {
			return fmt.Errorf("%w: duplicate course id %q", apierrors.ErrInvalidInput, c.ID)
		}
		seenCourseIDs[c.ID] = true
		validFaculty[c.Faculty] = true
		for _, g := range c.Groups {
			validGroups[g] = true
		}
	}

	seenRoomNames := make(map[string]bool, len(req.Rooms))
	for _, r := range req.Rooms {
		if seenRoomNames[r.Name] {
			return fmt.Errorf("%w: duplicate room name %q", apierrors.ErrInvalidInput, r.Name)
		}
		seenRoomNames[r.Name] = true
	}

	for g := range req.GroupSizes {
		if !validGroups[g] {
			return fmt.Errorf("%w: group_sizes references unknown group %q", apierrors.ErrInvalidInput, g)
		}
	}
	for _, g := range req.ElectiveGroups {
		if !validGroups[g] {
			return fmt.Errorf("%w: elective_groups references unknown group %q", apierrors.ErrInvalidInput, g)
		}
	}
	for f := range req.FacultyPrefs {
		if !validFaculty[f] {
			return fmt.Errorf("%w: faculty_prefs references unknown faculty %q", apierrors.ErrInvalidInput, f)
		}
	}
	return nil
}

func solveOutcome(err error) string {
	switch {
	case err == nil:
		return "solved"
	case errors.Is(err, apierrors.ErrSolverTimeout):
		return "timeout"
	default:
		return "infeasible"
	}
}

func toPositionSet(positions []int) map[int]bool {
	if len(positions) == 0 {
		return nil
	}
	out := make(map[int]bool, len(positions))
	for _, p := range positions {
		out[p] = true
	}
	return out
}

func toStringSet(vals []string) map[string]bool {
	if len(vals) == 0 {
		return nil
	}
	out := make(map[string]bool, len(vals))
	for _, v := range vals {
		out[v] = true
	}
	return out
}

func roomCapacityOf(rooms []domain.Room) map[string]int {
	if len(rooms) == 0 {
		return nil
	}
	out := make(map[string]int, len(rooms))
	for _, r := range rooms {
		out[r.Name] = r.Capacity
	}
	return out
}
