package timetable

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/latticeforge/hybrid-timetable/internal/clash"
	"github.com/latticeforge/hybrid-timetable/internal/domain"
	"github.com/latticeforge/hybrid-timetable/internal/engine"
	"github.com/latticeforge/hybrid-timetable/internal/ga"
	"github.com/latticeforge/hybrid-timetable/internal/metrics"
	"github.com/latticeforge/hybrid-timetable/internal/roomassign"
)

// Re-exported domain types: callers build a Request out of these without
// reaching into internal/domain themselves.
type (
	Calendar          = domain.Calendar
	Course            = domain.Course
	Room              = domain.Room
	Limits            = domain.Limits
	Schedule          = domain.Schedule
	Placement         = domain.Placement
	Session           = domain.Session
	FacultyPreference = domain.FacultyPreference
)

const (
	PreferMorning   = domain.PreferMorning
	PreferAfternoon = domain.PreferAfternoon
)

// DefaultLimits returns the interface-table defaults (§6): 5 classes/day,
// 3 max consecutive slots, 5 daily and 20 weekly faculty hours, 3 minimum
// distinct group days, 0.4 day-balance fraction.
func DefaultLimits() domain.Limits { return domain.DefaultLimits() }

// Request is the full input to GenerateTimetable.
type Request = engine.Request

// Result is the full output of GenerateTimetable, including provenance
// (whether room assignment and genetic refinement ran, and whether any
// sessions were left without a room).
type Result = engine.Result

// RoomAssignmentFailure records one session the greedy room pass could
// not place.
type RoomAssignmentFailure = roomassign.Failure

// GAParams are the genetic refinement stage's tunable hyperparameters.
type GAParams = ga.Params

// DefaultGAParams returns §4.4's stated defaults (population 60,
// generations 40, crossover 0.7, mutation 0.2, per-gene swap 0.05,
// tournament size 3).
func DefaultGAParams() ga.Params { return ga.DefaultParams() }

// ClashReport is the §6 detectClashes return shape: every resource-overlap
// and capacity-violation kind the engine checks for.
type ClashReport = clash.Report

// Option configures a Generator.
type Option = engine.Option

func WithLogger(l *zap.Logger) Option           { return engine.WithLogger(l) }
func WithMetrics(m *metrics.Sink) Option        { return engine.WithMetrics(m) }
func WithRoomAssignment(enabled bool) Option    { return engine.WithRoomAssignment(enabled) }
func WithGA(enabled bool) Option                { return engine.WithGA(enabled) }
func WithGAParams(p GAParams) Option            { return engine.WithGAParams(p) }
func WithSolverSeed(seed int64) Option          { return engine.WithSolverSeed(seed) }
func WithSolverMaxTime(d time.Duration) Option  { return engine.WithSolverMaxTime(d) }
func WithSolverWorkers(n int) Option            { return engine.WithSolverWorkers(n) }

// NewMetricsSink builds a Prometheus-backed metrics.Sink for WithMetrics,
// and exposes its HTTP handler for a caller to mount (see cmd/demo).
func NewMetricsSink() *metrics.Sink { return metrics.New() }

// Generator is a reusable timetable-generation engine: build one and call
// Generate as many times as needed, each call independent of the others.
type Generator struct {
	eng *engine.Engine
}

// NewGenerator builds a Generator with the given options applied over the
// defaults (room assignment and genetic refinement both on).
func NewGenerator(opts ...Option) *Generator {
	return &Generator{eng: engine.New(opts...)}
}

// Generate runs the full pipeline for one request.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	return g.eng.Generate(ctx, req)
}

// GenerateWithOptions runs the pipeline for one request, layering
// per-call options (e.g. a request-specific solver seed or GA generation
// count) on top of the Generator's own configuration without mutating it.
func (g *Generator) GenerateWithOptions(ctx context.Context, req Request, opts ...Option) (Result, error) {
	eng := g.eng
	if len(opts) > 0 {
		eng = eng.With(opts...)
	}
	return eng.Generate(ctx, req)
}

// GenerateTimetable is the one-shot convenience form of Generator.Generate
// for callers that don't need to reuse configuration across calls.
func GenerateTimetable(ctx context.Context, req Request, opts ...Option) (Result, error) {
	return NewGenerator(opts...).Generate(ctx, req)
}

// DetectClashes recomputes the four §6 clash kinds from scratch against an
// already-built schedule. roomCapacity and groupSizes may be nil.
func DetectClashes(sch Schedule, roomCapacity map[string]int, groupSizes map[string]int) ClashReport {
	return clash.Detect(sch, roomCapacity, groupSizes)
}
