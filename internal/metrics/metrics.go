// Package metrics wraps the engine's Prometheus instrumentation. Grounded
// on noah-isme-sma-adp-api's internal/service/metrics_service.go: a single
// struct owning its own registry and collectors, with a nil receiver
// acting as a safe no-op so instrumentation can be entirely optional.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sink is the instrumentation surface the engine calls into. A nil *Sink
// is valid and records nothing, so WithMetrics is optional.
type Sink struct {
	registry *prometheus.Registry
	handler  http.Handler

	solverDuration prometheus.Histogram
	solverOutcomes *prometheus.CounterVec
	gaGenerations  prometheus.Histogram
	gaFitness      prometheus.Gauge
	roomFailures   prometheus.Counter
	runsTotal      *prometheus.CounterVec
}

// New registers a fresh set of collectors on their own registry.
func New() *Sink {
	registry := prometheus.NewRegistry()

	solverDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_solver_duration_seconds",
		Help:    "Wall-clock time spent in the exact feasibility search.",
		Buckets: prometheus.DefBuckets,
	})
	solverOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_solver_outcomes_total",
		Help: "Exact solver outcomes by result (solved, infeasible, timeout).",
	}, []string{"outcome"})
	gaGenerations := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_ga_generations_run",
		Help:    "Number of generations the genetic refinement stage actually ran.",
		Buckets: prometheus.LinearBuckets(0, 10, 10),
	})
	gaFitness := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "timetable_ga_best_fitness",
		Help: "Best fitness value found by the most recent genetic refinement run.",
	})
	roomFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_room_assignment_failures_total",
		Help: "Sessions the greedy room assignment pass could not place.",
	})
	runsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_generate_runs_total",
		Help: "GenerateTimetable invocations by final result.",
	}, []string{"result"})

	registry.MustRegister(solverDuration, solverOutcomes, gaGenerations, gaFitness, roomFailures, runsTotal)

	return &Sink{
		registry:       registry,
		handler:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		solverDuration: solverDuration,
		solverOutcomes: solverOutcomes,
		gaGenerations:  gaGenerations,
		gaFitness:      gaFitness,
		roomFailures:   roomFailures,
		runsTotal:      runsTotal,
	}
}

// Handler exposes the collectors over HTTP, for cmd/demo to mount.
func (s *Sink) Handler() http.Handler {
	if s == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return s.handler
}

func (s *Sink) ObserveSolver(d time.Duration, outcome string) {
	if s == nil {
		return
	}
	s.solverDuration.Observe(d.Seconds())
	s.solverOutcomes.WithLabelValues(outcome).Inc()
}

func (s *Sink) ObserveGA(generationsRun int, bestFitness float64) {
	if s == nil {
		return
	}
	s.gaGenerations.Observe(float64(generationsRun))
	s.gaFitness.Set(bestFitness)
}

func (s *Sink) ObserveRoomFailures(n int) {
	if s == nil || n <= 0 {
		return
	}
	s.roomFailures.Add(float64(n))
}

func (s *Sink) ObserveRun(result string) {
	if s == nil {
		return
	}
	s.runsTotal.WithLabelValues(result).Inc()
}
