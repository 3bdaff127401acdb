// Package solver implements the exact feasibility solver (§4.2): a
// constraint-programming-shaped model over integer session start times,
// searched with depth-first backtracking rather than an off-the-shelf
// CP-SAT backend (none of the retrieved Go corpus vendors one; see
// DESIGN.md). Each candidate start is checked against the sessions already
// placed; the domains of unplaced sessions are not filtered.
package solver

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/latticeforge/hybrid-timetable/internal/apierrors"
	"github.com/latticeforge/hybrid-timetable/internal/domain"
	"go.uber.org/zap"
)

// DefaultWorkers is the number of randomized-restart search workers run in
// parallel, per §5's "internal parallelism ... default 8".
const DefaultWorkers = 8

// Solver is the exact feasibility solver. It holds no mutable state between
// calls to Solve — a fresh Solver is cheap to build per Generate call, in
// keeping with §9's "no module-level registry" redesign directive (the
// teacher's graph-coloring stage mutated package-level state; this does
// not).
type Solver struct {
	cal      domain.Calendar
	limits   domain.Limits
	sessions []domain.Session
	seed     int64
	maxTime  time.Duration
	workers  int
	log      *zap.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithSeed fixes the random seed used to break ties among equally
// constrained variables and to assign distinct per-worker seeds.
func WithSeed(seed int64) Option { return func(s *Solver) { s.seed = seed } }

// WithMaxTime bounds the search; exceeding it yields SolverTimeout.
func WithMaxTime(d time.Duration) Option { return func(s *Solver) { s.maxTime = d } }

// WithWorkers sets the number of parallel randomized-restart workers.
func WithWorkers(n int) Option { return func(s *Solver) { s.workers = n } }

// WithLogger attaches a structured logger; defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option { return func(s *Solver) { s.log = l } }

// New builds a Solver over a fixed session list.
func New(cal domain.Calendar, limits domain.Limits, sessions []domain.Session, opts ...Option) *Solver {
	s := &Solver{
		cal:      cal,
		limits:   limits,
		sessions: sessions,
		seed:     1,
		maxTime:  10 * time.Second,
		workers:  DefaultWorkers,
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.workers < 1 {
		s.workers = 1
	}
	return s
}

// workerResult is the outcome of one randomized-restart search.
type workerResult struct {
	starts  []int
	solved  bool
	timeout bool
}

// Solve runs up to Solver.workers independent randomized-restart searches
// concurrently, each bounded by maxTime, and deterministically returns the
// lowest-indexed worker's feasible result — so outcome selection never
// depends on goroutine completion order, preserving the determinism
// contract of §5 even though the search itself runs in parallel.
func (s *Solver) Solve(ctx context.Context) (domain.Schedule, error) {
	domains := sessionDomains(s.cal, s.sessions)
	for i, d := range domains {
		if len(d) == 0 {
			return nil, fmt.Errorf("%w: session %q has no valid start (length %d > slots/day %d)",
				apierrors.ErrInvalidInput, s.sessions[i].ID, s.sessions[i].Length, s.cal.P())
		}
	}

	baseOrder := s.variableOrder(domains)
	deadline := time.Now().Add(s.maxTime)

	results := make([]workerResult, s.workers)
	done := make(chan int, s.workers)
	for w := 0; w < s.workers; w++ {
		w := w
		go func() {
			order := shuffledOrder(baseOrder, s.seed+int64(w))
			st := newSearchState(s.cal, s.limits, s.sessions, domains, order)
			checkEvery := 0
			deadlineFn := func() bool {
				checkEvery++
				if checkEvery%2048 != 0 {
					return false
				}
				select {
				case <-ctx.Done():
					return true
				default:
					return time.Now().After(deadline)
				}
			}
			ok, aborted := st.backtrack(0, deadlineFn)
			results[w] = workerResult{starts: append([]int(nil), st.starts...), solved: ok, timeout: aborted}
			done <- w
		}()
	}
	for i := 0; i < s.workers; i++ {
		<-done
	}

	for _, r := range results {
		if r.solved {
			return s.buildSchedule(r.starts), nil
		}
	}
	for _, r := range results {
		if r.timeout {
			return nil, fmt.Errorf("%w: %w: exhausted %s search budget", apierrors.ErrInfeasible, apierrors.ErrSolverTimeout, s.maxTime)
		}
	}
	return nil, fmt.Errorf("%w: no feasible start-time assignment found", apierrors.ErrInfeasible)
}

func (s *Solver) buildSchedule(starts []int) domain.Schedule {
	sch := make(domain.Schedule, len(s.sessions))
	for i, sess := range s.sessions {
		sch[sess.ID] = domain.Placement{Start: starts[i], Length: sess.Length, Meta: sess}
	}
	return sch
}

// variableOrder picks a static most-constrained-first ordering: sessions
// with the smallest domain first, ties broken by highest conflict-graph
// degree (grounded on the teacher's conflict-graph degree bookkeeping,
// internal/graph/graph.go's GetDegree), then by session id for determinism.
func (s *Solver) variableOrder(domains [][]int) []int {
	g := buildConflictGraph(s.sessions)

	order := make([]int, len(s.sessions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if len(domains[ia]) != len(domains[ib]) {
			return len(domains[ia]) < len(domains[ib])
		}
		if g.Degree(ia) != g.Degree(ib) {
			return g.Degree(ia) > g.Degree(ib)
		}
		return s.sessions[ia].ID < s.sessions[ib].ID
	})
	return order
}

// shuffledOrder perturbs the base order with a seeded, bounded local
// shuffle: swapping within small windows preserves most of the
// most-constrained-first heuristic while giving each worker a distinct
// search path.
func shuffledOrder(base []int, seed int64) []int {
	out := append([]int(nil), base...)
	rng := rand.New(rand.NewSource(seed))
	const window = 4
	for i := 0; i < len(out); i += window {
		end := i + window
		if end > len(out) {
			end = len(out)
		}
		rng.Shuffle(end-i, func(a, b int) {
			out[i+a], out[i+b] = out[i+b], out[i+a]
		})
	}
	return out
}
