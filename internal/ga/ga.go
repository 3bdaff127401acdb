// Package ga implements the genetic-refinement stage (§4.4): it takes the
// schedule produced by the exact solver plus greedy room assignment and
// searches nearby genomes for one with lower hard+soft penalty.
//
// Genome shape and operators are grounded on the teacher's simulated
// annealing refinement pass (internal/solver/simulated_annealing.go) for
// the overall "perturb, evaluate, keep the best" shape, and on
// JensRantil-meeting-scheduler's use of github.com/MaxHalford/eaopt for
// the Genome interface and NewDefaultGAConfig/NewGA/HallOfFame
// vocabulary. The generational loop itself (selection, crossover,
// mutation scheduling, hall-of-fame bookkeeping) is hand-rolled rather
// than calling eaopt's GA.Minimize: Minimize does not expose a documented
// seeding hook in any retrieved example, and the determinism contract
// here is a hard requirement, not a nice-to-have. candidate still
// implements eaopt.Genome so the type stays interoperable with eaopt's
// own operators (CrossCXInt, MutPermuteInt, ...) if a future caller wants
// them for a pure-permutation genome.
package ga

import (
	"context"
	"math/rand"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/latticeforge/hybrid-timetable/internal/domain"
)

// Params are the GA's tunable hyperparameters (§4.4 defaults).
type Params struct {
	PopSize     int
	Generations int
	Cxpb        float64 // crossover probability per pair
	Mutpb       float64 // mutation probability per individual
	Indpb       float64 // per-gene swap probability inside mutation
	Tournament  int     // tournament selection size
	Seed        int64
	Workers     int
}

// DefaultParams returns §4.4's stated defaults.
func DefaultParams() Params {
	return Params{
		PopSize:     60,
		Generations: 40,
		Cxpb:        0.7,
		Mutpb:       0.2,
		Indpb:       0.05,
		Tournament:  3,
		Seed:        1,
		Workers:     8,
	}
}

// Run refines seedGenes (the encoded stage-2/3 schedule) for Generations
// generations and returns the best genome found, decoded back into a
// schedule. Generations<=0 is a no-op: the seed is returned unchanged,
// satisfying §8's ngen=0 idempotence requirement without depending on any
// GA library's behavior at zero generations.
func Run(ctx context.Context, cfg *Config, params Params, seedGenes []int, log *zap.Logger) (domain.Schedule, float64, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if params.Generations <= 0 {
		return decodeToSchedule(cfg, seedGenes), cfg.Evaluate(seedGenes), nil
	}

	rng := rand.New(rand.NewSource(params.Seed))

	pop := make([]*candidate, params.PopSize)
	pop[0] = &candidate{cfg: cfg, params: &params, genes: append([]int(nil), seedGenes...)}
	for i := 1; i < params.PopSize; i++ {
		pop[i] = &candidate{cfg: cfg, params: &params, genes: randomGenes(cfg, rng)}
	}

	fitness, err := evaluateAll(ctx, pop, params.Workers)
	if err != nil {
		return nil, 0, err
	}

	bestGenes := append([]int(nil), pop[0].genes...)
	bestFitness := fitness[0]
	for i, f := range fitness {
		if f < bestFitness {
			bestFitness = f
			bestGenes = append([]int(nil), pop[i].genes...)
		}
	}

	for gen := 0; gen < params.Generations; gen++ {
		offspring := selectTournament(pop, fitness, params.Tournament, rng)

		for i := 0; i+1 < len(offspring); i += 2 {
			if rng.Float64() < params.Cxpb {
				offspring[i].Crossover(offspring[i+1], rng)
			}
		}
		for _, ind := range offspring {
			if rng.Float64() < params.Mutpb {
				ind.Mutate(rng)
			}
		}

		fitness, err = evaluateAll(ctx, offspring, params.Workers)
		if err != nil {
			return nil, 0, err
		}
		pop = offspring

		for i, f := range fitness {
			if f < bestFitness {
				bestFitness = f
				bestGenes = append([]int(nil), pop[i].genes...)
			}
		}
		log.Debug("ga generation complete", zap.Int("generation", gen), zap.Float64("best_fitness", bestFitness))
	}

	return decodeToSchedule(cfg, bestGenes), bestFitness, nil
}

// evaluateAll computes fitness for every individual concurrently, writing
// into an index-addressed slice so the result never depends on which
// goroutine finishes first — the one place this package exploits
// parallelism, matching §5's "parallel fitness evaluation... must
// preserve determinism".
func evaluateAll(ctx context.Context, pop []*candidate, workers int) ([]float64, error) {
	if workers <= 0 {
		workers = 1
	}
	out := make([]float64, len(pop))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, ind := range pop {
		i, ind := i, ind
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			f, err := ind.Evaluate()
			if err != nil {
				return err
			}
			out[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// selectTournament builds a new population of len(pop) individuals, each
// the fittest of `size` uniformly-drawn (with replacement) contestants.
// Selected individuals are cloned so later in-place crossover/mutation
// never aliases the parent population.
func selectTournament(pop []*candidate, fitness []float64, size int, rng *rand.Rand) []*candidate {
	out := make([]*candidate, len(pop))
	for i := range out {
		best := rng.Intn(len(pop))
		for c := 1; c < size; c++ {
			j := rng.Intn(len(pop))
			if fitness[j] < fitness[best] {
				best = j
			}
		}
		out[i] = pop[best].Clone().(*candidate)
	}
	return out
}

// randomGenes samples one (start, room) gene per session for a fresh
// random individual: start is drawn from the session's feasible domain
// given the calendar, and room is drawn from the kind-matching room list
// when one exists.
func randomGenes(cfg *Config, rng *rand.Rand) []int {
	t := cfg.Cal.T()
	p := cfg.Cal.P()
	labRooms, lectureRooms := splitRoomsByKind(cfg.Rooms)

	genes := make([]int, len(cfg.Sessions))
	for i, sess := range cfg.Sessions {
		start := randomStart(rng, t, p, sess.Length)
		roomIdx := 0
		if len(cfg.Rooms) > 0 {
			pool := lectureRooms
			if sess.IsLab && len(labRooms) > 0 {
				pool = labRooms
			}
			roomIdx = pool[rng.Intn(len(pool))]
		}
		genes[i] = encode(start, roomIdx, cfg.Multiplier)
	}
	return genes
}

func randomStart(rng *rand.Rand, t, p, length int) int {
	for attempt := 0; attempt < 8; attempt++ {
		start := rng.Intn(t)
		if start%p+length <= p {
			return start
		}
	}
	return 0
}

func splitRoomsByKind(rooms []domain.Room) (labs, lectures []int) {
	for i, r := range rooms {
		if r.Kind() == domain.RoomLab {
			labs = append(labs, i)
		} else {
			lectures = append(lectures, i)
		}
	}
	if len(lectures) == 0 {
		lectures = labs
	}
	if len(labs) == 0 {
		labs = lectures
	}
	return labs, lectures
}

func decodeToSchedule(cfg *Config, genes []int) domain.Schedule {
	d := cfg.decodeGenome(genes)
	sch := make(domain.Schedule, len(d))
	for _, x := range d {
		sch[x.sess.ID] = domain.Placement{
			Start:  x.start,
			Length: x.sess.Length,
			Room:   x.room,
			Meta:   x.sess,
		}
	}
	return sch
}

// EncodeSchedule packs an existing schedule into a genome in cfg.Sessions
// order, the inverse of decodeToSchedule — used to seed individual 0 from
// the stage-2/3 schedule.
func EncodeSchedule(cfg *Config, sch domain.Schedule) []int {
	roomIndex := make(map[string]int, len(cfg.Rooms))
	for i, r := range cfg.Rooms {
		roomIndex[r.Name] = i
	}
	genes := make([]int, len(cfg.Sessions))
	for i, sess := range cfg.Sessions {
		p, ok := sch[sess.ID]
		if !ok {
			genes[i] = encode(0, 0, cfg.Multiplier)
			continue
		}
		genes[i] = encode(p.Start, roomIndex[p.Room], cfg.Multiplier)
	}
	return genes
}
