package ga

import (
	"math/rand"

	"github.com/MaxHalford/eaopt"
)

// candidate is one genome: one encoded (start, room) gene per session, in
// the same order as Config.Sessions. It implements eaopt.Genome's
// Clone/Crossover/Mutate/Evaluate method set — the same shape the
// retrieved JensRantil-meeting-scheduler teacher implements for its own
// order-genome — so it stays interoperable with the eaopt ecosystem even
// though the generational loop driving it here is hand-rolled (see ga.go).
type candidate struct {
	cfg    *Config
	params *Params
	genes  []int
}

var _ eaopt.Genome = (*candidate)(nil)

func (c *candidate) Clone() eaopt.Genome {
	return &candidate{cfg: c.cfg, params: c.params, genes: append([]int(nil), c.genes...)}
}

// Crossover performs two-point crossover (§4.4) in place on both c and the
// other genome: a contiguous index range is exchanged between them. This
// is hand-written rather than eaopt's CrossCXInt/CrossPMXInt because those
// assume a permutation genome (every value distinct); ours is a plain
// integer vector where values can repeat.
func (c *candidate) Crossover(genome eaopt.Genome, rng *rand.Rand) {
	other := genome.(*candidate)
	twoPointCrossover(c.genes, other.genes, rng)
}

// Mutate applies shuffle-indexes mutation (§4.4): for every position,
// independently with probability indpb, swap it with another random
// position.
func (c *candidate) Mutate(rng *rand.Rand) {
	shuffleIndexes(c.genes, c.params.Indpb, rng)
}

func (c *candidate) Evaluate() (float64, error) {
	return c.cfg.Evaluate(c.genes), nil
}

func twoPointCrossover(a, b []int, rng *rand.Rand) {
	n := len(a)
	if n < 2 {
		return
	}
	i := rng.Intn(n)
	j := rng.Intn(n)
	if i > j {
		i, j = j, i
	}
	for k := i; k <= j; k++ {
		a[k], b[k] = b[k], a[k]
	}
}

func shuffleIndexes(genes []int, indpb float64, rng *rand.Rand) {
	n := len(genes)
	if n < 2 {
		return
	}
	for i := range genes {
		if rng.Float64() < indpb {
			j := rng.Intn(n)
			genes[i], genes[j] = genes[j], genes[i]
		}
	}
}
