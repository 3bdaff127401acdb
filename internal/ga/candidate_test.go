package ga

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTwoPointCrossoverSwapsExactlyTheChosenRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := []int{1, 2, 3, 4, 5}
	b := []int{10, 20, 30, 40, 50}
	origA := append([]int(nil), a...)
	origB := append([]int(nil), b...)

	twoPointCrossover(a, b, rng)

	changed := 0
	for i := range a {
		if a[i] != origA[i] {
			changed++
			assert.Equal(t, origB[i], a[i])
		}
		if b[i] != origB[i] {
			assert.Equal(t, origA[i], b[i])
		}
	}
	assert.Greater(t, changed, 0, "a fresh RNG with a 5-gene genome should almost never pick an empty range")
}

func TestTwoPointCrossoverIsANoOpOnSingleGeneGenomes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := []int{7}
	b := []int{8}
	twoPointCrossover(a, b, rng)
	assert.Equal(t, []int{7}, a)
	assert.Equal(t, []int{8}, b)
}

func TestShuffleIndexesWithZeroProbabilityNeverMutates(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	genes := []int{1, 2, 3, 4}
	orig := append([]int(nil), genes...)
	shuffleIndexes(genes, 0, rng)
	assert.Equal(t, orig, genes)
}

func TestCandidateCloneIsIndependentOfOriginal(t *testing.T) {
	cfg := smallConfig()
	params := DefaultParams()
	c := &candidate{cfg: cfg, params: &params, genes: []int{1, 2}}
	clone := c.Clone().(*candidate)
	clone.genes[0] = 999
	assert.NotEqual(t, c.genes[0], clone.genes[0])
}
