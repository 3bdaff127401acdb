package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/latticeforge/hybrid-timetable/internal/domain"
)

func TestEvaluateOfADisjointCleanScheduleIsSoftPenaltyOnly(t *testing.T) {
	cfg := smallConfig()
	genes := EncodeSchedule(cfg, domain.Schedule{
		"a": {Start: 0, Length: 1, Room: "r1", Meta: cfg.Sessions[0]},
		"b": {Start: 4, Length: 1, Room: "r2", Meta: cfg.Sessions[1]},
	})
	// No hard penalty. The only soft term is each group's daily-load
	// variance over the 2 days ([1,0] and [0,1]: 0.25 each), times 5:
	// 0.05 * 5 * 0.5 = 0.125.
	assert.Equal(t, 0.125, cfg.Evaluate(genes))
}

func TestEvaluatePenalizesRoomOverlapHeavily(t *testing.T) {
	cfg := smallConfig()
	clean := EncodeSchedule(cfg, domain.Schedule{
		"a": {Start: 0, Length: 1, Room: "r1", Meta: cfg.Sessions[0]},
		"b": {Start: 4, Length: 1, Room: "r2", Meta: cfg.Sessions[1]},
	})
	clashing := EncodeSchedule(cfg, domain.Schedule{
		"a": {Start: 0, Length: 1, Room: "r1", Meta: cfg.Sessions[0]},
		"b": {Start: 0, Length: 1, Room: "r1", Meta: cfg.Sessions[1]},
	})
	assert.Greater(t, cfg.Evaluate(clashing), cfg.Evaluate(clean))
}

func TestEvaluatePenalizesRoomTooSmallForGroup(t *testing.T) {
	cfg := smallConfig()
	cfg.GroupSizes = map[string]int{"g1": 40}
	cfg.Rooms[1].Capacity = 60 // r2 is large enough for g1
	tooSmall := EncodeSchedule(cfg, domain.Schedule{
		"a": {Start: 0, Length: 1, Room: "r1", Meta: cfg.Sessions[0]}, // r1 capacity 30 < 40
		"b": {Start: 4, Length: 1, Room: "r2", Meta: cfg.Sessions[1]},
	})
	fits := cfg.Evaluate(EncodeSchedule(cfg, domain.Schedule{
		"a": {Start: 0, Length: 1, Room: "r2", Meta: cfg.Sessions[0]},
		"b": {Start: 4, Length: 1, Room: "r1", Meta: cfg.Sessions[1]},
	}))
	assert.Greater(t, cfg.Evaluate(tooSmall), fits)
}

func TestEvaluatePenalizesFacultyPreferenceMismatch(t *testing.T) {
	cfg := smallConfig()
	cfg.FacultyPrefs = map[string]domain.FacultyPreference{"ada": domain.PreferMorning}
	morning := EncodeSchedule(cfg, domain.Schedule{
		"a": {Start: 0, Length: 1, Room: "r1", Meta: cfg.Sessions[0]}, // pos 0, morning
		"b": {Start: 4, Length: 1, Room: "r2", Meta: cfg.Sessions[1]},
	})
	afternoon := EncodeSchedule(cfg, domain.Schedule{
		"a": {Start: 3, Length: 1, Room: "r1", Meta: cfg.Sessions[0]}, // pos 3 of 4, afternoon half
		"b": {Start: 4, Length: 1, Room: "r2", Meta: cfg.Sessions[1]},
	})
	assert.Greater(t, cfg.Evaluate(afternoon), cfg.Evaluate(morning))
}

func TestContiguousRunsFindsMaximalRuns(t *testing.T) {
	slots := map[int]bool{0: true, 1: true, 2: true, 5: true, 7: true, 8: true}
	runs := contiguousRuns(slots)
	total := 0
	for _, r := range runs {
		total += r
	}
	assert.Equal(t, len(slots), total)
	assert.Contains(t, runs, 3)
	assert.Contains(t, runs, 1)
	assert.Contains(t, runs, 2)
}

func TestVarianceOfIdenticalValuesIsZero(t *testing.T) {
	assert.Equal(t, 0.0, variance([]float64{5, 5, 5}))
}

func TestVarianceOfEmptySliceIsZero(t *testing.T) {
	assert.Equal(t, 0.0, variance(nil))
}
