package roomassign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/latticeforge/hybrid-timetable/internal/domain"
)

func TestAssignPicksRoomLargeEnoughForGroupSize(t *testing.T) {
	sch := domain.Schedule{
		"a": {Start: 0, Length: 1, Meta: domain.Session{ID: "a", Group: "g1"}},
	}
	rooms := []domain.Room{
		{Name: "small", Capacity: 10},
		{Name: "big", Capacity: 100},
	}
	groupSizes := map[string]int{"g1": 50}

	out, failures := Assign(sch, rooms, groupSizes, 8, zap.NewNop())
	require.Empty(t, failures)
	assert.Equal(t, "big", out["a"].Room)
}

func TestAssignLongestSessionsGoFirstAndStillFitWhenPossible(t *testing.T) {
	sch := domain.Schedule{
		"short": {Start: 2, Length: 1, Meta: domain.Session{ID: "short", Group: "g1"}},
		"long":  {Start: 0, Length: 2, Meta: domain.Session{ID: "long", Group: "g2"}},
	}
	rooms := []domain.Room{{Name: "r1", Capacity: 100}}

	out, failures := Assign(sch, rooms, nil, 8, zap.NewNop())
	require.Empty(t, failures)
	assert.Equal(t, "r1", out["short"].Room)
	assert.Equal(t, "r1", out["long"].Room)
}

func TestAssignPrefersLabRoomsForLabSessions(t *testing.T) {
	sch := domain.Schedule{
		"lab": {Start: 0, Length: 1, Meta: domain.Session{ID: "lab", Group: "g1", IsLab: true}},
	}
	rooms := []domain.Room{
		{Name: "lecture-hall", Capacity: 100},
		{Name: "cs-lab", Capacity: 100},
	}
	out, failures := Assign(sch, rooms, nil, 8, zap.NewNop())
	require.Empty(t, failures)
	assert.Equal(t, "cs-lab", out["lab"].Room)
}

func TestAssignReportsFailureWhenNoRoomFits(t *testing.T) {
	sch := domain.Schedule{
		"a": {Start: 0, Length: 1, Meta: domain.Session{ID: "a", Group: "g1"}},
	}
	rooms := []domain.Room{{Name: "small", Capacity: 5}}
	groupSizes := map[string]int{"g1": 50}

	out, failures := Assign(sch, rooms, groupSizes, 8, zap.NewNop())
	require.Len(t, failures, 1)
	assert.Equal(t, "a", failures[0].SessionID)
	assert.Empty(t, out["a"].Room)
}

func TestAssignNeverDoubleBooksARoom(t *testing.T) {
	sch := domain.Schedule{
		"a": {Start: 0, Length: 2, Meta: domain.Session{ID: "a", Group: "g1"}},
		"b": {Start: 1, Length: 1, Meta: domain.Session{ID: "b", Group: "g2"}},
	}
	rooms := []domain.Room{{Name: "only", Capacity: 100}}
	out, failures := Assign(sch, rooms, nil, 8, zap.NewNop())
	require.Len(t, failures, 1, "overlapping sessions cannot share the one available room")
	assert.Equal(t, "only", out["a"].Room, "the longer session is placed first")
	assert.Empty(t, out["b"].Room)
}
