package timetable

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTimetableTrivialFeasibleCase(t *testing.T) {
	req := Request{
		Calendar: Calendar{Days: []string{"mon", "tue"}, SlotsPerDay: 4},
		Limits:   DefaultLimits(),
		Courses: []Course{
			{ID: "c1", Name: "Algorithms", Faculty: "ada", Groups: []string{"g1"}, WeeklySlots: 2, Consecutive: 1},
		},
	}
	result, err := GenerateTimetable(context.Background(), req, WithGA(false), WithSolverMaxTime(2*time.Second))
	require.NoError(t, err)
	assert.Len(t, result.Schedule, 2)
	assert.True(t, result.ClashFreeAtExit)
}

func TestDetectClashesOnAHandBuiltOverlap(t *testing.T) {
	sch := Schedule{
		"a": {Start: 0, Length: 1, Meta: Session{ID: "a", Faculty: "ada", Group: "g1"}},
		"b": {Start: 0, Length: 1, Meta: Session{ID: "b", Faculty: "ada", Group: "g2"}},
	}
	report := DetectClashes(sch, nil, nil)
	assert.False(t, report.Empty())
	assert.Len(t, report.Faculty, 1)
}

func TestGeneratorReuseAcrossCallsIsIndependent(t *testing.T) {
	gen := NewGenerator(WithGA(false), WithSolverMaxTime(2*time.Second))
	req1 := Request{
		Calendar: Calendar{Days: []string{"mon"}, SlotsPerDay: 4},
		Limits:   DefaultLimits(),
		Courses: []Course{
			{ID: "c1", Name: "Algorithms", Faculty: "ada", Groups: []string{"g1"}, WeeklySlots: 1, Consecutive: 1},
		},
	}
	req2 := req1
	req2.Courses = []Course{
		{ID: "c2", Name: "Databases", Faculty: "bob", Groups: []string{"g2"}, WeeklySlots: 1, Consecutive: 1},
	}

	r1, err := gen.Generate(context.Background(), req1)
	require.NoError(t, err)
	r2, err := gen.Generate(context.Background(), req2)
	require.NoError(t, err)

	_, hasC1 := r2.Schedule["c1_g1_0"]
	assert.False(t, hasC1, "a later call must not see state left behind by an earlier one")
	_, hasC2 := r1.Schedule["c2_g2_0"]
	assert.False(t, hasC2)
}
