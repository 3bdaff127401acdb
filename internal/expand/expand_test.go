package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticeforge/hybrid-timetable/internal/apierrors"
	"github.com/latticeforge/hybrid-timetable/internal/domain"
)

func TestSessionsFlattensWeeklySlotsIntoConsecutiveBlocks(t *testing.T) {
	courses := []domain.Course{
		{ID: "cs101", Name: "Algorithms", Faculty: "ada", Groups: []string{"g1"}, WeeklySlots: 4, Consecutive: 2},
	}
	sessions, err := Sessions(courses)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "cs101_g1_0", sessions[0].ID)
	assert.Equal(t, "cs101_g1_1", sessions[1].ID)
	for _, s := range sessions {
		assert.Equal(t, 2, s.Length)
		assert.Equal(t, "ada", s.Faculty)
		assert.Equal(t, "g1", s.Group)
	}
}

func TestSessionsOneSessionPerSlotWhenConsecutiveIsOne(t *testing.T) {
	courses := []domain.Course{
		{ID: "cs102", Name: "Seminar", Faculty: "ada", Groups: []string{"g1"}, WeeklySlots: 3, Consecutive: 1},
	}
	sessions, err := Sessions(courses)
	require.NoError(t, err)
	assert.Len(t, sessions, 3)
}

func TestSessionsMultipleGroupsAreIndependent(t *testing.T) {
	courses := []domain.Course{
		{ID: "cs103", Name: "Algorithms", Faculty: "ada", Groups: []string{"g1", "g2"}, WeeklySlots: 2, Consecutive: 2},
	}
	sessions, err := Sessions(courses)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "cs103_g1_0", sessions[0].ID)
	assert.Equal(t, "cs103_g2_0", sessions[1].ID)
}

func TestSessionsRejectsNonDivisibleWeeklySlots(t *testing.T) {
	courses := []domain.Course{
		{ID: "cs104", Name: "Lab", Faculty: "ada", Groups: []string{"g1"}, WeeklySlots: 5, Consecutive: 2},
	}
	_, err := Sessions(courses)
	require.Error(t, err)
	assert.ErrorIs(t, err, apierrors.ErrInvalidInput)
}

func TestSessionsRejectsEmptyGroup(t *testing.T) {
	courses := []domain.Course{
		{ID: "cs105", Name: "Algorithms", Faculty: "ada", Groups: []string{""}, WeeklySlots: 2, Consecutive: 1},
	}
	_, err := Sessions(courses)
	require.Error(t, err)
	assert.ErrorIs(t, err, apierrors.ErrInvalidInput)
}

func TestSessionsRejectsDuplicateSessionIDs(t *testing.T) {
	courses := []domain.Course{
		{ID: "cs106", Name: "Algorithms", Faculty: "ada", Groups: []string{"g1"}, WeeklySlots: 2, Consecutive: 1},
		{ID: "cs106", Name: "Algorithms", Faculty: "ada", Groups: []string{"g1"}, WeeklySlots: 2, Consecutive: 1},
	}
	_, err := Sessions(courses)
	require.Error(t, err)
	assert.ErrorIs(t, err, apierrors.ErrInvalidInput)
}

func TestSessionsLabAndElectiveFlagsDeriveFromCourseName(t *testing.T) {
	courses := []domain.Course{
		{ID: "cs107", Name: "Networking Lab", Faculty: "ada", Groups: []string{"g1"}, WeeklySlots: 1, Consecutive: 1},
		{ID: "cs108", Name: "Elective: Art History", Faculty: "grace", Groups: []string{"g1"}, WeeklySlots: 1, Consecutive: 1},
	}
	sessions, err := Sessions(courses)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].IsLab)
	assert.True(t, sessions[1].Elective)
}
