// Package expand flattens courses into atomic scheduling sessions, the
// first of the three core pipeline stages (§4.1).
package expand

import (
	"fmt"

	"github.com/latticeforge/hybrid-timetable/internal/apierrors"
	"github.com/latticeforge/hybrid-timetable/internal/domain"
)

// Sessions flattens every course into its sessions, one pass per
// (course, group) pair in the order courses and groups were given, so
// session ids are stable under re-runs with identical input order.
//
// For k=1 a course generates WeeklySlots sessions of length 1; for k>1 it
// generates WeeklySlots/k sessions of length k. A course whose WeeklySlots
// isn't a multiple of Consecutive is rejected with ErrInvalidInput.
func Sessions(courses []domain.Course) ([]domain.Session, error) {
	var out []domain.Session
	seenIDs := make(map[string]struct{})

	for _, c := range courses {
		if c.Consecutive <= 0 || c.WeeklySlots%c.Consecutive != 0 {
			return nil, fmt.Errorf("%w: course %q: weekly_slots=%d not divisible by consecutive=%d",
				apierrors.ErrInvalidInput, c.ID, c.WeeklySlots, c.Consecutive)
		}
		count := c.WeeklySlots / c.Consecutive

		for _, group := range c.Groups {
			if group == "" {
				return nil, fmt.Errorf("%w: course %q: empty group reference", apierrors.ErrInvalidInput, c.ID)
			}
			for i := 0; i < count; i++ {
				id := domain.NewSessionID(c.ID, group, i)
				if _, dup := seenIDs[id]; dup {
					return nil, fmt.Errorf("%w: duplicate session id %q (duplicate course/group pair?)", apierrors.ErrInvalidInput, id)
				}
				seenIDs[id] = struct{}{}

				out = append(out, domain.Session{
					ID:       id,
					Course:   c,
					Group:    group,
					Faculty:  c.Faculty,
					Length:   c.Consecutive,
					IsLab:    c.IsLab(),
					Elective: c.IsElective(),
				})
			}
		}
	}

	return out, nil
}
