package solver

import "github.com/latticeforge/hybrid-timetable/internal/domain"

// interval is a half-open [start, end) occupied range used for the
// disjunctive non-overlap check: two intervals conflict unless one ends at
// or before the other starts.
type interval struct{ start, end int }

func (iv interval) overlaps(start, end int) bool {
	return iv.start < end && start < iv.end
}

// searchState holds everything the backtracking search mutates while
// exploring one candidate assignment. It is built fresh per worker so
// workers never share mutable state.
type searchState struct {
	cal     domain.Calendar
	limits  domain.Limits
	sessions []domain.Session
	domains [][]int
	order   []int // variable order: indexes into sessions/domains

	starts []int // starts[i] is session i's assigned start, -1 if unassigned

	facultyIntervals map[string][]interval
	groupIntervals   map[string][]interval
	facultyDayLoad   map[string][]int // faculty -> per-day slot count
	facultyTotal     map[string]int
	groupDaySlots    map[string][]int // group -> per-day slot count
}

func newSearchState(cal domain.Calendar, limits domain.Limits, sessions []domain.Session, domains [][]int, order []int) *searchState {
	n := len(sessions)
	s := &searchState{
		cal: cal, limits: limits, sessions: sessions, domains: domains, order: order,
		starts:           make([]int, n),
		facultyIntervals: make(map[string][]interval),
		groupIntervals:   make(map[string][]interval),
		facultyDayLoad:   make(map[string][]int),
		facultyTotal:     make(map[string]int),
		groupDaySlots:    make(map[string][]int),
	}
	for i := range s.starts {
		s.starts[i] = -1
	}
	for _, sess := range sessions {
		s.ensureDayLoad(&s.facultyDayLoad, sess.Faculty)
		s.ensureDayLoad(&s.groupDaySlots, sess.Group)
	}
	return s
}

// canPlace reports whether session idx can start at `start` without
// violating any constraint the exact solver owns: faculty/group overlap,
// per-day faculty hours, per-day group slot count, and weekly faculty
// hours (invariants 1, 2, 5, 6, 7).
func (s *searchState) canPlace(idx, start int) bool {
	sess := s.sessions[idx]
	end := start + sess.Length
	day := s.cal.DayOf(start)

	for _, iv := range s.facultyIntervals[sess.Faculty] {
		if iv.overlaps(start, end) {
			return false
		}
	}
	for _, iv := range s.groupIntervals[sess.Group] {
		if iv.overlaps(start, end) {
			return false
		}
	}

	if s.facultyDayLoad[sess.Faculty][day]+sess.Length > s.limits.MaxDailyHoursPerFaculty {
		return false
	}
	if s.facultyTotal[sess.Faculty]+sess.Length > s.limits.MaxWeeklyHoursPerFaculty {
		return false
	}
	if s.groupDaySlots[sess.Group][day]+sess.Length > s.limits.MaxClassesPerDay {
		return false
	}
	return true
}

func (s *searchState) place(idx, start int) {
	sess := s.sessions[idx]
	end := start + sess.Length
	day := s.cal.DayOf(start)

	s.starts[idx] = start
	s.facultyIntervals[sess.Faculty] = append(s.facultyIntervals[sess.Faculty], interval{start, end})
	s.groupIntervals[sess.Group] = append(s.groupIntervals[sess.Group], interval{start, end})

	s.ensureDayLoad(&s.facultyDayLoad, sess.Faculty)
	s.facultyDayLoad[sess.Faculty][day] += sess.Length
	s.facultyTotal[sess.Faculty] += sess.Length

	s.ensureDayLoad(&s.groupDaySlots, sess.Group)
	s.groupDaySlots[sess.Group][day] += sess.Length
}

func (s *searchState) unplace(idx int) {
	sess := s.sessions[idx]
	start := s.starts[idx]
	end := start + sess.Length
	day := s.cal.DayOf(start)

	s.facultyIntervals[sess.Faculty] = popInterval(s.facultyIntervals[sess.Faculty], interval{start, end})
	s.groupIntervals[sess.Group] = popInterval(s.groupIntervals[sess.Group], interval{start, end})
	s.facultyDayLoad[sess.Faculty][day] -= sess.Length
	s.facultyTotal[sess.Faculty] -= sess.Length
	s.groupDaySlots[sess.Group][day] -= sess.Length

	s.starts[idx] = -1
}

func (s *searchState) ensureDayLoad(m *map[string][]int, key string) {
	if _, ok := (*m)[key]; !ok {
		(*m)[key] = make([]int, s.cal.D())
	}
}

func popInterval(ivs []interval, target interval) []interval {
	for i := len(ivs) - 1; i >= 0; i-- {
		if ivs[i] == target {
			return append(ivs[:i], ivs[i+1:]...)
		}
	}
	return ivs
}

// distinctDaysSatisfied checks invariant 8 for every group over the
// complete assignment: each group must occupy sessions on at least
// min(minGroupDays, D) distinct days.
func (s *searchState) distinctDaysSatisfied() bool {
	need := s.limits.MinDistinctDays(s.cal.D())
	if need <= 0 {
		return true
	}
	for group, load := range s.groupDaySlots {
		_ = group
		used := 0
		for _, v := range load {
			if v > 0 {
				used++
			}
		}
		if used < need {
			return false
		}
	}
	return true
}

// backtrack explores session s.order[pos:] depth-first, trying each
// session's domain in ascending order (the tie-break objective). It
// returns true once every session is placed and the distinct-days
// constraint holds. aborted is set if the deadline check fires mid-search.
func (s *searchState) backtrack(pos int, deadline func() bool) (ok bool, aborted bool) {
	if deadline() {
		return false, true
	}
	if pos == len(s.order) {
		return s.distinctDaysSatisfied(), false
	}

	idx := s.order[pos]
	for _, start := range s.domains[idx] {
		if !s.canPlace(idx, start) {
			continue
		}
		s.place(idx, start)
		childOK, childAborted := s.backtrack(pos+1, deadline)
		if childOK || childAborted {
			return childOK, childAborted
		}
		s.unplace(idx)
	}
	return false, false
}
