package solver

import "github.com/latticeforge/hybrid-timetable/internal/domain"

// sessionDomains precomputes, for every session, the absolute start slots
// that keep it inside a single day: {d*P + p : 0<=d<D, 0<=p<=P-L}. Domains
// are ascending, so the search prefers earlier starts: the first complete
// assignment it finds gives each session, in variable order, the earliest
// start consistent with those placed before it. This is a deterministic
// tie-break, not a minimization of sum(start).
func sessionDomains(cal domain.Calendar, sessions []domain.Session) [][]int {
	out := make([][]int, len(sessions))
	p := cal.P()
	for i, s := range sessions {
		if s.Length > p {
			out[i] = nil
			continue
		}
		dom := make([]int, 0, cal.D()*(p-s.Length+1))
		for d := 0; d < cal.D(); d++ {
			for pos := 0; pos+s.Length <= p; pos++ {
				dom = append(dom, cal.Slot(d, pos))
			}
		}
		out[i] = dom
	}
	return out
}
