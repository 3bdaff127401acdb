package solver

import "github.com/latticeforge/hybrid-timetable/internal/domain"

// conflictGraph records, for a fixed session list, which session indexes
// can never share a slot because they share a faculty or a group. It is
// used only to order the backtracking search (most-constrained-first), not
// to enforce the non-overlap constraint itself — that is checked directly
// against each resource's assigned intervals in search.go.
//
// Adapted from the teacher's adjacency-list conflict graph
// (internal/graph/graph.go), generalized from class-session merge/color
// bookkeeping to a plain degree count used for variable ordering.
type conflictGraph struct {
	degree []int
}

func buildConflictGraph(sessions []domain.Session) *conflictGraph {
	n := len(sessions)
	g := &conflictGraph{degree: make([]int, n)}

	byFaculty := make(map[string][]int)
	byGroup := make(map[string][]int)
	for i, s := range sessions {
		byFaculty[s.Faculty] = append(byFaculty[s.Faculty], i)
		byGroup[s.Group] = append(byGroup[s.Group], i)
	}

	addClique := func(idxs []int) {
		for _, i := range idxs {
			g.degree[i] += len(idxs) - 1
		}
	}
	for _, idxs := range byFaculty {
		addClique(idxs)
	}
	for _, idxs := range byGroup {
		addClique(idxs)
	}

	return g
}

// Degree returns session i's conflict-graph degree: the number of other
// sessions sharing its faculty plus the number sharing its group, so a
// session sharing both with another counts that one twice.
func (g *conflictGraph) Degree(i int) int { return g.degree[i] }
