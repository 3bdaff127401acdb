// Package clash recomputes post-hoc conflict lists for diagnostics (§6's
// detectClashes). On a correct engine output every list is empty — this
// doubles as the engine's own post-condition check (§7) and as the test
// oracle for the universally quantified invariants of §8.
//
// Grounded on the teacher's post-hoc solution scanner
// (internal/solver/balance_validator.go's "scan the built solution for
// problems" shape), generalized from section-combination feasibility to
// the spec's four resource-overlap/capacity clash kinds.
package clash

import (
	"sort"

	"github.com/latticeforge/hybrid-timetable/internal/domain"
)

// Overlap is one pair of sessions found occupying the same slot on the
// same resource (faculty, group, or room).
type Overlap struct {
	Resource string
	SlotA    int
	SessionA string
	SessionB string
}

// CapacityViolation is one placement whose assigned room is too small for
// its group.
type CapacityViolation struct {
	SessionID    string
	Room         string
	GroupSize    int
	RoomCapacity int
}

// Report is the §6 detectClashes return shape.
type Report struct {
	Faculty      []Overlap
	Group        []Overlap
	Room         []Overlap
	RoomCapacity []CapacityViolation
}

// Empty reports whether every list in the report is empty.
func (r Report) Empty() bool {
	return len(r.Faculty) == 0 && len(r.Group) == 0 && len(r.Room) == 0 && len(r.RoomCapacity) == 0
}

// Detect recomputes all four clash kinds from scratch against a schedule.
// roomCapacity is keyed by room name, groupSizes by group id; either may be
// nil, in which case room-capacity violations are never reported (the spec
// qualifies invariant 9 with "if group sizes known").
func Detect(sch domain.Schedule, roomCapacity map[string]int, groupSizes map[string]int) Report {
	var rpt Report
	rpt.Faculty = overlapsFor(sch, func(p domain.Placement) string { return p.Meta.Faculty })
	rpt.Group = overlapsFor(sch, func(p domain.Placement) string { return p.Meta.Group })
	rpt.Room = overlapsFor(sch, func(p domain.Placement) string {
		if p.Room == "" {
			return ""
		}
		return "room:" + p.Room
	})

	if groupSizes != nil && roomCapacity != nil {
		ids := sortedIDs(sch)
		for _, id := range ids {
			p := sch[id]
			if p.Room == "" {
				continue
			}
			size := groupSizes[p.Meta.Group]
			cap, known := roomCapacity[p.Room]
			if known && size > cap {
				rpt.RoomCapacity = append(rpt.RoomCapacity, CapacityViolation{
					SessionID: id, Room: p.Room, GroupSize: size, RoomCapacity: cap,
				})
			}
		}
	}

	return rpt
}

// overlapsFor groups placements by the resource key the keyFn extracts
// (empty keys are skipped — e.g. an unassigned room) and reports every
// pairwise overlap found within a resource's occupied slots.
func overlapsFor(sch domain.Schedule, keyFn func(domain.Placement) string) []Overlap {
	type occ struct {
		id    string
		start int
		end   int
	}
	byResource := make(map[string][]occ)
	for id, p := range sch {
		key := keyFn(p)
		if key == "" {
			continue
		}
		byResource[key] = append(byResource[key], occ{id, p.Start, p.End()})
	}

	var out []Overlap
	for resource, occs := range byResource {
		sort.Slice(occs, func(i, j int) bool {
			if occs[i].start != occs[j].start {
				return occs[i].start < occs[j].start
			}
			return occs[i].id < occs[j].id
		})
		for i := 0; i < len(occs); i++ {
			for j := i + 1; j < len(occs); j++ {
				if occs[j].start >= occs[i].end {
					break // sorted by start: no later j can overlap occs[i] either
				}
				out = append(out, Overlap{
					Resource: resource,
					SlotA:    occs[i].start,
					SessionA: occs[i].id,
					SessionB: occs[j].id,
				})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Resource != out[j].Resource {
			return out[i].Resource < out[j].Resource
		}
		return out[i].SessionA < out[j].SessionA
	})
	return out
}

func sortedIDs(sch domain.Schedule) []string {
	ids := make([]string, 0, len(sch))
	for id := range sch {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
