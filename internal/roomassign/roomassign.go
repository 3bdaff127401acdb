// Package roomassign implements the greedy, capacity-aware room assignment
// pass (§4.3): given fixed start times, it assigns each session a concrete
// room, hardest-to-fit sessions first.
//
// Adapted from the teacher's room-occupancy bitmap and room-scoring pattern
// (internal/solver/room_assignment.go, internal/solver/burke_room_assignment.go),
// generalized from three class-type-specific passes (lecture/tutorial/lab)
// into the spec's single ordered pass over every session.
package roomassign

import (
	"sort"

	"github.com/latticeforge/hybrid-timetable/internal/domain"
	"go.uber.org/zap"
)

// Failure records a session that no room could accommodate. Per §4.3 this
// never aborts the pipeline: the engine logs a warning and continues with
// the partial, room-less placement — later stages (the genetic refinement)
// may still find it a room via their richer search.
type Failure struct {
	SessionID string
}

// Assign fills in Room on every placement it can, in place on a cloned
// schedule, in order (−length, −groupSize): longest sessions first, then
// largest cohort first, since long multi-slot sessions constrain rooms the
// most and large cohorts are hardest to fit. totalSlots is the calendar's T
// (D*P), sizing the per-room occupancy bitmap.
//
// groupSizes may be nil or partial; sessions for unknown groups are treated
// as having size 0 (any room fits) per the spec's "if group sizes known"
// qualifier on invariant 9.
func Assign(sch domain.Schedule, rooms []domain.Room, groupSizes map[string]int, totalSlots int, log *zap.Logger) (domain.Schedule, []Failure) {
	if log == nil {
		log = zap.NewNop()
	}
	out := sch.Clone()

	ids := make([]string, 0, len(out))
	for id := range out {
		ids = append(ids, id)
	}
	size := func(id string) int { return groupSizes[out[id].Meta.Group] }
	sort.Slice(ids, func(a, b int) bool {
		pa, pb := out[ids[a]], out[ids[b]]
		if pa.Length != pb.Length {
			return pa.Length > pb.Length
		}
		sa, sb := size(ids[a]), size(ids[b])
		if sa != sb {
			return sa > sb
		}
		return ids[a] < ids[b] // deterministic tie-break
	})

	occupied := make(map[string][]bool, len(rooms)) // room name -> per-slot occupancy
	for _, r := range rooms {
		occupied[r.Name] = make([]bool, totalSlots)
	}

	ordered := orderRoomsByKindPreference(rooms)

	var failures []Failure
	for _, id := range ids {
		p := out[id]
		candidates := ordered[p.Meta.IsLab]
		room, ok := firstFit(candidates, occupied, p.Start, p.Length, groupSizes[p.Meta.Group])
		if !ok {
			failures = append(failures, Failure{SessionID: id})
			log.Warn("room assignment failed for session", zap.String("session_id", id))
			continue
		}
		markOccupied(occupied[room.Name], p.Start, p.Length)
		p.Room = room.Name
		out[id] = p
	}

	return out, failures
}

// orderRoomsByKindPreference returns, for each "is this session a lab"
// boolean, the room list ordered with the matching kind first: labs prefer
// domain.RoomLab, everything else prefers domain.RoomLecture.
func orderRoomsByKindPreference(rooms []domain.Room) map[bool][]domain.Room {
	var labs, lectures []domain.Room
	for _, r := range rooms {
		if r.Kind() == domain.RoomLab {
			labs = append(labs, r)
		} else {
			lectures = append(lectures, r)
		}
	}
	result := make(map[bool][]domain.Room, 2)
	result[true] = append(append([]domain.Room{}, labs...), lectures...)
	result[false] = append(append([]domain.Room{}, lectures...), labs...)
	return result
}

// firstFit picks the first room able to host `size` students for `length`
// consecutive slots starting at `start`, respecting the preference order.
func firstFit(candidates []domain.Room, occupied map[string][]bool, start, length, size int) (domain.Room, bool) {
	for _, r := range candidates {
		if size > r.Capacity {
			continue
		}
		if isFree(occupied[r.Name], start, length) {
			return r, true
		}
	}
	return domain.Room{}, false
}

func isFree(slots []bool, start, length int) bool {
	for i := start; i < start+length; i++ {
		if i < 0 || i >= len(slots) || slots[i] {
			return false
		}
	}
	return true
}

func markOccupied(slots []bool, start, length int) {
	for i := start; i < start+length; i++ {
		slots[i] = true
	}
}
