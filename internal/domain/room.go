package domain

import "strings"

// RoomKind is the derived kind of a room: lab or lecture.
type RoomKind string

const (
	RoomLecture RoomKind = "lecture"
	RoomLab     RoomKind = "lab"
)

// Room is a caller-supplied physical room. Kind is derived, not stored by
// the caller: a room is a lab if "lab" appears anywhere in its name.
type Room struct {
	Name     string `validate:"required"`
	Capacity int    `validate:"gte=0"`
}

// Kind derives the room's kind from its name.
func (r Room) Kind() RoomKind {
	if strings.Contains(strings.ToLower(r.Name), "lab") {
		return RoomLab
	}
	return RoomLecture
}
