// Package dto holds the JSON request/response shapes cmd/demo exposes over
// HTTP, kept separate from the domain types the engine actually runs on —
// grounded on noah-isme-sma-adp-api/internal/dto's convention of one dto
// package translating wire shapes into internal/domain/internal/engine
// types at the boundary.
package dto

import (
	"encoding/json"
	"fmt"

	"github.com/latticeforge/hybrid-timetable/internal/domain"
)

// GroupRef normalizes the spec's "group as scalar-or-set" input shape
// (§9): a course's Groups field may arrive as a single string or a JSON
// array of strings. UnmarshalJSON accepts both and always produces a
// []string internally.
type GroupRef []string

func (g *GroupRef) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*g = GroupRef{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("groups: expected a string or an array of strings: %w", err)
	}
	*g = GroupRef(many)
	return nil
}

// CourseRequest mirrors domain.Course but accepts GroupRef for Groups so
// single-group courses don't require callers to wrap one string in an
// array.
type CourseRequest struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Faculty     string   `json:"faculty" validate:"required"`
	Groups      GroupRef `json:"groups" validate:"required,min=1"`
	WeeklySlots int      `json:"weekly_slots" validate:"required,gt=0"`
	Consecutive int      `json:"consecutive" validate:"required,gt=0"`
}

// ToDomain converts a wire-shaped course request into the engine's
// internal representation.
func (c CourseRequest) ToDomain() domain.Course {
	return domain.Course{
		ID:          c.ID,
		Name:        c.Name,
		Faculty:     c.Faculty,
		Groups:      []string(c.Groups),
		WeeklySlots: c.WeeklySlots,
		Consecutive: c.Consecutive,
	}
}

// RoomRequest mirrors domain.Room.
type RoomRequest struct {
	Name     string `json:"name" validate:"required"`
	Capacity int    `json:"capacity" validate:"gte=0"`
}

func (r RoomRequest) ToDomain() domain.Room {
	return domain.Room{Name: r.Name, Capacity: r.Capacity}
}

// CalendarRequest mirrors domain.Calendar.
type CalendarRequest struct {
	Days        []string `json:"days" validate:"required,min=1,dive,required"`
	SlotsPerDay int      `json:"slots_per_day" validate:"required,gt=0"`
}

func (c CalendarRequest) ToDomain() domain.Calendar {
	return domain.Calendar{Days: c.Days, SlotsPerDay: c.SlotsPerDay}
}

// LimitsRequest mirrors domain.Limits with every field optional; zero
// values are replaced by domain.DefaultLimits() field-by-field.
type LimitsRequest struct {
	MaxClassesPerDay         int     `json:"max_classes_per_day"`
	MaxConsecSlots           int     `json:"max_consec_slots"`
	MaxDailyHoursPerFaculty  int     `json:"max_daily_hours_per_faculty"`
	MaxWeeklyHoursPerFaculty int     `json:"max_weekly_hours_per_faculty"`
	MinGroupDays             int     `json:"min_group_days"`
	DayBalanceFraction       float64 `json:"day_balance_fraction"`
}

func (l LimitsRequest) ToDomain() domain.Limits {
	d := domain.DefaultLimits()
	if l.MaxClassesPerDay > 0 {
		d.MaxClassesPerDay = l.MaxClassesPerDay
	}
	if l.MaxConsecSlots > 0 {
		d.MaxConsecSlots = l.MaxConsecSlots
	}
	if l.MaxDailyHoursPerFaculty > 0 {
		d.MaxDailyHoursPerFaculty = l.MaxDailyHoursPerFaculty
	}
	if l.MaxWeeklyHoursPerFaculty > 0 {
		d.MaxWeeklyHoursPerFaculty = l.MaxWeeklyHoursPerFaculty
	}
	if l.MinGroupDays > 0 {
		d.MinGroupDays = l.MinGroupDays
	}
	if l.DayBalanceFraction > 0 {
		d.DayBalanceFraction = l.DayBalanceFraction
	}
	return d
}

// GenerateRequest is the full POST /timetables request body.
type GenerateRequest struct {
	Calendar     CalendarRequest   `json:"calendar" validate:"required"`
	Limits       LimitsRequest     `json:"limits"`
	Courses      []CourseRequest   `json:"courses" validate:"required,min=1,dive"`
	Rooms        []RoomRequest     `json:"rooms"`
	GroupSizes   map[string]int    `json:"group_sizes"`
	FacultyPrefs map[string]string `json:"faculty_prefs"`

	EnableRoomAssignment *bool `json:"enable_room_assignment"`
	EnableGA             *bool `json:"enable_ga"`
	GAGenerations        int   `json:"ga_generations"`
	GAPopSize            int   `json:"ga_pop_size"`
	SolverSeed           int64 `json:"solver_seed"`
	SolverTimeoutSeconds int   `json:"solver_timeout_seconds"`
}

// PlacementResponse is one session's placement in the wire response.
type PlacementResponse struct {
	SessionID string `json:"session_id"`
	CourseID  string `json:"course_id"`
	Group     string `json:"group"`
	Faculty   string `json:"faculty"`
	Start     int    `json:"start"`
	Length    int    `json:"length"`
	Room      string `json:"room,omitempty"`
}

// GenerateResponse is the full POST /timetables response body.
type GenerateResponse struct {
	Placements      []PlacementResponse `json:"placements"`
	RoomAssigned    bool                `json:"room_assigned"`
	UnplacedCount   int                 `json:"unplaced_count"`
	Refined         bool                `json:"refined"`
	GenerationsRun  int                 `json:"generations_run"`
	BestFitness     float64             `json:"best_fitness"`
	SolverDurationS float64             `json:"solver_duration_seconds"`
}
