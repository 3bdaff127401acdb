package domain

// FacultyPreference is a faculty member's time-of-day preference, used only
// by the genetic refinement's soft preference-mismatch penalty.
type FacultyPreference string

const (
	PreferMorning   FacultyPreference = "morning"
	PreferAfternoon FacultyPreference = "afternoon"
)

// Limits carries the hard caps the exact solver enforces and the soft
// thresholds the genetic refinement penalizes against. Every field must be
// positive: the engine rejects a zero value with ErrInvalidInput. Only
// internal/dto's LimitsRequest fills zero fields from DefaultLimits.
type Limits struct {
	MaxClassesPerDay        int     `validate:"gt=0"`
	MaxConsecSlots          int     `validate:"gt=0"`
	MaxDailyHoursPerFaculty int     `validate:"gt=0"`
	MaxWeeklyHoursPerFaculty int    `validate:"gt=0"`
	MinGroupDays            int     `validate:"gt=0"`
	DayBalanceFraction      float64 `validate:"gt=0,lte=1"`
}

// DefaultLimits returns the §6 interface-table defaults.
func DefaultLimits() Limits {
	return Limits{
		MaxClassesPerDay:         5,
		MaxConsecSlots:           3,
		MaxDailyHoursPerFaculty:  5,
		MaxWeeklyHoursPerFaculty: 20,
		MinGroupDays:             3,
		DayBalanceFraction:       0.4,
	}
}

// MinDistinctDays clamps the minimum-distinct-days requirement to the
// calendar's day count, per invariant 8: min(minGroupDays, D).
func (l Limits) MinDistinctDays(d int) int {
	if l.MinGroupDays > d {
		return d
	}
	return l.MinGroupDays
}
