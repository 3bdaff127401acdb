package domain

import "strings"

// Course is a caller-supplied weekly teaching requirement: one faculty
// member teaching one or more groups a fixed number of slots a week, taken
// in consecutive blocks.
type Course struct {
	ID          string   `validate:"required"`
	Name        string   `validate:"required"`
	Faculty     string   `validate:"required"`
	Groups      []string `validate:"required,min=1,dive,required"`
	WeeklySlots int      `validate:"required,gt=0"`
	Consecutive int      `validate:"required,gt=0"`
}

// IsLab reports whether this course's name marks it as a lab/project
// session, per the glossary: any session whose course name contains "lab"
// or "project" prefers lab-kind rooms.
func (c Course) IsLab() bool {
	name := strings.ToLower(c.Name)
	return strings.Contains(name, "lab") || strings.Contains(name, "project")
}

// IsElective reports whether this course's name marks it as an elective.
func (c Course) IsElective() bool {
	return strings.Contains(strings.ToLower(c.Name), "elective")
}
