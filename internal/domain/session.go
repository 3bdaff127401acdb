package domain

import "fmt"

// Session is an atomic, contiguous teaching unit produced by expanding a
// Course's weekly requirement into blocks of its consecutive length.
// Sessions are immutable after expansion.
type Session struct {
	ID       string
	Course   Course
	Group    string
	Faculty  string
	Length   int
	IsLab    bool
	Elective bool
}

// NewSessionID builds the stable id used by expansion: courseId_group_index.
func NewSessionID(courseID, group string, index int) string {
	return fmt.Sprintf("%s_%s_%d", courseID, group, index)
}
