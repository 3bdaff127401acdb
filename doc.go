// Package timetable generates weekly academic timetables from a set of
// courses, rooms, and scheduling limits.
//
// Generation runs in three stages: course requirements are expanded into
// atomic sessions, an exact backtracking search finds a feasible set of
// start times, and — unless disabled — rooms are assigned greedily and a
// genetic algorithm refines the result against a set of soft preferences.
// See internal/engine for the orchestration and internal/domain for the
// data model.
package timetable
