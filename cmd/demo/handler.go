package main

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/k0kubun/pp"
	"go.uber.org/zap"

	timetable "github.com/latticeforge/hybrid-timetable"
	"github.com/latticeforge/hybrid-timetable/internal/apierrors"
	"github.com/latticeforge/hybrid-timetable/internal/domain"
	"github.com/latticeforge/hybrid-timetable/internal/dto"
)

// timetableHandler adapts the public Generator to gin, grounded on
// noah-isme-sma-adp-api's internal/handler pattern: thin handlers that
// bind a request DTO, call one service method, and map its error back to
// an HTTP status.
type timetableHandler struct {
	gen *timetable.Generator
	log *zap.Logger
}

func newTimetableHandler(gen *timetable.Generator, log *zap.Logger) *timetableHandler {
	return &timetableHandler{gen: gen, log: log}
}

func (h *timetableHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *timetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engineReq := buildEngineRequest(req)
	opts := buildRequestOptions(req)

	start := time.Now()
	result, err := h.gen.GenerateWithOptions(c.Request.Context(), engineReq, opts...)
	if err != nil {
		h.log.Warn("generate failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	resp := buildResponse(result)
	pp.Println(resp) // server-side pretty debug trace; harmless on a demo service
	c.JSON(http.StatusOK, resp)
}

func buildEngineRequest(req dto.GenerateRequest) timetable.Request {
	courses := make([]domain.Course, len(req.Courses))
	for i, cr := range req.Courses {
		courses[i] = cr.ToDomain()
	}
	rooms := make([]domain.Room, len(req.Rooms))
	for i, rr := range req.Rooms {
		rooms[i] = rr.ToDomain()
	}
	facultyPrefs := make(map[string]domain.FacultyPreference, len(req.FacultyPrefs))
	for k, v := range req.FacultyPrefs {
		facultyPrefs[k] = domain.FacultyPreference(v)
	}

	return timetable.Request{
		Calendar:     req.Calendar.ToDomain(),
		Limits:       req.Limits.ToDomain(),
		Courses:      courses,
		Rooms:        rooms,
		GroupSizes:   req.GroupSizes,
		FacultyPrefs: facultyPrefs,
	}
}

// buildRequestOptions turns the optional per-request override fields on
// dto.GenerateRequest into timetable.Options layered on top of the
// server's configured defaults, so a single client can ask for a faster,
// unrefined preview without restarting the server. GA overrides start from
// timetable.DefaultGAParams, not from the server's configured GA params:
// when a request sets only one of ga_generations/ga_pop_size, the other
// takes the library default.
func buildRequestOptions(req dto.GenerateRequest) []timetable.Option {
	var opts []timetable.Option
	if req.EnableRoomAssignment != nil {
		opts = append(opts, timetable.WithRoomAssignment(*req.EnableRoomAssignment))
	}
	if req.EnableGA != nil {
		opts = append(opts, timetable.WithGA(*req.EnableGA))
	}
	if req.GAGenerations > 0 || req.GAPopSize > 0 {
		p := timetable.DefaultGAParams()
		if req.GAGenerations > 0 {
			p.Generations = req.GAGenerations
		}
		if req.GAPopSize > 0 {
			p.PopSize = req.GAPopSize
		}
		opts = append(opts, timetable.WithGAParams(p))
	}
	if req.SolverSeed > 0 {
		opts = append(opts, timetable.WithSolverSeed(req.SolverSeed))
	}
	if req.SolverTimeoutSeconds > 0 {
		opts = append(opts, timetable.WithSolverMaxTime(time.Duration(req.SolverTimeoutSeconds)*time.Second))
	}
	return opts
}

func buildResponse(result timetable.Result) dto.GenerateResponse {
	ids := make([]string, 0, len(result.Schedule))
	for id := range result.Schedule {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	placements := make([]dto.PlacementResponse, 0, len(ids))
	for _, id := range ids {
		p := result.Schedule[id]
		placements = append(placements, dto.PlacementResponse{
			SessionID: id,
			CourseID:  p.Meta.Course.ID,
			Group:     p.Meta.Group,
			Faculty:   p.Meta.Faculty,
			Start:     p.Start,
			Length:    p.Length,
			Room:      p.Room,
		})
	}

	return dto.GenerateResponse{
		Placements:      placements,
		RoomAssigned:    result.RoomAssigned,
		UnplacedCount:   len(result.RoomFailures),
		Refined:         result.Refined,
		GenerationsRun:  result.GenerationsRun,
		BestFitness:     result.BestFitness,
		SolverDurationS: result.SolverDuration.Seconds(),
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, apierrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apierrors.ErrInfeasible):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apierrors.ErrInternalAssertion):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
