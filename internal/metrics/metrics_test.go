package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilSinkObserversNeverPanic(t *testing.T) {
	var s *Sink
	assert.NotPanics(t, func() {
		s.ObserveSolver(time.Second, "solved")
		s.ObserveGA(10, 1.5)
		s.ObserveRoomFailures(2)
		s.ObserveRun("ok")
	})
}

func TestNilSinkHandlerReturnsServiceUnavailable(t *testing.T) {
	var s *Sink
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 503, rec.Code)
}

func TestNewSinkExposesCollectorsOverHTTP(t *testing.T) {
	s := New()
	require.NotNil(t, s)
	s.ObserveSolver(250*time.Millisecond, "solved")
	s.ObserveRun("ok")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "timetable_solver_duration_seconds")
	assert.Contains(t, rec.Body.String(), "timetable_generate_runs_total")
}
