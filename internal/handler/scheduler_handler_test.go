package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-engine/internal/engine"
	"github.com/noah-isme/timetable-engine/internal/models"
	"github.com/noah-isme/timetable-engine/internal/service"
	appErrors "github.com/noah-isme/timetable-engine/pkg/errors"
)

type schedulerServiceMock struct {
	runOpts   service.RunScheduleOptions
	runResult *service.RunResult
	runErr    error

	assignments []engine.Occurrence
	assignErr   error

	cached    *service.RunResult
	cacheErr  error
}

func (m *schedulerServiceMock) Run(ctx context.Context, opts service.RunScheduleOptions) (*service.RunResult, error) {
	m.runOpts = opts
	return m.runResult, m.runErr
}
func (m *schedulerServiceMock) Assignments() ([]engine.Occurrence, error) { return m.assignments, m.assignErr }
func (m *schedulerServiceMock) Conflicts() ([]engine.ConflictEdge, error) { return nil, m.assignErr }
func (m *schedulerServiceMock) Metrics() (engine.Metrics, error)          { return engine.Metrics{}, m.assignErr }
func (m *schedulerServiceMock) GraphInfo() (engine.GraphInfo, error)      { return engine.GraphInfo{}, nil }
func (m *schedulerServiceMock) AdjacencyMatrix() ([][]int, error)         { return nil, nil }
func (m *schedulerServiceMock) History(ctx context.Context, limit int) ([]models.ScheduleRun, error) {
	return nil, nil
}
func (m *schedulerServiceMock) LastRunFromCache(ctx context.Context) (*service.RunResult, error) {
	return m.cached, m.cacheErr
}

func TestSchedulerHandlerRunSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &schedulerServiceMock{runResult: &service.RunResult{Run: models.ScheduleRun{ID: "run-1"}}}
	handler := &SchedulerHandler{service: mockSvc}

	body := `{"strategy":"DSatur","peso_continuidad":2}`
	req, _ := http.NewRequest(http.MethodPost, "/scheduler/run", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Run(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "DSatur", mockSvc.runOpts.Strategy)
	require.Equal(t, 2, mockSvc.runOpts.PesoContinuidad)
}

func TestSchedulerHandlerAssignmentsFallsBackToCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &schedulerServiceMock{
		assignErr: appErrors.ErrInvalidSchedulerState,
		cached:    &service.RunResult{Assignments: []engine.Occurrence{{EventID: 1, Timeslot: 0}}},
	}
	handler := &SchedulerHandler{service: mockSvc}

	req, _ := http.NewRequest(http.MethodGet, "/scheduler/assignments", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Assignments(c)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestSchedulerHandlerAssignmentsNoRunNoCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &schedulerServiceMock{
		assignErr: appErrors.ErrInvalidSchedulerState,
		cacheErr:  appErrors.ErrInvalidSchedulerState,
	}
	handler := &SchedulerHandler{service: mockSvc}

	req, _ := http.NewRequest(http.MethodGet, "/scheduler/assignments", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Assignments(c)

	require.NotEqual(t, http.StatusOK, w.Code)
}
