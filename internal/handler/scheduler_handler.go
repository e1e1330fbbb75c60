package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-engine/internal/dto"
	"github.com/noah-isme/timetable-engine/internal/engine"
	internalmiddleware "github.com/noah-isme/timetable-engine/internal/middleware"
	"github.com/noah-isme/timetable-engine/internal/models"
	"github.com/noah-isme/timetable-engine/internal/service"
	appErrors "github.com/noah-isme/timetable-engine/pkg/errors"
	"github.com/noah-isme/timetable-engine/pkg/response"
)

// schedulerService is the slice of SchedulerService a handler needs; kept
// narrow so tests can substitute a mock without standing up the engine.
type schedulerService interface {
	Run(ctx context.Context, opts service.RunScheduleOptions) (*service.RunResult, error)
	Assignments() ([]engine.Occurrence, error)
	Conflicts() ([]engine.ConflictEdge, error)
	Metrics() (engine.Metrics, error)
	GraphInfo() (engine.GraphInfo, error)
	AdjacencyMatrix() ([][]int, error)
	History(ctx context.Context, limit int) ([]models.ScheduleRun, error)
	LastRunFromCache(ctx context.Context) (*service.RunResult, error)
}

// SchedulerHandler wires HTTP endpoints to the scheduler service.
type SchedulerHandler struct {
	service schedulerService
}

func NewSchedulerHandler(svc *service.SchedulerService) *SchedulerHandler {
	return &SchedulerHandler{service: svc}
}

// Run godoc
// @Summary Run the scheduler against the current catalog
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body dto.RunScheduleRequest false "Run configuration"
// @Success 200 {object} response.Envelope
// @Router /scheduler/run [post]
func (h *SchedulerHandler) Run(c *gin.Context) {
	var req dto.RunScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid run payload"))
		return
	}

	requestedBy := ""
	if claims := claimsFromContext(c); claims != nil {
		requestedBy = claims.UserID
	}

	result, err := h.service.Run(c.Request.Context(), service.RunScheduleOptions{
		Strategy:        req.Strategy,
		PesoContinuidad: req.PesoContinuidad,
		MaxIterations:   req.MaxIterations,
		RequestedBy:     requestedBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"run":         result.Run,
		"assignments": toOccurrenceResponses(result.Assignments),
		"conflicts":   toConflictResponses(result.Conflicts),
		"graph_info":  toGraphInfoResponse(result.GraphInfo),
	}, nil)
}

// Assignments godoc
// @Summary Return the current run's occurrence list
// @Tags Scheduler
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /scheduler/assignments [get]
func (h *SchedulerHandler) Assignments(c *gin.Context) {
	out, err := h.service.Assignments()
	if err != nil {
		internalmiddleware.SetCacheHit(c, false)
		if cached, cacheErr := h.service.LastRunFromCache(c.Request.Context()); cacheErr == nil {
			internalmiddleware.SetCacheHit(c, true)
			response.JSON(c, http.StatusOK, toOccurrenceResponses(cached.Assignments), nil, internalmiddleware.ExtractMeta(c))
			return
		}
		response.Error(c, err)
		return
	}
	internalmiddleware.SetCacheHit(c, false)
	response.JSON(c, http.StatusOK, toOccurrenceResponses(out), nil, internalmiddleware.ExtractMeta(c))
}

// Conflicts godoc
// @Summary Return the current run's conflict-graph edges
// @Tags Scheduler
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /scheduler/conflicts [get]
func (h *SchedulerHandler) Conflicts(c *gin.Context) {
	out, err := h.service.Conflicts()
	if err != nil {
		internalmiddleware.SetCacheHit(c, false)
		if cached, cacheErr := h.service.LastRunFromCache(c.Request.Context()); cacheErr == nil {
			internalmiddleware.SetCacheHit(c, true)
			response.JSON(c, http.StatusOK, toConflictResponses(cached.Conflicts), nil, internalmiddleware.ExtractMeta(c))
			return
		}
		response.Error(c, err)
		return
	}
	internalmiddleware.SetCacheHit(c, false)
	response.JSON(c, http.StatusOK, toConflictResponses(out), nil, internalmiddleware.ExtractMeta(c))
}

// Metrics godoc
// @Summary Return the current run's diagnostic metrics
// @Tags Scheduler
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /scheduler/metrics [get]
func (h *SchedulerHandler) Metrics(c *gin.Context) {
	m, err := h.service.Metrics()
	if err != nil {
		internalmiddleware.SetCacheHit(c, false)
		if cached, cacheErr := h.service.LastRunFromCache(c.Request.Context()); cacheErr == nil {
			internalmiddleware.SetCacheHit(c, true)
			response.JSON(c, http.StatusOK, dto.MetricsResponse{
				TimeMs:         cached.Run.TimeMs,
				Iterations:     cached.Run.Iterations,
				ColorsUsed:     cached.Run.ColorsUsed,
				ConflictsTotal: cached.Run.ConflictsTotal,
				GapPenalty:     cached.Run.GapPenalty,
				Quality:        cached.Run.Quality,
			}, nil, internalmiddleware.ExtractMeta(c))
			return
		}
		response.Error(c, err)
		return
	}
	internalmiddleware.SetCacheHit(c, false)
	response.JSON(c, http.StatusOK, dto.MetricsResponse{
		TimeMs:         m.TimeMs,
		Iterations:     m.Iterations,
		ColorsUsed:     m.ColorsUsed,
		ConflictsTotal: m.ConflictsTotal,
		GapPenalty:     m.GapPenalty,
		Quality:        m.Quality,
	}, nil, internalmiddleware.ExtractMeta(c))
}

// GraphInfo godoc
// @Summary Return the current run's conflict-graph summary
// @Tags Scheduler
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /scheduler/graph [get]
func (h *SchedulerHandler) GraphInfo(c *gin.Context) {
	g, err := h.service.GraphInfo()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toGraphInfoResponse(g), nil)
}

// AdjacencyMatrix godoc
// @Summary Return the current run's dense conflict matrix
// @Tags Scheduler
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /scheduler/matrix [get]
func (h *SchedulerHandler) AdjacencyMatrix(c *gin.Context) {
	matrix, err := h.service.AdjacencyMatrix()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, matrix, nil)
}

// History godoc
// @Summary List past run summaries
// @Tags Scheduler
// @Produce json
// @Param limit query int false "Max rows to return"
// @Success 200 {object} response.Envelope
// @Router /scheduler/history [get]
func (h *SchedulerHandler) History(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	out, err := h.service.History(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out, nil)
}

func toOccurrenceResponses(occurrences []engine.Occurrence) []dto.OccurrenceResponse {
	out := make([]dto.OccurrenceResponse, len(occurrences))
	for i, o := range occurrences {
		out[i] = dto.OccurrenceResponse{
			EventID:   o.EventID,
			Timeslot:  o.Timeslot,
			DayLabel:  engine.DayLabel(o.Timeslot),
			TimeLabel: engine.TimeLabel(o.Timeslot),
		}
	}
	return out
}

func toConflictResponses(edges []engine.ConflictEdge) []dto.ConflictResponse {
	out := make([]dto.ConflictResponse, len(edges))
	for i, e := range edges {
		out[i] = dto.ConflictResponse{Event1ID: e.Event1, Event2ID: e.Event2, Reason: e.Reason}
	}
	return out
}

func toGraphInfoResponse(g engine.GraphInfo) dto.GraphInfoResponse {
	return dto.GraphInfoResponse{Vertices: g.Vertices, Edges: g.Edges, MaxDegree: g.MaxDegree, AvgDegree: g.AvgDegree}
}
