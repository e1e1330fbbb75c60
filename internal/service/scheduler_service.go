package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-engine/internal/engine"
	"github.com/noah-isme/timetable-engine/internal/models"
	appErrors "github.com/noah-isme/timetable-engine/pkg/errors"
)

// schedulerRunRepository persists finished run summaries.
type schedulerRunRepository interface {
	SaveRun(ctx context.Context, run *models.ScheduleRun) error
	ListRuns(ctx context.Context, limit int) ([]models.ScheduleRun, error)
	GetRun(ctx context.Context, id string) (*models.ScheduleRun, error)
}

// RunScheduleOptions carries the enumerated run configuration a caller may
// override; zero values fall back to the service's configured defaults.
type RunScheduleOptions struct {
	Strategy        string
	PesoContinuidad int
	MaxIterations   int
	RequestedBy     string
}

// RunResult bundles everything a completed run exposes: the run record, the
// occurrence list, and the conflict graph.
type RunResult struct {
	Run         models.ScheduleRun
	Assignments []engine.Occurrence
	Conflicts   []engine.ConflictEdge
	GraphInfo   engine.GraphInfo
}

// SchedulerService wraps one internal/engine.Scheduler instance: it sources
// events from the catalog, drives the configure->add->run pipeline, persists
// a summary of each finished run, and caches the latest run's
// metrics/assignment in Redis for fast repeat reads.
type SchedulerService struct {
	catalog    *CatalogService
	repo       schedulerRunRepository
	cache      *CacheService
	metricsSvc *MetricsService
	logger     *zap.Logger
	defaultCfg engine.Config

	mu        sync.RWMutex
	scheduler *engine.Scheduler
}

const lastRunCacheKey = "scheduler:last_run"

func NewSchedulerService(catalog *CatalogService, repo schedulerRunRepository, cache *CacheService, metricsSvc *MetricsService, logger *zap.Logger, defaultCfg engine.Config) *SchedulerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchedulerService{
		catalog:    catalog,
		repo:       repo,
		cache:      cache,
		metricsSvc: metricsSvc,
		logger:     logger,
		defaultCfg: defaultCfg,
	}
}

// Run loads the current catalog, feeds it to a fresh engine.Scheduler and
// executes the full build/color/expand/refine/metrics pipeline. The
// resulting scheduler instance becomes the service's "current" run for
// subsequent Assignments/Conflicts/GraphInfo queries.
func (s *SchedulerService) Run(ctx context.Context, opts RunScheduleOptions) (*RunResult, error) {
	cfg := s.defaultCfg
	if opts.Strategy != "" {
		strategy, ok := engine.ParseStrategy(opts.Strategy)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown coloring strategy")
		}
		cfg.Strategy = strategy
	}
	if opts.PesoContinuidad > 0 {
		cfg.PesoContinuidad = opts.PesoContinuidad
	}
	if opts.MaxIterations > 0 {
		cfg.MaxIterations = opts.MaxIterations
	}

	events, err := s.catalog.ToEvents(ctx)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "catalog has no subject loads to schedule")
	}

	sched := engine.NewScheduler(cfg)
	for _, e := range events {
		if err := sched.AddEvent(e); err != nil {
			return nil, appErrors.FromEngineErr(err)
		}
	}

	start := time.Now()
	runErr := sched.Run()
	duration := time.Since(start)

	if runErr != nil {
		s.metricsSvc.ObserveSchedulerRun(cfg.Strategy.String(), "failed", duration, 0)
		s.logger.Warn("scheduler run failed", zap.Error(runErr), zap.String("strategy", cfg.Strategy.String()))
		return nil, appErrors.FromEngineErr(runErr)
	}

	assignments, err := sched.Assignments()
	if err != nil {
		return nil, appErrors.FromEngineErr(err)
	}
	conflicts, err := sched.Conflicts()
	if err != nil {
		return nil, appErrors.FromEngineErr(err)
	}
	graphInfo, err := sched.GraphInfo()
	if err != nil {
		return nil, appErrors.FromEngineErr(err)
	}
	metrics, err := sched.Metrics()
	if err != nil {
		return nil, appErrors.FromEngineErr(err)
	}

	s.metricsSvc.ObserveSchedulerRun(cfg.Strategy.String(), "succeeded", duration, metrics.Iterations)

	run := models.ScheduleRun{
		Strategy:        cfg.Strategy.String(),
		PesoContinuidad: cfg.PesoContinuidad,
		MaxIterations:   cfg.MaxIterations,
		EventCount:      len(events),
		ColorsUsed:      metrics.ColorsUsed,
		ConflictsTotal:  metrics.ConflictsTotal,
		GapPenalty:      metrics.GapPenalty,
		Quality:         metrics.Quality,
		TimeMs:          metrics.TimeMs,
		Iterations:      metrics.Iterations,
		CreatedBy:       opts.RequestedBy,
	}
	if s.repo != nil {
		if err := s.repo.SaveRun(ctx, &run); err != nil {
			s.logger.Warn("failed to persist schedule run", zap.Error(err))
		}
	} else {
		run.ID = uuid.NewString()
	}

	s.mu.Lock()
	s.scheduler = sched
	s.mu.Unlock()

	result := &RunResult{Run: run, Assignments: assignments, Conflicts: conflicts, GraphInfo: graphInfo}
	if s.cache != nil && s.cache.Enabled() {
		if err := s.cache.Set(ctx, lastRunCacheKey, result, 0); err != nil {
			s.logger.Warn("failed to cache last run", zap.Error(err))
		}
	}
	return result, nil
}

// Assignments returns the current in-memory run's occurrence list.
func (s *SchedulerService) Assignments() ([]engine.Occurrence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.scheduler == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidSchedulerState, "no completed run yet")
	}
	out, err := s.scheduler.Assignments()
	if err != nil {
		return nil, appErrors.FromEngineErr(err)
	}
	return out, nil
}

// Conflicts returns the current in-memory run's conflict graph edges.
func (s *SchedulerService) Conflicts() ([]engine.ConflictEdge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.scheduler == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidSchedulerState, "no completed run yet")
	}
	out, err := s.scheduler.Conflicts()
	if err != nil {
		return nil, appErrors.FromEngineErr(err)
	}
	return out, nil
}

// Metrics returns the current in-memory run's diagnostic metrics.
func (s *SchedulerService) Metrics() (engine.Metrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.scheduler == nil {
		return engine.Metrics{}, appErrors.Clone(appErrors.ErrInvalidSchedulerState, "no completed run yet")
	}
	out, err := s.scheduler.Metrics()
	if err != nil {
		return engine.Metrics{}, appErrors.FromEngineErr(err)
	}
	return out, nil
}

// GraphInfo returns the current in-memory run's conflict-graph summary.
func (s *SchedulerService) GraphInfo() (engine.GraphInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.scheduler == nil {
		return engine.GraphInfo{}, appErrors.Clone(appErrors.ErrInvalidSchedulerState, "no completed run yet")
	}
	out, err := s.scheduler.GraphInfo()
	if err != nil {
		return engine.GraphInfo{}, appErrors.FromEngineErr(err)
	}
	return out, nil
}

// AdjacencyMatrix returns the current in-memory run's dense conflict matrix.
func (s *SchedulerService) AdjacencyMatrix() ([][]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.scheduler == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidSchedulerState, "no completed run yet")
	}
	out, err := s.scheduler.AdjacencyMatrix()
	if err != nil {
		return nil, appErrors.FromEngineErr(err)
	}
	return out, nil
}

// Events returns the current in-memory run's accepted event list, used by
// export rendering to label occurrences with subject/teacher/group names.
func (s *SchedulerService) Events() ([]engine.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.scheduler == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidSchedulerState, "no completed run yet")
	}
	return s.scheduler.Events(), nil
}

// LastRunFromCache reads the most recently cached RunResult directly from
// Redis, bypassing the in-memory scheduler instance. Callers use this as a
// fallback when no live run is held in memory (e.g. after a process
// restart), trading the in-memory path's zero-I/O read for a cache round
// trip — the same cache-aside read path the teacher's list endpoints use.
func (s *SchedulerService) LastRunFromCache(ctx context.Context) (*RunResult, error) {
	if s.cache == nil || !s.cache.Enabled() {
		return nil, appErrors.Clone(appErrors.ErrInvalidSchedulerState, "no completed run yet")
	}
	var result RunResult
	hit, err := s.cache.Get(ctx, lastRunCacheKey, &result)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, 500, "failed to read cached run")
	}
	if !hit {
		return nil, appErrors.Clone(appErrors.ErrInvalidSchedulerState, "no completed run yet")
	}
	return &result, nil
}

// History returns the most recent persisted run summaries.
func (s *SchedulerService) History(ctx context.Context, limit int) ([]models.ScheduleRun, error) {
	if s.repo == nil {
		return nil, nil
	}
	out, err := s.repo.ListRuns(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule runs")
	}
	return out, nil
}
