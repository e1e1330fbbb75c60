package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/timetable-engine/internal/models"
)

// SchedulerRepository persists finished run summaries so past runs remain
// queryable after the in-memory Scheduler instance that produced them is
// gone.
type SchedulerRepository struct {
	db *sqlx.DB
}

func NewSchedulerRepository(db *sqlx.DB) *SchedulerRepository {
	return &SchedulerRepository{db: db}
}

func (r *SchedulerRepository) SaveRun(ctx context.Context, run *models.ScheduleRun) error {
	run.ID = uuid.NewString()
	const query = `INSERT INTO schedule_runs
		(id, strategy, peso_continuidad, max_iterations, event_count, colors_used,
		 conflicts_total, gap_penalty, quality, time_ms, iterations, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())`
	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.Strategy, run.PesoContinuidad, run.MaxIterations, run.EventCount,
		run.ColorsUsed, run.ConflictsTotal, run.GapPenalty, run.Quality, run.TimeMs,
		run.Iterations, run.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("save schedule run: %w", err)
	}
	return nil
}

func (r *SchedulerRepository) ListRuns(ctx context.Context, limit int) ([]models.ScheduleRun, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `SELECT id, strategy, peso_continuidad, max_iterations, event_count, colors_used,
		conflicts_total, gap_penalty, quality, time_ms, iterations, created_by, created_at
		FROM schedule_runs ORDER BY created_at DESC LIMIT $1`
	var out []models.ScheduleRun
	if err := r.db.SelectContext(ctx, &out, query, limit); err != nil {
		return nil, fmt.Errorf("list schedule runs: %w", err)
	}
	return out, nil
}

func (r *SchedulerRepository) GetRun(ctx context.Context, id string) (*models.ScheduleRun, error) {
	const query = `SELECT id, strategy, peso_continuidad, max_iterations, event_count, colors_used,
		conflicts_total, gap_penalty, quality, time_ms, iterations, created_by, created_at
		FROM schedule_runs WHERE id = $1`
	var run models.ScheduleRun
	if err := r.db.GetContext(ctx, &run, query, id); err != nil {
		return nil, fmt.Errorf("get schedule run: %w", err)
	}
	return &run, nil
}
