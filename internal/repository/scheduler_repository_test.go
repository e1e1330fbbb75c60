package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-engine/internal/models"
)

func newSchedulerRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSchedulerRepositorySaveRun(t *testing.T) {
	db, mock, cleanup := newSchedulerRepoMock(t)
	defer cleanup()
	repo := NewSchedulerRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_runs")).
		WithArgs(sqlmock.AnyArg(), "DSatur", 2, 100, 10, 3, 1, 4, 0.9, 12.5, 3, "user-1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	run := &models.ScheduleRun{
		Strategy:        "DSatur",
		PesoContinuidad: 2,
		MaxIterations:   100,
		EventCount:      10,
		ColorsUsed:      3,
		ConflictsTotal:  1,
		GapPenalty:      4,
		Quality:         0.9,
		TimeMs:          12.5,
		Iterations:      3,
		CreatedBy:       "user-1",
	}
	require.NoError(t, repo.SaveRun(context.Background(), run))
	require.NotEmpty(t, run.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchedulerRepositoryListRuns(t *testing.T) {
	db, mock, cleanup := newSchedulerRepoMock(t)
	defer cleanup()
	repo := NewSchedulerRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "strategy", "peso_continuidad", "max_iterations", "event_count", "colors_used",
		"conflicts_total", "gap_penalty", "quality", "time_ms", "iterations", "created_by", "created_at",
	}).AddRow("run-1", "DSatur", 2, 100, 10, 3, 1, 4, 0.9, 12.5, 3, "user-1", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, strategy, peso_continuidad, max_iterations, event_count, colors_used")).
		WithArgs(20).
		WillReturnRows(rows)

	out, err := repo.ListRuns(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "run-1", out[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchedulerRepositoryGetRun(t *testing.T) {
	db, mock, cleanup := newSchedulerRepoMock(t)
	defer cleanup()
	repo := NewSchedulerRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "strategy", "peso_continuidad", "max_iterations", "event_count", "colors_used",
		"conflicts_total", "gap_penalty", "quality", "time_ms", "iterations", "created_by", "created_at",
	}).AddRow("run-1", "Welsh-Powell", 1, 50, 5, 2, 0, 0, 1.0, 5.5, 1, "", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, strategy, peso_continuidad, max_iterations, event_count, colors_used")).
		WithArgs("run-1").
		WillReturnRows(rows)

	out, err := repo.GetRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "Welsh-Powell", out.Strategy)
	assert.NoError(t, mock.ExpectationsWereMet())
}
