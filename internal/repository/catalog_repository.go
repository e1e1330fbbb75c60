package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/timetable-engine/internal/models"
	"github.com/noah-isme/timetable-engine/internal/service"
)

// CatalogRepository provides database access for the teacher/subject/group
// catalog and the subject-load table that feeds the scheduling engine.
// Kept intentionally flat compared to the teacher's paginated CRUD
// repositories: this catalog is small (dozens to low hundreds of rows) and
// is read in full on every scheduler run.
type CatalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	const query = `SELECT id, full_name, email, active, created_at, updated_at FROM teachers ORDER BY full_name`
	var out []models.Teacher
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return out, nil
}

func (r *CatalogRepository) CreateTeacher(ctx context.Context, t *models.Teacher) error {
	t.ID = uuid.NewString()
	const query = `INSERT INTO teachers (id, full_name, email, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())`
	if _, err := r.db.ExecContext(ctx, query, t.ID, t.FullName, t.Email, t.Active); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	const query = `SELECT id, code, name, created_at, updated_at FROM subjects ORDER BY code`
	var out []models.Subject
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return out, nil
}

func (r *CatalogRepository) CreateSubject(ctx context.Context, s *models.Subject) error {
	s.ID = uuid.NewString()
	const query = `INSERT INTO subjects (id, code, name, created_at, updated_at) VALUES ($1, $2, $3, now(), now())`
	if _, err := r.db.ExecContext(ctx, query, s.ID, s.Code, s.Name); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListGroups(ctx context.Context) ([]models.Group, error) {
	const query = `SELECT id, name, grade, created_at, updated_at FROM groups ORDER BY name`
	var out []models.Group
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return out, nil
}

func (r *CatalogRepository) CreateGroup(ctx context.Context, g *models.Group) error {
	g.ID = uuid.NewString()
	const query = `INSERT INTO groups (id, name, grade, created_at, updated_at) VALUES ($1, $2, $3, now(), now())`
	if _, err := r.db.ExecContext(ctx, query, g.ID, g.Name, g.Grade); err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

// CatalogRow is the denormalized join of subject_loads with teachers,
// subjects and groups — exactly the tuple the scheduler needs to build
// engine.Event values.
type CatalogRow struct {
	LoadID      string `db:"id"`
	TeacherName string `db:"teacher_name"`
	SubjectName string `db:"subject_name"`
	GroupName   string `db:"group_name"`
	WeeklyHours int    `db:"weekly_hours"`
}

// ListLoads returns every subject_load joined with its teacher, subject and
// group names, ordered by id for a stable, dense event index assignment.
func (r *CatalogRepository) ListLoads(ctx context.Context) ([]CatalogRow, error) {
	const query = `
		SELECT sl.id AS id,
		       t.full_name AS teacher_name,
		       s.name AS subject_name,
		       g.name AS group_name,
		       sl.weekly_hours AS weekly_hours
		FROM subject_loads sl
		JOIN teachers t ON t.id = sl.teacher_id
		JOIN subjects s ON s.id = sl.subject_id
		JOIN groups g ON g.id = sl.group_id
		ORDER BY sl.id`
	var out []CatalogRow
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list subject loads: %w", err)
	}
	return out, nil
}

// AsRowSource adapts this repository into service.CatalogRowSource, the
// shape CatalogService.ToEvents consumes.
func (r *CatalogRepository) AsRowSource() service.CatalogRowSource {
	return catalogRowSource{r}
}

type catalogRowSource struct {
	repo *CatalogRepository
}

func (c catalogRowSource) ListLoads(ctx context.Context) ([]service.CatalogRow, error) {
	rows, err := c.repo.ListLoads(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]service.CatalogRow, len(rows))
	for i, row := range rows {
		out[i] = service.CatalogRow{
			LoadID:      row.LoadID,
			TeacherName: row.TeacherName,
			SubjectName: row.SubjectName,
			GroupName:   row.GroupName,
			WeeklyHours: row.WeeklyHours,
		}
	}
	return out, nil
}

func (r *CatalogRepository) CreateLoad(ctx context.Context, l *models.SubjectLoad) error {
	l.ID = uuid.NewString()
	const query = `INSERT INTO subject_loads (id, group_id, subject_id, teacher_id, weekly_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())`
	if _, err := r.db.ExecContext(ctx, query, l.ID, l.GroupID, l.SubjectID, l.TeacherID, l.WeeklyHours); err != nil {
		return fmt.Errorf("create subject load: %w", err)
	}
	return nil
}

func (r *CatalogRepository) DeleteLoad(ctx context.Context, id string) error {
	const query = `DELETE FROM subject_loads WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete subject load: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete subject load: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
