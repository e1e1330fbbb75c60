package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/timetable-engine/internal/engine"
	"github.com/noah-isme/timetable-engine/internal/models"
)

// CatalogRepository abstracts persistence for teachers, subjects, groups and
// the subject-load table that ties them together.
type CatalogRepository interface {
	ListTeachers(ctx context.Context) ([]models.Teacher, error)
	CreateTeacher(ctx context.Context, t *models.Teacher) error
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	CreateSubject(ctx context.Context, s *models.Subject) error
	ListGroups(ctx context.Context) ([]models.Group, error)
	CreateGroup(ctx context.Context, g *models.Group) error
	CreateLoad(ctx context.Context, l *models.SubjectLoad) error
	DeleteLoad(ctx context.Context, id string) error
}

// CatalogService wraps catalog persistence and turns the subject-load table
// into the dense, 0-based engine.Event slice the scheduler consumes.
type CatalogService struct {
	repo   CatalogRepository
	rows   CatalogRowSource
	logger *zap.Logger
}

// CatalogRowSource produces the denormalized load rows used to build
// events. The adapters returned by AsRowSource on
// internal/repository.CatalogRepository and internal/catalog.Loader both
// satisfy it.
type CatalogRowSource interface {
	ListLoads(ctx context.Context) ([]CatalogRow, error)
}

// CatalogRow is the teacher/subject/group/hours tuple that maps directly
// onto one engine.Event.
type CatalogRow struct {
	LoadID      string
	TeacherName string
	SubjectName string
	GroupName   string
	WeeklyHours int
}

func NewCatalogService(repo CatalogRepository, rows CatalogRowSource, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, rows: rows, logger: logger}
}

func (s *CatalogService) Teachers(ctx context.Context) ([]models.Teacher, error) {
	return s.repo.ListTeachers(ctx)
}

func (s *CatalogService) Subjects(ctx context.Context) ([]models.Subject, error) {
	return s.repo.ListSubjects(ctx)
}

func (s *CatalogService) Groups(ctx context.Context) ([]models.Group, error) {
	return s.repo.ListGroups(ctx)
}

func (s *CatalogService) CreateTeacher(ctx context.Context, t *models.Teacher) error {
	return s.repo.CreateTeacher(ctx, t)
}

func (s *CatalogService) CreateSubject(ctx context.Context, sub *models.Subject) error {
	return s.repo.CreateSubject(ctx, sub)
}

func (s *CatalogService) CreateGroup(ctx context.Context, g *models.Group) error {
	return s.repo.CreateGroup(ctx, g)
}

func (s *CatalogService) CreateLoad(ctx context.Context, l *models.SubjectLoad) error {
	return s.repo.CreateLoad(ctx, l)
}

func (s *CatalogService) DeleteLoad(ctx context.Context, id string) error {
	return s.repo.DeleteLoad(ctx, id)
}

// ToEvents reads the full subject-load catalog and turns it into a dense,
// 0-based engine.Event slice ready to feed the scheduler — the hand-off the
// core's design deliberately keeps out of scope for itself.
func (s *CatalogService) ToEvents(ctx context.Context) ([]engine.Event, error) {
	rows, err := s.rows.ListLoads(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog rows: %w", err)
	}
	events := make([]engine.Event, len(rows))
	for i, row := range rows {
		events[i] = engine.Event{
			ID:      i,
			Subject: row.SubjectName,
			Teacher: row.TeacherName,
			Group:   row.GroupName,
			Hours:   row.WeeklyHours,
		}
	}
	s.logger.Debug("built events from catalog", zap.Int("count", len(events)))
	return events, nil
}
