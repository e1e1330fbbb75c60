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
)

type catalogServiceMock struct {
	teachers []models.Teacher
	created  *models.Teacher
	err      error
}

func (m *catalogServiceMock) Teachers(ctx context.Context) ([]models.Teacher, error) { return m.teachers, m.err }
func (m *catalogServiceMock) Subjects(ctx context.Context) ([]models.Subject, error) { return nil, m.err }
func (m *catalogServiceMock) Groups(ctx context.Context) ([]models.Group, error)     { return nil, m.err }
func (m *catalogServiceMock) CreateTeacher(ctx context.Context, t *models.Teacher) error {
	m.created = t
	return m.err
}
func (m *catalogServiceMock) CreateSubject(ctx context.Context, s *models.Subject) error { return m.err }
func (m *catalogServiceMock) CreateGroup(ctx context.Context, g *models.Group) error     { return m.err }
func (m *catalogServiceMock) CreateLoad(ctx context.Context, l *models.SubjectLoad) error {
	return m.err
}
func (m *catalogServiceMock) DeleteLoad(ctx context.Context, id string) error { return m.err }
func (m *catalogServiceMock) ToEvents(ctx context.Context) ([]engine.Event, error) {
	return nil, m.err
}

func TestCatalogHandlerListTeachers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &catalogServiceMock{teachers: []models.Teacher{{ID: "t1", FullName: "Ada"}}}
	handler := &CatalogHandler{service: mockSvc}

	req, _ := http.NewRequest(http.MethodGet, "/catalog/teachers", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListTeachers(c)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestCatalogHandlerCreateTeacherSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &catalogServiceMock{}
	handler := &CatalogHandler{service: mockSvc}

	body := `{"full_name":"Ada Lovelace","email":"ada@example.com"}`
	req, _ := http.NewRequest(http.MethodPost, "/catalog/teachers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.CreateTeacher(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "ada@example.com", mockSvc.created.Email)
}

func TestCatalogHandlerCreateTeacherValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &CatalogHandler{service: &catalogServiceMock{}}

	req, _ := http.NewRequest(http.MethodPost, "/catalog/teachers", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.CreateTeacher(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandlerDeleteLoad(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &CatalogHandler{service: &catalogServiceMock{}}

	req, _ := http.NewRequest(http.MethodDelete, "/catalog/loads/load-1", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "load-1"}}

	handler.DeleteLoad(c)

	require.Equal(t, http.StatusNoContent, w.Code)
}
