package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-engine/internal/dto"
	"github.com/noah-isme/timetable-engine/internal/engine"
	"github.com/noah-isme/timetable-engine/internal/models"
	"github.com/noah-isme/timetable-engine/internal/service"
	appErrors "github.com/noah-isme/timetable-engine/pkg/errors"
	"github.com/noah-isme/timetable-engine/pkg/response"
)

// catalogService is the slice of CatalogService a handler needs; kept
// narrow so tests can substitute a mock without standing up a repository.
type catalogService interface {
	Teachers(ctx context.Context) ([]models.Teacher, error)
	Subjects(ctx context.Context) ([]models.Subject, error)
	Groups(ctx context.Context) ([]models.Group, error)
	CreateTeacher(ctx context.Context, t *models.Teacher) error
	CreateSubject(ctx context.Context, s *models.Subject) error
	CreateGroup(ctx context.Context, g *models.Group) error
	CreateLoad(ctx context.Context, l *models.SubjectLoad) error
	DeleteLoad(ctx context.Context, id string) error
	ToEvents(ctx context.Context) ([]engine.Event, error)
}

// CatalogHandler wires HTTP endpoints to the catalog service.
type CatalogHandler struct {
	service catalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// ListTeachers godoc
// @Summary List teachers
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/teachers [get]
func (h *CatalogHandler) ListTeachers(c *gin.Context) {
	out, err := h.service.Teachers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out, nil)
}

// CreateTeacher godoc
// @Summary Register a teacher
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateTeacherRequest true "Teacher"
// @Success 201 {object} response.Envelope
// @Router /catalog/teachers [post]
func (h *CatalogHandler) CreateTeacher(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid teacher payload"))
		return
	}
	t := &models.Teacher{FullName: req.FullName, Email: req.Email, Active: true}
	if err := h.service.CreateTeacher(c.Request.Context(), t); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, t, nil)
}

// ListSubjects godoc
// @Summary List subjects
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/subjects [get]
func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	out, err := h.service.Subjects(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out, nil)
}

// CreateSubject godoc
// @Summary Register a subject
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateSubjectRequest true "Subject"
// @Success 201 {object} response.Envelope
// @Router /catalog/subjects [post]
func (h *CatalogHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid subject payload"))
		return
	}
	s := &models.Subject{Code: req.Code, Name: req.Name}
	if err := h.service.CreateSubject(c.Request.Context(), s); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, s, nil)
}

// ListGroups godoc
// @Summary List groups
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/groups [get]
func (h *CatalogHandler) ListGroups(c *gin.Context) {
	out, err := h.service.Groups(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out, nil)
}

// CreateGroup godoc
// @Summary Register a group
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateGroupRequest true "Group"
// @Success 201 {object} response.Envelope
// @Router /catalog/groups [post]
func (h *CatalogHandler) CreateGroup(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid group payload"))
		return
	}
	g := &models.Group{Name: req.Name, Grade: req.Grade}
	if err := h.service.CreateGroup(c.Request.Context(), g); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, g, nil)
}

// CreateLoad godoc
// @Summary Bind a subject to a teacher and group with a weekly-hour count
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateSubjectLoadRequest true "Subject load"
// @Success 201 {object} response.Envelope
// @Router /catalog/loads [post]
func (h *CatalogHandler) CreateLoad(c *gin.Context) {
	var req dto.CreateSubjectLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid subject load payload"))
		return
	}
	l := &models.SubjectLoad{
		GroupID:     req.GroupID,
		SubjectID:   req.SubjectID,
		TeacherID:   req.TeacherID,
		WeeklyHours: req.WeeklyHours,
	}
	if err := h.service.CreateLoad(c.Request.Context(), l); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, l, nil)
}

// DeleteLoad godoc
// @Summary Remove a subject load
// @Tags Catalog
// @Produce json
// @Param id path string true "Subject load ID"
// @Success 204 {object} response.Envelope
// @Router /catalog/loads/{id} [delete]
func (h *CatalogHandler) DeleteLoad(c *gin.Context) {
	if err := h.service.DeleteLoad(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}
	response.NoContent(c)
}

// Events godoc
// @Summary Render the catalog as the Event list the scheduler consumes
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/events [get]
func (h *CatalogHandler) Events(c *gin.Context) {
	events, err := h.service.ToEvents(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}
