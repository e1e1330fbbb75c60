package handler

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-engine/internal/exportjob"
	appErrors "github.com/noah-isme/timetable-engine/pkg/errors"
	"github.com/noah-isme/timetable-engine/pkg/response"
)

// exportService is the slice of exportjob.Service a handler needs; kept
// narrow so tests can substitute a mock without starting a worker pool.
type exportService interface {
	Enqueue(kind exportjob.Kind, format exportjob.Format) (*exportjob.Record, error)
	Status(id string) (*exportjob.Record, bool)
	Download(token string) (*os.File, string, error)
}

// ExportHandler wires HTTP endpoints to the export job service.
type ExportHandler struct {
	service exportService
}

func NewExportHandler(svc *exportjob.Service) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Create godoc
// @Summary Enqueue an export of the current run
// @Tags Export
// @Produce json
// @Param kind query string true "assignments or matrix"
// @Param format query string true "csv or pdf"
// @Success 202 {object} response.Envelope
// @Router /exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	kind := exportjob.Kind(c.Query("kind"))
	format := exportjob.Format(c.Query("format"))
	if kind == "" {
		kind = exportjob.KindAssignments
	}
	if format == "" {
		format = exportjob.FormatCSV
	}
	if kind != exportjob.KindAssignments && kind != exportjob.KindMatrix {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "kind must be assignments or matrix"))
		return
	}
	if format != exportjob.FormatCSV && format != exportjob.FormatPDF {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}

	record, err := h.service.Enqueue(kind, format)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to enqueue export"))
		return
	}
	response.JSON(c, http.StatusAccepted, record, nil)
}

// Status godoc
// @Summary Check an export job's status
// @Tags Export
// @Produce json
// @Param id path string true "Export job ID"
// @Success 200 {object} response.Envelope
// @Router /exports/{id} [get]
func (h *ExportHandler) Status(c *gin.Context) {
	record, ok := h.service.Status(c.Param("id"))
	if !ok {
		response.Error(c, appErrors.ErrNotFound)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Download godoc
// @Summary Download a finished export via its signed token
// @Tags Export
// @Produce application/octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} file
// @Router /exports/download [get]
func (h *ExportHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	file, name, err := h.service.Download(token)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token"))
		return
	}
	defer file.Close() //nolint:errcheck
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeContent(c.Writer, c.Request, name, fileModTime(file), file)
}

func fileModTime(f *os.File) time.Time {
	info, err := f.Stat()
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
