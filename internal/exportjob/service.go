package exportjob

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-engine/internal/engine"
	"github.com/noah-isme/timetable-engine/pkg/export"
	"github.com/noah-isme/timetable-engine/pkg/jobs"
	"github.com/noah-isme/timetable-engine/pkg/storage"
)

// scheduleSource is the slice of SchedulerService an export needs: the
// finished run's occurrences, conflict matrix, and event list.
type scheduleSource interface {
	Assignments() ([]engine.Occurrence, error)
	AdjacencyMatrix() ([][]int, error)
	Events() ([]engine.Event, error)
}

type payload struct {
	recordID string
	req      Request
}

// Service renders finished scheduler runs into CSV/PDF documents through a
// goroutine worker pool, storing results on disk behind signed, expiring
// download tokens — the same shape as the teacher's report-job pipeline.
type Service struct {
	source  scheduleSource
	queue   *jobs.Queue
	storage *storage.LocalStorage
	signer  *storage.SignedURLSigner
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger

	mu      sync.Mutex
	records map[string]*Record
}

// NewService constructs and starts the export worker pool.
func NewService(ctx context.Context, source scheduleSource, store *storage.LocalStorage, signer *storage.SignedURLSigner, concurrency, retries int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		source:  source,
		storage: store,
		signer:  signer,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
		records: make(map[string]*Record),
	}
	s.queue = jobs.NewQueue("export", s.handle, jobs.QueueConfig{
		Workers:    concurrency,
		MaxRetries: retries,
		Logger:     logger,
	})
	s.queue.Start(ctx)
	return s
}

// Stop drains the worker pool.
func (s *Service) Stop() {
	s.queue.Stop()
}

// Enqueue submits a new export job and returns its tracking record.
func (s *Service) Enqueue(kind Kind, format Format) (*Record, error) {
	record := &Record{
		ID:        uuid.NewString(),
		Kind:      kind,
		Format:    format,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.records[record.ID] = record
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{
		ID:      record.ID,
		Type:    "export",
		Payload: payload{recordID: record.ID, req: Request{Kind: kind, Format: format}},
	}); err != nil {
		s.setFailed(record.ID, err)
		return nil, err
	}
	return record, nil
}

// Status returns the current state of a previously enqueued export.
func (s *Service) Status(id string) (*Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	return rec, ok
}

// Download resolves a signed token into an open file handle and its
// suggested filename.
func (s *Service) Download(token string) (*os.File, string, error) {
	jobID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", fmt.Errorf("invalid download token: %w", err)
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", err
	}
	return file, jobID + filepathExt(relPath), nil
}

func (s *Service) handle(ctx context.Context, job jobs.Job) error {
	p, ok := job.Payload.(payload)
	if !ok {
		return fmt.Errorf("export job: unexpected payload type")
	}
	s.setStatus(p.recordID, StatusRunning)

	dataset, title, err := s.buildDataset(p.req.Kind)
	if err != nil {
		s.setFailed(p.recordID, err)
		return err
	}

	var rendered []byte
	ext := string(p.req.Format)
	switch p.req.Format {
	case FormatPDF:
		rendered, err = s.pdf.Render(dataset, title)
	default:
		rendered, err = s.csv.Render(dataset)
		ext = "csv"
	}
	if err != nil {
		s.setFailed(p.recordID, err)
		return err
	}

	filename := fmt.Sprintf("%s-%s.%s", p.req.Kind, p.recordID, ext)
	if _, err := s.storage.Save(filename, rendered); err != nil {
		s.setFailed(p.recordID, err)
		return err
	}

	token, expiresAt, err := s.signer.Generate(p.recordID, filename)
	if err != nil {
		s.setFailed(p.recordID, err)
		return err
	}

	s.mu.Lock()
	if rec, ok := s.records[p.recordID]; ok {
		rec.Status = StatusDone
		rec.DownloadURL = token
		rec.ExpiresAt = expiresAt
	}
	s.mu.Unlock()
	return nil
}

func (s *Service) buildDataset(kind Kind) (export.Dataset, string, error) {
	switch kind {
	case KindMatrix:
		matrix, err := s.source.AdjacencyMatrix()
		if err != nil {
			return export.Dataset{}, "", err
		}
		return matrixDataset(matrix), "conflict matrix", nil
	default:
		occurrences, err := s.source.Assignments()
		if err != nil {
			return export.Dataset{}, "", err
		}
		events, err := s.source.Events()
		if err != nil {
			return export.Dataset{}, "", err
		}
		return assignmentsDataset(occurrences, events), "weekly schedule", nil
	}
}

func assignmentsDataset(occurrences []engine.Occurrence, events []engine.Event) export.Dataset {
	byID := make(map[int]engine.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}
	headers := []string{"event_id", "subject", "teacher", "group", "day", "time"}
	rows := make([]map[string]string, len(occurrences))
	for i, o := range occurrences {
		e := byID[o.EventID]
		rows[i] = map[string]string{
			"event_id": strconv.Itoa(o.EventID),
			"subject":  e.Subject,
			"teacher":  e.Teacher,
			"group":    e.Group,
			"day":      engine.DayLabel(o.Timeslot),
			"time":     engine.TimeLabel(o.Timeslot),
		}
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func matrixDataset(matrix [][]int) export.Dataset {
	n := len(matrix)
	headers := make([]string, 0, n+1)
	headers = append(headers, "event_id")
	for j := 0; j < n; j++ {
		headers = append(headers, strconv.Itoa(j))
	}
	rows := make([]map[string]string, n)
	for i := 0; i < n; i++ {
		row := map[string]string{"event_id": strconv.Itoa(i)}
		for j := 0; j < n; j++ {
			row[strconv.Itoa(j)] = strconv.Itoa(matrix[i][j])
		}
		rows[i] = row
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func (s *Service) setStatus(id string, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[id]; ok {
		rec.Status = status
	}
}

func (s *Service) setFailed(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[id]; ok {
		rec.Status = StatusFailed
		rec.Error = err.Error()
	}
	s.logger.Warn("export job failed", zap.String("job_id", id), zap.Error(err))
}

func filepathExt(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i:]
		}
	}
	return ""
}
