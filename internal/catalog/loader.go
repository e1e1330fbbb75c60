// Package catalog loads teacher/subject/group/weekly-hour records from a
// structured document (JSON or CSV) and turns them into the dense,
// 0-based Event list the scheduling engine consumes. This is the external
// collaborator the core deliberately stays blind to: it never touches
// engine internals beyond constructing engine.Event values.
package catalog

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/noah-isme/timetable-engine/internal/engine"
	"github.com/noah-isme/timetable-engine/internal/service"
)

// Record is one row of the structured document: a subject bound to a
// teacher and a group with a weekly contact-hour count.
type Record struct {
	Subject string `json:"subject"`
	Teacher string `json:"teacher"`
	Group   string `json:"group"`
	Hours   int    `json:"hours"`
}

// Loader reads catalog records from a JSON or CSV file and turns them into
// an Event list or, via AsRowSource, a service.CatalogRowSource usable
// wherever a database-backed catalog would otherwise be wired.
type Loader struct {
	path   string
	format string // "json" or "csv"
}

func NewLoader(path, format string) *Loader {
	return &Loader{path: path, format: format}
}

// Load reads and parses the configured document into Records.
func (l *Loader) Load() ([]Record, error) {
	switch l.format {
	case "csv":
		return loadCSV(l.path)
	default:
		return loadJSON(l.path)
	}
}

// Events reads the document and turns it directly into a dense, 0-based
// engine.Event slice.
func (l *Loader) Events() ([]engine.Event, error) {
	records, err := l.Load()
	if err != nil {
		return nil, err
	}
	events := make([]engine.Event, len(records))
	for i, r := range records {
		events[i] = engine.Event{
			ID:      i,
			Subject: r.Subject,
			Teacher: r.Teacher,
			Group:   r.Group,
			Hours:   r.Hours,
		}
	}
	return events, nil
}

// AsRowSource adapts the loader into service.CatalogRowSource, letting the
// catalog service build events from a flat file in place of Postgres —
// useful for a first run before the database catalog is populated.
func (l *Loader) AsRowSource() service.CatalogRowSource {
	return loaderRowSource{l}
}

type loaderRowSource struct {
	loader *Loader
}

func (s loaderRowSource) ListLoads(_ context.Context) ([]service.CatalogRow, error) {
	records, err := s.loader.Load()
	if err != nil {
		return nil, err
	}
	out := make([]service.CatalogRow, len(records))
	for i, r := range records {
		out[i] = service.CatalogRow{
			LoadID:      strconv.Itoa(i),
			TeacherName: r.Teacher,
			SubjectName: r.Subject,
			GroupName:   r.Group,
			WeeklyHours: r.Hours,
		}
	}
	return out, nil
}

func loadJSON(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog json: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse catalog json: %w", err)
	}
	return records, nil
}

func loadCSV(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse catalog csv: %w", err)
	}

	var records []Record
	for i, row := range rows {
		if i == 0 {
			continue // header: subject,teacher,group,hours
		}
		if len(row) < 4 {
			continue
		}
		hours, _ := strconv.Atoi(row[3])
		records = append(records, Record{
			Subject: row[0],
			Teacher: row[1],
			Group:   row[2],
			Hours:   hours,
		})
	}
	return records, nil
}
