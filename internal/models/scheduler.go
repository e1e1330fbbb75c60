package models

import "time"

// ScheduleRun is a persisted summary of one scheduler invocation: the
// configuration it ran with, the resulting diagnostics, and enough of the
// graph/metrics snapshot to answer later queries without re-running the
// engine.
type ScheduleRun struct {
	ID              string    `db:"id" json:"id"`
	Strategy        string    `db:"strategy" json:"strategy"`
	PesoContinuidad int       `db:"peso_continuidad" json:"peso_continuidad"`
	MaxIterations   int       `db:"max_iterations" json:"max_iterations"`
	EventCount      int       `db:"event_count" json:"event_count"`
	ColorsUsed      int       `db:"colors_used" json:"colors_used"`
	ConflictsTotal  int       `db:"conflicts_total" json:"conflicts_total"`
	GapPenalty      int       `db:"gap_penalty" json:"gap_penalty"`
	Quality         float64   `db:"quality" json:"quality"`
	TimeMs          float64   `db:"time_ms" json:"time_ms"`
	Iterations      int       `db:"iterations" json:"iterations"`
	CreatedBy       string    `db:"created_by" json:"created_by"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
