// Package exportjob renders a finished scheduler run into downloadable
// documents — the assignment list or the conflict matrix, as a CSV dump or
// as a plain PDF table of the same rows (not a per-group weekly grid) —
// queued asynchronously and retrieved
// through a signed, expiring URL. This is spec.md's "tabular spreadsheets"
// and "styled documents" collaborator made concrete.
package exportjob

import "time"

// Kind selects which dataset an export renders.
type Kind string

const (
	KindAssignments Kind = "assignments"
	KindMatrix      Kind = "matrix"
)

// Format selects the output document type.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// Status tracks an export job's lifecycle.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Request is what a caller submits to enqueue an export.
type Request struct {
	Kind   Kind
	Format Format
}

// Record tracks one export job's state, including the signed download
// token once rendering finishes.
type Record struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Format      Format    `json:"format"`
	Status      Status    `json:"status"`
	DownloadURL string    `json:"download_url,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
