package exportjob

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-engine/internal/engine"
	"github.com/noah-isme/timetable-engine/pkg/storage"
)

type fakeScheduleSource struct {
	assignments []engine.Occurrence
	events      []engine.Event
	matrix      [][]int
}

func (f *fakeScheduleSource) Assignments() ([]engine.Occurrence, error) { return f.assignments, nil }
func (f *fakeScheduleSource) AdjacencyMatrix() ([][]int, error)         { return f.matrix, nil }
func (f *fakeScheduleSource) Events() ([]engine.Event, error)           { return f.events, nil }

func waitForStatus(t *testing.T, svc *Service, id string, want Status) *Record {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		rec, ok := svc.Status(id)
		require.True(t, ok)
		if rec.Status == want {
			return rec
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("export job %s did not reach status %s in time", id, want)
	return nil
}

func TestServiceEnqueueAndDownloadCSV(t *testing.T) {
	source := &fakeScheduleSource{
		assignments: []engine.Occurrence{{EventID: 0, Timeslot: 0}},
		events:      []engine.Event{{ID: 0, Subject: "Math", Teacher: "Ada", Group: "10A", Hours: 4}},
	}
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)

	svc := NewService(context.Background(), source, store, signer, 1, 1, nil)
	defer svc.Stop()

	record, err := svc.Enqueue(KindAssignments, FormatCSV)
	require.NoError(t, err)

	done := waitForStatus(t, svc, record.ID, StatusDone)
	require.NotEmpty(t, done.DownloadURL)

	file, name, err := svc.Download(done.DownloadURL)
	require.NoError(t, err)
	defer file.Close()
	require.Contains(t, name, record.ID)
}

func TestServiceEnqueueMatrixPDF(t *testing.T) {
	source := &fakeScheduleSource{matrix: [][]int{{0, 1}, {1, 0}}}
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)

	svc := NewService(context.Background(), source, store, signer, 1, 1, nil)
	defer svc.Stop()

	record, err := svc.Enqueue(KindMatrix, FormatPDF)
	require.NoError(t, err)

	done := waitForStatus(t, svc, record.ID, StatusDone)
	require.NotEmpty(t, done.DownloadURL)
}

func TestServiceDownloadInvalidToken(t *testing.T) {
	source := &fakeScheduleSource{}
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)

	svc := NewService(context.Background(), source, store, signer, 1, 1, nil)
	defer svc.Stop()

	_, _, err = svc.Download("not-a-real-token")
	require.Error(t, err)
}
