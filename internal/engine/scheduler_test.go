package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T, cfg Config, events []Event) *Scheduler {
	t.Helper()
	s := NewScheduler(cfg)
	for _, e := range events {
		require.NoError(t, s.AddEvent(e))
	}
	return s
}

// S1 — Trivial.
func TestScenario_Trivial(t *testing.T) {
	events := []Event{{ID: 0, Subject: "Math", Teacher: "T1", Group: "G1", Hours: 3}}
	s := newTestScheduler(t, DefaultConfig(), events)
	require.NoError(t, s.Run())

	occ, err := s.Assignments()
	require.NoError(t, err)
	assert.Len(t, occ, 3)
	for _, o := range occ {
		assert.Equal(t, 0, o.EventID)
	}

	info, err := s.GraphInfo()
	require.NoError(t, err)
	assert.Equal(t, 0, info.Edges)

	m, err := s.Metrics()
	require.NoError(t, err)
	assert.LessOrEqual(t, m.ColorsUsed, 3)
	assert.Equal(t, 0, m.ConflictsTotal)
}

// S2 — Teacher conflict.
func TestScenario_TeacherConflict(t *testing.T) {
	events := []Event{
		{ID: 0, Subject: "A", Teacher: "T1", Group: "G1", Hours: 2},
		{ID: 1, Subject: "B", Teacher: "T1", Group: "G2", Hours: 2},
	}
	s := newTestScheduler(t, DefaultConfig(), events)
	require.NoError(t, s.Run())

	conflicts, err := s.Conflicts()
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "same_teacher", conflicts[0].Reason)

	occ, err := s.Assignments()
	require.NoError(t, err)
	assert.Len(t, occ, 4)
	assertNoSharedSlotAcrossEvents(t, occ, 0, 1)
}

// S3 — Group conflict.
func TestScenario_GroupConflict(t *testing.T) {
	events := []Event{
		{ID: 0, Subject: "A", Teacher: "T1", Group: "G1", Hours: 2},
		{ID: 1, Subject: "B", Teacher: "T2", Group: "G1", Hours: 2},
	}
	s := newTestScheduler(t, DefaultConfig(), events)
	require.NoError(t, s.Run())

	conflicts, err := s.Conflicts()
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "same_group", conflicts[0].Reason)
}

// S4 — Both.
func TestScenario_Both(t *testing.T) {
	events := []Event{
		{ID: 0, Subject: "A", Teacher: "T1", Group: "G1", Hours: 1},
		{ID: 1, Subject: "B", Teacher: "T1", Group: "G1", Hours: 1},
	}
	s := newTestScheduler(t, DefaultConfig(), events)
	require.NoError(t, s.Run())

	conflicts, err := s.Conflicts()
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "same_teacher_and_group", conflicts[0].Reason)

	occ, err := s.Assignments()
	require.NoError(t, err)
	require.Len(t, occ, 2)
	assert.NotEqual(t, occ[0].Timeslot, occ[1].Timeslot)
}

// S5 — Continuity.
func TestScenario_Continuity(t *testing.T) {
	events := []Event{{ID: 0, Subject: "A", Teacher: "T1", Group: "G1", Hours: 3}}
	cfg := DefaultConfig()
	cfg.PesoContinuidad = 10
	s := newTestScheduler(t, cfg, events)
	require.NoError(t, s.Run())

	occ, err := s.Assignments()
	require.NoError(t, err)
	require.Len(t, occ, 3)

	days := map[int]bool{}
	slots := make([]int, 0, 3)
	for _, o := range occ {
		days[Day(o.Timeslot)] = true
		slots = append(slots, SlotInDay(o.Timeslot))
	}
	assert.Len(t, days, 1, "all occurrences should land on the same day")

	min, max := slots[0], slots[0]
	for _, s := range slots {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	assert.Equal(t, 2, max-min, "three consecutive slots span exactly 2")

	m, err := s.Metrics()
	require.NoError(t, err)
	assert.Equal(t, 0, m.GapPenalty)
}

// S6 — Forced infeasibility: 76 events sharing a teacher exceeds TotalSlots
// colors (chromatic number 76 > 75).
func TestScenario_ForcedInfeasibility(t *testing.T) {
	events := make([]Event, 76)
	for i := range events {
		// Distinct groups so the shared teacher is the only source of
		// conflict: a full 76-vertex clique, chromatic number 76.
		events[i] = Event{ID: i, Subject: "X", Teacher: "T1", Group: fmt.Sprintf("G%d", i), Hours: 1}
	}
	s := newTestScheduler(t, DefaultConfig(), events)
	err := s.Run()
	assert.ErrorIs(t, err, ErrInfeasibleColoring)

	_, qerr := s.Assignments()
	assert.Error(t, qerr)
}

func assertNoSharedSlotAcrossEvents(t *testing.T, occ []Occurrence, a, b int) {
	t.Helper()
	aSlots := map[int]bool{}
	for _, o := range occ {
		if o.EventID == a {
			aSlots[o.Timeslot] = true
		}
	}
	for _, o := range occ {
		if o.EventID == b {
			assert.False(t, aSlots[o.Timeslot], "conflicting events must not share a timeslot")
		}
	}
}

func TestWelshPowellAlsoProper(t *testing.T) {
	events := []Event{
		{ID: 0, Subject: "A", Teacher: "T1", Group: "G1", Hours: 1},
		{ID: 1, Subject: "B", Teacher: "T1", Group: "G2", Hours: 1},
		{ID: 2, Subject: "C", Teacher: "T2", Group: "G1", Hours: 1},
	}
	cfg := Config{Strategy: WelshPowell, PesoContinuidad: 10, MaxIterations: 1000}
	s := newTestScheduler(t, cfg, events)
	require.NoError(t, s.Run())

	m, err := s.Metrics()
	require.NoError(t, err)
	assert.Equal(t, 0, m.ConflictsTotal)
}

func TestAddEventRejectsDuplicateID(t *testing.T) {
	s := NewScheduler(DefaultConfig())
	require.NoError(t, s.AddEvent(Event{ID: 0, Teacher: "T1", Group: "G1", Hours: 1}))
	err := s.AddEvent(Event{ID: 0, Teacher: "T2", Group: "G2", Hours: 1})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestAddEventRejectsOutOfRangeHours(t *testing.T) {
	s := NewScheduler(DefaultConfig())
	assert.ErrorIs(t, s.AddEvent(Event{ID: 0, Teacher: "T1", Group: "G1", Hours: 0}), ErrInvalidEvent)
	assert.ErrorIs(t, s.AddEvent(Event{ID: 1, Teacher: "T1", Group: "G1", Hours: SlotsPerDay + 1}), ErrInvalidEvent)
}

func TestRunRejectsEmptyEventSet(t *testing.T) {
	s := NewScheduler(DefaultConfig())
	assert.ErrorIs(t, s.Run(), ErrInvalidState)
}

func TestAddEventRejectedAfterRun(t *testing.T) {
	s := newTestScheduler(t, DefaultConfig(), []Event{{ID: 0, Teacher: "T1", Group: "G1", Hours: 1}})
	require.NoError(t, s.Run())
	err := s.AddEvent(Event{ID: 1, Teacher: "T2", Group: "G2", Hours: 1})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDeterminism(t *testing.T) {
	events := []Event{
		{ID: 0, Subject: "A", Teacher: "T1", Group: "G1", Hours: 4},
		{ID: 1, Subject: "B", Teacher: "T1", Group: "G2", Hours: 2},
		{ID: 2, Subject: "C", Teacher: "T2", Group: "G1", Hours: 3},
		{ID: 3, Subject: "D", Teacher: "T3", Group: "G2", Hours: 1},
	}
	run := func() ([]Occurrence, Metrics) {
		s := newTestScheduler(t, DefaultConfig(), events)
		require.NoError(t, s.Run())
		occ, err := s.Assignments()
		require.NoError(t, err)
		m, err := s.Metrics()
		require.NoError(t, err)
		return occ, m
	}
	occ1, m1 := run()
	occ2, m2 := run()
	assert.Equal(t, occ1, occ2)
	assert.Equal(t, m1, m2)
}

func TestAdjacencyMatrixSymmetricZeroDiagonal(t *testing.T) {
	events := []Event{
		{ID: 0, Teacher: "T1", Group: "G1", Hours: 1},
		{ID: 1, Teacher: "T1", Group: "G2", Hours: 1},
		{ID: 2, Teacher: "T2", Group: "G1", Hours: 1},
	}
	s := newTestScheduler(t, DefaultConfig(), events)
	require.NoError(t, s.Run())
	mat, err := s.AdjacencyMatrix()
	require.NoError(t, err)

	n := len(mat)
	rowSum := 0
	for i := 0; i < n; i++ {
		assert.Equal(t, 0, mat[i][i])
		for j := 0; j < n; j++ {
			assert.Equal(t, mat[i][j], mat[j][i])
			rowSum += mat[i][j]
		}
	}
	info, err := s.GraphInfo()
	require.NoError(t, err)
	assert.Equal(t, info.Edges, rowSum/2)
}

func TestConflictFreeEventHasZeroEdges(t *testing.T) {
	events := []Event{
		{ID: 0, Teacher: "T1", Group: "G1", Hours: 1},
		{ID: 1, Teacher: "T2", Group: "G2", Hours: 1},
	}
	s := newTestScheduler(t, DefaultConfig(), events)
	require.NoError(t, s.Run())
	info, err := s.GraphInfo()
	require.NoError(t, err)
	assert.Equal(t, 0, info.Edges)
}
