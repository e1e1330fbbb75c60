package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandRespectsHourCount(t *testing.T) {
	events := []Event{
		{ID: 0, Teacher: "T1", Group: "G1", Hours: 4},
		{ID: 1, Teacher: "T2", Group: "G2", Hours: 2},
	}
	g := buildGraph(events)
	colors, err := colorDSatur(g)
	require.NoError(t, err)
	occ, err := expand(events, colors, g)
	require.NoError(t, err)

	counts := map[int]int{}
	for _, o := range occ {
		counts[o.EventID]++
	}
	assert.Equal(t, 4, counts[0])
	assert.Equal(t, 2, counts[1])
}

func TestExpandNoDuplicateTimeslotPerEvent(t *testing.T) {
	events := []Event{{ID: 0, Teacher: "T1", Group: "G1", Hours: 5}}
	g := buildGraph(events)
	colors, err := colorDSatur(g)
	require.NoError(t, err)
	occ, err := expand(events, colors, g)
	require.NoError(t, err)

	seen := map[int]bool{}
	for _, o := range occ {
		assert.False(t, seen[o.Timeslot], "event must not repeat a timeslot")
		seen[o.Timeslot] = true
	}
}

func TestExpandOrderingByEventThenTimeslot(t *testing.T) {
	events := []Event{
		{ID: 0, Teacher: "T1", Group: "G1", Hours: 2},
		{ID: 1, Teacher: "T2", Group: "G2", Hours: 2},
	}
	g := buildGraph(events)
	colors, err := colorDSatur(g)
	require.NoError(t, err)
	occ, err := expand(events, colors, g)
	require.NoError(t, err)

	for i := 1; i < len(occ); i++ {
		prev, cur := occ[i-1], occ[i]
		if prev.EventID == cur.EventID {
			assert.Less(t, prev.Timeslot, cur.Timeslot)
		} else {
			assert.Less(t, prev.EventID, cur.EventID)
		}
	}
}
