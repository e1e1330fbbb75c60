package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGapPenaltyZeroWhenConsecutive(t *testing.T) {
	events := []Event{{ID: 0, Teacher: "T1", Group: "G1"}}
	occ := []Occurrence{
		{EventID: 0, Timeslot: 0},
		{EventID: 0, Timeslot: 1},
		{EventID: 0, Timeslot: 2},
	}
	assert.Equal(t, 0, gapPenalty(occ, events))
}

func TestGapPenaltyCountsInterleavedGaps(t *testing.T) {
	events := []Event{{ID: 0, Teacher: "T1", Group: "G1"}}
	occ := []Occurrence{
		{EventID: 0, Timeslot: 0},
		{EventID: 0, Timeslot: 4}, // span 5, occupied 2 -> gap 3
	}
	assert.Equal(t, 3, gapPenalty(occ, events))
}

func TestRefineNeverIncreasesGapPenalty(t *testing.T) {
	events := []Event{
		{ID: 0, Teacher: "T1", Group: "G1", Hours: 3},
		{ID: 1, Teacher: "T2", Group: "G1", Hours: 2},
	}
	g := buildGraph(events)
	colors, err := colorDSatur(g)
	assert.NoError(t, err)
	occ, err := expand(events, colors, g)
	assert.NoError(t, err)

	before := gapPenalty(occ, events)
	refined, _ := refine(occ, events, g, 1000)
	after := gapPenalty(refined, events)
	assert.LessOrEqual(t, after, before)
	assert.True(t, admissible(refined, events, g))
}

func TestRefineRespectsMaxIterations(t *testing.T) {
	events := []Event{{ID: 0, Teacher: "T1", Group: "G1", Hours: 4}}
	g := buildGraph(events)
	colors, err := colorDSatur(g)
	assert.NoError(t, err)
	occ, err := expand(events, colors, g)
	assert.NoError(t, err)

	_, iterations := refine(occ, events, g, 0)
	assert.Equal(t, 0, iterations)
}
