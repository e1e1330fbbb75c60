package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGraphEdgeOnSharedTeacher(t *testing.T) {
	events := []Event{
		{ID: 0, Teacher: "T1", Group: "G1"},
		{ID: 1, Teacher: "T1", Group: "G2"},
		{ID: 2, Teacher: "T2", Group: "G3"},
	}
	g := buildGraph(events)
	assert.True(t, g.HasEdge(0, 1))
	assert.False(t, g.HasEdge(0, 2))
	assert.False(t, g.HasEdge(1, 2))
	assert.Equal(t, 1, g.Edges())
}

func TestBuildGraphNeighborsSortedAscending(t *testing.T) {
	events := []Event{
		{ID: 0, Teacher: "T1", Group: "G1"},
		{ID: 1, Teacher: "T2", Group: "G1"},
		{ID: 2, Teacher: "T3", Group: "G1"},
	}
	g := buildGraph(events)
	assert.Equal(t, []int{1, 2}, g.Neighbors(0))
}

// Law: an event has zero edges iff no other event shares its teacher or group.
func TestLaw_ConflictIdentity(t *testing.T) {
	events := []Event{
		{ID: 0, Teacher: "T1", Group: "G1"},
		{ID: 1, Teacher: "T2", Group: "G2"},
		{ID: 2, Teacher: "T1", Group: "G3"},
	}
	g := buildGraph(events)
	assert.Equal(t, 0, g.Degree(1))
	assert.Greater(t, g.Degree(0), 0)
	assert.Greater(t, g.Degree(2), 0)
}

func TestAdjacencyMatrixIsDefensiveCopy(t *testing.T) {
	events := []Event{{ID: 0, Teacher: "T1", Group: "G1"}, {ID: 1, Teacher: "T1", Group: "G2"}}
	g := buildGraph(events)
	m := g.AdjacencyMatrix()
	m[0][1] = 0
	assert.True(t, g.HasEdge(0, 1))
}
