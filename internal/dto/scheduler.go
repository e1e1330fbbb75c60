package dto

// RunScheduleRequest is the payload that triggers a scheduler run. Events
// are sourced from the catalog; this only carries the run configuration
// (section 6 of the external interfaces this service implements).
type RunScheduleRequest struct {
	Strategy        string `json:"strategy" binding:"omitempty,oneof=DSatur Welsh-Powell"`
	PesoContinuidad int    `json:"peso_continuidad" binding:"omitempty,min=1"`
	MaxIterations   int    `json:"max_iterations" binding:"omitempty,min=1"`
}

// OccurrenceResponse is one rendered occurrence: event_id/timeslot plus the
// day/time labels C6 exposes for display.
type OccurrenceResponse struct {
	EventID   int    `json:"event_id"`
	Timeslot  int    `json:"timeslot"`
	DayLabel  string `json:"day_label"`
	TimeLabel string `json:"time_label"`
}

// ConflictResponse is one conflict-graph edge.
type ConflictResponse struct {
	Event1ID int    `json:"event1_id"`
	Event2ID int    `json:"event2_id"`
	Reason   string `json:"reason"`
}

// MetricsResponse is the diagnostic metrics bundle.
type MetricsResponse struct {
	TimeMs         float64 `json:"time_ms"`
	Iterations     int     `json:"iterations"`
	ColorsUsed     int     `json:"colors_used"`
	ConflictsTotal int     `json:"conflicts_total"`
	GapPenalty     int     `json:"gap_penalty"`
	Quality        float64 `json:"quality"`
}

// GraphInfoResponse summarizes the conflict graph.
type GraphInfoResponse struct {
	Vertices  int     `json:"vertices"`
	Edges     int     `json:"edges"`
	MaxDegree int     `json:"max_degree"`
	AvgDegree float64 `json:"avg_degree"`
}
