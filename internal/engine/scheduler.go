package engine

import "time"

type state int

const (
	stateInit state = iota
	stateReady
	stateDone
	stateFailed
)

// Config holds the enumerated run configuration (section 6 of the spec this
// engine implements).
type Config struct {
	Strategy        Strategy
	PesoContinuidad int
	MaxIterations   int
}

// DefaultConfig returns the documented defaults: DSatur, peso_continuidad 10,
// max_iterations 1000.
func DefaultConfig() Config {
	return Config{
		Strategy:        DSatur,
		PesoContinuidad: 10,
		MaxIterations:   1000,
	}
}

// Scheduler is the C7 facade: configure -> add events -> run -> query.
// It is not internally synchronized; callers must externally serialize
// AddEvent/Run. Once Run completes, all query methods are pure reads and
// safe for concurrent use provided no further mutation occurs.
type Scheduler struct {
	cfg    Config
	st     state
	events []Event
	ids    map[int]struct{}

	graph       *Graph
	occurrences []Occurrence
	metrics     Metrics
}

// NewScheduler creates a scheduler with the given configuration. Passing the
// configuration here is the INIT step, so the scheduler starts in READY and
// accepts events immediately.
func NewScheduler(cfg Config) *Scheduler {
	return &Scheduler{
		cfg: cfg,
		st:  stateReady,
		ids: make(map[int]struct{}),
	}
}

// Reset clears all events and results and reconfigures the scheduler,
// returning it to a state ready to accept events. This is the mechanism by
// which a scheduler instance may be rerun with a different configuration.
func (s *Scheduler) Reset(cfg Config) {
	s.cfg = cfg
	s.st = stateReady
	s.events = nil
	s.ids = make(map[int]struct{})
	s.graph = nil
	s.occurrences = nil
	s.metrics = Metrics{}
}

// AddEvent registers one event. Valid only before Run; rejects duplicate
// ids and out-of-range hours with ErrInvalidEvent, and rejects being called
// after Run with ErrInvalidState.
func (s *Scheduler) AddEvent(e Event) error {
	if s.st != stateReady {
		return ErrInvalidState
	}
	if err := validateEvent(e, s.ids); err != nil {
		return err
	}
	s.ids[e.ID] = struct{}{}
	s.events = append(s.events, e)
	return nil
}

// Run executes the full pipeline: build graph, color, expand, refine,
// compute metrics. It transitions the scheduler to DONE on success or
// FAILED on infeasibility, and is the scheduler's one blocking, synchronous
// operation.
func (s *Scheduler) Run() error {
	if s.st != stateReady {
		return ErrInvalidState
	}
	if len(s.events) == 0 {
		return ErrInvalidState
	}

	start := time.Now()

	g := buildGraph(s.events)
	s.graph = g

	colors, err := color(g, s.cfg.Strategy)
	if err != nil {
		s.st = stateFailed
		s.metrics = Metrics{TimeMs: elapsedMs(start)}
		return err
	}

	occ, err := expand(s.events, colors, g)
	if err != nil {
		s.st = stateFailed
		s.metrics = Metrics{TimeMs: elapsedMs(start)}
		return err
	}

	refined, iterations := refine(occ, s.events, g, s.cfg.MaxIterations)
	s.occurrences = refined
	s.metrics = computeMetrics(refined, s.events, g, s.cfg.PesoContinuidad, iterations, elapsedMs(start))
	s.st = stateDone
	return nil
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

// Assignments returns the ordered occurrence list. Legal only in DONE.
func (s *Scheduler) Assignments() ([]Occurrence, error) {
	if s.st != stateDone {
		return nil, s.queryErr()
	}
	out := make([]Occurrence, len(s.occurrences))
	copy(out, s.occurrences)
	return out, nil
}

// Conflicts returns the conflict-graph edge list. Legal only in DONE.
func (s *Scheduler) Conflicts() ([]ConflictEdge, error) {
	if s.st != stateDone {
		return nil, s.queryErr()
	}
	return s.graph.ConflictEdges(), nil
}

// Metrics returns the diagnostic metrics bundle. Legal only in DONE.
func (s *Scheduler) Metrics() (Metrics, error) {
	if s.st != stateDone {
		return Metrics{}, s.queryErr()
	}
	return s.metrics, nil
}

// GraphInfo returns the conflict-graph summary. Legal only in DONE.
func (s *Scheduler) GraphInfo() (GraphInfo, error) {
	if s.st != stateDone {
		return GraphInfo{}, s.queryErr()
	}
	return graphInfo(s.graph), nil
}

// AdjacencyMatrix returns the dense conflict matrix. Legal only in DONE.
func (s *Scheduler) AdjacencyMatrix() ([][]int, error) {
	if s.st != stateDone {
		return nil, s.queryErr()
	}
	return s.graph.AdjacencyMatrix(), nil
}

// Events returns a defensive copy of the accepted event list, for
// collaborators (catalog loader, export) that need to render it alongside
// the schedule.
func (s *Scheduler) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// FailedMetrics returns the partial metrics recorded on a failed run, for
// diagnostic surfacing. Legal only in FAILED.
func (s *Scheduler) FailedMetrics() (Metrics, error) {
	if s.st != stateFailed {
		return Metrics{}, ErrInvalidState
	}
	return s.metrics, nil
}

// queryErr is returned for any query invoked outside DONE. FAILED and
// pre-run states share the same InvalidState surfacing; FailedMetrics is the
// one exception carved out for the FAILED diagnostic path.
func (s *Scheduler) queryErr() error {
	return ErrInvalidState
}
