package engine

import "errors"

// Sentinel errors returned by the engine. The engine has no HTTP awareness;
// callers (internal/service) adapt these into *errors.Error via FromEngineErr.
var (
	ErrInvalidEvent        = errors.New("engine: invalid event")
	ErrInvalidState        = errors.New("engine: invalid state transition")
	ErrInfeasibleColoring  = errors.New("engine: no proper coloring within TOTAL_SLOTS colors")
	ErrInfeasibleExpansion = errors.New("engine: could not place all hours of an event")
)
