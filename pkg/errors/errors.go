package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/noah-isme/timetable-engine/internal/engine"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrInactiveAccount    = New("ACCOUNT_INACTIVE", http.StatusForbidden, "account is inactive")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrPreconditionFailed = New("PRECONDITION_FAILED", http.StatusPreconditionFailed, "precondition failed")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")

	// Engine-adjacent errors. The engine package itself has no HTTP
	// awareness and returns plain sentinel errors; FromEngineErr below is
	// the adapter that normalizes those into this typed shape.
	ErrInvalidEvent          = New("INVALID_EVENT", http.StatusBadRequest, "invalid event")
	ErrInvalidSchedulerState = New("INVALID_SCHEDULER_STATE", http.StatusConflict, "operation not allowed in the current scheduler state")
	ErrInfeasibleColoring    = New("INFEASIBLE_COLORING", http.StatusUnprocessableEntity, "no feasible coloring within the weekly slot grid")
	ErrInfeasibleExpansion   = New("INFEASIBLE_EXPANSION", http.StatusUnprocessableEntity, "could not place all hours of an event")
)

// FromEngineErr normalizes one of the engine package's sentinel errors into
// the typed *Error shape, the same normalization role FromError plays for
// arbitrary errors.
func FromEngineErr(err error) *Error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, engine.ErrInvalidEvent):
		return Wrap(err, ErrInvalidEvent.Code, ErrInvalidEvent.Status, ErrInvalidEvent.Message)
	case errors.Is(err, engine.ErrInvalidState):
		return Wrap(err, ErrInvalidSchedulerState.Code, ErrInvalidSchedulerState.Status, ErrInvalidSchedulerState.Message)
	case errors.Is(err, engine.ErrInfeasibleColoring):
		return Wrap(err, ErrInfeasibleColoring.Code, ErrInfeasibleColoring.Status, ErrInfeasibleColoring.Message)
	case errors.Is(err, engine.ErrInfeasibleExpansion):
		return Wrap(err, ErrInfeasibleExpansion.Code, ErrInfeasibleExpansion.Status, ErrInfeasibleExpansion.Message)
	default:
		return FromError(err)
	}
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
