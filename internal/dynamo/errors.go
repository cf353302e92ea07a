package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for lab operations.
var (
	// ErrUnknownParameter indicates a write to a parameter the store does not hold.
	ErrUnknownParameter = errors.New("dynamo: unknown parameter")

	// ErrStepOutOfRange indicates a phase index outside the step ring.
	ErrStepOutOfRange = errors.New("dynamo: step index out of range")

	// ErrUnknownShape indicates a molecular geometry that is not in the catalogue.
	ErrUnknownShape = errors.New("dynamo: unknown molecular shape")

	// ErrUnknownKind indicates a simulation kind with no registered factory.
	ErrUnknownKind = errors.New("dynamo: unknown simulation kind")

	// ErrSchedulerRunning indicates a start request on a scheduler that is already ticking.
	ErrSchedulerRunning = errors.New("dynamo: scheduler already running")

	// ErrInvalidInterval indicates a non-positive tick interval.
	ErrInvalidInterval = errors.New("dynamo: tick interval must be positive")

	// ErrInvalidOutputs indicates a tick produced NaN or Inf values.
	ErrInvalidOutputs = errors.New("dynamo: invalid outputs (NaN or Inf detected)")

	// ErrTickPanic indicates a tick callback panicked.
	ErrTickPanic = errors.New("dynamo: tick panicked")

	// ErrUnsupported indicates an interaction the active simulation does not offer.
	ErrUnsupported = errors.New("dynamo: operation not supported by simulation")

	// ErrSessionNotFound indicates a lookup for a topic with no open session.
	ErrSessionNotFound = errors.New("dynamo: session not found")
)

// TickError wraps a failure with the tick that produced it.
type TickError struct {
	Tick    int
	Topic   string
	Wrapped error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("%s: tick %d: %v", e.Topic, e.Tick, e.Wrapped)
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}
