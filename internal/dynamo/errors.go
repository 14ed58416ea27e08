package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrNoViewport indicates the host has no window to populate or bound against.
	ErrNoViewport = errors.New("dynamo: no viewport available")

	// ErrInvalidState indicates a particle with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid particle state (NaN or Inf detected)")

	// ErrInvalidConfig indicates constants outside their valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrUnknownBackend indicates a compute backend name with no implementation.
	ErrUnknownBackend = errors.New("dynamo: unknown compute backend")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")
)

// StepError wraps an error with the frame and particle it was detected at.
type StepError struct {
	Frame   int
	Index   int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("frame %d (particle %d): %v", e.Frame, e.Index, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
