package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidBodyParameter indicates a body was built with a physically meaningless parameter.
	ErrInvalidBodyParameter = errors.New("dynamo: invalid body parameter")

	// ErrInvalidRunParameter indicates a run was requested with a non-positive duration or step count.
	ErrInvalidRunParameter = errors.New("dynamo: invalid run parameter")

	// ErrSingularity indicates two distinct bodies share a position, so the pairwise terms are undefined.
	ErrSingularity = errors.New("dynamo: singular configuration (coincident bodies)")

	// ErrInvalidState indicates a committed state with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrUnknownBody indicates a lookup by a name that is not part of the system.
	ErrUnknownBody = errors.New("dynamo: unknown body")
)

// BodyParamError reports which parameter of which body was rejected.
type BodyParamError struct {
	Body   string
	Param  string
	Value  float64
	Reason string
}

func (e *BodyParamError) Error() string {
	if e.Param == "name" {
		return fmt.Sprintf("%v: body %q: %s", ErrInvalidBodyParameter, e.Body, e.Reason)
	}
	return fmt.Sprintf("%v: body %q: %s=%g %s", ErrInvalidBodyParameter, e.Body, e.Param, e.Value, e.Reason)
}

func (e *BodyParamError) Unwrap() error { return ErrInvalidBodyParameter }

// RunParamError reports a rejected run configuration value.
type RunParamError struct {
	Param string
	Value float64
}

func (e *RunParamError) Error() string {
	return fmt.Sprintf("%v: %s must be positive, got %g", ErrInvalidRunParameter, e.Param, e.Value)
}

func (e *RunParamError) Unwrap() error { return ErrInvalidRunParameter }

// SingularityError names the two bodies found at the same position.
type SingularityError struct {
	Step int
	A, B string
}

func (e *SingularityError) Error() string {
	return fmt.Sprintf("%v: %q and %q at step %d", ErrSingularity, e.A, e.B, e.Step)
}

func (e *SingularityError) Unwrap() error { return ErrSingularity }

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.1fs): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
