package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAction is returned when an action string is not recognized
	ErrInvalidAction = errors.New("invalid action")

	// ErrInvalidStep is returned when a step name is outside the controlled vocabulary
	ErrInvalidStep = errors.New("invalid step")

	// ErrInvalidRole is returned when a role name or legacy code is not recognized
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidTransition is returned when an action is not allowed from the current step
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrEmptySequence is returned when a workflow sequence has no steps
	ErrEmptySequence = errors.New("workflow sequence must have at least one step")
)

// ForbiddenError is returned when a role is not allowed to act on a step.
// It carries both for diagnostics.
type ForbiddenError struct {
	Role Role
	Step Step
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("role %s cannot act on step %s", e.Role, e.Step)
}
