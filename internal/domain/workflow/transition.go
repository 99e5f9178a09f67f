package workflow

import "fmt"

// Outcome is the computed result of applying an action to a process
type Outcome struct {
	NextStep Step
	Status   Status

	// Archive is true when the resulting status is terminal
	Archive bool

	// NotifyResearcher is true when the researcher must be told to revise
	NotifyResearcher bool
}

// CanAct checks whether a role may act on the given step. Administrative
// roles may act on any step; reviewer roles only on the step bound to them.
func CanAct(role Role, step Step) error {
	if role.IsAdministrative() {
		return nil
	}
	if stepRoles[step] == role {
		return nil
	}
	return &ForbiddenError{Role: role, Step: step}
}

// Apply computes the transition for an action against the current step of
// the given sequence.
//
// Approve advances to the next step of the sequence, or finishes the
// pipeline when the current step is the last one. Reject and revision both
// reset the process to the sequence's first step: a negative outcome
// discards every earlier sign-off and review restarts from scratch.
func Apply(seq Sequence, current Step, action Action) (Outcome, error) {
	if len(seq) == 0 {
		return Outcome{}, ErrEmptySequence
	}

	switch action {
	case ActionApprove:
		if current == StepDone {
			return Outcome{}, fmt.Errorf("%w: process already done", ErrInvalidTransition)
		}
		if !seq.Contains(current) {
			return Outcome{}, fmt.Errorf("%w: step %s is not part of the active workflow", ErrInvalidTransition, current)
		}
		if next, ok := seq.Next(current); ok {
			return Outcome{NextStep: next, Status: StatusPending}, nil
		}
		return Outcome{NextStep: StepDone, Status: StatusApproved, Archive: true}, nil

	case ActionReject:
		return Outcome{NextStep: seq.First(), Status: StatusRejected, Archive: true}, nil

	case ActionRevision:
		return Outcome{NextStep: seq.First(), Status: StatusRevisionRequested, NotifyResearcher: true}, nil

	default:
		return Outcome{}, fmt.Errorf("%w: %s", ErrInvalidAction, action)
	}
}
