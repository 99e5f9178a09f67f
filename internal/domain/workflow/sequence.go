package workflow

import "strings"

// Sequence is the ordered step list of a workflow definition
type Sequence []Step

// NewSequence resolves raw step names into a validated sequence.
// Legacy aliases are normalized, so "faculty_admin,committee_member,rectorate"
// and "faculty,committee,rector" produce equal sequences.
func NewSequence(raw []string) (Sequence, error) {
	if len(raw) == 0 {
		return nil, ErrEmptySequence
	}

	seq := make(Sequence, 0, len(raw))
	for _, name := range raw {
		step, err := ResolveStep(name)
		if err != nil {
			return nil, err
		}
		if !step.IsValid() {
			return nil, ErrInvalidStep
		}
		seq = append(seq, step)
	}
	return seq, nil
}

// First returns the first step of the sequence
func (s Sequence) First() Step {
	return s[0]
}

// Next returns the step following the given one, or false when the given
// step is the last one (or absent).
func (s Sequence) Next(current Step) (Step, bool) {
	for i, step := range s {
		if step == current && i+1 < len(s) {
			return s[i+1], true
		}
	}
	return "", false
}

// Contains returns true if the step is part of the sequence
func (s Sequence) Contains(step Step) bool {
	for _, candidate := range s {
		if candidate == step {
			return true
		}
	}
	return false
}

// Equal compares two sequences element-wise including length, which covers
// the legacy fixed-slot comparison where missing slots had to match too.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Strings returns the sequence as plain step names
func (s Sequence) Strings() []string {
	names := make([]string, len(s))
	for i, step := range s {
		names[i] = step.String()
	}
	return names
}

// String returns the sequence as a comma-joined list, for logs and errors
func (s Sequence) String() string {
	return strings.Join(s.Strings(), ",")
}
