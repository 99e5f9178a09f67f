package workflow

import "strings"

// Step represents a named stage in the approval pipeline
type Step string

const (
	StepFaculty   Step = "faculty"
	StepCommittee Step = "committee"
	StepRector    Step = "rector"

	// StepDone is the sentinel for a finished pipeline, not a configurable stage
	StepDone Step = "done"
)

var validSteps = map[Step]bool{
	StepFaculty:   true,
	StepCommittee: true,
	StepRector:    true,
}

// stepAliases maps legacy step spellings onto canonical steps
var stepAliases = map[string]Step{
	"faculty":          StepFaculty,
	"faculty_admin":    StepFaculty,
	"committee":        StepCommittee,
	"committee_member": StepCommittee,
	"rector":           StepRector,
	"rectorate":        StepRector,
	"done":             StepDone,
}

// ResolveStep normalizes a raw step name, accepting legacy aliases.
// Returns ErrInvalidStep for anything outside the controlled vocabulary.
func ResolveStep(raw string) (Step, error) {
	if step, ok := stepAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return step, nil
	}
	return "", ErrInvalidStep
}

// IsValid returns true if the step is a configurable pipeline stage
func (s Step) IsValid() bool {
	return validSteps[s]
}

// String returns the string representation of the step
func (s Step) String() string {
	return string(s)
}
