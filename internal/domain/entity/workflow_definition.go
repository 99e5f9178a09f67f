package entity

import "time"

// Workflow definition statuses. Exactly one definition is current at a time;
// the rest carry the legacy no_in_use marker.
const (
	WorkflowStatusCurrent  = "current"
	WorkflowStatusNotInUse = "no_in_use"
)

// WorkflowDefinition is an ordered, named sequence of review steps
type WorkflowDefinition struct {
	ID        int64     `json:"id"`
	Steps     []string  `json:"steps"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsCurrent returns true if this definition drives new applications
func (w *WorkflowDefinition) IsCurrent() bool {
	return w.Status == WorkflowStatusCurrent
}
