package entity

import "time"

// ProcessState tracks where an application sits in the approval pipeline.
// One row per application, mutated only by the transition engine.
type ProcessState struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	CurrentStep   string    `json:"current_step"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ReviewRecord is an append-only audit entry for a single transition
type ReviewRecord struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	ReviewerID    int64     `json:"reviewer_id"`
	CommitteeID   *int64    `json:"committee_id,omitempty"`
	Step          string    `json:"step"`
	Action        string    `json:"action"`
	Status        string    `json:"status"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
