package entity

import "time"

// Application represents an ethics application submitted for review
type Application struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ResearcherID int64     `json:"researcher_id"`
	FacultyID    int64     `json:"faculty_id"`
	CommitteeID  *int64    `json:"committee_id,omitempty"`
	Status       string    `json:"status"`
	IsArchived   bool      `json:"is_archived"`
	SubmittedAt  time.Time `json:"submitted_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ApplicationSummary is the joined projection used by review dashboards
type ApplicationSummary struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Status         string    `json:"status"`
	IsArchived     bool      `json:"is_archived"`
	ResearcherName string    `json:"researcher_name"`
	FacultyName    string    `json:"faculty_name"`
	CurrentStep    string    `json:"current_step"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// Document is a stored reference to a supporting document. The binary itself
// lives outside this system; only the names and an optional URL are kept.
type Document struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	FileName      string    `json:"file_name"`
	StoredName    string    `json:"stored_name"`
	URL           string    `json:"url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
