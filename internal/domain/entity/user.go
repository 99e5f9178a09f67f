package entity

import "time"

// User is an account known to the review system
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	FacultyID    *int64    `json:"faculty_id,omitempty"`
	CommitteeID  *int64    `json:"committee_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Faculty is a university faculty applications are submitted under
type Faculty struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Committee is an ethics committee attached to reviews
type Committee struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
