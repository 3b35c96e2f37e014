package model

import (
	"strings"
	"time"
)

// JobListing is a published opening shown on the public careers page.
type JobListing struct {
	ID          string    `json:"id"          db:"id"`
	Title       string    `json:"title"       db:"title"`
	Department  string    `json:"department"  db:"department"`
	Location    string    `json:"location"    db:"location"`
	Type        string    `json:"type"        db:"type"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
}

// CreateJobListingRequest carries a new opening from the admin job manager.
type CreateJobListingRequest struct {
	Title       string `json:"title"`
	Department  string `json:"department"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Validate requires every field before a listing is published.
func (r *CreateJobListingRequest) Validate() error {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", r.Title},
		{"department", r.Department},
		{"location", r.Location},
		{"type", r.Type},
		{"description", r.Description},
	} {
		if strings.TrimSpace(f.value) == "" {
			return requiredFieldError(f.name)
		}
	}
	return nil
}
