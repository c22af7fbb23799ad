package dto

import (
	"time"

	"github.com/spec-kit/career-compass/internal/domain"
)

// CreateJobRequest payload for a new tracked job.
type CreateJobRequest struct {
	Company  string  `json:"company" validate:"required,max=200"`
	Title    string  `json:"title" validate:"required,max=200"`
	Location *string `json:"location"`
	URL      *string `json:"url"`
	LogoURL  *string `json:"logo_url"`
	Status   string  `json:"status" validate:"omitempty,oneof=SAVED APPLIED INTERVIEWING OFFER REJECTED"`
	Notes    *string `json:"notes"`
}

// UpdateJobRequest payload for partial job updates.
type UpdateJobRequest struct {
	Company  *string `json:"company" validate:"omitempty,max=200"`
	Title    *string `json:"title" validate:"omitempty,max=200"`
	Location *string `json:"location"`
	URL      *string `json:"url"`
	LogoURL  *string `json:"logo_url"`
	Status   *string `json:"status" validate:"omitempty,oneof=SAVED APPLIED INTERVIEWING OFFER REJECTED"`
	Notes    *string `json:"notes"`
}

// JobResponse is the public job shape.
type JobResponse struct {
	ID        string     `json:"id"`
	Company   string     `json:"company"`
	Title     string     `json:"title"`
	Location  *string    `json:"location,omitempty"`
	URL       *string    `json:"url,omitempty"`
	LogoURL   *string    `json:"logo_url,omitempty"`
	Status    string     `json:"status"`
	Notes     *string    `json:"notes,omitempty"`
	AppliedAt *time.Time `json:"applied_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// JobFromDomain maps a domain job onto its response shape.
func JobFromDomain(job *domain.Job) JobResponse {
	return JobResponse{
		ID:        job.ID,
		Company:   job.Company,
		Title:     job.Title,
		Location:  job.Location,
		URL:       job.URL,
		LogoURL:   job.LogoURL,
		Status:    string(job.Status),
		Notes:     job.Notes,
		AppliedAt: job.AppliedAt,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
}
