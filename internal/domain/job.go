package domain

import "time"

// JobStatus enumerates the application pipeline.
type JobStatus string

const (
	JobStatusSaved        JobStatus = "SAVED"
	JobStatusApplied      JobStatus = "APPLIED"
	JobStatusInterviewing JobStatus = "INTERVIEWING"
	JobStatusOffer        JobStatus = "OFFER"
	JobStatusRejected     JobStatus = "REJECTED"
)

// ValidJobStatus reports whether the status is a known pipeline stage.
func ValidJobStatus(s JobStatus) bool {
	switch s {
	case JobStatusSaved, JobStatusApplied, JobStatusInterviewing, JobStatusOffer, JobStatusRejected:
		return true
	}
	return false
}

// Job is the aggregate for a tracked job application.
type Job struct {
	ID        string
	UserID    string
	Company   string
	Title     string
	Location  *string
	URL       *string
	LogoURL   *string
	Status    JobStatus
	Notes     *string
	AppliedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
