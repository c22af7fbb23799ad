package dto

import (
	"time"

	"github.com/spec-kit/career-compass/internal/domain"
)

// CreateResumeRequest payload for a new resume.
type CreateResumeRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// UpdateResumeRequest payload for partial resume updates.
type UpdateResumeRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content"`
}

// ResumeResponse is the public resume shape.
type ResumeResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResumeFromDomain maps a domain resume onto its response shape.
func ResumeFromDomain(resume *domain.Resume) ResumeResponse {
	return ResumeResponse{
		ID:        resume.ID,
		Title:     resume.Title,
		Content:   resume.Content,
		Source:    string(resume.Source),
		CreatedAt: resume.CreatedAt,
		UpdatedAt: resume.UpdatedAt,
	}
}

// CreateCoverLetterRequest payload for a new cover letter.
type CreateCoverLetterRequest struct {
	JobID   *string `json:"job_id"`
	Title   string  `json:"title" validate:"required,max=200"`
	Content string  `json:"content" validate:"required"`
}

// UpdateCoverLetterRequest payload for partial cover letter updates.
type UpdateCoverLetterRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content"`
}

// CoverLetterResponse is the public cover letter shape.
type CoverLetterResponse struct {
	ID        string    `json:"id"`
	JobID     *string   `json:"job_id,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CoverLetterFromDomain maps a domain cover letter onto its response shape.
func CoverLetterFromDomain(letter *domain.CoverLetter) CoverLetterResponse {
	return CoverLetterResponse{
		ID:        letter.ID,
		JobID:     letter.JobID,
		Title:     letter.Title,
		Content:   letter.Content,
		Source:    string(letter.Source),
		CreatedAt: letter.CreatedAt,
		UpdatedAt: letter.UpdatedAt,
	}
}
