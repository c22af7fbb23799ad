package domain

import "time"

// DocumentSource distinguishes hand-written documents from AI drafts.
type DocumentSource string

const (
	SourceManual    DocumentSource = "manual"
	SourceGenerated DocumentSource = "generated"
)

// Resume is a stored resume document.
type Resume struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Source    DocumentSource
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CoverLetter is a stored cover letter, optionally tied to a tracked job.
type CoverLetter struct {
	ID        string
	UserID    string
	JobID     *string
	Title     string
	Content   string
	Source    DocumentSource
	CreatedAt time.Time
	UpdatedAt time.Time
}
