package dto

// DraftResumeRequest asks the model for a resume draft.
type DraftResumeRequest struct {
	TargetRole string   `json:"target_role" validate:"required,max=200"`
	Experience string   `json:"experience"`
	Skills     []string `json:"skills"`
}

// DraftCoverLetterRequest asks the model for a cover letter draft. Either a
// tracked job reference or an inline company/title pair must be given.
type DraftCoverLetterRequest struct {
	JobID    *string `json:"job_id"`
	ResumeID *string `json:"resume_id"`
	Company  string  `json:"company"`
	Title    string  `json:"title"`
	Notes    string  `json:"notes"`
}
