package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/career-compass/internal/ai"
	"github.com/spec-kit/career-compass/internal/domain"
	apperrors "github.com/spec-kit/career-compass/pkg/util"
)

// Generator is the slice of the AI client the service needs; tests swap in
// a fake.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ResumeDraftInput describes the profile the resume is drafted from.
type ResumeDraftInput struct {
	DisplayName string
	TargetRole  string
	Experience  string
	Skills      []string
}

// CoverLetterDraftInput describes the job the letter targets. ResumeID is
// optional context pulled from the user's stored resumes.
type CoverLetterDraftInput struct {
	JobID    *string
	ResumeID *string
	Company  string
	Title    string
	Notes    string
}

// AIService turns profile and job context into prompts, calls the model,
// and persists the returned draft.
type AIService struct {
	generator Generator
	documents *DocumentService
	jobs      *JobService
	logger    *zap.Logger
}

// NewAIService builds the service.
func NewAIService(generator Generator, documents *DocumentService, jobs *JobService, logger *zap.Logger) *AIService {
	return &AIService{generator: generator, documents: documents, jobs: jobs, logger: logger}
}

// DraftResume generates and stores a resume draft for the user.
func (s *AIService) DraftResume(ctx context.Context, userID string, input ResumeDraftInput) (*domain.Resume, error) {
	prompt := buildResumePrompt(input)

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("resume generation failed", zap.Error(err))
		return nil, apperrors.NewUpstreamError("resume generation failed", err)
	}

	title := fmt.Sprintf("Resume draft: %s", input.TargetRole)
	return s.documents.CreateResume(ctx, userID, title, text, domain.SourceGenerated)
}

// DraftCoverLetter generates and stores a cover letter draft, optionally
// grounded on one of the user's resumes and tied to a tracked job.
func (s *AIService) DraftCoverLetter(ctx context.Context, userID string, input CoverLetterDraftInput) (*domain.CoverLetter, error) {
	company := input.Company
	title := input.Title
	if input.JobID != nil && *input.JobID != "" {
		job, err := s.jobs.Get(ctx, userID, *input.JobID)
		if err != nil {
			return nil, err
		}
		company = job.Company
		title = job.Title
	}

	resumeContext := ""
	if input.ResumeID != nil && *input.ResumeID != "" {
		resume, err := s.documents.GetResume(ctx, userID, *input.ResumeID)
		if err != nil {
			return nil, err
		}
		resumeContext = resume.Content
	}

	prompt := buildCoverLetterPrompt(company, title, input.Notes, resumeContext)

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("cover letter generation failed", zap.Error(err))
		return nil, apperrors.NewUpstreamError("cover letter generation failed", err)
	}

	letterTitle := fmt.Sprintf("Cover letter: %s at %s", title, company)
	return s.documents.CreateCoverLetter(ctx, userID, input.JobID, letterTitle, text, domain.SourceGenerated)
}

func buildResumePrompt(input ResumeDraftInput) string {
	var sb strings.Builder
	sb.WriteString("Write a professional resume in markdown.\n")
	fmt.Fprintf(&sb, "Candidate: %s\n", input.DisplayName)
	fmt.Fprintf(&sb, "Target role: %s\n", input.TargetRole)
	if input.Experience != "" {
		fmt.Fprintf(&sb, "Experience summary:\n%s\n", input.Experience)
	}
	if len(input.Skills) > 0 {
		fmt.Fprintf(&sb, "Key skills: %s\n", strings.Join(input.Skills, ", "))
	}
	sb.WriteString("Use concise bullet points and measurable achievements. Do not invent employers or dates.")
	return sb.String()
}

func buildCoverLetterPrompt(company, title, notes, resumeContext string) string {
	var sb strings.Builder
	sb.WriteString("Write a tailored cover letter.\n")
	fmt.Fprintf(&sb, "Company: %s\n", company)
	fmt.Fprintf(&sb, "Role: %s\n", title)
	if notes != "" {
		fmt.Fprintf(&sb, "Additional context: %s\n", notes)
	}
	if resumeContext != "" {
		fmt.Fprintf(&sb, "Candidate resume:\n%s\n", resumeContext)
	}
	sb.WriteString("Keep it under four paragraphs, specific to the role, without placeholder brackets.")
	return sb.String()
}

var _ Generator = (*ai.Client)(nil)
