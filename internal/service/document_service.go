package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/career-compass/internal/domain"
	"github.com/spec-kit/career-compass/internal/repository"
	apperrors "github.com/spec-kit/career-compass/pkg/util"
)

// DocumentService owns resume and cover letter CRUD, scoped per user.
type DocumentService struct {
	resumes repository.ResumeRepository
	letters repository.CoverLetterRepository
	jobs    repository.JobRepository
}

// NewDocumentService builds the service.
func NewDocumentService(resumes repository.ResumeRepository, letters repository.CoverLetterRepository, jobs repository.JobRepository) *DocumentService {
	return &DocumentService{resumes: resumes, letters: letters, jobs: jobs}
}

// CreateResume stores a resume for the user.
func (s *DocumentService) CreateResume(ctx context.Context, userID, title, content string, source domain.DocumentSource) (*domain.Resume, error) {
	if source == "" {
		source = domain.SourceManual
	}
	resume := &domain.Resume{
		UserID:  userID,
		Title:   title,
		Content: content,
		Source:  source,
	}
	if err := s.resumes.Create(ctx, resume); err != nil {
		return nil, err
	}
	return resume, nil
}

// GetResume returns the user's resume or NotFound.
func (s *DocumentService) GetResume(ctx context.Context, userID, id string) (*domain.Resume, error) {
	resume, err := s.resumes.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("resume")
		}
		return nil, err
	}
	return resume, nil
}

// ListResumes returns the user's resumes.
func (s *DocumentService) ListResumes(ctx context.Context, userID string, limit, offset int) ([]domain.Resume, error) {
	return s.resumes.ListByUser(ctx, userID, limit, offset)
}

// UpdateResume applies title/content changes.
func (s *DocumentService) UpdateResume(ctx context.Context, userID, id string, title, content *string) (*domain.Resume, error) {
	resume, err := s.GetResume(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if title != nil {
		resume.Title = *title
	}
	if content != nil {
		resume.Content = *content
	}
	if err := s.resumes.Update(ctx, resume); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("resume")
		}
		return nil, err
	}
	return resume, nil
}

// DeleteResume removes the user's resume.
func (s *DocumentService) DeleteResume(ctx context.Context, userID, id string) error {
	if err := s.resumes.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("resume")
		}
		return err
	}
	return nil
}

// CreateCoverLetter stores a cover letter, checking job ownership when a
// job reference is supplied.
func (s *DocumentService) CreateCoverLetter(ctx context.Context, userID string, jobID *string, title, content string, source domain.DocumentSource) (*domain.CoverLetter, error) {
	if source == "" {
		source = domain.SourceManual
	}
	if jobID != nil && *jobID != "" {
		if _, err := s.jobs.GetByID(ctx, userID, *jobID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("job")
			}
			return nil, err
		}
	}

	letter := &domain.CoverLetter{
		UserID:  userID,
		JobID:   jobID,
		Title:   title,
		Content: content,
		Source:  source,
	}
	if err := s.letters.Create(ctx, letter); err != nil {
		return nil, err
	}
	return letter, nil
}

// GetCoverLetter returns the user's cover letter or NotFound.
func (s *DocumentService) GetCoverLetter(ctx context.Context, userID, id string) (*domain.CoverLetter, error) {
	letter, err := s.letters.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("cover letter")
		}
		return nil, err
	}
	return letter, nil
}

// ListCoverLetters returns the user's cover letters.
func (s *DocumentService) ListCoverLetters(ctx context.Context, userID string, limit, offset int) ([]domain.CoverLetter, error) {
	return s.letters.ListByUser(ctx, userID, limit, offset)
}

// UpdateCoverLetter applies changes to the user's cover letter.
func (s *DocumentService) UpdateCoverLetter(ctx context.Context, userID, id string, title, content *string) (*domain.CoverLetter, error) {
	letter, err := s.GetCoverLetter(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if title != nil {
		letter.Title = *title
	}
	if content != nil {
		letter.Content = *content
	}
	if err := s.letters.Update(ctx, letter); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("cover letter")
		}
		return nil, err
	}
	return letter, nil
}

// DeleteCoverLetter removes the user's cover letter.
func (s *DocumentService) DeleteCoverLetter(ctx context.Context, userID, id string) error {
	if err := s.letters.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("cover letter")
		}
		return err
	}
	return nil
}
