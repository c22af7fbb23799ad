package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/career-compass/internal/domain"
	"github.com/spec-kit/career-compass/internal/repository"
	apperrors "github.com/spec-kit/career-compass/pkg/util"
)

// JobCreateInput carries fields for a new tracked job.
type JobCreateInput struct {
	Company  string
	Title    string
	Location *string
	URL      *string
	LogoURL  *string
	Status   domain.JobStatus
	Notes    *string
}

// JobUpdateInput carries fields for updating a job. Nil means unchanged.
type JobUpdateInput struct {
	Company  *string
	Title    *string
	Location *string
	URL      *string
	LogoURL  *string
	Status   *domain.JobStatus
	Notes    *string
}

// JobService owns the job application pipeline. Every operation is scoped
// to the calling user; foreign rows are indistinguishable from missing ones.
type JobService struct {
	jobs repository.JobRepository
}

// NewJobService builds the service.
func NewJobService(jobs repository.JobRepository) *JobService {
	return &JobService{jobs: jobs}
}

// Create stores a new job for the user, deriving a logo URL when absent.
func (s *JobService) Create(ctx context.Context, userID string, input JobCreateInput) (*domain.Job, error) {
	status := input.Status
	if status == "" {
		status = domain.JobStatusSaved
	}
	if !domain.ValidJobStatus(status) {
		return nil, apperrors.NewValidationError("unknown job status")
	}

	logoURL := input.LogoURL
	if logoURL == nil || *logoURL == "" {
		if derived := DeriveLogoURL(input.Company, input.URL); derived != "" {
			logoURL = &derived
		}
	}

	job := &domain.Job{
		UserID:   userID,
		Company:  input.Company,
		Title:    input.Title,
		Location: input.Location,
		URL:      input.URL,
		LogoURL:  logoURL,
		Status:   status,
		Notes:    input.Notes,
	}
	if status != domain.JobStatusSaved {
		now := time.Now()
		job.AppliedAt = &now
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Get returns the user's job or NotFound.
func (s *JobService) Get(ctx context.Context, userID, id string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job")
		}
		return nil, err
	}
	return job, nil
}

// List returns the user's jobs with optional status and search filters.
func (s *JobService) List(ctx context.Context, userID string, statuses []domain.JobStatus, search *string, limit, offset int) ([]domain.Job, error) {
	for _, status := range statuses {
		if !domain.ValidJobStatus(status) {
			return nil, apperrors.NewValidationError("unknown job status")
		}
	}
	return s.jobs.List(ctx, repository.JobFilter{
		UserID:     userID,
		Statuses:   statuses,
		SearchTerm: search,
		Limit:      limit,
		Offset:     offset,
	})
}

// Update applies partial changes, stamping applied_at on the first move out
// of SAVED.
func (s *JobService) Update(ctx context.Context, userID, id string, input JobUpdateInput) (*domain.Job, error) {
	job, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Company != nil {
		job.Company = *input.Company
	}
	if input.Title != nil {
		job.Title = *input.Title
	}
	if input.Location != nil {
		job.Location = input.Location
	}
	if input.URL != nil {
		job.URL = input.URL
	}
	if input.LogoURL != nil {
		job.LogoURL = input.LogoURL
	}
	if input.Notes != nil {
		job.Notes = input.Notes
	}
	if input.Status != nil {
		if !domain.ValidJobStatus(*input.Status) {
			return nil, apperrors.NewValidationError("unknown job status")
		}
		if job.Status == domain.JobStatusSaved && *input.Status != domain.JobStatusSaved && job.AppliedAt == nil {
			now := time.Now()
			job.AppliedAt = &now
		}
		job.Status = *input.Status
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job")
		}
		return nil, err
	}
	return job, nil
}

// Delete removes the user's job or reports NotFound.
func (s *JobService) Delete(ctx context.Context, userID, id string) error {
	if err := s.jobs.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("job")
		}
		return err
	}
	return nil
}
