// Package testutil provides in-memory repository implementations for
// service and handler tests.
package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/career-compass/internal/auth"
	"github.com/spec-kit/career-compass/internal/domain"
	"github.com/spec-kit/career-compass/internal/repository"
)

// UserRepo is an in-memory repository.UserRepository.
type UserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

// NewUserRepo builds an empty repo.
func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]*domain.User)}
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// JobRepo is an in-memory repository.JobRepository.
type JobRepo struct {
	mu   sync.Mutex
	jobs map[string]*domain.Job
}

// NewJobRepo builds an empty repo.
func NewJobRepo() *JobRepo {
	return &JobRepo{jobs: make(map[string]*domain.Job)}
}

func (r *JobRepo) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job.ID = uuid.NewString()
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	clone := *job
	r.jobs[job.ID] = &clone
	return nil
}

func (r *JobRepo) Update(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.jobs[job.ID]
	if !ok || existing.UserID != job.UserID {
		return pgx.ErrNoRows
	}
	job.UpdatedAt = time.Now()
	clone := *job
	r.jobs[job.ID] = &clone
	return nil
}

func (r *JobRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.jobs[id]
	if !ok || existing.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(r.jobs, id)
	return nil
}

func (r *JobRepo) GetByID(_ context.Context, userID, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok || job.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	clone := *job
	return &clone, nil
}

func (r *JobRepo) List(_ context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Job
	for _, job := range r.jobs {
		if job.UserID != filter.UserID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, job.Status) {
			continue
		}
		if filter.SearchTerm != nil {
			needle := strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
			if needle != "" &&
				!strings.Contains(strings.ToLower(job.Company), needle) &&
				!strings.Contains(strings.ToLower(job.Title), needle) {
				continue
			}
		}
		result = append(result, *job)
	}
	return result, nil
}

func containsStatus(statuses []domain.JobStatus, status domain.JobStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

// ResumeRepo is an in-memory repository.ResumeRepository.
type ResumeRepo struct {
	mu      sync.Mutex
	resumes map[string]*domain.Resume
}

// NewResumeRepo builds an empty repo.
func NewResumeRepo() *ResumeRepo {
	return &ResumeRepo{resumes: make(map[string]*domain.Resume)}
}

func (r *ResumeRepo) Create(_ context.Context, resume *domain.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume.ID = uuid.NewString()
	resume.CreatedAt = time.Now()
	resume.UpdatedAt = resume.CreatedAt
	clone := *resume
	r.resumes[resume.ID] = &clone
	return nil
}

func (r *ResumeRepo) Update(_ context.Context, resume *domain.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.resumes[resume.ID]
	if !ok || existing.UserID != resume.UserID {
		return pgx.ErrNoRows
	}
	resume.UpdatedAt = time.Now()
	clone := *resume
	r.resumes[resume.ID] = &clone
	return nil
}

func (r *ResumeRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.resumes[id]
	if !ok || existing.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(r.resumes, id)
	return nil
}

func (r *ResumeRepo) GetByID(_ context.Context, userID, id string) (*domain.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[id]
	if !ok || resume.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	clone := *resume
	return &clone, nil
}

func (r *ResumeRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]domain.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Resume
	for _, resume := range r.resumes {
		if resume.UserID == userID {
			result = append(result, *resume)
		}
	}
	return result, nil
}

// CoverLetterRepo is an in-memory repository.CoverLetterRepository.
type CoverLetterRepo struct {
	mu      sync.Mutex
	letters map[string]*domain.CoverLetter
}

// NewCoverLetterRepo builds an empty repo.
func NewCoverLetterRepo() *CoverLetterRepo {
	return &CoverLetterRepo{letters: make(map[string]*domain.CoverLetter)}
}

func (r *CoverLetterRepo) Create(_ context.Context, letter *domain.CoverLetter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	letter.ID = uuid.NewString()
	letter.CreatedAt = time.Now()
	letter.UpdatedAt = letter.CreatedAt
	clone := *letter
	r.letters[letter.ID] = &clone
	return nil
}

func (r *CoverLetterRepo) Update(_ context.Context, letter *domain.CoverLetter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.letters[letter.ID]
	if !ok || existing.UserID != letter.UserID {
		return pgx.ErrNoRows
	}
	letter.UpdatedAt = time.Now()
	clone := *letter
	r.letters[letter.ID] = &clone
	return nil
}

func (r *CoverLetterRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.letters[id]
	if !ok || existing.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(r.letters, id)
	return nil
}

func (r *CoverLetterRepo) GetByID(_ context.Context, userID, id string) (*domain.CoverLetter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	letter, ok := r.letters[id]
	if !ok || letter.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	clone := *letter
	return &clone, nil
}

func (r *CoverLetterRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]domain.CoverLetter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.CoverLetter
	for _, letter := range r.letters {
		if letter.UserID == userID {
			result = append(result, *letter)
		}
	}
	return result, nil
}

// Revoker is an in-memory auth.TokenRevoker honoring the same expiry
// semantics as the Redis-backed list.
type Revoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewRevoker builds an empty revocation list.
func NewRevoker() *Revoker {
	return &Revoker{revoked: make(map[string]time.Time)}
}

func (r *Revoker) Revoke(_ context.Context, tokenID string, expiresAtUnix int64) error {
	if tokenID == "" {
		return nil
	}
	expiry := time.Unix(expiresAtUnix, 0)
	if !expiry.After(time.Now()) {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[tokenID] = expiry
	return nil
}

func (r *Revoker) IsRevoked(_ context.Context, tokenID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	expiry, ok := r.revoked[tokenID]
	if !ok {
		return false
	}
	if !expiry.After(time.Now()) {
		delete(r.revoked, tokenID)
		return false
	}
	return true
}

var (
	_ repository.UserRepository        = (*UserRepo)(nil)
	_ repository.JobRepository         = (*JobRepo)(nil)
	_ repository.ResumeRepository      = (*ResumeRepo)(nil)
	_ repository.CoverLetterRepository = (*CoverLetterRepo)(nil)
	_ auth.TokenRevoker                = (*Revoker)(nil)
)
