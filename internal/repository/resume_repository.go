package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/career-compass/internal/domain"
)

// ResumeRepository encapsulates resume persistence.
type ResumeRepository interface {
	Create(ctx context.Context, resume *domain.Resume) error
	Update(ctx context.Context, resume *domain.Resume) error
	Delete(ctx context.Context, userID, id string) error
	GetByID(ctx context.Context, userID, id string) (*domain.Resume, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Resume, error)
}

type resumeRepository struct {
	pool *pgxpool.Pool
}

// NewResumeRepository instantiates repository.
func NewResumeRepository(pool *pgxpool.Pool) ResumeRepository {
	return &resumeRepository{pool: pool}
}

func (r *resumeRepository) Create(ctx context.Context, resume *domain.Resume) error {
	const query = `
        INSERT INTO resumes (user_id, title, content, source)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		resume.UserID,
		resume.Title,
		resume.Content,
		resume.Source,
	).Scan(&resume.ID, &resume.CreatedAt, &resume.UpdatedAt)
}

func (r *resumeRepository) Update(ctx context.Context, resume *domain.Resume) error {
	const query = `
        UPDATE resumes SET title=$1, content=$2, updated_at=NOW()
        WHERE id=$3 AND user_id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		resume.Title,
		resume.Content,
		resume.ID,
		resume.UserID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *resumeRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM resumes WHERE id=$1 AND user_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *resumeRepository) GetByID(ctx context.Context, userID, id string) (*domain.Resume, error) {
	const query = `
        SELECT id, user_id, title, content, source, created_at, updated_at
        FROM resumes WHERE id=$1 AND user_id=$2`
	var resume domain.Resume
	if err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Title,
		&resume.Content,
		&resume.Source,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &resume, nil
}

func (r *resumeRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Resume, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, user_id, title, content, source, created_at, updated_at
        FROM resumes WHERE user_id=$1
        ORDER BY updated_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Resume
	for rows.Next() {
		var resume domain.Resume
		if err := rows.Scan(
			&resume.ID,
			&resume.UserID,
			&resume.Title,
			&resume.Content,
			&resume.Source,
			&resume.CreatedAt,
			&resume.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, resume)
	}
	return result, rows.Err()
}
