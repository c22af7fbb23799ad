package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/career-compass/internal/domain"
)

// CoverLetterRepository encapsulates cover letter persistence.
type CoverLetterRepository interface {
	Create(ctx context.Context, letter *domain.CoverLetter) error
	Update(ctx context.Context, letter *domain.CoverLetter) error
	Delete(ctx context.Context, userID, id string) error
	GetByID(ctx context.Context, userID, id string) (*domain.CoverLetter, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.CoverLetter, error)
}

type coverLetterRepository struct {
	pool *pgxpool.Pool
}

// NewCoverLetterRepository instantiates repository.
func NewCoverLetterRepository(pool *pgxpool.Pool) CoverLetterRepository {
	return &coverLetterRepository{pool: pool}
}

func (r *coverLetterRepository) Create(ctx context.Context, letter *domain.CoverLetter) error {
	const query = `
        INSERT INTO cover_letters (user_id, job_id, title, content, source)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		letter.UserID,
		letter.JobID,
		letter.Title,
		letter.Content,
		letter.Source,
	).Scan(&letter.ID, &letter.CreatedAt, &letter.UpdatedAt)
}

func (r *coverLetterRepository) Update(ctx context.Context, letter *domain.CoverLetter) error {
	const query = `
        UPDATE cover_letters SET job_id=$1, title=$2, content=$3, updated_at=NOW()
        WHERE id=$4 AND user_id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		letter.JobID,
		letter.Title,
		letter.Content,
		letter.ID,
		letter.UserID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *coverLetterRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM cover_letters WHERE id=$1 AND user_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *coverLetterRepository) GetByID(ctx context.Context, userID, id string) (*domain.CoverLetter, error) {
	const query = `
        SELECT id, user_id, job_id, title, content, source, created_at, updated_at
        FROM cover_letters WHERE id=$1 AND user_id=$2`
	var letter domain.CoverLetter
	if err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&letter.ID,
		&letter.UserID,
		&letter.JobID,
		&letter.Title,
		&letter.Content,
		&letter.Source,
		&letter.CreatedAt,
		&letter.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &letter, nil
}

func (r *coverLetterRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.CoverLetter, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, user_id, job_id, title, content, source, created_at, updated_at
        FROM cover_letters WHERE user_id=$1
        ORDER BY updated_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CoverLetter
	for rows.Next() {
		var letter domain.CoverLetter
		if err := rows.Scan(
			&letter.ID,
			&letter.UserID,
			&letter.JobID,
			&letter.Title,
			&letter.Content,
			&letter.Source,
			&letter.CreatedAt,
			&letter.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, letter)
	}
	return result, rows.Err()
}
