package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/career-compass/internal/domain"
)

// JobFilter captures list parameters. All rows are scoped to UserID.
type JobFilter struct {
	UserID     string
	Statuses   []domain.JobStatus
	SearchTerm *string
	Limit      int
	Offset     int
}

// JobRepository encapsulates job application persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, userID, id string) error
	GetByID(ctx context.Context, userID, id string) (*domain.Job, error)
	List(ctx context.Context, filter JobFilter) ([]domain.Job, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (user_id, company, title, location, url, logo_url, status, notes, applied_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		job.UserID,
		job.Company,
		job.Title,
		job.Location,
		job.URL,
		job.LogoURL,
		job.Status,
		job.Notes,
		job.AppliedAt,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	const query = `
        UPDATE jobs SET company=$1, title=$2, location=$3, url=$4, logo_url=$5,
            status=$6, notes=$7, applied_at=$8, updated_at=NOW()
        WHERE id=$9 AND user_id=$10`
	cmd, err := r.pool.Exec(ctx, query,
		job.Company,
		job.Title,
		job.Location,
		job.URL,
		job.LogoURL,
		job.Status,
		job.Notes,
		job.AppliedAt,
		job.ID,
		job.UserID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM jobs WHERE id=$1 AND user_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, userID, id string) (*domain.Job, error) {
	const query = `
        SELECT id, user_id, company, title, location, url, logo_url, status, notes,
               applied_at, created_at, updated_at
        FROM jobs WHERE id=$1 AND user_id=$2`
	var job domain.Job
	if err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&job.ID,
		&job.UserID,
		&job.Company,
		&job.Title,
		&job.Location,
		&job.URL,
		&job.LogoURL,
		&job.Status,
		&job.Notes,
		&job.AppliedAt,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]domain.Job, error) {
	base := `SELECT id, user_id, company, title, location, url, logo_url, status, notes,
                    applied_at, created_at, updated_at
             FROM jobs`
	args := []any{filter.UserID}
	clauses := []string{"user_id=$1"}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(company) LIKE %s OR LOWER(title) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func scanJobs(rows pgx.Rows) ([]domain.Job, error) {
	var result []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID,
			&job.UserID,
			&job.Company,
			&job.Title,
			&job.Location,
			&job.URL,
			&job.LogoURL,
			&job.Status,
			&job.Notes,
			&job.AppliedAt,
			&job.CreatedAt,
			&job.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, job)
	}
	return result, rows.Err()
}
