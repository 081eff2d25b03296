package postgres

import (
	"context"
	"errors"

	"go-careermatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type candidateRepo struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

func (r *candidateRepo) Create(ctx context.Context, candidate *domain.Candidate) error {
	query := `INSERT INTO candidates (user_id, date_of_birth, gender, skills, summary, photo_path, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRow(ctx, query,
		candidate.UserID, candidate.DateOfBirth, candidate.Gender, pq.Array(candidate.Skills),
		candidate.Summary, candidate.PhotoPath, candidate.CreatedAt, candidate.UpdatedAt,
	).Scan(&candidate.ID)
}

func (r *candidateRepo) GetByUserID(ctx context.Context, userID string) (*domain.Candidate, error) {
	query := `SELECT id, user_id, date_of_birth, gender, skills, summary, photo_path, created_at, updated_at
	          FROM candidates WHERE user_id = $1`
	var c domain.Candidate
	var skills []string
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&c.ID, &c.UserID, &c.DateOfBirth, &c.Gender, pq.Array(&skills),
		&c.Summary, &c.PhotoPath, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	c.Skills = skills
	return &c, nil
}

func (r *candidateRepo) Update(ctx context.Context, candidate *domain.Candidate) error {
	query := `UPDATE candidates SET date_of_birth = $2, gender = $3, skills = $4, summary = $5, updated_at = $6
	          WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, query,
		candidate.UserID, candidate.DateOfBirth, candidate.Gender, pq.Array(candidate.Skills),
		candidate.Summary, candidate.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *candidateRepo) UpdatePhotoPath(ctx context.Context, userID, photoPath string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE candidates SET photo_path = $2, updated_at = now() WHERE user_id = $1`,
		userID, photoPath,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
