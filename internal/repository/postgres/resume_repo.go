package postgres

import (
	"context"
	"errors"

	"go-careermatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type resumeRepo struct {
	db *pgxpool.Pool
}

func NewResumeRepository(db *pgxpool.Pool) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

const resumeColumns = `id, candidate_id, file_name, custom_name, file_path, file_size, is_default, upload_date`

func scanResume(row pgx.Row) (*domain.Resume, error) {
	var res domain.Resume
	err := row.Scan(
		&res.ID, &res.CandidateID, &res.FileName, &res.CustomName,
		&res.FilePath, &res.FileSize, &res.IsDefault, &res.UploadDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *resumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	query := `INSERT INTO resumes (candidate_id, file_name, custom_name, file_path, file_size, is_default, upload_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`
	return r.db.QueryRow(ctx, query,
		resume.CandidateID, resume.FileName, resume.CustomName, resume.FilePath,
		resume.FileSize, resume.IsDefault, resume.UploadDate,
	).Scan(&resume.ID)
}

func (r *resumeRepo) GetByID(ctx context.Context, id int64) (*domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1`
	return scanResume(r.db.QueryRow(ctx, query, id))
}

func (r *resumeRepo) ListByCandidateID(ctx context.Context, candidateID int64) ([]domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE candidate_id = $1 ORDER BY upload_date DESC, id DESC`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resumes []domain.Resume
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, *res)
	}
	return resumes, rows.Err()
}

func (r *resumeRepo) CountByCandidateID(ctx context.Context, candidateID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM resumes WHERE candidate_id = $1`, candidateID).Scan(&count)
	return count, err
}

// SetDefault flips the default flag in one transaction so readers never
// observe two defaults for the same candidate.
func (r *resumeRepo) SetDefault(ctx context.Context, candidateID, resumeID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE resumes SET is_default = false WHERE candidate_id = $1 AND is_default`,
		candidateID,
	); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE resumes SET is_default = true WHERE id = $1 AND candidate_id = $2`,
		resumeID, candidateID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit(ctx)
}

// CreateDefault demotes the current default and inserts the new resume as
// the default in one transaction, so a failed insert cannot leave the
// candidate without a default.
func (r *resumeRepo) CreateDefault(ctx context.Context, resume *domain.Resume) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE resumes SET is_default = false WHERE candidate_id = $1 AND is_default`,
		resume.CandidateID,
	); err != nil {
		return err
	}

	query := `INSERT INTO resumes (candidate_id, file_name, custom_name, file_path, file_size, is_default, upload_date)
	          VALUES ($1, $2, $3, $4, $5, true, $6)
	          RETURNING id`
	if err := tx.QueryRow(ctx, query,
		resume.CandidateID, resume.FileName, resume.CustomName, resume.FilePath,
		resume.FileSize, resume.UploadDate,
	).Scan(&resume.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *resumeRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
