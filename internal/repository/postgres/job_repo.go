package postgres

import (
	"context"
	"errors"

	"go-careermatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (employer_id, title, description, required_skills, job_type,
	          city, state, zip_code, country, bill_rate, duration_months, posted_by, posted_date,
	          is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	          RETURNING id`
	return r.db.QueryRow(ctx, query,
		job.EmployerID, job.Title, job.Description, job.RequiredSkills, job.JobType,
		job.City, job.State, job.ZipCode, job.Country, job.BillRate, job.DurationMonths,
		job.PostedBy, job.PostedDate, job.IsActive, job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

const jobWithEmployerSelect = `
	SELECT j.id, j.employer_id, j.title, j.description, j.required_skills, j.job_type,
	       j.city, j.state, j.zip_code, j.country, j.bill_rate, j.duration_months,
	       j.posted_by, j.posted_date, j.is_active, j.created_at, j.updated_at,
	       e.employer_number, e.organization_name
	FROM jobs j
	JOIN employers e ON j.employer_id = e.id`

func scanJobWithEmployer(row pgx.Row) (*domain.JobWithEmployer, error) {
	var j domain.JobWithEmployer
	err := row.Scan(
		&j.ID, &j.EmployerID, &j.Title, &j.Description, &j.RequiredSkills, &j.JobType,
		&j.City, &j.State, &j.ZipCode, &j.Country, &j.BillRate, &j.DurationMonths,
		&j.PostedBy, &j.PostedDate, &j.IsActive, &j.CreatedAt, &j.UpdatedAt,
		&j.EmployerNumber, &j.OrganizationName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.JobWithEmployer, error) {
	return scanJobWithEmployer(r.db.QueryRow(ctx, jobWithEmployerSelect+` WHERE j.id = $1`, id))
}

func (r *jobRepo) FetchActive(ctx context.Context, limit, offset int) ([]domain.JobWithEmployer, int64, error) {
	query := jobWithEmployerSelect + ` WHERE j.is_active ORDER BY j.posted_date DESC, j.id DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE is_active`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) FetchByEmployerID(ctx context.Context, employerID int64, limit, offset int) ([]domain.JobWithEmployer, int64, error) {
	query := jobWithEmployerSelect + ` WHERE j.employer_id = $1 ORDER BY j.posted_date DESC, j.id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, employerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE employer_id = $1`, employerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) FetchAll(ctx context.Context) ([]domain.JobWithEmployer, error) {
	rows, err := r.db.Query(ctx, jobWithEmployerSelect+` ORDER BY j.posted_date DESC, j.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func collectJobs(rows pgx.Rows) ([]domain.JobWithEmployer, error) {
	var jobs []domain.JobWithEmployer
	for rows.Next() {
		j, err := scanJobWithEmployer(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET title = $2, description = $3, required_skills = $4, job_type = $5,
	          city = $6, state = $7, zip_code = $8, country = $9, bill_rate = $10,
	          duration_months = $11, updated_at = $12
	          WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.RequiredSkills, job.JobType,
		job.City, job.State, job.ZipCode, job.Country, job.BillRate,
		job.DurationMonths, job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE jobs SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Stats(ctx context.Context) (*domain.JobStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM jobs),
			(SELECT COUNT(*) FROM jobs WHERE is_active),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE role = 'recruiter'),
			(SELECT COUNT(*) FROM users WHERE role = 'candidate')`
	var s domain.JobStats
	err := r.db.QueryRow(ctx, query).Scan(
		&s.TotalJobs, &s.ActiveJobs, &s.TotalUsers, &s.TotalRecruiters, &s.TotalCandidates,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
