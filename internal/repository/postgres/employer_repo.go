package postgres

import (
	"context"
	"errors"
	"strings"

	"go-careermatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type employerRepo struct {
	db *pgxpool.Pool
}

func NewEmployerRepository(db *pgxpool.Pool) domain.EmployerRepository {
	return &employerRepo{db: db}
}

func (r *employerRepo) Create(ctx context.Context, employer *domain.Employer) error {
	query := `INSERT INTO employers (employer_number, user_id, hr_name, hr_email, organization_name,
	          end_client, vendor_name, industry, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		employer.EmployerNumber, employer.UserID, employer.HRName, employer.HREmail,
		employer.OrganizationName, employer.EndClient, employer.VendorName, employer.Industry,
		employer.CreatedAt, employer.UpdatedAt,
	).Scan(&employer.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "employer_number") {
				return domain.ErrDuplicateEmployerNumber
			}
			return domain.ErrDuplicateUserID
		}
		return err
	}
	return nil
}

func (r *employerRepo) GetByUserID(ctx context.Context, userID string) (*domain.Employer, error) {
	query := `SELECT id, employer_number, user_id, hr_name, hr_email, organization_name,
	          end_client, vendor_name, industry, created_at, updated_at
	          FROM employers WHERE user_id = $1`
	var e domain.Employer
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&e.ID, &e.EmployerNumber, &e.UserID, &e.HRName, &e.HREmail, &e.OrganizationName,
		&e.EndClient, &e.VendorName, &e.Industry, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *employerRepo) MaxEmployerNumber(ctx context.Context) (int, bool, error) {
	var max *int
	// employer_number is stored zero-padded, so a numeric cast gives the
	// current allocation high-water mark.
	err := r.db.QueryRow(ctx, `SELECT MAX(employer_number::int) FROM employers`).Scan(&max)
	if err != nil {
		return 0, false, err
	}
	if max == nil {
		return 0, false, nil
	}
	return *max, true, nil
}
