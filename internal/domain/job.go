package domain

import (
	"context"
	"time"
)

type Job struct {
	ID             int64     `json:"id"`
	EmployerID     int64     `json:"employer_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	RequiredSkills string    `json:"required_skills"`
	JobType        string    `json:"job_type"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	ZipCode        string    `json:"zip_code"`
	Country        string    `json:"country"`
	BillRate       *float64  `json:"bill_rate,omitempty"`
	DurationMonths *int      `json:"duration_months,omitempty"`
	PostedBy       *string   `json:"posted_by,omitempty"`
	PostedDate     time.Time `json:"posted_date"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// JobWithEmployer is a job joined with the employer attribution fields used
// in listings and exports.
type JobWithEmployer struct {
	Job
	EmployerNumber   string `json:"employer_number"`
	OrganizationName string `json:"organization_name"`
}

// JobStats is the admin dashboard aggregate.
type JobStats struct {
	TotalJobs       int64 `json:"total_jobs"`
	ActiveJobs      int64 `json:"active_jobs"`
	TotalUsers      int64 `json:"total_users"`
	TotalRecruiters int64 `json:"total_recruiters"`
	TotalCandidates int64 `json:"total_candidates"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*JobWithEmployer, error)
	// FetchActive lists active jobs, newest first.
	FetchActive(ctx context.Context, limit, offset int) ([]JobWithEmployer, int64, error)
	FetchByEmployerID(ctx context.Context, employerID int64, limit, offset int) ([]JobWithEmployer, int64, error)
	// FetchAll returns every job regardless of status, for exports.
	FetchAll(ctx context.Context) ([]JobWithEmployer, error)
	Update(ctx context.Context, job *Job) error
	Deactivate(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*JobStats, error)
}

type JobUsecase interface {
	PostJob(ctx context.Context, userID string, job *Job) error
	GetJob(ctx context.Context, id int64) (*JobWithEmployer, error)
	ListJobs(ctx context.Context, page, pageSize int) ([]JobWithEmployer, int64, error)
	ListJobsByRecruiter(ctx context.Context, userID string, page, pageSize int) ([]JobWithEmployer, int64, error)
	UpdateJob(ctx context.Context, userID string, job *Job) error
	DeactivateJob(ctx context.Context, userID string, id int64) error
}
