package usecase

import (
	"context"
	"errors"
	"time"

	"go-careermatch-backend/internal/domain"
	"go-careermatch-backend/pkg/apperror"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type jobUsecase struct {
	userRepo     domain.UserRepository
	employerRepo domain.EmployerRepository
	jobRepo      domain.JobRepository
}

func NewJobUsecase(
	userRepo domain.UserRepository,
	employerRepo domain.EmployerRepository,
	jobRepo domain.JobRepository,
) domain.JobUsecase {
	return &jobUsecase{
		userRepo:     userRepo,
		employerRepo: employerRepo,
		jobRepo:      jobRepo,
	}
}

// employerFor resolves the employer record behind a recruiter account,
// enforcing role and profile completion on the way.
func (u *jobUsecase) employerFor(ctx context.Context, userID string) (*domain.Employer, error) {
	user, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	if user.Role != domain.RoleRecruiter {
		return nil, apperror.Forbidden("Only recruiters can manage jobs")
	}
	if !user.ProfileCompleted {
		return nil, apperror.Forbidden("Complete your employer profile before posting jobs")
	}

	employer, err := u.employerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Forbidden("Complete your employer profile before posting jobs")
		}
		return nil, err
	}
	return employer, nil
}

func (u *jobUsecase) PostJob(ctx context.Context, userID string, job *domain.Job) error {
	employer, err := u.employerFor(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	job.EmployerID = employer.ID
	job.PostedBy = &userID
	job.PostedDate = now
	job.IsActive = true
	job.CreatedAt = now
	job.UpdatedAt = now
	return u.jobRepo.Create(ctx, job)
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.JobWithEmployer, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, err
	}
	return job, nil
}

func clampPage(page, pageSize int) (limit, offset int) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}

func (u *jobUsecase) ListJobs(ctx context.Context, page, pageSize int) ([]domain.JobWithEmployer, int64, error) {
	limit, offset := clampPage(page, pageSize)
	return u.jobRepo.FetchActive(ctx, limit, offset)
}

func (u *jobUsecase) ListJobsByRecruiter(ctx context.Context, userID string, page, pageSize int) ([]domain.JobWithEmployer, int64, error) {
	employer, err := u.employerFor(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	limit, offset := clampPage(page, pageSize)
	return u.jobRepo.FetchByEmployerID(ctx, employer.ID, limit, offset)
}

// ownedJob loads a job and checks it belongs to the recruiter's employer.
func (u *jobUsecase) ownedJob(ctx context.Context, userID string, jobID int64) (*domain.JobWithEmployer, error) {
	employer, err := u.employerFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, err
	}
	if job.EmployerID != employer.ID {
		return nil, apperror.Forbidden("Job belongs to another employer")
	}
	return job, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, userID string, job *domain.Job) error {
	existing, err := u.ownedJob(ctx, userID, job.ID)
	if err != nil {
		return err
	}
	job.EmployerID = existing.EmployerID
	job.UpdatedAt = time.Now()
	return u.jobRepo.Update(ctx, job)
}

func (u *jobUsecase) DeactivateJob(ctx context.Context, userID string, id int64) error {
	if _, err := u.ownedJob(ctx, userID, id); err != nil {
		return err
	}
	return u.jobRepo.Deactivate(ctx, id)
}
