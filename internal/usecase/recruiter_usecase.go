package usecase

import (
	"context"
	"errors"
	"time"

	"go-careermatch-backend/internal/domain"
	"go-careermatch-backend/pkg/apperror"
)

type recruiterUsecase struct {
	userRepo     domain.UserRepository
	employerRepo domain.EmployerRepository
	numbers      *EmployerNumberAllocator
}

func NewRecruiterUsecase(
	userRepo domain.UserRepository,
	employerRepo domain.EmployerRepository,
	numbers *EmployerNumberAllocator,
) domain.RecruiterUsecase {
	return &recruiterUsecase{
		userRepo:     userRepo,
		employerRepo: employerRepo,
		numbers:      numbers,
	}
}

// CompleteProfile creates the employer record and allocates its number. A
// recruiter completes their profile exactly once; the employer number never
// changes afterwards.
func (u *recruiterUsecase) CompleteProfile(ctx context.Context, userID string, employer *domain.Employer) (*domain.Employer, error) {
	user, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	if user.Role != domain.RoleRecruiter {
		return nil, apperror.Forbidden("Only recruiters can complete an employer profile")
	}
	if user.ProfileCompleted {
		return nil, apperror.Conflict("Profile is already completed")
	}

	now := time.Now()
	employer.UserID = userID
	employer.CreatedAt = now
	employer.UpdatedAt = now

	if err := u.numbers.CreateWithNumber(ctx, employer); err != nil {
		if errors.Is(err, ErrEmployerNumbersExhausted) {
			return nil, apperror.New(500, "Employer number range is exhausted", err)
		}
		return nil, err
	}

	user.ProfileCompleted = true
	user.UpdatedAt = now
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return employer, nil
}

func (u *recruiterUsecase) GetProfile(ctx context.Context, userID string) (*domain.Employer, error) {
	employer, err := u.employerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Employer profile not found")
		}
		return nil, err
	}
	return employer, nil
}

func (u *recruiterUsecase) GetEmployerNumber(ctx context.Context, userID string) (string, error) {
	employer, err := u.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	return employer.EmployerNumber, nil
}
