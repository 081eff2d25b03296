package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go-careermatch-backend/internal/domain"
)

// ErrEmployerNumbersExhausted reports that the 5-digit number space is used
// up. There is no recovery short of widening the format.
var ErrEmployerNumbersExhausted = errors.New("employer number allocation: range exhausted")

// EmployerNumberAllocator hands out sequential 5-digit employer numbers.
// In-process allocations are serialized with a mutex; across processes the
// unique constraint on employers.employer_number is the arbiter, and
// CreateWithNumber retries on collision.
type EmployerNumberAllocator struct {
	mu           sync.Mutex
	employerRepo domain.EmployerRepository
}

func NewEmployerNumberAllocator(employerRepo domain.EmployerRepository) *EmployerNumberAllocator {
	return &EmployerNumberAllocator{employerRepo: employerRepo}
}

// next returns the lowest unallocated number as a zero-padded string.
func (a *EmployerNumberAllocator) next(ctx context.Context) (string, error) {
	max, ok, err := a.employerRepo.MaxEmployerNumber(ctx)
	if err != nil {
		return "", err
	}
	n := domain.EmployerNumberMin
	if ok {
		n = max + 1
	}
	if n > domain.EmployerNumberMax {
		return "", ErrEmployerNumbersExhausted
	}
	return fmt.Sprintf("%05d", n), nil
}

// maxAllocationRetries bounds how often a cross-process collision on the
// employer number is retried before giving up.
const maxAllocationRetries = 5

// CreateWithNumber allocates a number, stamps it onto employer, and inserts
// the row. A concurrent insert of the same number surfaces as
// ErrDuplicateEmployerNumber from the repository; the allocation is then
// recomputed and retried.
func (a *EmployerNumberAllocator) CreateWithNumber(ctx context.Context, employer *domain.Employer) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for attempt := 0; attempt < maxAllocationRetries; attempt++ {
		number, err := a.next(ctx)
		if err != nil {
			return err
		}
		employer.EmployerNumber = number

		err = a.employerRepo.Create(ctx, employer)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateEmployerNumber) {
			return err
		}
	}
	return fmt.Errorf("employer number allocation: gave up after %d collisions", maxAllocationRetries)
}
