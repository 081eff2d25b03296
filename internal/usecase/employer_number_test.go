package usecase_test

import (
	"context"
	"testing"

	"go-careermatch-backend/internal/domain"
	"go-careermatch-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestEmployerNumberAllocation(t *testing.T) {
	ctx := context.Background()

	t.Run("Should start at 10000 for the first employer", func(t *testing.T) {
		repo := new(MockEmployerRepo)
		repo.On("MaxEmployerNumber", mock.Anything).Return(0, false, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		alloc := usecase.NewEmployerNumberAllocator(repo)
		employer := &domain.Employer{UserID: "smith1j"}
		err := alloc.CreateWithNumber(ctx, employer)
		assert.NoError(t, err)
		assert.Equal(t, "10000", employer.EmployerNumber)
	})

	t.Run("Should allocate max plus one", func(t *testing.T) {
		repo := new(MockEmployerRepo)
		repo.On("MaxEmployerNumber", mock.Anything).Return(10041, true, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		alloc := usecase.NewEmployerNumberAllocator(repo)
		employer := &domain.Employer{UserID: "smith1j"}
		err := alloc.CreateWithNumber(ctx, employer)
		assert.NoError(t, err)
		assert.Equal(t, "10042", employer.EmployerNumber)
	})

	t.Run("Should retry with a fresh number on a concurrent collision", func(t *testing.T) {
		repo := new(MockEmployerRepo)
		repo.On("MaxEmployerNumber", mock.Anything).Return(10100, true, nil).Once()
		repo.On("MaxEmployerNumber", mock.Anything).Return(10101, true, nil).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateEmployerNumber).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		alloc := usecase.NewEmployerNumberAllocator(repo)
		employer := &domain.Employer{UserID: "smith1j"}
		err := alloc.CreateWithNumber(ctx, employer)
		assert.NoError(t, err)
		assert.Equal(t, "10102", employer.EmployerNumber)
		repo.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("Should fail when the number space is exhausted", func(t *testing.T) {
		repo := new(MockEmployerRepo)
		repo.On("MaxEmployerNumber", mock.Anything).Return(domain.EmployerNumberMax, true, nil)

		alloc := usecase.NewEmployerNumberAllocator(repo)
		err := alloc.CreateWithNumber(ctx, &domain.Employer{UserID: "smith1j"})
		assert.ErrorIs(t, err, usecase.ErrEmployerNumbersExhausted)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Should give up after repeated collisions", func(t *testing.T) {
		repo := new(MockEmployerRepo)
		repo.On("MaxEmployerNumber", mock.Anything).Return(10100, true, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateEmployerNumber)

		alloc := usecase.NewEmployerNumberAllocator(repo)
		err := alloc.CreateWithNumber(ctx, &domain.Employer{UserID: "smith1j"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "gave up")
	})
}
