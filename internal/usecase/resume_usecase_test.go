package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-careermatch-backend/internal/domain"
	"go-careermatch-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// pdfBytes passes magic byte validation for .pdf uploads.
var pdfBytes = []byte("%PDF-1.4 test document content")

func newResumeFixture(candidateRepo *MockCandidateRepo, resumeRepo *MockResumeRepo, store *MockObjectStore) domain.ResumeUsecase {
	return usecase.NewResumeUsecase(candidateRepo, resumeRepo, store)
}

func TestResumeUpload(t *testing.T) {
	ctx := context.Background()
	candidate := &domain.Candidate{ID: 7, UserID: "lovel1a"}

	t.Run("Should store the file and create the record", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		candidateRepo.On("GetByUserID", mock.Anything, "lovel1a").Return(candidate, nil)
		resumeRepo := new(MockResumeRepo)
		resumeRepo.On("CountByCandidateID", mock.Anything, int64(7)).Return(1, nil)
		resumeRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		store := new(MockObjectStore)
		store.On("Put", mock.Anything, mock.Anything, pdfBytes, mock.Anything).Return("url", nil)

		uc := newResumeFixture(candidateRepo, resumeRepo, store)
		resume, err := uc.Upload(ctx, "lovel1a", "cv.pdf", "", pdfBytes, "application/pdf", false)
		require.NoError(t, err)
		assert.Equal(t, int64(7), resume.CandidateID)
		assert.False(t, resume.IsDefault)
		store.AssertExpectations(t)
	})

	t.Run("Should make the first resume the default", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		candidateRepo.On("GetByUserID", mock.Anything, "lovel1a").Return(candidate, nil)
		resumeRepo := new(MockResumeRepo)
		resumeRepo.On("CountByCandidateID", mock.Anything, int64(7)).Return(0, nil)
		resumeRepo.On("CreateDefault", mock.Anything, mock.MatchedBy(func(r *domain.Resume) bool {
			return r.IsDefault
		})).Return(nil)
		store := new(MockObjectStore)
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("url", nil)

		uc := newResumeFixture(candidateRepo, resumeRepo, store)
		resume, err := uc.Upload(ctx, "lovel1a", "cv.pdf", "", pdfBytes, "application/pdf", false)
		require.NoError(t, err)
		assert.True(t, resume.IsDefault)
	})

	t.Run("Should reject the fourth resume", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		candidateRepo.On("GetByUserID", mock.Anything, "lovel1a").Return(candidate, nil)
		resumeRepo := new(MockResumeRepo)
		resumeRepo.On("CountByCandidateID", mock.Anything, int64(7)).Return(domain.MaxResumesPerCandidate, nil)
		store := new(MockObjectStore)

		uc := newResumeFixture(candidateRepo, resumeRepo, store)
		_, err := uc.Upload(ctx, "lovel1a", "cv.pdf", "", pdfBytes, "application/pdf", false)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "delete one first")
		store.AssertNotCalled(t, "Put")
		resumeRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Should reject files that are not resumes", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		resumeRepo := new(MockResumeRepo)
		store := new(MockObjectStore)

		uc := newResumeFixture(candidateRepo, resumeRepo, store)
		_, err := uc.Upload(ctx, "lovel1a", "evil.exe", "", []byte("MZ..."), "application/octet-stream", false)
		assert.Error(t, err)
		store.AssertNotCalled(t, "Put")
	})

	t.Run("Should replace the default through the transactional insert", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		candidateRepo.On("GetByUserID", mock.Anything, "lovel1a").Return(candidate, nil)
		resumeRepo := new(MockResumeRepo)
		resumeRepo.On("CountByCandidateID", mock.Anything, int64(7)).Return(2, nil)
		resumeRepo.On("CreateDefault", mock.Anything, mock.Anything).Return(nil)
		store := new(MockObjectStore)
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("url", nil)

		uc := newResumeFixture(candidateRepo, resumeRepo, store)
		resume, err := uc.Upload(ctx, "lovel1a", "cv.pdf", "", pdfBytes, "application/pdf", true)
		require.NoError(t, err)
		assert.True(t, resume.IsDefault)
		resumeRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Should keep the existing default when the insert fails", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		candidateRepo.On("GetByUserID", mock.Anything, "lovel1a").Return(candidate, nil)
		resumeRepo := new(MockResumeRepo)
		resumeRepo.On("CountByCandidateID", mock.Anything, int64(7)).Return(2, nil)
		resumeRepo.On("CreateDefault", mock.Anything, mock.Anything).Return(errors.New("insert failed"))
		store := new(MockObjectStore)
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("url", nil)
		store.On("Delete", mock.Anything, mock.Anything).Return(nil)

		uc := newResumeFixture(candidateRepo, resumeRepo, store)
		_, err := uc.Upload(ctx, "lovel1a", "cv.pdf", "", pdfBytes, "application/pdf", true)
		assert.Error(t, err)
		// The default never leaves the transaction, so nothing clears it
		// outside of the failed insert; only the stored object is cleaned up.
		store.AssertCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestResumeSetDefault(t *testing.T) {
	ctx := context.Background()
	candidate := &domain.Candidate{ID: 7, UserID: "lovel1a"}

	t.Run("Should flip the default atomically through the repository", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		candidateRepo.On("GetByUserID", mock.Anything, "lovel1a").Return(candidate, nil)
		resumeRepo := new(MockResumeRepo)
		resumeRepo.On("SetDefault", mock.Anything, int64(7), int64(42)).Return(nil)
		resumeRepo.On("GetByID", mock.Anything, int64(42)).Return(
			&domain.Resume{ID: 42, CandidateID: 7, IsDefault: true}, nil)

		uc := newResumeFixture(candidateRepo, resumeRepo, new(MockObjectStore))
		resume, err := uc.SetDefault(ctx, "lovel1a", 42)
		require.NoError(t, err)
		assert.True(t, resume.IsDefault)
	})

	t.Run("Should report not found for another candidate's resume", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		candidateRepo.On("GetByUserID", mock.Anything, "lovel1a").Return(candidate, nil)
		resumeRepo := new(MockResumeRepo)
		resumeRepo.On("SetDefault", mock.Anything, int64(7), int64(99)).Return(domain.ErrNotFound)

		uc := newResumeFixture(candidateRepo, resumeRepo, new(MockObjectStore))
		_, err := uc.SetDefault(ctx, "lovel1a", 99)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestResumeDownload(t *testing.T) {
	ctx := context.Background()
	candidate := &domain.Candidate{ID: 7, UserID: "lovel1a"}

	t.Run("Should return the stored file for an owned resume", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		candidateRepo.On("GetByUserID", mock.Anything, "lovel1a").Return(candidate, nil)
		resumeRepo := new(MockResumeRepo)
		resumeRepo.On("GetByID", mock.Anything, int64(42)).Return(
			&domain.Resume{ID: 42, CandidateID: 7, FileName: "cv.pdf", FilePath: "resumes/lovel1a/abc.pdf"}, nil)
		store := new(MockObjectStore)
		store.On("Get", mock.Anything, "resumes/lovel1a/abc.pdf").Return(pdfBytes, nil)

		uc := newResumeFixture(candidateRepo, resumeRepo, store)
		resume, data, err := uc.Download(ctx, "lovel1a", 42)
		require.NoError(t, err)
		assert.Equal(t, "cv.pdf", resume.FileName)
		assert.Equal(t, pdfBytes, data)
	})

	t.Run("Should hide another candidate's resume behind not found", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		candidateRepo.On("GetByUserID", mock.Anything, "lovel1a").Return(candidate, nil)
		resumeRepo := new(MockResumeRepo)
		resumeRepo.On("GetByID", mock.Anything, int64(42)).Return(
			&domain.Resume{ID: 42, CandidateID: 8, FilePath: "resumes/other/abc.pdf"}, nil)
		store := new(MockObjectStore)

		uc := newResumeFixture(candidateRepo, resumeRepo, store)
		_, _, err := uc.Download(ctx, "lovel1a", 42)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
		store.AssertNotCalled(t, "Get")
	})
}

func TestResumeDelete(t *testing.T) {
	ctx := context.Background()
	candidate := &domain.Candidate{ID: 7, UserID: "lovel1a"}

	t.Run("Should delete the record and the stored object", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		candidateRepo.On("GetByUserID", mock.Anything, "lovel1a").Return(candidate, nil)
		resumeRepo := new(MockResumeRepo)
		resumeRepo.On("GetByID", mock.Anything, int64(42)).Return(
			&domain.Resume{ID: 42, CandidateID: 7, FilePath: "resumes/lovel1a/abc.pdf"}, nil)
		resumeRepo.On("Delete", mock.Anything, int64(42)).Return(nil)
		store := new(MockObjectStore)
		store.On("Delete", mock.Anything, "resumes/lovel1a/abc.pdf").Return(nil)

		uc := newResumeFixture(candidateRepo, resumeRepo, store)
		require.NoError(t, uc.Delete(ctx, "lovel1a", 42))
		store.AssertExpectations(t)
	})

	t.Run("Should refuse to delete another candidate's resume", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		candidateRepo.On("GetByUserID", mock.Anything, "lovel1a").Return(candidate, nil)
		resumeRepo := new(MockResumeRepo)
		resumeRepo.On("GetByID", mock.Anything, int64(42)).Return(
			&domain.Resume{ID: 42, CandidateID: 8, FilePath: "resumes/other/abc.pdf"}, nil)
		store := new(MockObjectStore)

		uc := newResumeFixture(candidateRepo, resumeRepo, store)
		err := uc.Delete(ctx, "lovel1a", 42)
		assert.Error(t, err)
		resumeRepo.AssertNotCalled(t, "Delete")
		store.AssertNotCalled(t, "Delete")
	})
}
