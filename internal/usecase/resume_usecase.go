package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-careermatch-backend/internal/domain"
	"go-careermatch-backend/pkg/apperror"
	"go-careermatch-backend/pkg/logger"
	"go-careermatch-backend/pkg/security"

	"github.com/google/uuid"
)

// maxResumeBytes caps resume uploads.
const maxResumeBytes = 5 << 20

type resumeUsecase struct {
	candidateRepo domain.CandidateRepository
	resumeRepo    domain.ResumeRepository
	store         ObjectStore

	// Per-candidate locks serialize upload and default-flip so the
	// count-then-insert check cannot race past the resume limit.
	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex
}

func NewResumeUsecase(
	candidateRepo domain.CandidateRepository,
	resumeRepo domain.ResumeRepository,
	store ObjectStore,
) domain.ResumeUsecase {
	return &resumeUsecase{
		candidateRepo: candidateRepo,
		resumeRepo:    resumeRepo,
		store:         store,
		locks:         map[int64]*sync.Mutex{},
	}
}

func (u *resumeUsecase) lockFor(candidateID int64) *sync.Mutex {
	u.locksMu.Lock()
	defer u.locksMu.Unlock()
	mu, ok := u.locks[candidateID]
	if !ok {
		mu = &sync.Mutex{}
		u.locks[candidateID] = mu
	}
	return mu
}

func (u *resumeUsecase) candidateFor(ctx context.Context, userID string) (*domain.Candidate, error) {
	candidate, err := u.candidateRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Forbidden("Complete your candidate profile first")
		}
		return nil, err
	}
	return candidate, nil
}

func (u *resumeUsecase) Upload(ctx context.Context, userID, fileName, customName string, data []byte, contentType string, setDefault bool) (*domain.Resume, error) {
	if len(data) > maxResumeBytes {
		return nil, apperror.BadRequest("Resume exceeds the 5MB size limit")
	}
	result := security.ValidateResumeFile(fileName, data, contentType)
	if !result.Valid {
		return nil, apperror.BadRequest("Invalid resume file: " + result.Error)
	}

	candidate, err := u.candidateFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	mu := u.lockFor(candidate.ID)
	mu.Lock()
	defer mu.Unlock()

	count, err := u.resumeRepo.CountByCandidateID(ctx, candidate.ID)
	if err != nil {
		return nil, err
	}
	if count >= domain.MaxResumesPerCandidate {
		return nil, apperror.Conflict(fmt.Sprintf("At most %d resumes are allowed; delete one first", domain.MaxResumesPerCandidate))
	}

	// First resume becomes the default even when not requested, so every
	// candidate with any resume has exactly one default.
	if count == 0 {
		setDefault = true
	}

	key := fmt.Sprintf("resumes/%s/%s%s", userID, uuid.NewString(), result.Extension)
	if _, err := u.store.Put(ctx, key, data, result.DetectedMIME); err != nil {
		return nil, err
	}

	resume := &domain.Resume{
		CandidateID: candidate.ID,
		FileName:    fileName,
		FilePath:    key,
		FileSize:    int64(len(data)),
		IsDefault:   setDefault,
		UploadDate:  time.Now(),
	}
	if customName != "" {
		resume.CustomName = &customName
	}

	// The default flip and the insert share one transaction, so a failed
	// insert never leaves the candidate without a default.
	create := u.resumeRepo.Create
	if setDefault {
		create = u.resumeRepo.CreateDefault
	}
	if err := create(ctx, resume); err != nil {
		// Keep storage consistent with the database.
		if delErr := u.store.Delete(ctx, key); delErr != nil {
			logger.Log.Warn("orphaned resume object", "key", key, "error", delErr)
		}
		return nil, err
	}
	return resume, nil
}

// ownedResume looks up a resume and hides foreign ones behind not found.
func (u *resumeUsecase) ownedResume(ctx context.Context, candidateID, resumeID int64) (*domain.Resume, error) {
	resume, err := u.resumeRepo.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Resume not found")
		}
		return nil, err
	}
	if resume.CandidateID != candidateID {
		return nil, apperror.NotFound("Resume not found")
	}
	return resume, nil
}

func (u *resumeUsecase) List(ctx context.Context, userID string) ([]domain.Resume, error) {
	candidate, err := u.candidateFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.resumeRepo.ListByCandidateID(ctx, candidate.ID)
}

func (u *resumeUsecase) Download(ctx context.Context, userID string, resumeID int64) (*domain.Resume, []byte, error) {
	candidate, err := u.candidateFor(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	resume, err := u.ownedResume(ctx, candidate.ID, resumeID)
	if err != nil {
		return nil, nil, err
	}
	data, err := u.store.Get(ctx, resume.FilePath)
	if err != nil {
		return nil, nil, err
	}
	return resume, data, nil
}

// SetDefault makes resumeID the candidate's only default. Ownership is
// enforced inside the repository update, so a foreign resume ID reads as
// not found rather than leaking its existence.
func (u *resumeUsecase) SetDefault(ctx context.Context, userID string, resumeID int64) (*domain.Resume, error) {
	candidate, err := u.candidateFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	mu := u.lockFor(candidate.ID)
	mu.Lock()
	defer mu.Unlock()

	if err := u.resumeRepo.SetDefault(ctx, candidate.ID, resumeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Resume not found")
		}
		return nil, err
	}
	return u.resumeRepo.GetByID(ctx, resumeID)
}

func (u *resumeUsecase) Delete(ctx context.Context, userID string, resumeID int64) error {
	candidate, err := u.candidateFor(ctx, userID)
	if err != nil {
		return err
	}

	mu := u.lockFor(candidate.ID)
	mu.Lock()
	defer mu.Unlock()

	resume, err := u.ownedResume(ctx, candidate.ID, resumeID)
	if err != nil {
		return err
	}

	if err := u.resumeRepo.Delete(ctx, resumeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Resume not found")
		}
		return err
	}
	if err := u.store.Delete(ctx, resume.FilePath); err != nil {
		logger.Log.Warn("orphaned resume object", "key", resume.FilePath, "error", err)
	}
	return nil
}
