package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
	"time"

	"go-careermatch-backend/internal/domain"
	"go-careermatch-backend/pkg/apperror"
	"go-careermatch-backend/pkg/security"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// maxPhotoBytes caps profile photo uploads.
const maxPhotoBytes = 2 << 20

// maxPhotoDimension is the long-edge bound applied before storing a photo.
const maxPhotoDimension = 512

type candidateUsecase struct {
	userRepo      domain.UserRepository
	candidateRepo domain.CandidateRepository
	store         ObjectStore
}

func NewCandidateUsecase(
	userRepo domain.UserRepository,
	candidateRepo domain.CandidateRepository,
	store ObjectStore,
) domain.CandidateUsecase {
	return &candidateUsecase{
		userRepo:      userRepo,
		candidateRepo: candidateRepo,
		store:         store,
	}
}

func (u *candidateUsecase) CompleteProfile(ctx context.Context, userID string, candidate *domain.Candidate) (*domain.Candidate, error) {
	user, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	if user.Role != domain.RoleCandidate {
		return nil, apperror.Forbidden("Only candidates can complete a candidate profile")
	}

	now := time.Now()
	candidate.UserID = userID

	existing, err := u.candidateRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		candidate.ID = existing.ID
		candidate.PhotoPath = existing.PhotoPath
		candidate.CreatedAt = existing.CreatedAt
		candidate.UpdatedAt = now
		if err := u.candidateRepo.Update(ctx, candidate); err != nil {
			return nil, err
		}
	case errors.Is(err, domain.ErrNotFound):
		candidate.CreatedAt = now
		candidate.UpdatedAt = now
		if err := u.candidateRepo.Create(ctx, candidate); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if !user.ProfileCompleted {
		user.ProfileCompleted = true
		user.UpdatedAt = now
		if err := u.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	return candidate, nil
}

func (u *candidateUsecase) GetProfile(ctx context.Context, userID string) (*domain.Candidate, error) {
	candidate, err := u.candidateRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate profile not found")
		}
		return nil, err
	}
	return candidate, nil
}

// UploadPhoto validates, downscales and stores a profile photo, then records
// its storage key on the candidate row.
func (u *candidateUsecase) UploadPhoto(ctx context.Context, userID, fileName string, data []byte, contentType string) (string, error) {
	if len(data) > maxPhotoBytes {
		return "", apperror.BadRequest("Photo exceeds the 2MB size limit")
	}
	result := security.ValidatePhotoFile(fileName, data, contentType)
	if !result.Valid {
		return "", apperror.BadRequest("Invalid photo: " + result.Error)
	}

	if _, err := u.candidateRepo.GetByUserID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", apperror.NotFound("Candidate profile not found")
		}
		return "", err
	}

	resized, outType, err := resizePhoto(data, result.Extension)
	if err != nil {
		return "", apperror.BadRequest("Photo could not be decoded")
	}

	key := fmt.Sprintf("photos/%s/%s%s", userID, uuid.NewString(), result.Extension)
	if _, err := u.store.Put(ctx, key, resized, outType); err != nil {
		return "", err
	}
	if err := u.candidateRepo.UpdatePhotoPath(ctx, userID, key); err != nil {
		return "", err
	}
	return key, nil
}

// resizePhoto decodes the image and scales it down so the long edge is at
// most maxPhotoDimension, re-encoding in the original format. Images already
// within bounds are re-encoded as-is, which also strips metadata.
func resizePhoto(data []byte, ext string) ([]byte, string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxPhotoDimension || h > maxPhotoDimension {
		scale := float64(maxPhotoDimension) / float64(w)
		if h > w {
			scale = float64(maxPhotoDimension) / float64(h)
		}
		dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if strings.EqualFold(ext, ".png") {
		if err := png.Encode(&buf, src); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/png", nil
	}
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "image/jpeg", nil
}
