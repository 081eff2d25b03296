package domain

import (
	"context"
	"time"
)

type Candidate struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"user_id"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	Skills      []string   `json:"skills"`
	Summary     *string    `json:"summary,omitempty"`
	PhotoPath   *string    `json:"photo_path,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CandidateRepository interface {
	Create(ctx context.Context, candidate *Candidate) error
	GetByUserID(ctx context.Context, userID string) (*Candidate, error)
	Update(ctx context.Context, candidate *Candidate) error
	UpdatePhotoPath(ctx context.Context, userID, photoPath string) error
}

type CandidateUsecase interface {
	CompleteProfile(ctx context.Context, userID string, candidate *Candidate) (*Candidate, error)
	GetProfile(ctx context.Context, userID string) (*Candidate, error)
	UploadPhoto(ctx context.Context, userID, fileName string, data []byte, contentType string) (string, error)
}
