package domain

import (
	"context"
	"time"
)

// MaxResumesPerCandidate bounds the per-candidate resume collection.
const MaxResumesPerCandidate = 3

// Resume is an uploaded document. Among a candidate's resumes at most one
// carries IsDefault.
type Resume struct {
	ID          int64     `json:"id"`
	CandidateID int64     `json:"candidate_id"`
	FileName    string    `json:"file_name"`
	CustomName  *string   `json:"custom_name,omitempty"`
	FilePath    string    `json:"file_path"`
	FileSize    int64     `json:"file_size"`
	IsDefault   bool      `json:"is_default"`
	UploadDate  time.Time `json:"upload_date"`
}

type ResumeRepository interface {
	Create(ctx context.Context, resume *Resume) error
	GetByID(ctx context.Context, id int64) (*Resume, error)
	ListByCandidateID(ctx context.Context, candidateID int64) ([]Resume, error)
	CountByCandidateID(ctx context.Context, candidateID int64) (int, error)
	// CreateDefault atomically clears the default flag across the
	// candidate's resumes and inserts the new resume as the default, so
	// readers never observe zero or two defaults mid-upload.
	CreateDefault(ctx context.Context, resume *Resume) error
	// SetDefault atomically clears the default flag across the candidate's
	// resumes and sets it on the given one. Returns ErrNotFound when the
	// resume does not exist or is not owned by candidateID.
	SetDefault(ctx context.Context, candidateID, resumeID int64) error
	Delete(ctx context.Context, id int64) error
}

type ResumeUsecase interface {
	Upload(ctx context.Context, userID, fileName, customName string, data []byte, contentType string, setDefault bool) (*Resume, error)
	List(ctx context.Context, userID string) ([]Resume, error)
	// Download returns the resume record and its stored file content.
	Download(ctx context.Context, userID string, resumeID int64) (*Resume, []byte, error)
	SetDefault(ctx context.Context, userID string, resumeID int64) (*Resume, error)
	Delete(ctx context.Context, userID string, resumeID int64) error
}
