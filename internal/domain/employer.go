package domain

import (
	"context"
	"time"
)

// EmployerNumberRange bounds the allocatable employer numbers. Numbers are
// 5 ASCII digits, zero-padded, never reused.
const (
	EmployerNumberMin = 10000
	EmployerNumberMax = 99999
)

type Employer struct {
	ID               int64     `json:"id"`
	EmployerNumber   string    `json:"employer_number"`
	UserID           string    `json:"user_id"`
	HRName           string    `json:"hr_name"`
	HREmail          string    `json:"hr_email"`
	OrganizationName string    `json:"organization_name"`
	EndClient        *string   `json:"end_client,omitempty"`
	VendorName       *string   `json:"vendor_name,omitempty"`
	Industry         *string   `json:"industry,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type EmployerRepository interface {
	// Create inserts the employer row; returns ErrDuplicateEmployerNumber
	// when the number collides with a concurrent allocation.
	Create(ctx context.Context, employer *Employer) error
	GetByUserID(ctx context.Context, userID string) (*Employer, error)
	// MaxEmployerNumber returns the highest allocated number; ok is false
	// when no employer exists yet.
	MaxEmployerNumber(ctx context.Context) (max int, ok bool, err error)
}

type RecruiterUsecase interface {
	CompleteProfile(ctx context.Context, userID string, employer *Employer) (*Employer, error)
	GetProfile(ctx context.Context, userID string) (*Employer, error)
	GetEmployerNumber(ctx context.Context, userID string) (string, error)
}
