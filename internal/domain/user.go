package domain

import (
	"context"
	"time"
)

const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

// User is an account. UserID is the allocated human-readable identifier and
// never changes once assigned. ResetToken and ResetTokenExpiry are either
// both nil or both set.
type User struct {
	UserID           string     `json:"user_id"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	Phone            string     `json:"phone"`
	FullName         string     `json:"full_name"`
	Role             string     `json:"role"`
	ProfileCompleted bool       `json:"profile_completed"`
	IsActive         bool       `json:"is_active"`
	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	TOTPSecret       *string    `json:"-"`
	TOTPEnabled      bool       `json:"totp_enabled"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUserID(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByResetToken(ctx context.Context, token string) (*User, error)
	ExistsByUserID(ctx context.Context, userID string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *User) error
	List(ctx context.Context, limit, offset int) ([]User, int64, error)
	SetActive(ctx context.Context, userID string, active bool) error
}

// RegisterInput is what registration needs before an identifier is allocated.
type RegisterInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
	Role     string
}

// LoginResult carries the minted token plus the profile bits the frontend
// needs right after login.
type LoginResult struct {
	Token            string `json:"token"`
	UserID           string `json:"user_id"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	ProfileCompleted bool   `json:"profile_completed"`
}

type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, userID, pass, otpCode string) (*LoginResult, error)
	Logout(ctx context.Context, tokenString string) error
	GetProfile(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID, fullName, phone string) error
	UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
	SetupTwoFactor(ctx context.Context, userID string) (secret, otpauthURL string, err error)
	EnableTwoFactor(ctx context.Context, userID, otpCode string) error
}
