package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-careermatch-backend/internal/domain"
	"go-careermatch-backend/pkg/apperror"
	"go-careermatch-backend/pkg/email"
	"go-careermatch-backend/pkg/logger"
	"go-careermatch-backend/pkg/password"
	"go-careermatch-backend/pkg/security"
	"go-careermatch-backend/pkg/token"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
)

// totpIssuer appears in authenticator apps next to the account name.
const totpIssuer = "CareerMatch"

// identifierInsertRetries bounds retries when a concurrently-registered user
// grabs the identifier between our probe and our insert.
const identifierInsertRetries = 3

type AuthConfig struct {
	TokenTTL             time.Duration
	ResetTokenTTL        time.Duration
	RecruiterEmailDomain string
}

type authUsecase struct {
	userRepo     domain.UserRepository
	identifiers  *IdentifierAllocator
	codec        *token.Codec
	revoker      token.Revoker
	emailService *email.EmailService
	tracker      *security.LoginTracker
	secLog       *security.Logger
	cfg          AuthConfig
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	identifiers *IdentifierAllocator,
	codec *token.Codec,
	revoker token.Revoker,
	emailService *email.EmailService,
	tracker *security.LoginTracker,
	secLog *security.Logger,
	cfg AuthConfig,
) domain.AuthUsecase {
	if secLog == nil {
		secLog = security.NopLogger()
	}
	return &authUsecase{
		userRepo:     userRepo,
		identifiers:  identifiers,
		codec:        codec,
		revoker:      revoker,
		emailService: emailService,
		tracker:      tracker,
		secLog:       secLog,
		cfg:          cfg,
	}
}

func (u *authUsecase) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role != domain.RoleCandidate && role != domain.RoleRecruiter {
		return nil, apperror.BadRequest("Role must be candidate or recruiter")
	}

	emailAddr := strings.ToLower(strings.TrimSpace(input.Email))
	if role == domain.RoleRecruiter && u.cfg.RecruiterEmailDomain != "" {
		if !strings.HasSuffix(emailAddr, "@"+u.cfg.RecruiterEmailDomain) {
			return nil, apperror.BadRequest("Recruiter accounts require a corporate email address")
		}
	}

	exists, err := u.userRepo.ExistsByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict("Email is already registered")
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// The allocator's probe and our insert are not atomic; a duplicate-key
	// error on user_id means someone else registered the same identifier in
	// between, so allocate again.
	var user *domain.User
	for attempt := 0; attempt < identifierInsertRetries; attempt++ {
		userID, err := u.identifiers.Allocate(ctx, input.FullName)
		if err != nil {
			if errors.Is(err, ErrIdentifiersExhausted) {
				return nil, apperror.Conflict("No identifier available for this name")
			}
			return nil, err
		}

		now := time.Now()
		user = &domain.User{
			UserID:       userID,
			Email:        emailAddr,
			PasswordHash: hash,
			Phone:        strings.TrimSpace(input.Phone),
			FullName:     strings.TrimSpace(input.FullName),
			Role:         role,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		err = u.userRepo.Create(ctx, user)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, apperror.Conflict("Email is already registered")
		}
		if errors.Is(err, domain.ErrDuplicateUserID) {
			user = nil
			continue
		}
		return nil, err
	}
	if user == nil {
		return nil, apperror.Conflict("No identifier available for this name")
	}

	if u.emailService != nil && u.emailService.IsConfigured() {
		if err := u.emailService.SendWelcomeEmail(user.Email, user.FullName, user.UserID, user.Role); err != nil {
			// Registration stands even when the welcome mail fails.
			logger.Log.Warn("welcome email failed", "user_id", user.UserID, "error", err)
		}
	}

	return user, nil
}

// errInvalidCredentials is the single client-facing login failure: wrong
// identifier, wrong password, inactive account and bad OTP all look the same.
var errInvalidCredentials = apperror.Unauthorized("Invalid credentials")

func (u *authUsecase) Login(ctx context.Context, userID, pass, otpCode string) (*domain.LoginResult, error) {
	userID = strings.TrimSpace(userID)

	if u.tracker != nil {
		blocked, err := u.tracker.IsBlocked(ctx, userID)
		if err != nil {
			logger.Log.Warn("login tracker unavailable", "error", err)
		}
		if blocked {
			return nil, apperror.New(429, "Too many failed attempts, try again later", nil)
		}
	}

	user, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			u.recordFailure(ctx, userID)
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive || !password.Verify(user.PasswordHash, pass) {
		u.recordFailure(ctx, userID)
		return nil, errInvalidCredentials
	}

	if user.TOTPEnabled {
		if user.TOTPSecret == nil || !totp.Validate(otpCode, *user.TOTPSecret) {
			u.recordFailure(ctx, userID)
			return nil, errInvalidCredentials
		}
	}

	tok, err := u.codec.Issue(user.UserID, user.Role, u.cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	if u.tracker != nil {
		u.tracker.RecordSuccess(ctx, userID)
	}

	return &domain.LoginResult{
		Token:            tok,
		UserID:           user.UserID,
		Email:            user.Email,
		Role:             user.Role,
		ProfileCompleted: user.ProfileCompleted,
	}, nil
}

func (u *authUsecase) recordFailure(ctx context.Context, userID string) {
	if u.tracker == nil {
		u.secLog.Event(security.EventLoginFailed, userID)
		return
	}
	if _, err := u.tracker.RecordFailure(ctx, userID); err != nil {
		logger.Log.Warn("login tracker unavailable", "error", err)
	}
}

// Logout revokes the presented token until its natural expiry. An already
// invalid token is not an error; logout is idempotent from the client's view.
func (u *authUsecase) Logout(ctx context.Context, tokenString string) error {
	claims, err := u.codec.Verify(tokenString)
	if err != nil {
		return nil
	}

	expiresAt := time.Now().Add(u.cfg.TokenTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := u.revoker.Revoke(ctx, tokenString, expiresAt); err != nil {
		return err
	}
	u.secLog.Event(security.EventTokenRevoked, claims.Subject)
	return nil
}

func (u *authUsecase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) UpdateProfile(ctx context.Context, userID, fullName, phone string) error {
	user, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return err
	}

	if fullName = strings.TrimSpace(fullName); fullName != "" {
		user.FullName = fullName
	}
	if phone = strings.TrimSpace(phone); phone != "" {
		user.Phone = phone
	}
	user.UpdatedAt = time.Now()
	return u.userRepo.Update(ctx, user)
}

func (u *authUsecase) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return err
	}
	if !password.Verify(user.PasswordHash, oldPassword) {
		return apperror.Unauthorized("Current password is incorrect")
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	return u.userRepo.Update(ctx, user)
}

// ForgotPassword issues a reset token. A second request before the first is
// used simply replaces the stored token; last write wins. Unknown emails
// succeed silently so the endpoint does not reveal who has an account.
func (u *authUsecase) ForgotPassword(ctx context.Context, emailAddr string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	user, err := u.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	resetToken := uuid.NewString()
	expiry := time.Now().Add(u.cfg.ResetTokenTTL)
	user.ResetToken = &resetToken
	user.ResetTokenExpiry = &expiry
	user.UpdatedAt = time.Now()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return err
	}

	u.secLog.Event(security.EventPasswordResetIssue, user.UserID)

	if u.emailService != nil && u.emailService.IsConfigured() {
		if err := u.emailService.SendPasswordResetEmail(user.Email, resetToken); err != nil {
			logger.Log.Warn("reset email failed", "user_id", user.UserID, "error", err)
		}
	}
	return nil
}

// errInvalidResetToken is shared by the unknown-token and expired-token
// paths; callers cannot tell which one fired.
var errInvalidResetToken = apperror.BadRequest("Invalid or expired reset token")

// ResetPassword consumes a reset token. The stored token is cleared on
// success, so a second use of the same token fails.
func (u *authUsecase) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	user, err := u.userRepo.GetByResetToken(ctx, resetToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			u.secLog.Event(security.EventResetTokenRejected, "", zap.String("reason", "unknown_token"))
			return errInvalidResetToken
		}
		return err
	}

	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		u.secLog.Event(security.EventResetTokenRejected, user.UserID, zap.String("reason", "expired"))
		return errInvalidResetToken
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.ResetToken = nil
	user.ResetTokenExpiry = nil
	user.UpdatedAt = time.Now()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return err
	}

	u.secLog.Event(security.EventPasswordResetDone, user.UserID)
	return nil
}

// SetupTwoFactor generates a TOTP secret and stores it pending confirmation.
// The account is not protected until EnableTwoFactor verifies a code.
func (u *authUsecase) SetupTwoFactor(ctx context.Context, userID string) (string, string, error) {
	user, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", apperror.NotFound("User not found")
		}
		return "", "", err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.UserID,
	})
	if err != nil {
		return "", "", err
	}

	secret := key.Secret()
	user.TOTPSecret = &secret
	user.TOTPEnabled = false
	user.UpdatedAt = time.Now()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return "", "", err
	}
	return secret, key.URL(), nil
}

func (u *authUsecase) EnableTwoFactor(ctx context.Context, userID, otpCode string) error {
	user, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return err
	}
	if user.TOTPSecret == nil {
		return apperror.BadRequest("Two-factor setup has not been started")
	}
	if !totp.Validate(otpCode, *user.TOTPSecret) {
		return apperror.BadRequest("Invalid verification code")
	}

	user.TOTPEnabled = true
	user.UpdatedAt = time.Now()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return err
	}
	u.secLog.Event(security.EventTwoFactorEnabled, user.UserID)
	return nil
}
