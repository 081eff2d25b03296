package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-careermatch-backend/internal/domain"
	"go-careermatch-backend/internal/usecase"
	"go-careermatch-backend/pkg/password"
	"go-careermatch-backend/pkg/security"
	"go-careermatch-backend/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T, userRepo *MockUserRepo) (domain.AuthUsecase, *token.Codec, *token.Blacklist) {
	t.Helper()
	codec := token.NewCodec([]byte("test-secret"))
	blacklist := token.NewBlacklist(time.Hour)
	t.Cleanup(blacklist.Stop)

	uc := usecase.NewAuthUsecase(
		userRepo,
		usecase.NewIdentifierAllocator(userRepo, 100),
		codec,
		blacklist,
		nil,
		nil,
		security.NopLogger(),
		usecase.AuthConfig{
			TokenTTL:      time.Hour,
			ResetTokenTTL: 30 * time.Minute,
		},
	)
	return uc, codec, blacklist
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Should allocate a derived identifier", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(false, nil)
		repo.On("ExistsByUserID", mock.Anything, "lovel1a").Return(false, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		uc, _, _ := newAuthFixture(t, repo)
		user, err := uc.Register(ctx, domain.RegisterInput{
			FullName: "Ada Lovelace",
			Email:    "Ada@Example.com",
			Password: "s3cret-pass",
			Role:     "candidate",
		})
		require.NoError(t, err)
		assert.Equal(t, "lovel1a", user.UserID)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.True(t, user.IsActive)
	})

	t.Run("Should reallocate when the insert hits a duplicate identifier", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
		// The probe says lovel1a is free both times, but another request
		// inserts it first; the second allocation must move on to lovel2a.
		repo.On("ExistsByUserID", mock.Anything, "lovel1a").Return(false, nil).Once()
		repo.On("ExistsByUserID", mock.Anything, "lovel1a").Return(true, nil)
		repo.On("ExistsByUserID", mock.Anything, "lovel2a").Return(false, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.UserID == "lovel1a"
		})).Return(domain.ErrDuplicateUserID)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.UserID == "lovel2a"
		})).Return(nil)

		uc, _, _ := newAuthFixture(t, repo)
		user, err := uc.Register(ctx, domain.RegisterInput{
			FullName: "Ada Lovelace",
			Email:    "ada2@example.com",
			Password: "s3cret-pass",
			Role:     "candidate",
		})
		require.NoError(t, err)
		assert.Equal(t, "lovel2a", user.UserID)
	})

	t.Run("Should reject duplicate emails", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

		uc, _, _ := newAuthFixture(t, repo)
		_, err := uc.Register(ctx, domain.RegisterInput{
			FullName: "Ada Lovelace",
			Email:    "taken@example.com",
			Password: "s3cret-pass",
			Role:     "candidate",
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})

	t.Run("Should reject unknown roles", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc, _, _ := newAuthFixture(t, repo)
		_, err := uc.Register(ctx, domain.RegisterInput{
			FullName: "Ada Lovelace",
			Email:    "ada@example.com",
			Password: "s3cret-pass",
			Role:     "admin",
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := password.Hash("correct-horse")
	require.NoError(t, err)

	activeUser := func() *domain.User {
		return &domain.User{
			UserID:       "lovel1a",
			Email:        "ada@example.com",
			PasswordHash: hash,
			Role:         domain.RoleCandidate,
			IsActive:     true,
		}
	}

	t.Run("Should mint a verifiable token on success", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByUserID", mock.Anything, "lovel1a").Return(activeUser(), nil)

		uc, codec, _ := newAuthFixture(t, repo)
		result, err := uc.Login(ctx, "lovel1a", "correct-horse", "")
		require.NoError(t, err)

		claims, err := codec.Verify(result.Token)
		require.NoError(t, err)
		assert.Equal(t, "lovel1a", claims.Subject)
		assert.Equal(t, domain.RoleCandidate, claims.Role)
	})

	t.Run("Should return the same error for wrong password, unknown user and inactive account", func(t *testing.T) {
		unknown := new(MockUserRepo)
		unknown.On("GetByUserID", mock.Anything, "nobody1x").Return(nil, domain.ErrNotFound)

		wrongPass := new(MockUserRepo)
		wrongPass.On("GetByUserID", mock.Anything, "lovel1a").Return(activeUser(), nil)

		inactive := new(MockUserRepo)
		u := activeUser()
		u.IsActive = false
		inactive.On("GetByUserID", mock.Anything, "lovel1a").Return(u, nil)

		uc1, _, _ := newAuthFixture(t, unknown)
		_, err1 := uc1.Login(ctx, "nobody1x", "whatever", "")

		uc2, _, _ := newAuthFixture(t, wrongPass)
		_, err2 := uc2.Login(ctx, "lovel1a", "wrong-pass", "")

		uc3, _, _ := newAuthFixture(t, inactive)
		_, err3 := uc3.Login(ctx, "lovel1a", "correct-horse", "")

		require.Error(t, err1)
		assert.Equal(t, err1.Error(), err2.Error())
		assert.Equal(t, err1.Error(), err3.Error())
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("Should revoke the token until expiry", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc, codec, blacklist := newAuthFixture(t, repo)

		tok, err := codec.Issue("lovel1a", domain.RoleCandidate, time.Hour)
		require.NoError(t, err)

		require.NoError(t, uc.Logout(ctx, tok))

		revoked, err := blacklist.IsRevoked(ctx, tok)
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("Should treat an invalid token as already logged out", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc, _, _ := newAuthFixture(t, repo)
		assert.NoError(t, uc.Logout(ctx, "not-a-token"))
	})
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("Should succeed silently for unknown emails", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)

		uc, _, _ := newAuthFixture(t, repo)
		assert.NoError(t, uc.ForgotPassword(ctx, "nobody@example.com"))
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("Should store a token with a 30 minute expiry", func(t *testing.T) {
		repo := new(MockUserRepo)
		user := &domain.User{UserID: "lovel1a", Email: "ada@example.com"}
		repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		uc, _, _ := newAuthFixture(t, repo)
		require.NoError(t, uc.ForgotPassword(ctx, "ada@example.com"))

		require.NotNil(t, user.ResetToken)
		require.NotNil(t, user.ResetTokenExpiry)
		assert.WithinDuration(t, time.Now().Add(30*time.Minute), *user.ResetTokenExpiry, time.Minute)
	})

	t.Run("Should clear the token on use so it is single-use", func(t *testing.T) {
		repo := new(MockUserRepo)
		tok := "reset-token-value"
		expiry := time.Now().Add(10 * time.Minute)
		user := &domain.User{UserID: "lovel1a", ResetToken: &tok, ResetTokenExpiry: &expiry}
		repo.On("GetByResetToken", mock.Anything, tok).Return(user, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ResetToken == nil && u.ResetTokenExpiry == nil
		})).Return(nil)

		uc, _, _ := newAuthFixture(t, repo)
		require.NoError(t, uc.ResetPassword(ctx, tok, "new-password-1"))
		repo.AssertExpectations(t)
	})

	t.Run("Should reject expired and unknown tokens with the same error", func(t *testing.T) {
		expiredRepo := new(MockUserRepo)
		tok := "stale-token"
		expiry := time.Now().Add(-time.Minute)
		expiredRepo.On("GetByResetToken", mock.Anything, tok).Return(
			&domain.User{UserID: "lovel1a", ResetToken: &tok, ResetTokenExpiry: &expiry}, nil)

		unknownRepo := new(MockUserRepo)
		unknownRepo.On("GetByResetToken", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

		uc1, _, _ := newAuthFixture(t, expiredRepo)
		err1 := uc1.ResetPassword(ctx, tok, "new-password-1")

		uc2, _, _ := newAuthFixture(t, unknownRepo)
		err2 := uc2.ResetPassword(ctx, "nope", "new-password-1")

		require.Error(t, err1)
		require.Error(t, err2)
		assert.Equal(t, err1.Error(), err2.Error())
		expiredRepo.AssertNotCalled(t, "Update")
	})
}
