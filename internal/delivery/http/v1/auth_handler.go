package v1

import (
	"net/http"

	"go-careermatch-backend/internal/delivery/http/response"
	"go-careermatch-backend/internal/domain"
	"go-careermatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	auth := public.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.POST("/forgot-password", handler.ForgotPassword)
		auth.POST("/reset-password", handler.ResetPassword)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.POST("/logout", handler.Logout)
		protectedAuth.GET("/profile", handler.GetProfile)
		protectedAuth.PUT("/profile", handler.UpdateProfile)
		protectedAuth.PUT("/password", handler.UpdatePassword)
		protectedAuth.POST("/2fa/setup", handler.SetupTwoFactor)
		protectedAuth.POST("/2fa/enable", handler.EnableTwoFactor)
	}
}

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required,valid_name"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,valid_phone"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=candidate recruiter"`
}

// Register godoc
// @Summary      Register a new account
// @Description  Creates an account and allocates its user identifier
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "Registration JSON"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.authUC.Register(c.Request.Context(), domain.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Account created", gin.H{
		"user_id":   user.UserID,
		"email":     user.Email,
		"full_name": user.FullName,
		"role":      user.Role,
	})
}

type LoginRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Password string `json:"password" binding:"required"`
	OTPCode  string `json:"otp_code"`
}

// Login godoc
// @Summary      Log in with user ID and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Login JSON"
// @Success      200   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.authUC.Login(c.Request.Context(), req.UserID, req.Password, req.OTPCode)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Login successful", result)
}

// Logout godoc
// @Summary      Log out and revoke the current token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenString := c.GetString(string(domain.KeyToken))
	if err := h.authUC.Logout(c.Request.Context(), tokenString); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Logged out", nil)
}

// GetProfile godoc
// @Summary      Get the authenticated user's account profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/profile [get]
// @Security     BearerAuth
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	user, err := h.authUC.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile fetched", user)
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" binding:"omitempty,valid_name"`
	Phone    string `json:"phone" binding:"omitempty,valid_phone"`
}

// UpdateProfile godoc
// @Summary      Update account fields
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      UpdateProfileRequest  true  "Profile JSON"
// @Success      200   {object}  response.Response
// @Router       /auth/profile [put]
// @Security     BearerAuth
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.authUC.UpdateProfile(c.Request.Context(), userID, req.FullName, req.Phone); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", nil)
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UpdatePassword godoc
// @Summary      Change the account password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      UpdatePasswordRequest  true  "Password JSON"
// @Success      200   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Router       /auth/password [put]
// @Security     BearerAuth
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.authUC.UpdatePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Password updated", nil)
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword godoc
// @Summary      Request a password reset email
// @Description  Always returns 200 so the endpoint does not reveal which emails exist
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ForgotPasswordRequest  true  "Email JSON"
// @Success      200   {object}  response.Response
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.authUC.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "If the email exists, a reset link has been sent", nil)
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ResetPassword godoc
// @Summary      Reset the password with a token from the reset email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ResetPasswordRequest  true  "Reset JSON"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.authUC.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Password has been reset", nil)
}

// SetupTwoFactor godoc
// @Summary      Start two-factor enrollment
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/2fa/setup [post]
// @Security     BearerAuth
func (h *AuthHandler) SetupTwoFactor(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	secret, otpauthURL, err := h.authUC.SetupTwoFactor(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Scan the QR code, then confirm with a code", gin.H{
		"secret":      secret,
		"otpauth_url": otpauthURL,
	})
}

type EnableTwoFactorRequest struct {
	OTPCode string `json:"otp_code" binding:"required"`
}

// EnableTwoFactor godoc
// @Summary      Confirm two-factor enrollment with a code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      EnableTwoFactorRequest  true  "Code JSON"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /auth/2fa/enable [post]
// @Security     BearerAuth
func (h *AuthHandler) EnableTwoFactor(c *gin.Context) {
	var req EnableTwoFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.authUC.EnableTwoFactor(c.Request.Context(), userID, req.OTPCode); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Two-factor authentication enabled", nil)
}
