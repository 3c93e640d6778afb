package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ahsan-alam-500/tonycustom/middleware"
	"github.com/ahsan-alam-500/tonycustom/services"
)

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token to rotate.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ForgotPasswordRequest asks for a reset code.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyOtpRequest checks a reset code.
type VerifyOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required,len=4"`
}

// ResetPasswordRequest sets a new password with a valid reset code.
type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Otp      string `json:"otp" binding:"required,len=4"`
	Password string `json:"password" binding:"required,min=8"`
}

// AuthController handles registration, login, token rotation, and the
// OTP password-reset flow.
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController.
func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{authService: svc}
}

// Register handles POST /register.
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, svcErr := ac.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Phone)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusCreated, "Registered successfully", gin.H{"user": user})
}

// Login handles POST /login.
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, pair, svcErr := ac.authService.Login(c.Request.Context(), req.Email, req.Password)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusOK, "Logged in successfully", gin.H{
		"user":   user,
		"tokens": pair,
	})
}

// Me handles GET /auth/me.
func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, svcErr := ac.authService.Me(c.Request.Context(), userID)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusOK, "Profile fetched successfully", gin.H{"user": user})
}

// Refresh handles POST /auth/refresh.
func (ac *AuthController) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	pair, svcErr := ac.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusOK, "Tokens refreshed successfully", gin.H{"tokens": pair})
}

// Logout handles POST /auth/logout.
func (ac *AuthController) Logout(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if svcErr := ac.authService.Logout(c.Request.Context(), userID); svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusOK, "Logged out successfully", nil)
}

// ForgotPassword handles POST /forgotpass.
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if svcErr := ac.authService.SendOtp(c.Request.Context(), req.Email); svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusOK, "OTP sent successfully", gin.H{"otp": "Check your email"})
}

// VerifyOtp handles POST /verify.
func (ac *AuthController) VerifyOtp(c *gin.Context) {
	var req VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if svcErr := ac.authService.VerifyOtp(c.Request.Context(), req.Email, req.Otp); svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusOK, "OTP verified successfully", nil)
}

// ResetPassword handles POST /resetpass.
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if svcErr := ac.authService.ResetPassword(c.Request.Context(), req.Email, req.Otp, req.Password); svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusOK, "Password reset successfully", nil)
}

// ProfileController handles public profile fetch and update.
type ProfileController struct {
	authService *services.AuthService
}

// NewProfileController creates a new ProfileController.
func NewProfileController(svc *services.AuthService) *ProfileController {
	return &ProfileController{authService: svc}
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	Name    string `json:"name" binding:"omitempty,max=255"`
	Phone   string `json:"phone" binding:"omitempty,max=20"`
	Address string `json:"address" binding:"omitempty,max=500"`
}

// Show handles GET /profile/:id.
func (pc *ProfileController) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, svcErr := pc.authService.GetProfile(c.Request.Context(), id)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusOK, "Profile fetched successfully", gin.H{"user": user})
}

// Update handles PUT /profile/:id.
func (pc *ProfileController) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, svcErr := pc.authService.UpdateProfile(c.Request.Context(), id, req.Name, req.Phone, req.Address)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusOK, "Profile updated successfully", gin.H{"user": user})
}
