package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ahsan-alam-500/tonycustom/models"
	"github.com/ahsan-alam-500/tonycustom/repository"
)

// OtpTTL is how long a password-reset code stays valid.
const OtpTTL = 10 * time.Minute

// AuthService handles registration, login, token rotation, and the
// OTP-based password reset flow.
type AuthService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	tokens   *TokenService
	mailer   EmailSender
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(db *gorm.DB, tokens *TokenService, mailer EmailSender, logger *zap.Logger) *AuthService {
	return &AuthService{
		db:       db,
		userRepo: repository.NewUserRepository(db),
		tokens:   tokens,
		mailer:   mailer,
		logger:   logger,
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, name, email, password, phone string) (*models.User, *ServiceError) {
	var user *models.User

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := repository.NewUserRepository(tx)

		_, err := txRepo.FindByEmail(ctx, email)
		if err == nil {
			return errEmailTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user = &models.User{
			ID:       uuid.New(),
			Name:     name,
			Email:    email,
			Password: string(hashed),
			Phone:    phone,
			Role:     "customer",
		}
		return txRepo.Create(ctx, user)
	})
	if txErr != nil {
		if errors.Is(txErr, errEmailTaken) {
			return nil, &ServiceError{StatusCode: http.StatusConflict, Message: "Email already exists"}
		}
		s.logger.Error("Failed to register user", zap.Error(txErr))
		return nil, NewInternalError("Failed to register")
	}
	return user, nil
}

var errEmailTaken = errors.New("email already exists")

// Login verifies credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, *ServiceError) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"}
	}

	pair, tokenID, err := s.tokens.GenerateTokenPair(user.ID.String(), user.Email, user.Role)
	if err != nil {
		s.logger.Error("Failed to generate tokens", zap.Error(err))
		return nil, nil, NewInternalError("Failed to log in")
	}

	if err := s.userRepo.SaveRefreshToken(ctx, &models.RefreshToken{
		TokenID:   tokenID,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(RefreshTokenTTL),
	}); err != nil {
		s.logger.Error("Failed to persist refresh token", zap.Error(err))
		return nil, nil, NewInternalError("Failed to log in")
	}

	return user, pair, nil
}

// Refresh rotates a refresh token: the old jti is revoked and a new pair
// issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, *ServiceError) {
	claims, err := s.tokens.ValidateToken(refreshToken, "refresh")
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid refresh token"}
	}

	jti, _ := claims["jti"].(string)
	stored, err := s.userRepo.FindRefreshToken(ctx, jti)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Refresh token revoked or expired"}
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "User no longer exists"}
	}

	if err := s.userRepo.RevokeRefreshToken(ctx, jti); err != nil {
		s.logger.Error("Failed to revoke refresh token", zap.Error(err))
		return nil, NewInternalError("Failed to refresh tokens")
	}

	pair, tokenID, err := s.tokens.GenerateTokenPair(user.ID.String(), user.Email, user.Role)
	if err != nil {
		s.logger.Error("Failed to generate tokens", zap.Error(err))
		return nil, NewInternalError("Failed to refresh tokens")
	}

	if err := s.userRepo.SaveRefreshToken(ctx, &models.RefreshToken{
		TokenID:   tokenID,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(RefreshTokenTTL),
	}); err != nil {
		s.logger.Error("Failed to persist refresh token", zap.Error(err))
		return nil, NewInternalError("Failed to refresh tokens")
	}

	return pair, nil
}

// Logout revokes every refresh token of the user.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) *ServiceError {
	if err := s.userRepo.RevokeUserTokens(ctx, userID); err != nil {
		s.logger.Error("Failed to revoke tokens", zap.Error(err))
		return NewInternalError("Failed to log out")
	}
	return nil
}

// Me loads the authenticated user's profile.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, *ServiceError) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("User not found")
		}
		s.logger.Error("Failed to fetch user", zap.Error(err))
		return nil, NewInternalError("Failed to fetch profile")
	}
	return user, nil
}

// SendOtp generates a reset code, stores it with an expiry, and emails
// it to the user.
func (s *AuthService) SendOtp(ctx context.Context, email string) *ServiceError {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("User not found")
		}
		s.logger.Error("Failed to look up user", zap.Error(err))
		return NewInternalError("Failed to send OTP")
	}

	otp := GenerateRandomCode(4)
	expires := time.Now().Add(OtpTTL)
	user.Otp = otp
	user.OtpExpiresAt = &expires

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to store OTP", zap.Error(err))
		return NewInternalError("Failed to send OTP")
	}

	if err := s.mailer.SendOtpEmail(user.Email, otp); err != nil {
		return NewInternalError("Failed to send OTP email")
	}
	return nil
}

// VerifyOtp checks a submitted reset code.
func (s *AuthService) VerifyOtp(ctx context.Context, email, otp string) *ServiceError {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return NewNotFoundError("User not found")
	}
	if user.Otp == "" || user.Otp != otp {
		return &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid OTP"}
	}
	if user.OtpExpiresAt == nil || time.Now().After(*user.OtpExpiresAt) {
		return &ServiceError{StatusCode: http.StatusUnauthorized, Message: "OTP expired"}
	}
	return nil
}

// ResetPassword sets a new password after verifying the reset code, then
// clears the code and revokes existing sessions.
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, password string) *ServiceError {
	if svcErr := s.VerifyOtp(ctx, email, otp); svcErr != nil {
		return svcErr
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return NewNotFoundError("User not found")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return NewInternalError("Failed to reset password")
	}

	user.Password = string(hashed)
	user.Otp = ""
	user.OtpExpiresAt = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update password", zap.Error(err))
		return NewInternalError("Failed to reset password")
	}

	if err := s.userRepo.RevokeUserTokens(ctx, user.ID); err != nil {
		s.logger.Warn("Failed to revoke sessions after reset", zap.Error(err))
	}
	return nil
}

// GetProfile loads a user profile by id.
func (s *AuthService) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, *ServiceError) {
	return s.Me(ctx, id)
}

// UpdateProfile applies the editable profile fields.
func (s *AuthService) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone, address string) (*models.User, *ServiceError) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("User not found")
		}
		s.logger.Error("Failed to load user", zap.Error(err))
		return nil, NewInternalError("Failed to update profile")
	}

	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = phone
	}
	if address != "" {
		user.Address = address
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update profile", zap.Error(err))
		return nil, NewInternalError("Failed to update profile")
	}
	return user, nil
}
