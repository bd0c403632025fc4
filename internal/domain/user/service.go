// internal/domain/user/service.go
package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles account business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	jwtManager      *auth.JWTManager
	passwordManager *auth.PasswordManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		jwtManager:      auth.NewJWTManager(cfg),
		passwordManager: auth.NewPasswordManager(cfg),
	}
}

// RegisterRequest represents registration data
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	StoreID  *uint  `json:"store_id"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Avatar  *string `json:"avatar"`
	StoreID *uint   `json:"store_id"`
}

// AuthResponse carries the session tokens plus the account record
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register creates a new account and opens a session
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing User
	if result := s.db.Where("email = ?", email).First(&existing); result.Error == nil {
		return nil, fmt.Errorf("%w: account with email %s already exists", apperrors.ErrValidation, email)
	}

	hash, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	account := User{
		Email:    email,
		Password: hash,
		Name:     req.Name,
		Phone:    req.Phone,
		StoreID:  req.StoreID,
		IsActive: true,
	}

	if err := s.db.Create(&account).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to create account: %v", apperrors.ErrRemoteService, err)
	}

	return s.openSession(&account)
}

// Login verifies credentials and opens a session
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var account User
	result := s.db.Where("email = ? AND is_active = ?", email, true).First(&account)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: failed to look up account: %v", apperrors.ErrRemoteService, result.Error)
	}

	if err := s.passwordManager.VerifyPassword(req.Password, account.Password); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	now := time.Now().UTC()
	s.db.Model(&account).Update("last_login_at", now)
	account.LastLoginAt = &now

	return s.openSession(&account)
}

// RefreshSession exchanges a refresh token for a new token pair
func (s *Service) RefreshSession(refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	account, err := s.GetProfile(claims.UserID)
	if err != nil {
		return nil, err
	}

	return s.openSession(account)
}

// GetProfile retrieves the account for a user ID
func (s *Service) GetProfile(userID uint) (*User, error) {
	var account User
	result := s.db.Where("id = ? AND is_active = ?", userID, true).First(&account)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("%w: failed to retrieve account: %v", apperrors.ErrRemoteService, result.Error)
	}
	return &account, nil
}

// UpdateProfile updates mutable account fields
func (s *Service) UpdateProfile(userID uint, req *UpdateProfileRequest) (*User, error) {
	account, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.StoreID != nil {
		updates["store_id"] = *req.StoreID
	}

	if len(updates) == 0 {
		return account, nil
	}

	if err := s.db.Model(account).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to update profile: %v", apperrors.ErrRemoteService, err)
	}

	return s.GetProfile(userID)
}

func (s *Service) openSession(account *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:         account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
