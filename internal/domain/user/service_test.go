// internal/domain/user/service_test.go
package user

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-with-enough-length!",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Security: config.SecurityConfig{
			BcryptCost: 4,
		},
	}
	return NewService(db, cfg)
}

func register(t *testing.T, service *Service, email string) *AuthResponse {
	t.Helper()

	session, err := service.Register(&RegisterRequest{
		Email:    email,
		Password: "shopper42",
		Name:     "Test Shopper",
	})
	require.NoError(t, err)
	return session
}

func TestRegisterOpensSession(t *testing.T) {
	service := newTestService(t)

	session := register(t, service, "shopper@example.com")

	assert.NotZero(t, session.User.ID)
	assert.Equal(t, "shopper@example.com", session.User.Email)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.NotEqual(t, "shopper42", session.User.Password)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	service := newTestService(t)

	register(t, service, "shopper@example.com")

	_, err := service.Register(&RegisterRequest{
		Email:    "Shopper@Example.com",
		Password: "another99",
		Name:     "Second Account",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLogin(t *testing.T) {
	service := newTestService(t)
	register(t, service, "shopper@example.com")

	session, err := service.Login(&LoginRequest{
		Email:    "shopper@example.com",
		Password: "shopper42",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	require.NotNil(t, session.User.LastLoginAt)

	_, err = service.Login(&LoginRequest{
		Email:    "shopper@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = service.Login(&LoginRequest{
		Email:    "nobody@example.com",
		Password: "shopper42",
	})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRefreshSession(t *testing.T) {
	service := newTestService(t)
	session := register(t, service, "shopper@example.com")

	refreshed, err := service.RefreshSession(session.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Access tokens cannot be used as refresh tokens
	_, err = service.RefreshSession(session.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestUpdateProfile(t *testing.T) {
	service := newTestService(t)
	session := register(t, service, "shopper@example.com")

	name := "Renamed Shopper"
	storeID := uint(3)
	account, err := service.UpdateProfile(session.User.ID, &UpdateProfileRequest{
		Name:    &name,
		StoreID: &storeID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Shopper", account.Name)
	require.NotNil(t, account.StoreID)
	assert.Equal(t, uint(3), *account.StoreID)

	// Untouched fields survive a partial update
	assert.Equal(t, "shopper@example.com", account.Email)
}

func TestInactiveAccountCannotAuthenticate(t *testing.T) {
	service := newTestService(t)

	dormant := User{
		Email:    "dormant@example.com",
		Password: "irrelevant-hash",
		Name:     "Dormant Shopper",
		IsActive: false,
	}
	require.NoError(t, service.db.Create(&dormant).Error)

	var stored User
	require.NoError(t, service.db.Where("email = ?", "dormant@example.com").First(&stored).Error)
	assert.False(t, stored.IsActive)

	_, err := service.Login(&LoginRequest{
		Email:    "dormant@example.com",
		Password: "shopper42",
	})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = service.GetProfile(dormant.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetProfileUnknownUser(t *testing.T) {
	service := newTestService(t)

	_, err := service.GetProfile(404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
