package service

import (
	"testing"
	"time"

	"github.com/casepix/casepix-backend/config"
	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/internal/app/repository"
	"github.com/casepix/casepix-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	jwtCfg := config.JWTConfig{
		Secret:             "test-secret-for-auth-service",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}
	return NewAuthService(userRepo, jwtCfg)
}

func TestAuthService_Register(t *testing.T) {
	authService := setupAuthTest(t)

	result, err := authService.Register(RegisterInput{
		Email:    "shopper@example.com",
		Password: "password123",
		Name:     "Shopper",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotZero(t, result.User.ID)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)

	// Registration never grants elevated roles.
	assert.Equal(t, model.RoleUser, result.User.Role)
	assert.NotEqual(t, "password123", result.User.PasswordHash)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService := setupAuthTest(t)

	_, err := authService.Register(RegisterInput{
		Email:    "shopper@example.com",
		Password: "password123",
		Name:     "Shopper",
	})
	require.NoError(t, err)

	_, err = authService.Register(RegisterInput{
		Email:    "shopper@example.com",
		Password: "different456",
		Name:     "Impostor",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestAuthService_Login(t *testing.T) {
	authService := setupAuthTest(t)

	_, err := authService.Register(RegisterInput{
		Email:    "shopper@example.com",
		Password: "password123",
		Name:     "Shopper",
	})
	require.NoError(t, err)

	result, err := authService.Login(LoginInput{
		Email:    "shopper@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "shopper@example.com", result.User.Email)
	assert.NotEmpty(t, result.Tokens.AccessToken)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	authService := setupAuthTest(t)

	_, err := authService.Register(RegisterInput{
		Email:    "shopper@example.com",
		Password: "password123",
		Name:     "Shopper",
	})
	require.NoError(t, err)

	_, err = authService.Login(LoginInput{
		Email:    "shopper@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email gets the same error, not a distinguishable one.
	_, err = authService.Login(LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RefreshToken(t *testing.T) {
	authService := setupAuthTest(t)

	result, err := authService.Register(RegisterInput{
		Email:    "shopper@example.com",
		Password: "password123",
		Name:     "Shopper",
	})
	require.NoError(t, err)

	tokens, err := authService.RefreshToken(result.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	_, err = authService.RefreshToken("bogus.refresh.token")
	assert.Error(t, err)
}

func TestAuthService_GetProfile(t *testing.T) {
	authService := setupAuthTest(t)

	result, err := authService.Register(RegisterInput{
		Email:    "shopper@example.com",
		Password: "password123",
		Name:     "Shopper",
	})
	require.NoError(t, err)

	user, err := authService.GetProfile(result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shopper", user.Name)

	_, err = authService.GetProfile(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
