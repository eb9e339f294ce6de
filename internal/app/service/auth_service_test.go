package service

import (
	"context"
	"testing"
	"time"

	"github.com/mkim/storehub-backend/internal/app/model"
	"github.com/mkim/storehub-backend/internal/app/repository"
	"github.com/mkim/storehub-backend/internal/db"
	"github.com/mkim/storehub-backend/internal/token"
	"github.com/mkim/storehub-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "auth-service-test-secret"

func setupAuthService(t *testing.T) (AuthService, *token.MemoryBlocklist, *gorm.DB) {
	t.Helper()

	conn, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(conn) })

	bl := token.NewMemoryBlocklist()
	userRepo := repository.NewUserRepository(conn)
	svc := NewAuthService(userRepo, bl, testJWTSecret, 15*time.Minute, 7*24*time.Hour)
	return svc, bl, conn
}

func TestAuthService_Register(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	user, err := svc.Register("alice", "password123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	_, err := svc.Register("alice", "password123")
	require.NoError(t, err)

	_, err = svc.Register("alice", "different-password")
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	registered, err := svc.Register("bob", "password123")
	require.NoError(t, err)

	user, tokens, err := svc.Login("bob", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	require.NotNil(t, tokens)

	claims, err := util.ValidateToken(tokens.AccessToken, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, string(model.RoleUser), claims.Role)
	assert.True(t, claims.Fresh)

	refreshClaims, err := util.ValidateToken(tokens.RefreshToken, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, util.TokenTypeRefresh, refreshClaims.TokenType)
}

// Unknown username and wrong password must be indistinguishable to callers.
func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	_, err := svc.Register("carol", "password123")
	require.NoError(t, err)

	_, _, errWrongPassword := svc.Login("carol", "wrong-password")
	_, _, errNoSuchUser := svc.Login("nobody", "password123")

	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errNoSuchUser, ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword, errNoSuchUser)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	svc, bl, _ := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Register("dave", "password123")
	require.NoError(t, err)
	_, tokens, err := svc.Login("dave", "password123")
	require.NoError(t, err)

	refreshClaims, err := util.ValidateToken(tokens.RefreshToken, testJWTSecret)
	require.NoError(t, err)

	accessToken, err := svc.Refresh(ctx, refreshClaims)
	require.NoError(t, err)

	// New access token is valid but not fresh
	claims, err := util.ValidateToken(accessToken, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, util.TokenTypeAccess, claims.TokenType)
	assert.False(t, claims.Fresh)

	// The redeemed refresh token is now revoked: single use
	revoked, err := bl.IsRevoked(ctx, refreshClaims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	svc, bl, _ := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Register("erin", "password123")
	require.NoError(t, err)
	_, tokens, err := svc.Login("erin", "password123")
	require.NoError(t, err)

	claims, err := util.ValidateToken(tokens.AccessToken, testJWTSecret)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	revoked, err := bl.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_GetAndDeleteUser(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	user, err := svc.Register("frank", "password123")
	require.NoError(t, err)

	fetched, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "frank", fetched.Username)

	require.NoError(t, svc.DeleteUser(user.ID))

	_, err = svc.GetUserByID(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = svc.DeleteUser(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
