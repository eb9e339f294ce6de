package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkim/storehub-backend/internal/app/model"
	apperrors "github.com/mkim/storehub-backend/internal/errors"
	"github.com/mkim/storehub-backend/internal/token"
	"github.com/mkim/storehub-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func setupAuthRouter(bl token.Blocklist) (*gin.Engine, *AuthMiddleware) {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(testSecret, bl)

	r := gin.New()
	r.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/fresh-only", m.Authenticate(), m.RequireFresh(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/admin-only", m.Authenticate(), m.RequireRole(string(model.RoleAdmin)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.POST("/refresh-only", m.AuthenticateRefresh(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, m
}

func doRequest(r *gin.Engine, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	r, _ := setupAuthRouter(token.NewMemoryBlocklist())

	w := doRequest(r, http.MethodGet, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.AuthAuthorizationRequired, errorCode(t, w))
}

func TestAuthenticate_BadHeaderFormat(t *testing.T) {
	r, _ := setupAuthRouter(token.NewMemoryBlocklist())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.AuthTokenInvalid, errorCode(t, w))
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	r, _ := setupAuthRouter(token.NewMemoryBlocklist())

	w := doRequest(r, http.MethodGet, "/protected", "not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.AuthTokenInvalid, errorCode(t, w))
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	r, _ := setupAuthRouter(token.NewMemoryBlocklist())

	expired, err := util.GenerateAccessToken(1, "user", true, testSecret, -time.Minute)
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/protected", expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.AuthTokenExpired, errorCode(t, w))
}

func TestAuthenticate_ValidToken(t *testing.T) {
	r, _ := setupAuthRouter(token.NewMemoryBlocklist())

	tokenString, err := util.GenerateAccessToken(42, "user", true, testSecret, time.Minute)
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/protected", tokenString)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestAuthenticate_WrongTokenClass(t *testing.T) {
	r, _ := setupAuthRouter(token.NewMemoryBlocklist())

	pair, err := util.GenerateTokenPair(1, "user", testSecret, time.Minute, time.Hour)
	require.NoError(t, err)

	// Refresh token on an access-protected route
	w := doRequest(r, http.MethodGet, "/protected", pair.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.AuthTokenInvalid, errorCode(t, w))

	// Access token on the refresh route
	w = doRequest(r, http.MethodPost, "/refresh-only", pair.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.AuthTokenInvalid, errorCode(t, w))

	// And each token works where it belongs
	w = doRequest(r, http.MethodGet, "/protected", pair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(r, http.MethodPost, "/refresh-only", pair.RefreshToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticate_RevokedToken(t *testing.T) {
	bl := token.NewMemoryBlocklist()
	r, _ := setupAuthRouter(bl)

	tokenString, err := util.GenerateAccessToken(1, "user", true, testSecret, time.Minute)
	require.NoError(t, err)

	claims, err := util.ValidateToken(tokenString, testSecret)
	require.NoError(t, err)
	require.NoError(t, bl.Revoke(context.Background(), claims.ID, time.Minute))

	w := doRequest(r, http.MethodGet, "/protected", tokenString)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.AuthTokenRevoked, errorCode(t, w))
}

func TestRequireFresh(t *testing.T) {
	r, _ := setupAuthRouter(token.NewMemoryBlocklist())

	fresh, err := util.GenerateAccessToken(1, "user", true, testSecret, time.Minute)
	require.NoError(t, err)
	stale, err := util.GenerateAccessToken(1, "user", false, testSecret, time.Minute)
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/fresh-only", fresh)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/fresh-only", stale)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.AuthTokenNotFresh, errorCode(t, w))
}

func TestRequireRole(t *testing.T) {
	r, _ := setupAuthRouter(token.NewMemoryBlocklist())

	adminToken, err := util.GenerateAccessToken(1, string(model.RoleAdmin), true, testSecret, time.Minute)
	require.NoError(t, err)
	userToken, err := util.GenerateAccessToken(2, string(model.RoleUser), true, testSecret, time.Minute)
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/admin-only", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/admin-only", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apperrors.AuthzAdminOnly, errorCode(t, w))
}
