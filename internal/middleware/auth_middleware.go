package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mkim/storehub-backend/internal/app/model"
	"github.com/mkim/storehub-backend/internal/errors"
	"github.com/mkim/storehub-backend/internal/token"
	"github.com/mkim/storehub-backend/pkg/util"
)

// Context keys for authenticated request state
const (
	UserIDKey = "user_id"
	RoleKey   = "user_role"
	ClaimsKey = "token_claims"
)

type AuthMiddleware struct {
	jwtSecret string
	blocklist token.Blocklist
}

func NewAuthMiddleware(jwtSecret string, blocklist token.Blocklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		blocklist: blocklist,
	}
}

// Authenticate validates an access-class bearer token. Each failure cause
// maps to its own stable error code so clients can branch on it.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return m.authenticate(util.TokenTypeAccess)
}

// AuthenticateRefresh validates a refresh-class bearer token. Used only by
// the refresh endpoint.
func (m *AuthMiddleware) AuthenticateRefresh() gin.HandlerFunc {
	return m.authenticate(util.TokenTypeRefresh)
}

func (m *AuthMiddleware) authenticate(wantType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Request does not contain an access token")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(parts[1], m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "The token has expired")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Signature verification failed")
			}
			c.Abort()
			return
		}

		if claims.TokenType != wantType {
			log.Warn("Wrong token class", map[string]interface{}{
				"path": c.Request.URL.Path,
				"want": wantType,
				"got":  claims.TokenType,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Wrong token type for this endpoint")
			c.Abort()
			return
		}

		revoked, err := m.blocklist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			log.Error("Failed to check token revocation", err, map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.InternalError(c, "")
			c.Abort()
			return
		}
		if revoked {
			log.Warn("Revoked token presented", map[string]interface{}{
				"path":    c.Request.URL.Path,
				"user_id": claims.UserID,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenRevoked, "The token has been revoked")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, model.UserRole(claims.Role))
		c.Set(ClaimsKey, claims)

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": claims.UserID,
			"role":    claims.Role,
			"fresh":   claims.Fresh,
		})

		c.Next()
	}
}

// RequireFresh rejects tokens minted by refresh rotation. Runs after
// Authenticate.
func (m *AuthMiddleware) RequireFresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		claims, ok := GetClaims(c)
		if !ok {
			errors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !claims.Fresh {
			log.Warn("Non-fresh token on fresh-only endpoint", map[string]interface{}{
				"path":    c.Request.URL.Path,
				"user_id": claims.UserID,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenNotFresh, "The token is not fresh")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireRole checks if user has one of the required roles
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		userRole, exists := c.Get(RoleKey)
		if !exists {
			log.Warn("Role information not found in context", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzRoleNotFound, "Role information not found")
			c.Abort()
			return
		}

		role := userRole.(model.UserRole)
		userID, _ := GetUserID(c)

		for _, r := range roles {
			if role == model.UserRole(r) {
				c.Next()
				return
			}
		}

		log.Warn("Insufficient permissions", map[string]interface{}{
			"user_id":        userID,
			"user_role":      role,
			"required_roles": roles,
			"path":           c.Request.URL.Path,
		})

		if len(roles) == 1 && roles[0] == string(model.RoleAdmin) {
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzAdminOnly, "Admin privilege required")
		} else {
			errors.Forbidden(c, "")
		}
		c.Abort()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetUserRole extracts user role from context
func GetUserRole(c *gin.Context) (model.UserRole, bool) {
	role, exists := c.Get(RoleKey)
	if !exists {
		return "", false
	}
	return role.(model.UserRole), true
}

// GetClaims extracts the validated token claims from context
func GetClaims(c *gin.Context) (*util.Claims, bool) {
	claims, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	return claims.(*util.Claims), true
}
