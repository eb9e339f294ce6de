package service

import (
	"context"
	"errors"
	"time"

	"github.com/mkim/storehub-backend/internal/app/model"
	"github.com/mkim/storehub-backend/internal/app/repository"
	"github.com/mkim/storehub-backend/internal/token"
	"github.com/mkim/storehub-backend/pkg/logger"
	"github.com/mkim/storehub-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrUserNotFound          = errors.New("user not found")
)

type AuthService interface {
	Register(username, password string) (*model.User, error)
	Login(username, password string) (*model.User, *util.TokenPair, error)
	// Refresh revokes the redeemed refresh token (single use) and mints a
	// non-fresh access token for the same identity.
	Refresh(ctx context.Context, claims *util.Claims) (string, error)
	// Logout revokes the presented access token's identifier.
	Logout(ctx context.Context, claims *util.Claims) error
	GetUserByID(id uint) (*model.User, error)
	DeleteUser(id uint) error
}

type authService struct {
	userRepo      repository.UserRepository
	blocklist     token.Blocklist
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	blocklist token.Blocklist,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		blocklist:     blocklist,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *authService) Register(username, password string) (*model.User, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"username": username,
	})

	existing, err := s.userRepo.FindByUsername(username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"username": username,
		})
		return nil, err
	}
	if existing != nil {
		logger.Warn("Registration failed: username already exists", map[string]interface{}{
			"username": username,
		})
		return nil, ErrUsernameAlreadyExists
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"username": username,
		})
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": username,
	})
	return user, nil
}

// Login deliberately folds "no such user" and "wrong password" into one
// error so callers cannot probe which usernames exist.
func (s *authService) Login(username, password string) (*model.User, *util.TokenPair, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"username": username,
			})
			return nil, nil, ErrInvalidCredentials
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"username": username,
		})
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"username": username,
			"user_id":  user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": username,
		"role":     user.Role,
	})
	return user, tokens, nil
}

func (s *authService) Refresh(ctx context.Context, claims *util.Claims) (string, error) {
	// Rotate first: the redeemed refresh token must never work twice.
	if err := s.blocklist.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		logger.Error("Failed to revoke refresh token", err, map[string]interface{}{
			"user_id": claims.UserID,
		})
		return "", err
	}

	accessToken, err := util.GenerateAccessToken(claims.UserID, claims.Role, false, s.jwtSecret, s.accessExpiry)
	if err != nil {
		logger.Error("Failed to generate access token on refresh", err, map[string]interface{}{
			"user_id": claims.UserID,
		})
		return "", err
	}

	logger.Info("Access token refreshed", map[string]interface{}{
		"user_id": claims.UserID,
	})
	return accessToken, nil
}

func (s *authService) Logout(ctx context.Context, claims *util.Claims) error {
	if err := s.blocklist.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		logger.Error("Failed to revoke token on logout", err, map[string]interface{}{
			"user_id": claims.UserID,
		})
		return err
	}

	logger.Info("User logged out", map[string]interface{}{
		"user_id": claims.UserID,
	})
	return nil
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return user, nil
}

func (s *authService) DeleteUser(id uint) error {
	if _, err := s.GetUserByID(id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("User deleted", map[string]interface{}{
		"user_id": id,
	})
	return nil
}
