package service

import (
	"context"
	"time"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/auth"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/config"
	apperrors "github.com/FFMGAMER/FFM-Gen-Bot/pkg/util/errorutil"
)

// AuthService authenticates the configured admin against a bcrypt hash and
// issues API tokens. There is no user database; non-admin callers of the
// HTTP API claim with a user-scoped token minted by the admin.
type AuthService struct {
	tokenMgr      *auth.TokenManager
	adminUsername string
	adminHash     string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		tokenMgr:      auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		adminUsername: cfg.AdminUsername,
		adminHash:     cfg.AdminPasswordHash,
	}
}

// TokenManager exposes the underlying manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login verifies the admin credential pair and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if s.adminHash == "" {
		return "", time.Time{}, apperrors.NewUnauthorized("admin login not configured")
	}
	if username != s.adminUsername {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(s.adminHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(username, auth.RoleAdmin)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, expiresAt, nil
}

// MintUserToken issues a user-scoped token for a platform identity. Admin
// only; lets automation claim on behalf of a known user id.
func (s *AuthService) MintUserToken(ctx context.Context, userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, apperrors.NewValidationError("user_id is required", nil)
	}
	token, expiresAt, err := s.tokenMgr.GenerateToken(userID, auth.RoleUser)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, expiresAt, nil
}
