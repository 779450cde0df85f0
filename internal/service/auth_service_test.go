package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/auth"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/config"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := auth.HashPassword("hunter2", bcrypt.MinCost)
	require.NoError(t, err)

	return NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 15,
		AdminUsername:         "admin",
		AdminPasswordHash:     hash,
	})
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestAuthService(t)

	token, _, err := svc.Login(context.Background(), "admin", "hunter2")
	require.NoError(t, err)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.SubjectID)
	require.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "admin", "wrong")
	requireCode(t, err, "UNAUTHORIZED")

	_, _, err = svc.Login(ctx, "root", "hunter2")
	requireCode(t, err, "UNAUTHORIZED")
}

func TestLoginUnconfigured(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{JWTSecret: "test-secret"})

	_, _, err := svc.Login(context.Background(), "admin", "hunter2")
	requireCode(t, err, "UNAUTHORIZED")
}

func TestMintUserToken(t *testing.T) {
	svc := newTestAuthService(t)

	token, _, err := svc.MintUserToken(context.Background(), "discord-123")
	require.NoError(t, err)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "discord-123", claims.SubjectID)
	require.Equal(t, auth.RoleUser, claims.Role)

	_, _, err = svc.MintUserToken(context.Background(), "")
	requireCode(t, err, "VALIDATION_FAILED")
}
