package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/pkg/apperrors"
)

func newAuthEnv(t *testing.T) (*testEnv, AuthService, *auth.TokenManager) {
	e := newTestEnv(t)
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	require.NoError(t, e.db.Model(e.owner).Update("password_hash", hash).Error)

	tokens := auth.NewTokenManager("test-signing-key", 60)
	return e, NewAuthService(e.userRepo, tokens), tokens
}

func TestLoginIssuesValidToken(t *testing.T) {
	e, svc, tokens := newAuthEnv(t)

	resp, err := svc.Login(e.ctx(), e.db, &dto.LoginRequest{Email: "alice@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, e.owner.ID, resp.UserID)
	assert.Equal(t, "alice", resp.Username)

	claims, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, e.owner.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, string(models.UserRoleAdmin), claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	e, svc, _ := newAuthEnv(t)

	_, err := svc.Login(e.ctx(), e.db, &dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	e, svc, _ := newAuthEnv(t)

	_, err := svc.Login(e.ctx(), e.db, &dto.LoginRequest{Email: "ghost@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials, "unknown email is indistinguishable from wrong password")
}

func TestTokenTamperingRejected(t *testing.T) {
	e, svc, _ := newAuthEnv(t)

	resp, err := svc.Login(e.ctx(), e.db, &dto.LoginRequest{Email: "alice@example.com", Password: "s3cret"})
	require.NoError(t, err)

	other := auth.NewTokenManager("different-key", 60)
	_, err = other.Parse(resp.Token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	tokens := auth.NewTokenManager("test-signing-key", 60)
	_, err = tokens.Parse(resp.Token + "x")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
