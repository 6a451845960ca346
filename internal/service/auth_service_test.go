package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidgg090/paymentAPI/internal/errors"
)

func TestAuth_RegisterLoginAuthenticate(t *testing.T) {
	store := newFakeStore()
	svc := NewAuthService(store, "test-secret", testLogger())

	user, err := svc.Register("alice", "s3cret")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "s3cret", user.Password)

	token, err := svc.Login("alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)

	// The issued token is persisted for audit attribution.
	stored, err := store.Users().GetAccessToken(token.AccessToken)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, user.ID, stored.UserID)

	principal, err := svc.Authenticate(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, "alice", principal.Username)
}

func TestAuth_LoginRejectsBadCredentials(t *testing.T) {
	store := newFakeStore()
	svc := NewAuthService(store, "test-secret", testLogger())

	_, err := svc.Register("alice", "s3cret")
	require.NoError(t, err)

	_, err = svc.Login("alice", "wrong")
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.Unauthorized, appErr.Code)

	_, err = svc.Login("nobody", "s3cret")
	require.Error(t, err)
	appErr, ok = err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.Unauthorized, appErr.Code)
}

func TestAuth_AuthenticateRejectsForgedTokens(t *testing.T) {
	store := newFakeStore()
	svc := NewAuthService(store, "test-secret", testLogger())

	_, err := svc.Register("alice", "s3cret")
	require.NoError(t, err)

	_, err = svc.Authenticate("not-a-jwt")
	require.Error(t, err)

	// Token signed with a different secret must be rejected.
	other := NewAuthService(store, "other-secret", testLogger())
	token, err := other.Login("alice", "s3cret")
	require.NoError(t, err)

	_, err = svc.Authenticate(token.AccessToken)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.Unauthorized, appErr.Code)
}
