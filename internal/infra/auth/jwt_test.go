package auth_test

import (
	"context"
	"testing"
	"time"

	"mindhaven/internal/infra/auth"
	"mindhaven/internal/infra/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService(secret string) *auth.TokenService {
	return auth.NewTokenService(secret, logger.NewLogger(context.Background(), false))
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	service := newTokenService("test-secret")

	token, err := service.Issue("user-42", time.Minute)
	require.NoError(t, err)

	userID, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	service := newTokenService("test-secret")

	_, err := service.Verify("not-a-token")
	assert.ErrorIs(t, err, auth.ErrAuthenticationFailed)

	_, err = service.Verify("")
	assert.ErrorIs(t, err, auth.ErrAuthenticationFailed)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := newTokenService("secret-a")
	verifier := newTokenService("secret-b")

	token, err := issuer.Issue("user-42", time.Minute)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, auth.ErrAuthenticationFailed)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	service := newTokenService("test-secret")

	token, err := service.Issue("user-42", -time.Minute)
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.ErrorIs(t, err, auth.ErrAuthenticationFailed)
}
