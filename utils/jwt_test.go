package utils

import (
	"testing"
	"time"

	"horizon/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withJWTSecret(t *testing.T, secret string) {
	t.Helper()
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = secret
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })
}

func TestAdminTokenRoundTrip(t *testing.T) {
	withJWTSecret(t, "test-secret")

	token, err := GenerateAdminToken("ops@horizon", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, err := ExtractAdminSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@horizon", sub)
}

func TestAdminTokenFollowsConfiguredSecret(t *testing.T) {
	withJWTSecret(t, "first-secret")
	token, err := GenerateAdminToken("ops@horizon", time.Minute)
	require.NoError(t, err)

	// Rotating the secret invalidates previously minted tokens.
	config.AppConfig.JWTSecret = "second-secret"
	_, err = ExtractAdminSubject(token)
	assert.Error(t, err)
}

func TestExpiredAdminTokenRejected(t *testing.T) {
	withJWTSecret(t, "test-secret")

	token, err := GenerateAdminToken("ops@horizon", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractAdminSubject(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	withJWTSecret(t, "test-secret")

	_, err := ExtractAdminSubject("not-a-token")
	assert.Error(t, err)
}

func TestHashTokenIsStableAndHex(t *testing.T) {
	a := HashToken("abc")
	b := HashToken("abc")
	c := HashToken("abd")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
