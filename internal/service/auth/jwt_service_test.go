package auth

import (
	"context"
	"testing"
	"time"

	"github.com/devlinkhq/devlink-api/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "thisisasecretkeythatis32charslong!!"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	}
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	_, err := NewJWTService(config.AuthConfig{
		JWTSecret:            "tooshort",
		TokenLifetimeMinutes: 60,
	})
	assert.Error(t, err, "A secret under 32 characters should be rejected")
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID, "Claims should carry the issuing user's ID")
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID, "Each token should carry a unique token ID")
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestValidateTokenExpired(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)

	ctx := context.Background()
	userID := uuid.New()

	// Issue a token in the past, then validate from "now". The lifetime is
	// 60 minutes and the clock skew allowance 2 minutes, so a token issued
	// 90 minutes ago must be expired.
	issuedAt := time.Now().Add(-90 * time.Minute)
	impl.timeFunc = func() time.Time { return issuedAt }

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	impl.timeFunc = time.Now
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWithinClockSkew(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)

	ctx := context.Background()

	// Expired by less than the 2-minute skew allowance: still accepted.
	issuedAt := time.Now().Add(-61 * time.Minute)
	impl.timeFunc = func() time.Time { return issuedAt }

	token, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	impl.timeFunc = time.Now
	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err, "Tokens inside the skew allowance should validate")
}

func TestValidateTokenWrongKey(t *testing.T) {
	issuer, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	verifier, err := NewJWTService(config.AuthConfig{
		JWTSecret:            "anentirelydifferentsecretthatis32chars",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	ctx := context.Background()
	token, err := issuer.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenMalformed(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
