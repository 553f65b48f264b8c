package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devlinkhq/devlink-api/internal/service/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeJWTService validates exactly one token string.
type fakeJWTService struct {
	validToken  string
	userID      uuid.UUID
	validateErr error
}

func (f *fakeJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return f.validToken, nil
}

func (f *fakeJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	if token != f.validToken {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: f.userID}, nil
}

func runAuthenticated(t *testing.T, jwtService auth.JWTService, header string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	t.Helper()

	var (
		gotUserID uuid.UUID
		gotOK     bool
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()

	NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(rec, req)
	return rec, gotUserID, gotOK
}

func TestAuthenticateValidToken(t *testing.T) {
	userID := uuid.New()
	svc := &fakeJWTService{validToken: "good-token", userID: userID}

	rec, gotUserID, gotOK := runAuthenticated(t, svc, "Bearer good-token")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotOK, "The user ID should be placed in the request context")
	assert.Equal(t, userID, gotUserID)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	svc := &fakeJWTService{validToken: "good-token", userID: uuid.New()}

	rec, _, gotOK := runAuthenticated(t, svc, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, gotOK, "The handler should not run without credentials")
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	svc := &fakeJWTService{validToken: "good-token", userID: uuid.New()}

	for _, header := range []string{"good-token", "Basic good-token", "Bearer"} {
		rec, _, _ := runAuthenticated(t, svc, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code,
			"Header %q should be rejected", header)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	svc := &fakeJWTService{validToken: "good-token", userID: uuid.New()}

	rec, _, _ := runAuthenticated(t, svc, "Bearer wrong-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	svc := &fakeJWTService{validateErr: auth.ErrExpiredToken}

	rec, _, _ := runAuthenticated(t, svc, "Bearer any-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token expired")
}

func TestAuthenticateValidationFailure(t *testing.T) {
	svc := &fakeJWTService{validateErr: context.DeadlineExceeded}

	rec, _, _ := runAuthenticated(t, svc, "Bearer any-token")
	assert.Equal(t, http.StatusInternalServerError, rec.Code,
		"Unexpected validation failures are not the client's fault")
}
