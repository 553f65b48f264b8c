package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/devlinkhq/devlink-api/internal/domain"
	"github.com/devlinkhq/devlink-api/internal/platform/github"
	"github.com/devlinkhq/devlink-api/internal/service/auth"
	"github.com/devlinkhq/devlink-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"profile not found", store.ErrProfileNotFound, http.StatusBadRequest},
		{"entry not found", store.ErrEntryNotFound, http.StatusBadRequest},
		{"wrapped profile not found",
			fmt.Errorf("%w: malformed user ID", store.ErrProfileNotFound),
			http.StatusBadRequest},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"github user not found", github.ErrUserNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"domain validation", domain.ErrEmptyStatus, http.StatusBadRequest},
		{"wrapped domain validation",
			fmt.Errorf("saving profile: %w", domain.ErrEmptyTitle),
			http.StatusBadRequest},
		{"validation error type",
			domain.NewValidationError("exp_id", "has invalid format", domain.ErrInvalidID),
			http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, "No profile for this user", GetSafeErrorMessage(store.ErrProfileNotFound))
	assert.Equal(t, "Entry not found", GetSafeErrorMessage(store.ErrEntryNotFound))
	assert.Equal(t, "No github profile found", GetSafeErrorMessage(github.ErrUserNotFound))

	// Domain validation messages are fixed strings and surface verbatim,
	// stripped of the class prefix.
	assert.Equal(t, "status cannot be empty", GetSafeErrorMessage(domain.ErrEmptyStatus))
	assert.Equal(t, "exp_id has invalid format", GetSafeErrorMessage(
		domain.NewValidationError("exp_id", "has invalid format", domain.ErrInvalidID)))

	// Unknown errors never leak their message.
	internal := errors.New("pq: connection reset while talking to 10.0.0.5")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(internal))
}

func TestSanitizeValidationError(t *testing.T) {
	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag")
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}
