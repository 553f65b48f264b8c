package api

import (
	"net/http"

	"github.com/devlinkhq/devlink-api/internal/api/shared"
	"github.com/devlinkhq/devlink-api/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// respondWithJSON and friends re-export the shared helpers so handlers in
// this package stay terse.
var (
	respondWithJSON        = shared.RespondWithJSON
	respondWithError       = shared.RespondWithError
	respondWithErrorAndLog = shared.RespondWithErrorAndLog

	// DecodeJSON is exported for handler tests that build requests directly.
	DecodeJSON = shared.DecodeJSON
)

// getUserIDFromContext extracts the authenticated user's UUID from the
// request context. The user ID is placed there by the authentication
// middleware; a missing or nil ID means the middleware did not run.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// getPathUUID extracts a UUID from the URL path parameters.
// It parses and validates the UUID, handling common error cases.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// requireUserID extracts the authenticated user ID, writing a 401 response
// and returning false when it is absent.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}
