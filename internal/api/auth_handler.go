package api

import (
	"errors"
	"net/http"

	"github.com/devlinkhq/devlink-api/internal/service/auth"
	"github.com/devlinkhq/devlink-api/internal/store"
	"github.com/go-playground/validator/v10"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService *auth.AuthService
	validator   *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService *auth.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
	}
}

// Login handles POST /api/auth.
// It authenticates the credentials and returns a signed token. Wrong email
// and wrong password produce identical responses.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := DecodeJSON(r, &req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	token, err := h.authService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to authenticate user", err)
		return
	}

	respondWithJSON(w, r, http.StatusOK, AuthResponse{Token: token})
}

// Me handles GET /api/auth.
// It returns the authenticated user; the password hash never serializes.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.authService.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			respondWithError(w, r, http.StatusNotFound, "User not found")
			return
		}
		respondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to load user", err)
		return
	}

	respondWithJSON(w, r, http.StatusOK, user)
}
