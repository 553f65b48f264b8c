package api

import (
	"errors"
	"net/http"

	"github.com/devlinkhq/devlink-api/internal/domain"
	"github.com/devlinkhq/devlink-api/internal/service/auth"
	"github.com/devlinkhq/devlink-api/internal/store"
	"github.com/go-playground/validator/v10"
)

// UserHandler handles user registration.
type UserHandler struct {
	userStore  store.UserStore
	jwtService auth.JWTService
	validator  *validator.Validate
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userStore store.UserStore, jwtService auth.JWTService) *UserHandler {
	return &UserHandler{
		userStore:  userStore,
		jwtService: jwtService,
		validator:  validator.New(),
	}
}

// Register handles POST /api/users.
// It creates the user with a bcrypt-hashed password and a gravatar-derived
// avatar, then returns a signed token so the client is logged in immediately.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := DecodeJSON(r, &req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, req.Password)
	if err != nil {
		respondWithError(w, r, http.StatusBadRequest, "Invalid user data: "+GetSafeErrorMessage(err))
		return
	}

	hashed, err := auth.HashPassword(user.Password)
	if err != nil {
		respondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create user", err)
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			respondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		respondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create user", err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		respondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	respondWithJSON(w, r, http.StatusCreated, AuthResponse{Token: token})
}
