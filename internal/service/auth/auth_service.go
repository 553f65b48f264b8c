package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/devlinkhq/devlink-api/internal/domain"
	"github.com/devlinkhq/devlink-api/internal/platform/logger"
	"github.com/devlinkhq/devlink-api/internal/store"
	"github.com/google/uuid"
)

// AuthService verifies credentials and resolves authenticated identities.
// Token issuance is delegated to the JWTService; password comparison to the
// PasswordVerifier.
type AuthService struct {
	userStore        store.UserStore
	jwtService       JWTService
	passwordVerifier PasswordVerifier
	logger           *slog.Logger
}

// NewAuthService creates a new AuthService with the given dependencies.
func NewAuthService(
	userStore store.UserStore,
	jwtService JWTService,
	passwordVerifier PasswordVerifier,
	log *slog.Logger,
) *AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		logger:           log.With(slog.String("component", "auth_service")),
	}
}

// Authenticate checks the email/password pair and issues a signed token on
// success. Unknown email and wrong password both come back as
// ErrInvalidCredentials so the two cases are indistinguishable to callers.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		log.Error("failed to look up user during authentication",
			slog.String("error", err.Error()))
		return "", err
	}

	if err := s.passwordVerifier.Compare(user.HashedPassword, password); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error("failed to generate token",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return "", err
	}

	log.Info("user authenticated", slog.String("user_id", user.ID.String()))
	return token, nil
}

// CurrentUser resolves the authenticated user by ID. The returned user never
// carries password material into serialization (the domain type excludes it
// from JSON).
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.userStore.GetByID(ctx, userID)
}
