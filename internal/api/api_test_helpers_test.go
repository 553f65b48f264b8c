package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devlinkhq/devlink-api/internal/api/middleware"
	"github.com/devlinkhq/devlink-api/internal/config"
	"github.com/devlinkhq/devlink-api/internal/domain"
	"github.com/devlinkhq/devlink-api/internal/service"
	"github.com/devlinkhq/devlink-api/internal/service/auth"
	"github.com/devlinkhq/devlink-api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// memUserStore is an in-memory UserStore for handler tests.
type memUserStore struct {
	usersByID    map[uuid.UUID]*domain.User
	usersByEmail map[string]*domain.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		usersByID:    make(map[uuid.UUID]*domain.User),
		usersByEmail: make(map[string]*domain.User),
	}
}

func (s *memUserStore) Create(ctx context.Context, user *domain.User) error {
	if _, exists := s.usersByEmail[user.Email]; exists {
		return store.ErrEmailExists
	}
	s.usersByID[user.ID] = user
	s.usersByEmail[user.Email] = user
	return nil
}

func (s *memUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := s.usersByID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := s.usersByEmail[strings.ToLower(email)]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (s *memUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	user, ok := s.usersByID[id]
	if !ok {
		return store.ErrUserNotFound
	}
	delete(s.usersByEmail, user.Email)
	delete(s.usersByID, id)
	return nil
}

func (s *memUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

// memProfileStore is an in-memory ProfileStore keyed by owning user.
type memProfileStore struct {
	profiles map[uuid.UUID]*domain.Profile
}

func newMemProfileStore() *memProfileStore {
	return &memProfileStore{profiles: make(map[uuid.UUID]*domain.Profile)}
}

func (s *memProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	if _, exists := s.profiles[profile.UserID]; exists {
		return store.ErrProfileExists
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	cp := *profile
	s.profiles[profile.UserID] = &cp
	return nil
}

func (s *memProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	cp := *profile
	return &cp, nil
}

func (s *memProfileStore) GetAll(ctx context.Context) ([]*domain.Profile, error) {
	all := []*domain.Profile{}
	for _, p := range s.profiles {
		cp := *p
		all = append(all, &cp)
	}
	return all, nil
}

func (s *memProfileStore) Update(ctx context.Context, profile *domain.Profile) error {
	if _, ok := s.profiles[profile.UserID]; !ok {
		return store.ErrProfileNotFound
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	cp := *profile
	s.profiles[profile.UserID] = &cp
	return nil
}

func (s *memProfileStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	delete(s.profiles, userID)
	return nil
}

func (s *memProfileStore) WithTx(tx *sql.Tx) store.ProfileStore { return s }

// testEnv wires handlers, fakes and a router the way the server does.
type testEnv struct {
	userStore    *memUserStore
	profileStore *memProfileStore
	jwtService   auth.JWTService
	router       chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "thisisasecretkeythatis32charslong!!",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	env := &testEnv{
		userStore:    newMemUserStore(),
		profileStore: newMemProfileStore(),
		jwtService:   jwtService,
	}

	authService := auth.NewAuthService(
		env.userStore, jwtService, auth.NewBcryptVerifier(), nil)
	profileService := service.NewProfileService(env.profileStore, nil)

	userHandler := NewUserHandler(env.userStore, jwtService)
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService, nil)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/users", userHandler.Register)
		r.Post("/auth", authHandler.Login)
		r.Get("/profile", profileHandler.List)
		r.Get("/profile/user/{user_id}", profileHandler.GetByUserID)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/auth", authHandler.Me)
			r.Get("/profile/me", profileHandler.Me)
			r.Post("/profile", profileHandler.Upsert)
			r.Put("/profile/experience", profileHandler.AddExperience)
			r.Delete("/profile/experience/{exp_id}", profileHandler.RemoveExperience)
			r.Put("/profile/education", profileHandler.AddEducation)
			r.Delete("/profile/education/{edu_id}", profileHandler.RemoveEducation)
		})
	})
	env.router = r

	return env
}

// registerUser creates a user through the API and returns the user and a
// bearer token for them.
func (env *testEnv) registerUser(t *testing.T, name, email, password string) (*domain.User, string) {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "registration failed: %s", rec.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	user, err := env.userStore.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	return user, resp.Token
}

// do performs a request against the test router. A non-empty token is sent as
// a bearer credential; a non-nil body is JSON encoded.
func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}
