package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/devlinkhq/devlink-api/internal/config"
	"github.com/devlinkhq/devlink-api/internal/platform/github"
	"github.com/devlinkhq/devlink-api/internal/platform/postgres"
	"github.com/devlinkhq/devlink-api/internal/service"
	"github.com/devlinkhq/devlink-api/internal/service/auth"
	"github.com/devlinkhq/devlink-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore    store.UserStore
	profileStore store.ProfileStore
	postStore    store.PostStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	authService      *auth.AuthService
	profileService   *service.ProfileService
	accountService   *service.AccountService
	githubClient     *github.Client
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.profileStore = postgres.NewPostgresProfileStore(db, logger)
	app.postStore = postgres.NewPostgresPostStore(db, logger)

	// Services
	app.authService = auth.NewAuthService(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		logger,
	)
	app.profileService = service.NewProfileService(app.profileStore, logger)
	app.accountService = service.NewAccountService(
		db,
		app.userStore,
		app.profileStore,
		app.postStore,
		logger,
	)

	app.githubClient = github.NewClient(cfg.GitHub, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run() error {
	router := app.setupRouter()

	if err := app.startHTTPServer(router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
