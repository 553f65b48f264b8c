package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/devlinkhq/devlink-api/internal/api"
	apiMiddleware "github.com/devlinkhq/devlink-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	userHandler := api.NewUserHandler(app.userStore, app.jwtService)
	authHandler := api.NewAuthHandler(app.authService)
	profileHandler := api.NewProfileHandler(app.profileService, app.accountService)
	githubHandler := api.NewGithubHandler(app.githubClient)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/users", userHandler.Register)
		r.Post("/auth", authHandler.Login)
		r.Get("/profile", profileHandler.List)
		r.Get("/profile/user/{user_id}", profileHandler.GetByUserID)
		r.Get("/profile/github/{username}", githubHandler.ListRepos)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth", authHandler.Me)

			r.Get("/profile/me", profileHandler.Me)
			r.Post("/profile", profileHandler.Upsert)
			r.Delete("/profile", profileHandler.DeleteAccount)

			r.Put("/profile/experience", profileHandler.AddExperience)
			r.Delete("/profile/experience/{exp_id}", profileHandler.RemoveExperience)
			r.Put("/profile/education", profileHandler.AddEducation)
			r.Delete("/profile/education/{edu_id}", profileHandler.RemoveEducation)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
