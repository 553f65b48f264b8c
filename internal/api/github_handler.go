package api

import (
	"net/http"

	"github.com/devlinkhq/devlink-api/internal/platform/github"
	"github.com/go-chi/chi/v5"
)

// GithubHandler proxies public repository listings from the GitHub API.
type GithubHandler struct {
	client *github.Client
}

// NewGithubHandler creates a new GithubHandler with the given client.
func NewGithubHandler(client *github.Client) *GithubHandler {
	return &GithubHandler{client: client}
}

// ListRepos handles GET /api/profile/github/{username}.
// It returns the five most recently created public repositories for the
// given GitHub username.
func (h *GithubHandler) ListRepos(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		respondWithError(w, r, http.StatusBadRequest, "Username is required")
		return
	}

	repos, err := h.client.ListRepos(r.Context(), username)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	respondWithJSON(w, r, http.StatusOK, repos)
}
