// Package github provides a thin client for the GitHub REST API, used to
// list a member's public repositories. It is an external collaborator: the
// client holds no domain logic and passes GitHub's repo JSON through to the
// caller.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/devlinkhq/devlink-api/internal/config"
	"github.com/devlinkhq/devlink-api/internal/platform/logger"
)

// Client-level errors
var (
	// ErrUserNotFound indicates GitHub knows no such username.
	ErrUserNotFound = errors.New("github user not found")

	// ErrUnexpectedStatus indicates GitHub answered with a status the client
	// does not handle (rate limiting, outages).
	ErrUnexpectedStatus = errors.New("unexpected github response status")
)

const (
	// reposPerPage caps the listing at the five most relevant repositories.
	reposPerPage = 5

	requestTimeout = 10 * time.Second

	userAgent = "devlink-api"
)

// Repo is the subset of GitHub's repository representation the client passes
// through. Unknown fields are dropped rather than forwarded.
type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stargazers  int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
	CreatedAt   string `json:"created_at"`
}

// Client lists public repositories for a GitHub username. Credentials and the
// API base URL are injected at construction time via config.GitHubConfig.
type Client struct {
	apiURL     string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new GitHub client from the given configuration.
// If log is nil, a default logger will be used.
func NewClient(cfg config.GitHubConfig, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		apiURL:     cfg.APIURL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     log.With(slog.String("component", "github_client")),
	}
}

// ListRepos fetches the user's five most recently created public
// repositories. Returns ErrUserNotFound when GitHub reports no such user.
func (c *Client) ListRepos(ctx context.Context, username string) ([]Repo, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=%d&sort=created&direction=desc",
		c.apiURL, url.PathEscape(username), reposPerPage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("github request failed",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error("failed to close github response body",
				slog.String("error", err.Error()))
		}
	}()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decoding
	case http.StatusNotFound:
		log.Debug("github user not found", slog.String("username", username))
		return nil, ErrUserNotFound
	default:
		log.Error("unexpected github response",
			slog.Int("status_code", resp.StatusCode),
			slog.String("username", username))
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		log.Error("failed to decode github response",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, fmt.Errorf("failed to decode github response: %w", err)
	}

	log.Debug("listed github repos",
		slog.String("username", username),
		slog.Int("count", len(repos)))
	return repos, nil
}
