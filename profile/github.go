package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/user/devconnect-go/apperror"
	"github.com/user/devconnect-go/config"
)

// githubPageSize bounds how many repositories a lookup returns.
const githubPageSize = 5

// Repo is the subset of a GitHub repository that the API passes through.
type Repo struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	FullName        string  `json:"full_name"`
	HTMLURL         string  `json:"html_url"`
	Description     *string `json:"description"`
	Private         bool    `json:"private"`
	StargazersCount int     `json:"stargazers_count"`
	WatchersCount   int     `json:"watchers_count"`
	ForksCount      int     `json:"forks_count"`
	CreatedAt       string  `json:"created_at"`
}

// GithubClient is a pure pass-through adapter for the GitHub repositories
// lookup. Failures are never retried or cached; any transport error or
// non-success status collapses to the same domain error.
type GithubClient struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
}

// NewGithubClient creates a GithubClient using the configured client
// credentials.
func NewGithubClient(cfg config.GithubConfig) *GithubClient {
	return &GithubClient{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		baseURL:      "https://api.github.com",
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}
}

// Repos fetches the user's repositories, bounded to githubPageSize and
// sorted by creation date ascending.
func (c *GithubClient) Repos(ctx context.Context, username string) ([]Repo, error) {
	query := url.Values{}
	query.Set("per_page", fmt.Sprintf("%d", githubPageSize))
	query.Set("sort", "created:asc")
	if c.clientID != "" {
		query.Set("client_id", c.clientID)
		query.Set("client_secret", c.clientSecret)
	}
	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperror.NewExternalServiceError("No Github profile found", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.NewExternalServiceError("No Github profile found", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.NewExternalServiceError("No Github profile found",
			fmt.Errorf("github responded with status %d", resp.StatusCode))
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, apperror.NewExternalServiceError("No Github profile found", err)
	}
	return repos, nil
}
