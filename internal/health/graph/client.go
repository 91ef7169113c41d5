// Package graph provides a client for the Microsoft Graph service
// announcement endpoints.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/healthboard/healthboard/internal/auth"
	"github.com/healthboard/healthboard/internal/health"
	"github.com/healthboard/healthboard/internal/transport"
)

const (
	// DefaultBaseURL is the base URL for the Microsoft Graph API.
	DefaultBaseURL = "https://graph.microsoft.com/v1.0"

	// ProviderName identifies this provider.
	ProviderName = "msgraph"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Graph client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// Tokens supplies bearer tokens for each request.
	Tokens auth.TokenProvider

	// Scopes requested for each token (defaults to the Graph default scope).
	Scopes []string

	// HTTPClient is the HTTP client to use. If nil, a circuit-breaking
	// client with no retries is created: a failed cycle is retried by the
	// next scheduled or manual refresh, never by the fetcher.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 15s).
	Timeout time.Duration

	// Now is the clock used for cache-busting (defaults to time.Now).
	Now func() time.Time
}

// Client fetches service-health overviews and issues from Graph.
type Client struct {
	baseURL    string
	tokens     auth.TokenProvider
	scopes     []string
	httpClient HTTPDoer
	now        func() time.Time
}

// NewClient creates a new Graph client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{auth.DefaultGraphScope}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 15 * time.Second
		}
		httpClient = transport.NewClient(transport.ClientConfig{
			Name:    ProviderName,
			Timeout: timeout,
		})
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     cfg.Tokens,
		scopes:     scopes,
		httpClient: httpClient,
		now:        now,
	}
}

// FetchSnapshot retrieves the overview and issues feeds with one bearer
// token and a shared cache-busting parameter. An overview failure is fatal;
// an issues failure is absorbed as an empty list with PartialData set.
func (c *Client) FetchSnapshot(ctx context.Context) (*health.Snapshot, error) {
	token, err := c.tokens.GetToken(ctx, c.scopes)
	if err != nil {
		return nil, fmt.Errorf("acquire graph token: %w", err)
	}

	// Shared across both calls so they defeat the same cache generation.
	cacheBust := c.now().UnixMilli()

	services, err := c.fetchOverviews(ctx, token, cacheBust)
	if err != nil {
		return nil, err
	}

	snap := &health.Snapshot{
		Services:  services,
		FetchedAt: c.now(),
	}

	issues, err := c.fetchIssues(ctx, token, cacheBust)
	if err != nil {
		snap.PartialData = true
		return snap, nil
	}
	snap.Issues = issues

	return snap, nil
}

func (c *Client) fetchOverviews(ctx context.Context, token string, cacheBust int64) ([]health.ServiceHealth, error) {
	url := fmt.Sprintf("%s/admin/serviceAnnouncement/healthOverviews?_=%d", c.baseURL, cacheBust)

	var result overviewsResponse
	if err := c.getJSON(ctx, url, token, &result); err != nil {
		return nil, err
	}

	services := make([]health.ServiceHealth, 0, len(result.Value))
	for _, o := range result.Value {
		services = append(services, toServiceHealth(&o))
	}
	return services, nil
}

func (c *Client) fetchIssues(ctx context.Context, token string, cacheBust int64) ([]health.Issue, error) {
	url := fmt.Sprintf("%s/admin/serviceAnnouncement/issues?_=%d", c.baseURL, cacheBust)

	var result issuesResponse
	if err := c.getJSON(ctx, url, token, &result); err != nil {
		return nil, err
	}

	issues := make([]health.Issue, 0, len(result.Value))
	for _, i := range result.Value {
		issues = append(issues, toIssue(&i))
	}
	return issues, nil
}

func (c *Client) getJSON(ctx context.Context, url, token string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode graph response: %w", err)
	}
	return nil
}

// HTTPError is a non-success response from a Graph endpoint.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("graph returned HTTP %d: %s", e.StatusCode, e.Status)
}
