// Package trakt is a minimal trakt.tv API v2 client covering the
// summary, watching, next-episode and season endpoints.
package trakt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
)

const defaultBaseURL = "https://api.trakt.tv"

// Sentinel errors for trakt API responses.
var (
	ErrNotFound     = errors.New("content not found")
	ErrUnauthorized = errors.New("unauthorized: invalid API key")
	ErrRateLimited  = errors.New("rate limited: too many requests")
)

// errTransient marks responses worth retrying (5xx, network failures).
var errTransient = errors.New("transient upstream error")

// Client is a trakt.tv API client.
type Client struct {
	clientID   string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
	attempts   uint
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "trakt")
	}
}

// WithRetryAttempts overrides the transient-failure retry count.
func WithRetryAttempts(n uint) Option {
	return func(c *Client) {
		c.attempts = n
	}
}

// New creates a new trakt client authenticated by client id.
func New(clientID string, opts ...Option) *Client {
	c := &Client{
		clientID: clientID,
		baseURL:  defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		attempts: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get fetches endpoint and decodes the JSON body into v, retrying
// transient failures with backoff. Not-found, unauthorized and
// rate-limited responses are returned immediately as sentinels.
func (c *Client) get(ctx context.Context, endpoint string, v any) error {
	return retry.Do(
		func() error { return c.getOnce(ctx, endpoint, v) },
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return errors.Is(err, errTransient) }),
	)
}

func (c *Client) getOnce(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("trakt-api-version", "2")
	req.Header.Set("trakt-api-key", c.clientID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w: %w", errTransient, err)
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// checkResponse maps error statuses to sentinel errors.
func (c *Client) checkResponse(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK, resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: trakt API error: %s", errTransient, resp.Status)
	default:
		return fmt.Errorf("trakt API error: %s", resp.Status)
	}
}

// MovieSummary fetches full movie metadata by slug or imdb id.
func (c *Client) MovieSummary(ctx context.Context, id string) (*Movie, error) {
	start := time.Now()

	var m Movie
	if err := c.get(ctx, "/movies/"+id+"?extended=full", &m); err != nil {
		return nil, err
	}

	if c.log != nil {
		c.log.Debug("fetched movie summary", "id", id, "title", m.Title,
			"duration_ms", time.Since(start).Milliseconds())
	}
	return &m, nil
}

// ShowSummary fetches full show metadata by slug or imdb id.
func (c *Client) ShowSummary(ctx context.Context, id string) (*Show, error) {
	start := time.Now()

	var s Show
	if err := c.get(ctx, "/shows/"+id+"?extended=full", &s); err != nil {
		return nil, err
	}

	if c.log != nil {
		c.log.Debug("fetched show summary", "id", id, "title", s.Title,
			"duration_ms", time.Since(start).Milliseconds())
	}
	return &s, nil
}

// Watching returns the number of users currently watching the content.
// kind is "movies" or "shows".
func (c *Client) Watching(ctx context.Context, kind, id string) (int, error) {
	var users []json.RawMessage
	if err := c.get(ctx, "/"+kind+"/"+id+"/watching", &users); err != nil {
		return 0, err
	}
	return len(users), nil
}

// NextEpisode returns the next scheduled episode of a show, or nil when
// none is scheduled.
func (c *Client) NextEpisode(ctx context.Context, id string) (*Episode, error) {
	var e Episode
	err := c.get(ctx, "/shows/"+id+"/next_episode?extended=full", &e)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// A 204 leaves the struct zeroed.
	if e.Number == 0 && e.Season == 0 {
		return nil, nil
	}
	return &e, nil
}

// SeasonEpisodes fetches the episodes of one season with full metadata.
func (c *Client) SeasonEpisodes(ctx context.Context, id string, season int) ([]Episode, error) {
	start := time.Now()

	var eps []Episode
	if err := c.get(ctx, fmt.Sprintf("/shows/%s/seasons/%d?extended=full", id, season), &eps); err != nil {
		return nil, err
	}

	if c.log != nil {
		c.log.Debug("fetched season", "id", id, "season", season, "episodes", len(eps),
			"duration_ms", time.Since(start).Milliseconds())
	}
	return eps, nil
}
