// Package omdb is a minimal OMDb API client used as a movie poster
// fallback.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://www.omdbapi.com"

// Sentinel errors for OMDb API responses.
var (
	ErrNotFound     = errors.New("content not found")
	ErrUnauthorized = errors.New("unauthorized: invalid API key")
	ErrRateLimited  = errors.New("rate limited: too many requests")
)

// Client is an OMDb API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
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
		c.log = log.With("component", "omdb")
	}
}

// New creates a new OMDb client.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type titleResponse struct {
	Poster   string `json:"Poster"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// Poster fetches a movie poster URL by imdb id. Returns ErrNotFound
// when OMDb has no record or no poster for the id.
func (c *Client) Poster(ctx context.Context, imdbID string) (string, error) {
	endpoint := fmt.Sprintf("%s/?apikey=%s&i=%s",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(imdbID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return "", ErrUnauthorized
	case http.StatusTooManyRequests:
		return "", ErrRateLimited
	default:
		return "", fmt.Errorf("OMDb API error: %s", resp.Status)
	}

	var title titleResponse
	if err := json.NewDecoder(resp.Body).Decode(&title); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	// OMDb reports lookup failures inside a 200 body.
	if title.Response != "True" || title.Poster == "" || title.Poster == "N/A" {
		if c.log != nil {
			c.log.Debug("no poster", "id", imdbID, "error", title.Error)
		}
		return "", ErrNotFound
	}
	return title.Poster, nil
}
