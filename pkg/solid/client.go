// Package solid is a client for a SolidTorrents-style search API, the
// movie and UHD listing source.
package solid

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

const defaultBaseURL = "https://solidtorrents.to/api/v1"

// Sentinel errors for search API responses.
var (
	ErrNotFound    = errors.New("no results found")
	ErrRateLimited = errors.New("rate limited: too many requests")
)

// Result is one search result.
type Result struct {
	Title    string `json:"title"`
	Magnet   string `json:"magnet"`
	Size     int64  `json:"size"`
	Category string `json:"category"`
	Swarm    Swarm  `json:"swarm"`
}

// Swarm carries the seeder and leecher counts of a result.
type Swarm struct {
	Seeders  int `json:"seeders"`
	Leechers int `json:"leechers"`
}

type searchResponse struct {
	Hits    int      `json:"hits"`
	Results []Result `json:"results"`
}

// Client is a search API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
	pageSize   int
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
		c.log = log.With("component", "solid")
	}
}

// WithPageSize overrides the search page size.
func WithPageSize(n int) Option {
	return func(c *Client) {
		c.pageSize = n
	}
}

// New creates a new client. The API takes no key.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		pageSize: 20,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search fetches one page of results for a query, sorted by seeders.
// Pages are 1-based.
func (c *Client) Search(ctx context.Context, query string, page int) ([]Result, error) {
	resp, err := c.search(ctx, query, page)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// PageCount returns the number of result pages for a query.
func (c *Client) PageCount(ctx context.Context, query string) (int, error) {
	resp, err := c.search(ctx, query, 1)
	if err != nil {
		return 0, err
	}
	pages := resp.Hits / c.pageSize
	if resp.Hits%c.pageSize != 0 {
		pages++
	}
	return pages, nil
}

func (c *Client) search(ctx context.Context, query string, page int) (*searchResponse, error) {
	start := time.Now()

	endpoint := fmt.Sprintf("%s/search?q=%s&category=video&sort=seeders&limit=%d&page=%d",
		c.baseURL, url.QueryEscape(query), c.pageSize, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("search API error: %s", resp.Status)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if sr.Hits == 0 {
		return nil, ErrNotFound
	}

	if c.log != nil {
		c.log.Debug("searched", "query", query, "page", page, "results", len(sr.Results),
			"duration_ms", time.Since(start).Milliseconds())
	}
	return &sr, nil
}
