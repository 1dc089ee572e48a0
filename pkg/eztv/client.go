// Package eztv is a client for the EZTV torrent-index API, the show
// listing source.
package eztv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

const defaultBaseURL = "https://eztv.re/api"

// Sentinel errors for EZTV API responses.
var (
	ErrNotFound    = errors.New("no torrents found")
	ErrRateLimited = errors.New("rate limited: too many requests")
)

// Torrent is one EZTV listing. Numeric-looking fields arrive as strings
// from the API and are kept that way; use the accessor methods.
type Torrent struct {
	ID         int64  `json:"id"`
	Hash       string `json:"hash"`
	Filename   string `json:"filename"`
	Title      string `json:"title"`
	TorrentURL string `json:"torrent_url"`
	MagnetURL  string `json:"magnet_url"`
	ImdbID     string `json:"imdb_id"`
	Season     string `json:"season"`
	Episode    string `json:"episode"`
	Seeds      int    `json:"seeds"`
	Peers      int    `json:"peers"`
	SizeBytes  string `json:"size_bytes"`
}

// Size returns the torrent size in bytes, zero when unparseable.
func (t Torrent) Size() int64 {
	n, _ := strconv.ParseInt(t.SizeBytes, 10, 64)
	return n
}

// Page is one page of the torrent listing.
type Page struct {
	TorrentsCount int       `json:"torrents_count"`
	Limit         int       `json:"limit"`
	PageNumber    int       `json:"page"`
	Torrents      []Torrent `json:"torrents"`
}

// Client is an EZTV API client.
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
		c.log = log.With("component", "eztv")
	}
}

// WithPageSize overrides the listing page size (max 100).
func WithPageSize(n int) Option {
	return func(c *Client) {
		c.pageSize = n
	}
}

// New creates a new EZTV client. The API takes no key.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		pageSize: 100,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetPage fetches one page of torrent listings. Pages are 1-based.
func (c *Client) GetPage(ctx context.Context, page int) (*Page, error) {
	start := time.Now()

	endpoint := fmt.Sprintf("%s/get-torrents?limit=%d&page=%d", c.baseURL, c.pageSize, page)
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
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("EZTV API error: %s", resp.Status)
	}

	var p Page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if p.TorrentsCount == 0 {
		return nil, ErrNotFound
	}

	if c.log != nil {
		c.log.Debug("fetched page", "page", page, "torrents", len(p.Torrents),
			"duration_ms", time.Since(start).Milliseconds())
	}
	return &p, nil
}

// PageCount returns the number of listing pages at the configured page
// size.
func (c *Client) PageCount(ctx context.Context) (int, error) {
	p, err := c.GetPage(ctx, 1)
	if err != nil {
		return 0, err
	}
	pages := p.TorrentsCount / c.pageSize
	if p.TorrentsCount%c.pageSize != 0 {
		pages++
	}
	return pages, nil
}
