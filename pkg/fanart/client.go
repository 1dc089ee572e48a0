// Package fanart is a fanart.tv API v3 client, the last link of the
// image provider chain.
package fanart

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

const defaultBaseURL = "https://webservice.fanart.tv/v3"

// Sentinel errors for fanart.tv API responses.
var (
	ErrNotFound     = errors.New("content not found")
	ErrUnauthorized = errors.New("unauthorized: invalid API key")
	ErrRateLimited  = errors.New("rate limited: too many requests")
)

// Images is the resolved artwork for one content item. Empty fields
// mean fanart.tv holds no artwork of that kind.
type Images struct {
	Poster   string
	Backdrop string
	Banner   string
}

type art struct {
	URL   string `json:"url"`
	Likes string `json:"likes"`
}

type movieResponse struct {
	Posters     []art `json:"movieposter"`
	Backgrounds []art `json:"moviebackground"`
	Banners     []art `json:"moviebanner"`
}

type showResponse struct {
	Posters     []art `json:"tvposter"`
	Backgrounds []art `json:"showbackground"`
	Banners     []art `json:"tvbanner"`
}

// Client is a fanart.tv API client.
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
		c.log = log.With("component", "fanart")
	}
}

// New creates a new fanart.tv client.
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

func (c *Client) get(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+endpoint+"?api_key="+url.QueryEscape(c.apiKey), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("fanart API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// MovieImages fetches movie artwork by imdb or tmdb id.
func (c *Client) MovieImages(ctx context.Context, id string) (*Images, error) {
	var resp movieResponse
	if err := c.get(ctx, "/movies/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return c.pick(Images{
		Poster:   first(resp.Posters),
		Backdrop: first(resp.Backgrounds),
		Banner:   first(resp.Banners),
	})
}

// ShowImages fetches show artwork by tvdb id.
func (c *Client) ShowImages(ctx context.Context, tvdbID int64) (*Images, error) {
	var resp showResponse
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", tvdbID), &resp); err != nil {
		return nil, err
	}
	return c.pick(Images{
		Poster:   first(resp.Posters),
		Backdrop: first(resp.Backgrounds),
		Banner:   first(resp.Banners),
	})
}

func (c *Client) pick(images Images) (*Images, error) {
	if images.Poster == "" && images.Backdrop == "" && images.Banner == "" {
		return nil, ErrNotFound
	}
	return &images, nil
}

// first returns the top-ranked artwork URL; fanart.tv orders each list
// by community likes.
func first(arts []art) string {
	if len(arts) == 0 {
		return ""
	}
	return arts[0].URL
}
