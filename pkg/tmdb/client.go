// Package tmdb is a TMDB API v3 client covering artwork lookups and
// per-season episode details.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"

	// imageBaseURL prefixes every file path returned by the API.
	imageBaseURL = "https://image.tmdb.org/t/p/w500"
)

// Sentinel errors for TMDB API responses.
var (
	ErrNotFound     = errors.New("content not found")
	ErrUnauthorized = errors.New("unauthorized: invalid API key")
	ErrRateLimited  = errors.New("rate limited: too many requests")
)

// Client is a TMDB API client.
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
		c.log = log.With("component", "tmdb")
	}
}

// New creates a new TMDB client.
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
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+endpoint+sep+"api_key="+url.QueryEscape(c.apiKey), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// checkResponse maps error statuses to sentinel errors.
func (c *Client) checkResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("TMDB API error: %s", resp.Status)
	}
}

// MovieImages fetches artwork for a movie by TMDB id.
func (c *Client) MovieImages(ctx context.Context, id int64) (*Images, error) {
	return c.images(ctx, fmt.Sprintf("/movie/%d/images", id))
}

// ShowImages fetches artwork for a show by TMDB id.
func (c *Client) ShowImages(ctx context.Context, id int64) (*Images, error) {
	return c.images(ctx, fmt.Sprintf("/tv/%d/images", id))
}

func (c *Client) images(ctx context.Context, endpoint string) (*Images, error) {
	start := time.Now()

	var resp imagesResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	images := &Images{
		Poster:   pickImage(resp.Posters),
		Backdrop: pickImage(resp.Backdrops),
	}
	if images.Poster == "" && images.Backdrop == "" {
		return nil, ErrNotFound
	}

	if c.log != nil {
		c.log.Debug("fetched images", "endpoint", endpoint,
			"posters", len(resp.Posters), "backdrops", len(resp.Backdrops),
			"duration_ms", time.Since(start).Milliseconds())
	}
	return images, nil
}

// pickImage selects the highest-voted artwork that is either untagged or
// tagged English, since mixed-language artwork pollutes the catalog.
func pickImage(candidates []image) string {
	best := ""
	bestVotes := -1.0
	for _, img := range candidates {
		if img.ISO639 != nil && *img.ISO639 != "en" {
			continue
		}
		if img.VoteAverage > bestVotes {
			best = img.FilePath
			bestVotes = img.VoteAverage
		}
	}
	if best == "" {
		return ""
	}
	return imageBaseURL + best
}

// Season fetches one season of a show with its episode list.
func (c *Client) Season(ctx context.Context, showID int64, number int) (*Season, error) {
	start := time.Now()

	var s Season
	if err := c.get(ctx, fmt.Sprintf("/tv/%d/season/%d", showID, number), &s); err != nil {
		return nil, err
	}

	if c.log != nil {
		c.log.Debug("fetched season", "show", showID, "season", number,
			"episodes", len(s.Episodes), "duration_ms", time.Since(start).Milliseconds())
	}
	return &s, nil
}
