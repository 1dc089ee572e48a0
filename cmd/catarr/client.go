package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps HTTP calls to the catarr daemon.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new catarr API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

// API response types (mirror server types)

type ScraperStatus struct {
	State        string  `json:"state"`
	LastStarted  *string `json:"lastStarted,omitempty"`
	LastFinished *string `json:"lastFinished,omitempty"`
	Resolved     int     `json:"resolved"`
	Skipped      int     `json:"skipped"`
	Failed       int     `json:"failed"`
}

type CatalogStatus struct {
	Movies int `json:"movies"`
	Shows  int `json:"shows"`
}

type StatusResponse struct {
	Scraper ScraperStatus `json:"scraper"`
	Catalog CatalogStatus `json:"catalog"`
}

// API methods

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
