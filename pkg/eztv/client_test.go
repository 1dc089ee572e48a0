package eztv

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(WithBaseURL(srv.URL), WithPageSize(100))
}

func listingHandler(t *testing.T, total int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get-torrents", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		fmt.Fprintf(w, `{
			"torrents_count": %d, "limit": 100, "page": 1,
			"torrents": [
				{"id": 1, "hash": "abc", "filename": "Show.Name.S01E01.720p.WEB.x264.mkv",
				 "title": "Show Name S01E01 720p", "magnet_url": "magnet:?xt=urn:btih:abc",
				 "imdb_id": "0903747", "season": "1", "episode": "1",
				 "seeds": 120, "peers": 30, "size_bytes": "966009050"}
			]
		}`, total)
	}
}

func TestClient_GetPage(t *testing.T) {
	client := newTestClient(t, listingHandler(t, 250))

	page, err := client.GetPage(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, page.Torrents, 1)

	tor := page.Torrents[0]
	assert.Equal(t, "Show.Name.S01E01.720p.WEB.x264.mkv", tor.Filename)
	assert.Equal(t, int64(966009050), tor.Size())
	assert.Equal(t, 120, tor.Seeds)
}

func TestClient_PageCount(t *testing.T) {
	client := newTestClient(t, listingHandler(t, 250))

	pages, err := client.PageCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, pages, "250 torrents at 100 per page")
}

func TestClient_EmptyIndexIsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"torrents_count": 0, "limit": 100, "page": 1, "torrents": []}`))
	})

	_, err := client.GetPage(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_RateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.GetPage(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRateLimited)
}
