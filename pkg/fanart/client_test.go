package fanart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handlers map[string]http.HandlerFunc) *Client {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, h := range handlers {
		mux.HandleFunc(pattern, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New("test-key", WithBaseURL(srv.URL))
}

func TestClient_MovieImages(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/movies/tt0133093": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
			w.Write([]byte(`{
				"movieposter": [{"url": "https://assets.fanart.tv/p1.jpg", "likes": "12"},
				                {"url": "https://assets.fanart.tv/p2.jpg", "likes": "3"}],
				"moviebackground": [{"url": "https://assets.fanart.tv/b1.jpg", "likes": "5"}],
				"moviebanner": []
			}`))
		},
	})

	images, err := client.MovieImages(context.Background(), "tt0133093")
	require.NoError(t, err)
	assert.Equal(t, "https://assets.fanart.tv/p1.jpg", images.Poster)
	assert.Equal(t, "https://assets.fanart.tv/b1.jpg", images.Backdrop)
	assert.Empty(t, images.Banner)
}

func TestClient_ShowImages(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/tv/81189": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"tvposter": [{"url": "https://assets.fanart.tv/tvp.jpg", "likes": "8"}],
				"showbackground": [{"url": "https://assets.fanart.tv/tvb.jpg", "likes": "2"}],
				"tvbanner": [{"url": "https://assets.fanart.tv/banner.jpg", "likes": "1"}]
			}`))
		},
	})

	images, err := client.ShowImages(context.Background(), 81189)
	require.NoError(t, err)
	assert.Equal(t, "https://assets.fanart.tv/tvp.jpg", images.Poster)
	assert.Equal(t, "https://assets.fanart.tv/banner.jpg", images.Banner)
}

func TestClient_NotFound(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/movies/tt0000000": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
	})

	_, err := client.MovieImages(context.Background(), "tt0000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_EmptyArtworkIsNotFound(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/tv/42": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"tvposter": [], "showbackground": [], "tvbanner": []}`))
		},
	})

	_, err := client.ShowImages(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
