package omdb

import (
	"context"
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
	return New("test-key", WithBaseURL(srv.URL))
}

func TestClient_Poster(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		assert.Equal(t, "tt0133093", r.URL.Query().Get("i"))
		w.Write([]byte(`{"Title": "The Matrix", "Poster": "https://m.media-amazon.com/matrix.jpg", "Response": "True"}`))
	})

	poster, err := client.Poster(context.Background(), "tt0133093")
	require.NoError(t, err)
	assert.Equal(t, "https://m.media-amazon.com/matrix.jpg", poster)
}

func TestClient_Poster_LookupFailureInBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response": "False", "Error": "Movie not found!"}`))
	})

	_, err := client.Poster(context.Background(), "tt0000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Poster_NAPoster(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Title": "Obscure Film", "Poster": "N/A", "Response": "True"}`))
	})

	_, err := client.Poster(context.Background(), "tt0000001")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Poster_RateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Poster(context.Background(), "tt0133093")
	assert.ErrorIs(t, err, ErrRateLimited)
}
