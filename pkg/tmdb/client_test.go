package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *Client {
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
	client := newTestServer(t, map[string]http.HandlerFunc{
		"/movie/603/images": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
			w.Write([]byte(`{
				"backdrops": [
					{"file_path": "/back-fr.jpg", "iso_639_1": "fr", "vote_average": 9.0},
					{"file_path": "/back-en.jpg", "iso_639_1": "en", "vote_average": 5.0}
				],
				"posters": [
					{"file_path": "/poster-null.jpg", "iso_639_1": null, "vote_average": 4.0},
					{"file_path": "/poster-en.jpg", "iso_639_1": "en", "vote_average": 7.5}
				]
			}`))
		},
	})

	images, err := client.MovieImages(context.Background(), 603)
	require.NoError(t, err)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/poster-en.jpg", images.Poster,
		"highest-voted acceptable poster wins")
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/back-en.jpg", images.Backdrop,
		"foreign-language artwork is skipped")
}

func TestClient_MovieImages_NoneAcceptable(t *testing.T) {
	client := newTestServer(t, map[string]http.HandlerFunc{
		"/movie/42/images": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"backdrops": [{"file_path": "/b.jpg", "iso_639_1": "de", "vote_average": 9.0}],
				"posters": []
			}`))
		},
	})

	_, err := client.MovieImages(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_ShowImages_NotFound(t *testing.T) {
	client := newTestServer(t, map[string]http.HandlerFunc{
		"/tv/999/images": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
	})

	_, err := client.ShowImages(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_RateLimited(t *testing.T) {
	client := newTestServer(t, map[string]http.HandlerFunc{
		"/tv/1396/images": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		},
	})

	_, err := client.ShowImages(context.Background(), 1396)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestClient_Season(t *testing.T) {
	client := newTestServer(t, map[string]http.HandlerFunc{
		"/tv/1396/season/1": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"season_number": 1,
				"name": "Season 1",
				"overview": "The first season.",
				"air_date": "2008-01-20",
				"poster_path": "/s1.jpg",
				"episodes": [
					{"season_number": 1, "episode_number": 1, "name": "Pilot",
					 "overview": "It begins.", "air_date": "2008-01-20", "still_path": "/e1.jpg"},
					{"season_number": 1, "episode_number": 2, "name": "Cat's in the Bag...",
					 "air_date": "2008-01-27"}
				]
			}`))
		},
	})

	season, err := client.Season(context.Background(), 1396, 1)
	require.NoError(t, err)
	assert.Equal(t, "Season 1", season.Name)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/s1.jpg", season.PosterURL())
	require.Len(t, season.Episodes, 2)
	assert.Equal(t, "Pilot", season.Episodes[0].Name)
	assert.Equal(t, 2, season.Episodes[1].Number)
}
