package scraper_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catarr/catarr/internal/scraper"
	"github.com/catarr/catarr/pkg/eztv"
	"github.com/catarr/catarr/pkg/solid"
)

func TestEZTVIndex_Page(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"torrents_count": 2, "limit": 100, "page": 1,
			"torrents": [
				{"id": 1, "title": "Some.Show.S01E01.720p.WEBRip.x264",
				 "filename": "Some.Show.S01E01.720p.mkv",
				 "magnet_url": "magnet:a", "torrent_url": "https://t/a.torrent",
				 "imdb_id": "0900001", "seeds": 42, "peers": 7, "size_bytes": "900000000"},
				{"id": 2, "title": "Other.Show.S02E05.1080p.WEB.h264",
				 "torrent_url": "https://t/b.torrent",
				 "imdb_id": "tt0900002", "seeds": 3, "peers": 1, "size_bytes": "bogus"}
			]
		}`))
	}))
	t.Cleanup(srv.Close)

	source := scraper.NewEZTVIndex(eztv.New(eztv.WithBaseURL(srv.URL)))
	assert.Equal(t, "eztv", source.Name())

	listings, err := source.Page(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, "magnet:a", listings[0].URL, "magnet link preferred over torrent file")
	assert.Equal(t, "tt0900001", listings[0].ImdbID, "bare-digit imdb ids get the tt prefix")
	assert.Equal(t, int64(900000000), listings[0].SizeBytes)
	assert.Equal(t, 42, listings[0].Seeds)
	assert.Equal(t, "Some.Show.S01E01.720p.mkv", listings[0].AltTitle)

	assert.Equal(t, "https://t/b.torrent", listings[1].URL)
	assert.Equal(t, "tt0900002", listings[1].ImdbID)
	assert.Zero(t, listings[1].SizeBytes)
}

func TestSolidIndex_Page(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2160p", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{
			"hits": 1,
			"results": [
				{"title": "Some.Movie.2024.2160p.WEB-DL.x265", "magnet": "magnet:m",
				 "size": 12000000000, "category": "video",
				 "swarm": {"seeders": 81, "leechers": 12}}
			]
		}`))
	}))
	t.Cleanup(srv.Close)

	source := scraper.NewSolidIndex(solid.New(solid.WithBaseURL(srv.URL)), "solid-uhd", "2160p")
	assert.Equal(t, "solid-uhd", source.Name())

	listings, err := source.Page(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	assert.Equal(t, "magnet:m", listings[0].URL)
	assert.Equal(t, int64(12000000000), listings[0].SizeBytes)
	assert.Equal(t, 81, listings[0].Seeds)
	assert.Equal(t, 12, listings[0].Peers)
}
