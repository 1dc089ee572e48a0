package torrents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catarr/catarr/pkg/title"
)

func TestMerge_MoreSeedsWins(t *testing.T) {
	existing := []Torrent{{Quality: title.Quality1080p, Seeds: 10, URL: "magnet:a"}}
	fresh := []Torrent{{Quality: title.Quality1080p, Seeds: 20, URL: "magnet:b"}}

	merged := Merge(fresh, existing)
	require.Len(t, merged, 1)
	assert.Equal(t, 20, merged[0].Seeds)
}

func TestMerge_FewerSeedsLoses(t *testing.T) {
	existing := []Torrent{{Quality: title.Quality1080p, Seeds: 30, URL: "magnet:a"}}
	fresh := []Torrent{{Quality: title.Quality1080p, Seeds: 20, URL: "magnet:b"}}

	merged := Merge(fresh, existing)
	require.Len(t, merged, 1)
	assert.Equal(t, 30, merged[0].Seeds)
}

func TestMerge_2160pSmallerFileWins(t *testing.T) {
	existing := []Torrent{{Quality: title.Quality2160p, SizeBytes: 8e9, Seeds: 100, URL: "magnet:a"}}
	fresh := []Torrent{{Quality: title.Quality2160p, SizeBytes: 6e9, Seeds: 1, URL: "magnet:b"}}

	merged := Merge(fresh, existing)
	require.Len(t, merged, 1)
	assert.Equal(t, int64(6e9), merged[0].SizeBytes, "2160p prefers the smaller file regardless of seeds")
}

func TestMerge_SameURLRefreshes(t *testing.T) {
	existing := []Torrent{{Quality: title.Quality720p, Seeds: 50, URL: "magnet:a"}}
	fresh := []Torrent{{Quality: title.Quality720p, Seeds: 5, URL: "magnet:a", Peers: 3}}

	merged := Merge(fresh, existing)
	require.Len(t, merged, 1)
	assert.Equal(t, 5, merged[0].Seeds, "re-ingesting the same listing replaces the stored counts")
	assert.Equal(t, 3, merged[0].Peers)
}

func TestMerge_DropsUnknownQuality(t *testing.T) {
	fresh := []Torrent{
		{Quality: title.QualityUnknown, Seeds: 99, URL: "magnet:a"},
		{Quality: title.Quality480p, Seeds: 1, URL: "magnet:b"},
	}

	merged := Merge(fresh, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, title.Quality480p, merged[0].Quality)
}

func TestMerge_SortOrder(t *testing.T) {
	fresh := []Torrent{
		{Quality: title.Quality480p, URL: "a"},
		{Quality: title.Quality2160p, URL: "b"},
		{Quality: title.Quality720p, URL: "c"},
		{Quality: title.Quality3D, URL: "d"},
		{Quality: title.Quality1080p, URL: "e"},
	}

	merged := Merge(fresh, nil)
	got := make([]title.Quality, len(merged))
	for i, m := range merged {
		got[i] = m.Quality
	}
	assert.Equal(t, []title.Quality{
		title.Quality2160p, title.Quality3D, title.Quality1080p, title.Quality720p, title.Quality480p,
	}, got)
}

func TestMerge_Idempotent(t *testing.T) {
	a := []Torrent{
		{Quality: title.Quality1080p, Seeds: 20, SizeBytes: 2e9, URL: "a"},
		{Quality: title.Quality720p, Seeds: 7, SizeBytes: 1e9, URL: "b"},
	}
	b := []Torrent{
		{Quality: title.Quality1080p, Seeds: 10, SizeBytes: 3e9, URL: "c"},
		{Quality: title.Quality2160p, Seeds: 4, SizeBytes: 9e9, URL: "d"},
	}

	once := Merge(a, b)
	twice := Merge(once, nil)
	assert.Equal(t, once, twice)
}

func TestMerge_AnnotatesSize(t *testing.T) {
	merged := Merge([]Torrent{{Quality: title.Quality720p, SizeBytes: 1536, URL: "a"}}, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, "1.50 KB", merged[0].Size)
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Byte"},
		{500, "500.00 Bytes"},
		{1536, "1.50 KB"},
		{1 << 20, "1.00 MB"},
		{3 << 30, "3.00 GB"},
		{2 << 40, "2.00 TB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.bytes), "FormatSize(%d)", tt.bytes)
	}
}
