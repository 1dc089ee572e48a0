package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catarr/catarr/internal/config"
	"github.com/catarr/catarr/pkg/title"
)

func TestReadTitlesFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "titles.txt")

	content := `Some.Show.S01E04.720p.WEB.x264-GROUP
# This is a comment
Another.Show.S02E01.1080p.WEB.x265-TEAM

  Spaced.Movie.2022.2160p.WEB.x265-RELEASE
`
	err := os.WriteFile(testFile, []byte(content), 0644)
	require.NoError(t, err, "failed to write test file")

	names, err := readTitlesFile(testFile)
	require.NoError(t, err)

	want := []string{
		"Some.Show.S01E04.720p.WEB.x264-GROUP",
		"Another.Show.S02E01.1080p.WEB.x265-TEAM",
		"Spaced.Movie.2022.2160p.WEB.x265-RELEASE",
	}

	require.Len(t, names, len(want))
	for i, got := range names {
		assert.Equal(t, want[i], got, "names[%d]", i)
	}
}

func TestReadTitlesFile_NotFound(t *testing.T) {
	_, err := readTitlesFile("/nonexistent/file.txt")
	assert.Error(t, err, "expected error for nonexistent file")
}

func testConfig() *config.Config {
	return &config.Config{
		Scrape: config.ScrapeConfig{
			Sources: []config.SourceConfig{
				{
					Name:        "eztv",
					Type:        "eztv",
					ContentType: "show",
					Rules:       []config.RuleConfig{{Pattern: `^(.*?)[. ][sS](\d{2})[eE](\d{2})`}},
				},
				{
					Name:        "movies",
					Type:        "solid",
					ContentType: "movie",
					Query:       "1080p",
					Rules:       []config.RuleConfig{{Pattern: `^(.*?)[. ]\(?((?:19|20)\d{2})\)?[. ]`}},
				},
			},
		},
	}
}

func TestParserForSource_Default(t *testing.T) {
	parser, err := parserForSource(testConfig(), "")
	require.NoError(t, err)

	id, err := parser.Parse("Some.Show.S01E04.720p.WEB.x264-GROUP", "")
	require.NoError(t, err)
	assert.Equal(t, "some-show", id.Slug)
	assert.Equal(t, 1, id.Season)
	assert.Equal(t, 4, id.Episode)
	assert.Equal(t, title.Quality720p, id.Quality)
}

func TestParserForSource_ByName(t *testing.T) {
	parser, err := parserForSource(testConfig(), "movies")
	require.NoError(t, err)

	id, err := parser.Parse("Spaced.Movie.2022.2160p.WEB.x265-RELEASE", "")
	require.NoError(t, err)
	assert.Equal(t, "spaced-movie-2022", id.Slug)
	assert.Equal(t, 2022, id.Year)
	assert.Equal(t, title.Quality2160p, id.Quality)
}

func TestParserForSource_Unknown(t *testing.T) {
	_, err := parserForSource(testConfig(), "rarbg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eztv, movies")
}

func TestParserForSource_NoSources(t *testing.T) {
	_, err := parserForSource(&config.Config{}, "")
	assert.Error(t, err)
}

func TestToJSON(t *testing.T) {
	id := &title.ID{
		RawTitle: "Some.Show.S01E04.720p.WEB.x264-GROUP",
		Title:    "Some Show",
		Slug:     "some-show",
		Type:     title.ContentTypeShow,
		Season:   1,
		Episode:  4,
		Quality:  title.Quality720p,
	}

	result := toJSON("Some.Show.S01E04.720p.WEB.x264-GROUP", id, nil)
	assert.Equal(t, "some-show", result.Slug)
	assert.Equal(t, "show", result.Type)
	assert.Equal(t, "720p", result.Quality)
	assert.Empty(t, result.Error)
}

func TestToJSON_Error(t *testing.T) {
	result := toJSON("garbage", nil, title.ErrNoMatch)
	assert.Equal(t, "garbage", result.RawTitle)
	assert.Equal(t, title.ErrNoMatch.Error(), result.Error)
}
