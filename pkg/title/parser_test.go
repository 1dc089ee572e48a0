package title

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movieParser() *Parser {
	return NewParser("test", ContentTypeMovie, []Rule{
		{Pattern: regexp.MustCompile(`(?i)(.*).(\d{4}).[3d]\D+(\d{3,4}p)`), Quality: Quality3D},
		{Pattern: regexp.MustCompile(`(?i)(.*).(\d{4})\D+(\d{3,4}p)`)},
	})
}

func showParser() *Parser {
	return NewParser("test", ContentTypeShow, []Rule{
		{Pattern: regexp.MustCompile(`(?i)(.*).[sS](\d{2})[eE](\d{2})`)},
		{Pattern: regexp.MustCompile(`(?i)(.*).(\d{1,2})[x](\d{2})`)},
		{Pattern: regexp.MustCompile(`(?i)(.*).(\d{4}).(\d{2}.\d{2})`), DateBased: true},
	})
}

func TestParser_Parse_Movie(t *testing.T) {
	id, err := movieParser().Parse("The.Matrix.1999.1080p.BluRay.x264", "")
	require.NoError(t, err)

	assert.Equal(t, "The Matrix", id.Title)
	assert.Equal(t, "the-matrix-1999", id.Slug)
	assert.Equal(t, 1999, id.Year)
	assert.Equal(t, Quality1080p, id.Quality)
	assert.Equal(t, ContentTypeMovie, id.Type)
}

func TestParser_Parse_Movie3D(t *testing.T) {
	id, err := movieParser().Parse("Avatar.2009.3D.BluRay.1080p.x264", "")
	require.NoError(t, err)

	assert.Equal(t, "avatar-2009", id.Slug)
	assert.Equal(t, Quality3D, id.Quality, "3D pattern should force the 3D bucket")
}

func TestParser_Parse_Show(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		slug    string
		season  int
		episode int
		quality Quality
	}{
		{"standard numbering", "Show.Name.S01E05.720p.HDTV.x264", "show-name", 1, 5, Quality720p},
		{"cross numbering", "Show.Name.2x09.HDTV.x264", "show-name", 2, 9, Quality480p},
		{"date based", "Late.Show.2026.01.16.720p.WEB.x264", "late-show", 2026, 1, Quality720p},
	}

	p := showParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := p.Parse(tt.input, "")
			require.NoError(t, err)
			assert.Equal(t, tt.slug, id.Slug)
			assert.Equal(t, tt.season, id.Season)
			assert.Equal(t, tt.episode, id.Episode)
			assert.Equal(t, tt.quality, id.Quality)
		})
	}
}

func TestParser_Parse_AltNameFallback(t *testing.T) {
	id, err := showParser().Parse("not a release title", "Show.Name.S02E03.1080p")
	require.NoError(t, err)

	assert.Equal(t, "show-name", id.Slug)
	assert.Equal(t, 2, id.Season)
	assert.Equal(t, 3, id.Episode)
}

func TestParser_Parse_NoMatch(t *testing.T) {
	_, err := showParser().Parse("definitely not parseable", "")
	assert.True(t, errors.Is(err, ErrNoMatch))
}

func TestParser_Parse_RuleOrderWins(t *testing.T) {
	// S01E01 also matches the date-based pattern's title group; the
	// earlier rule must win.
	id, err := showParser().Parse("Show.Name.S01E01.720p", "")
	require.NoError(t, err)
	assert.Equal(t, 1, id.Season)
	assert.Equal(t, 1, id.Episode)
}

func TestExtractQuality(t *testing.T) {
	assert.Equal(t, Quality2160p, ExtractQuality("Movie.2024.2160p.WEB"))
	assert.Equal(t, Quality480p, ExtractQuality("Movie.2024.HDTV"), "missing label defaults to 480p")
	assert.Equal(t, QualityUnknown, ExtractQuality("Movie.2024.576p.WEB"))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The Matrix", "the-matrix"},
		{"Léon The Professional", "leon-the-professional"},
		{"Marvel's Agents of S.H.I.E.L.D.", "marvels-agents-of-shield"},
		{"  spaced   out  ", "spaced-out"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestAlias(t *testing.T) {
	assert.Equal(t, "60-minutes", Alias("60-minutes-us", ContentTypeShow))
	assert.Equal(t, "unmapped-show", Alias("unmapped-show", ContentTypeShow))
	assert.Equal(t,
		"pokemon-detective-pikachu-2019",
		Alias("pokmon-detective-pikachu-2019", ContentTypeMovie),
	)
}
