// Package resolver turns parsed content identifiers into fully resolved
// catalog records using the metadata providers and the backoff registry.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/hbollon/go-edlib"

	"github.com/catarr/catarr/internal/blacklist"
	"github.com/catarr/catarr/internal/catalog"
	"github.com/catarr/catarr/pkg/fanart"
	"github.com/catarr/catarr/pkg/omdb"
	"github.com/catarr/catarr/pkg/title"
	"github.com/catarr/catarr/pkg/tmdb"
	"github.com/catarr/catarr/pkg/torrents"
	"github.com/catarr/catarr/pkg/trakt"
	"github.com/catarr/catarr/pkg/tvdb"
)

// imdbIDPattern recognizes a structurally valid imdb id, the only
// alternate identifier worth a retry.
var imdbIDPattern = regexp.MustCompile(`^tt\d+$`)

// titleMatchThreshold is the Jaro-Winkler score below which a resolved
// title is flagged as a probable mismatch.
const titleMatchThreshold = 0.7

// Resolver resolves content identifiers against trakt and the image
// provider chain, consulting the backoff registry before every attempt.
type Resolver struct {
	trakt   *trakt.Client
	tmdb    *tmdb.Client
	tvdb    *tvdb.Client
	omdb    *omdb.Client
	fanart  *fanart.Client
	backoff *blacklist.Registry
	logger  *slog.Logger
}

// New creates a resolver over the given provider clients.
func New(traktClient *trakt.Client, tmdbClient *tmdb.Client, tvdbClient *tvdb.Client,
	omdbClient *omdb.Client, fanartClient *fanart.Client,
	backoff *blacklist.Registry, logger *slog.Logger) *Resolver {
	return &Resolver{
		trakt:   traktClient,
		tmdb:    tmdbClient,
		tvdb:    tvdbClient,
		omdb:    omdbClient,
		fanart:  fanartClient,
		backoff: backoff,
		logger:  logger.With("component", "resolver"),
	}
}

// ResolveMovie resolves one movie slug into a catalog record carrying
// the scraped torrents. Blacklisted slugs return ErrSkipped; a metadata
// 404 blacklists the slug for a week and propagates the failure.
func (r *Resolver) ResolveMovie(ctx context.Context, id *title.ID, scraped []torrents.Torrent) (*catalog.Movie, error) {
	blocked, err := r.backoff.IsBlacklisted(id.Slug)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrSkipped
	}

	summary, err := r.trakt.MovieSummary(ctx, id.Slug)
	if errors.Is(err, trakt.ErrNotFound) {
		if berr := r.backoff.BlacklistForWeeks(id.Slug, id.Title, title.ContentTypeMovie,
			blacklist.Reason404, blacklist.NotFoundWeeks); berr != nil {
			r.logger.Warn("blacklisting failed", "slug", id.Slug, "error", berr)
		}
		return nil, fmt.Errorf("resolve movie %s: %w", id.Slug, err)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve movie %s: %w", id.Slug, err)
	}

	if summary.IDs.Imdb == "" || summary.IDs.Tmdb == 0 {
		r.logger.Debug("movie record unusable", "slug", id.Slug,
			"imdb", summary.IDs.Imdb, "tmdb", summary.IDs.Tmdb)
		return nil, fmt.Errorf("resolve movie %s: %w", id.Slug, ErrUnusable)
	}

	r.verifyTitle(id.Title, summary.Title)

	movie := &catalog.Movie{
		ImdbID:        summary.IDs.Imdb,
		TmdbID:        summary.IDs.Tmdb,
		Slug:          canonicalSlug(summary.IDs.Slug, id.Slug),
		Title:         summary.Title,
		Year:          summary.Year,
		Synopsis:      summary.Overview,
		Runtime:       FormatRuntime(summary.Runtime),
		Rating:        deriveRating(summary.Rating, summary.Votes, 0),
		Genres:        summary.Genres,
		Released:      parseDate(summary.Released),
		Trailer:       trailerID(summary.Trailer),
		Certification: summary.Certification,
		Torrents:      scraped,
	}
	movie.Images = r.movieImages(ctx, movie.ImdbID, movie.TmdbID)

	// A fully resolved movie rests for a random interval so cron ticks
	// do not re-query the whole catalog at once.
	if err := r.backoff.BlacklistRandom(movie.Slug, movie.Title, title.ContentTypeMovie,
		blacklist.ReasonUpdateFrequency); err != nil {
		r.logger.Warn("blacklisting failed", "slug", movie.Slug, "error", err)
	}

	return movie, nil
}

// ResolveShow resolves one show slug into a catalog record plus its
// seasons and episodes, assembled from the scraped torrent structure.
// imdbID is the alternate identifier tried when the slug lookup 404s.
func (r *Resolver) ResolveShow(ctx context.Context, id *title.ID, imdbID string,
	scraped map[int]map[int][]torrents.Torrent) (*catalog.Show, []*catalog.Season, []*catalog.Episode, error) {

	blocked, err := r.backoff.IsBlacklisted(id.Slug)
	if err != nil {
		return nil, nil, nil, err
	}
	if blocked {
		return nil, nil, nil, ErrSkipped
	}

	summary, err := r.showSummary(ctx, id.Slug, imdbID)
	if errors.Is(err, trakt.ErrNotFound) {
		if berr := r.backoff.BlacklistForWeeks(id.Slug, id.Title, title.ContentTypeShow,
			blacklist.Reason404, blacklist.NotFoundWeeks); berr != nil {
			r.logger.Warn("blacklisting failed", "slug", id.Slug, "error", berr)
		}
		return nil, nil, nil, fmt.Errorf("resolve show %s: %w", id.Slug, err)
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("resolve show %s: %w", id.Slug, err)
	}

	if summary.IDs.Imdb == "" || summary.IDs.Tmdb == 0 || summary.IDs.Tvdb == 0 {
		r.logger.Debug("show record unusable", "slug", id.Slug, "imdb", summary.IDs.Imdb,
			"tmdb", summary.IDs.Tmdb, "tvdb", summary.IDs.Tvdb)
		return nil, nil, nil, fmt.Errorf("resolve show %s: %w", id.Slug, ErrUnusable)
	}

	r.verifyTitle(id.Title, summary.Title)

	watching, err := r.trakt.Watching(ctx, "shows", summary.IDs.Slug)
	if err != nil {
		r.logger.Debug("watching count unavailable", "slug", id.Slug, "error", err)
	}

	show := &catalog.Show{
		ImdbID:        summary.IDs.Imdb,
		TmdbID:        summary.IDs.Tmdb,
		TvdbID:        summary.IDs.Tvdb,
		Slug:          canonicalSlug(summary.IDs.Slug, id.Slug),
		Title:         summary.Title,
		Year:          summary.Year,
		Synopsis:      summary.Overview,
		Runtime:       FormatRuntime(summary.Runtime),
		Rating:        deriveRating(summary.Rating, summary.Votes, watching),
		Genres:        summary.Genres,
		Trailer:       trailerID(summary.Trailer),
		Certification: summary.Certification,
		AirInfo: catalog.AirInfo{
			Network: summary.Network,
			Country: summary.Country,
			Day:     summary.Airs.Day,
			Time:    summary.Airs.Time,
			Status:  summary.Status,
		},
	}
	show.Images = r.showImages(ctx, show.TmdbID, show.TvdbID)

	seasons, episodes := r.assembleSeasons(ctx, show, summary.IDs.Slug, scraped)

	r.backoffShow(ctx, show, summary.IDs.Slug)

	return show, seasons, episodes, nil
}

// showSummary queries by slug, retrying once with the imdb id when the
// slug is unknown and the alternate id is structurally valid.
func (r *Resolver) showSummary(ctx context.Context, slug, imdbID string) (*trakt.Show, error) {
	summary, err := r.trakt.ShowSummary(ctx, slug)
	if errors.Is(err, trakt.ErrNotFound) && imdbIDPattern.MatchString(imdbID) {
		r.logger.Debug("slug unknown, retrying by imdb id", "slug", slug, "imdb", imdbID)
		return r.trakt.ShowSummary(ctx, imdbID)
	}
	return summary, err
}

// backoffShow decides the post-resolution backoff from the show's
// lifecycle: ended shows rest long, airing shows rest until the day
// before their next episode.
func (r *Resolver) backoffShow(ctx context.Context, show *catalog.Show, traktID string) {
	status := strings.ToLower(show.AirInfo.Status)
	if status == "ended" || status == "canceled" {
		if err := r.backoff.BlacklistForWeeks(show.Slug, show.Title, title.ContentTypeShow,
			blacklist.ReasonEnded, blacklist.EndedWeeks); err != nil {
			r.logger.Warn("blacklisting failed", "slug", show.Slug, "error", err)
		}
		return
	}

	next, err := r.trakt.NextEpisode(ctx, traktID)
	if err != nil {
		r.logger.Debug("next episode unavailable", "slug", show.Slug, "error", err)
		return
	}
	if next == nil || next.FirstAired == nil || !next.FirstAired.After(time.Now()) {
		return
	}
	until := next.FirstAired.Add(-24 * time.Hour)
	if err := r.backoff.BlacklistUntil(show.Slug, show.Title, title.ContentTypeShow,
		blacklist.ReasonNextEpisode, until); err != nil {
		r.logger.Warn("blacklisting failed", "slug", show.Slug, "error", err)
	}
}

// verifyTitle warns when the resolved title diverges sharply from the
// parsed one, a sign the slug landed on the wrong record.
func (r *Resolver) verifyTitle(parsed, resolved string) {
	if parsed == "" || resolved == "" {
		return
	}
	score := float64(edlib.JaroWinklerSimilarity(strings.ToLower(parsed), strings.ToLower(resolved)))
	if score < titleMatchThreshold {
		r.logger.Warn("resolved title diverges from parsed title",
			"parsed", parsed, "resolved", resolved, "score", score)
	}
}

func deriveRating(rating float64, votes, watching int) catalog.Rating {
	percentage := int(math.Round(rating * 10))
	return catalog.Rating{
		Percentage: percentage,
		Stars:      float64(percentage) / 100 * 5,
		Votes:      votes,
		Watching:   watching,
	}
}

// trailerID extracts the YouTube video id from a trailer URL.
func trailerID(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("v")
}

// canonicalSlug prefers the metadata source's slug, falling back to the
// parsed one.
func canonicalSlug(resolved, parsed string) string {
	if resolved != "" {
		return resolved
	}
	return parsed
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
