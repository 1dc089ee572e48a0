package resolver

import (
	"context"
	"fmt"
	"sort"

	"github.com/catarr/catarr/internal/catalog"
	"github.com/catarr/catarr/pkg/tmdb"
	"github.com/catarr/catarr/pkg/torrents"
	"github.com/catarr/catarr/pkg/trakt"
)

// assembleSeasons builds season and episode documents for every season
// the crawl found torrents for. Episode metadata comes from tmdb, with
// trakt as the per-season fallback; a season whose metadata cannot be
// fetched from either source is logged and dropped. Seasons with no
// torrent-carrying episodes are discarded outright.
func (r *Resolver) assembleSeasons(ctx context.Context, show *catalog.Show, traktID string,
	scraped map[int]map[int][]torrents.Torrent) ([]*catalog.Season, []*catalog.Episode) {

	numbers := make([]int, 0, len(scraped))
	for n := range scraped {
		if hasTorrents(scraped[n]) {
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)

	var seasons []*catalog.Season
	var episodes []*catalog.Episode
	for _, n := range numbers {
		season, eps, err := r.seasonFromTMDB(ctx, show, n, scraped[n])
		if err != nil {
			r.logger.Debug("tmdb season unavailable, falling back to trakt",
				"slug", show.Slug, "season", n, "error", err)
			season, eps, err = r.seasonFromTrakt(ctx, traktID, show, n, scraped[n])
		}
		if err != nil {
			r.logger.Warn("season metadata unavailable, dropping season",
				"slug", show.Slug, "season", n, "error", err)
			continue
		}
		seasons = append(seasons, season)
		episodes = append(episodes, eps...)

		if n > show.NumSeasons {
			show.NumSeasons = n
		}
	}
	return seasons, episodes
}

func hasTorrents(eps map[int][]torrents.Torrent) bool {
	for _, ts := range eps {
		if len(ts) > 0 {
			return true
		}
	}
	return false
}

func (r *Resolver) seasonFromTMDB(ctx context.Context, show *catalog.Show, number int,
	scraped map[int][]torrents.Torrent) (*catalog.Season, []*catalog.Episode, error) {

	details, err := r.tmdb.Season(ctx, show.TmdbID, number)
	if err != nil {
		return nil, nil, err
	}

	season := &catalog.Season{
		ShowID:     show.ImdbID,
		Number:     number,
		Title:      details.Name,
		Synopsis:   details.Overview,
		FirstAired: parseDate(details.AirDate),
		Images:     catalog.PlaceholderImages(),
	}
	fill(&season.Images.Poster, details.PosterURL())

	byNumber := make(map[int]tmdb.SeasonEpisode, len(details.Episodes))
	for _, e := range details.Episodes {
		byNumber[e.Number] = e
	}

	episodes := buildEpisodes(show.ImdbID, number, scraped, func(epNum int) (string, string, *catalog.Episode) {
		md, ok := byNumber[epNum]
		if !ok {
			return "", "", nil
		}
		return md.Name, md.Overview, &catalog.Episode{FirstAired: parseDate(md.AirDate)}
	})
	return season, episodes, nil
}

func (r *Resolver) seasonFromTrakt(ctx context.Context, traktID string, show *catalog.Show, number int,
	scraped map[int][]torrents.Torrent) (*catalog.Season, []*catalog.Episode, error) {

	eps, err := r.trakt.SeasonEpisodes(ctx, traktID, number)
	if err != nil {
		return nil, nil, err
	}

	season := &catalog.Season{
		ShowID: show.ImdbID,
		Number: number,
		Title:  fmt.Sprintf("Season %d", number),
		Images: catalog.PlaceholderImages(),
	}
	if len(eps) > 0 && eps[0].FirstAired != nil {
		aired := *eps[0].FirstAired
		season.FirstAired = &aired
	}

	byNumber := make(map[int]trakt.Episode, len(eps))
	for _, e := range eps {
		byNumber[e.Number] = e
	}

	episodes := buildEpisodes(show.ImdbID, number, scraped, func(epNum int) (string, string, *catalog.Episode) {
		md, ok := byNumber[epNum]
		if !ok {
			return "", "", nil
		}
		e := &catalog.Episode{}
		if md.FirstAired != nil {
			aired := *md.FirstAired
			e.FirstAired = &aired
		}
		return md.Title, md.Overview, e
	})
	return season, episodes, nil
}

// buildEpisodes creates one episode document per scraped episode number,
// merging its torrents and overlaying whatever metadata the lookup
// function can supply.
func buildEpisodes(showID string, season int, scraped map[int][]torrents.Torrent,
	lookup func(int) (string, string, *catalog.Episode)) []*catalog.Episode {

	numbers := make([]int, 0, len(scraped))
	for n := range scraped {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	var episodes []*catalog.Episode
	for _, n := range numbers {
		if len(scraped[n]) == 0 {
			continue
		}
		ep := &catalog.Episode{
			ShowID:   showID,
			Season:   season,
			Number:   n,
			Title:    fmt.Sprintf("Episode %d", n),
			Torrents: torrents.Merge(scraped[n], nil),
		}
		if name, overview, md := lookup(n); md != nil {
			if name != "" {
				ep.Title = name
			}
			ep.Synopsis = overview
			ep.FirstAired = md.FirstAired
		}
		episodes = append(episodes, ep)
	}
	return episodes
}
