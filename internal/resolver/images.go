package resolver

import (
	"context"

	"github.com/catarr/catarr/internal/catalog"
)

// filled reports whether an image slot holds a real URL. The sentinel
// placeholders count as unset.
func filled(slot string) bool {
	switch slot {
	case "", catalog.PlaceholderPoster, catalog.PlaceholderBackdrop, catalog.PlaceholderBanner:
		return false
	}
	return true
}

// fill sets a slot only when it is still unset and the candidate is
// non-empty. Earlier chain links are never overwritten.
func fill(slot *string, candidate string) {
	if !filled(*slot) && candidate != "" {
		*slot = candidate
	}
}

func complete(images catalog.Images) bool {
	return filled(images.Poster) && filled(images.Backdrop) && filled(images.Banner)
}

// movieImages walks the movie image chain: tmdb, then omdb, then
// fanart. Provider failures are logged and the chain moves on; if every
// link fails the sentinel placeholders remain.
func (r *Resolver) movieImages(ctx context.Context, imdbID string, tmdbID int64) catalog.Images {
	images := catalog.PlaceholderImages()

	if imgs, err := r.tmdb.MovieImages(ctx, tmdbID); err != nil {
		r.logger.Debug("tmdb movie images failed", "imdb", imdbID, "error", err)
	} else {
		fill(&images.Poster, imgs.Poster)
		fill(&images.Backdrop, imgs.Backdrop)
	}
	if complete(images) {
		return images
	}

	if poster, err := r.omdb.Poster(ctx, imdbID); err != nil {
		r.logger.Debug("omdb poster failed", "imdb", imdbID, "error", err)
	} else {
		fill(&images.Poster, poster)
	}
	if complete(images) {
		return images
	}

	if imgs, err := r.fanart.MovieImages(ctx, imdbID); err != nil {
		r.logger.Debug("fanart movie images failed", "imdb", imdbID, "error", err)
	} else {
		fill(&images.Poster, imgs.Poster)
		fill(&images.Backdrop, imgs.Backdrop)
		fill(&images.Banner, imgs.Banner)
	}
	return images
}

// showImages walks the show image chain: tmdb, then tvdb, then fanart.
func (r *Resolver) showImages(ctx context.Context, tmdbID, tvdbID int64) catalog.Images {
	images := catalog.PlaceholderImages()

	if imgs, err := r.tmdb.ShowImages(ctx, tmdbID); err != nil {
		r.logger.Debug("tmdb show images failed", "tmdb", tmdbID, "error", err)
	} else {
		fill(&images.Poster, imgs.Poster)
		fill(&images.Backdrop, imgs.Backdrop)
	}
	if complete(images) {
		return images
	}

	if art, err := r.tvdb.SeriesArtwork(ctx, tvdbID); err != nil {
		r.logger.Debug("tvdb artwork failed", "tvdb", tvdbID, "error", err)
	} else {
		fill(&images.Poster, art.Poster)
		fill(&images.Backdrop, art.Backdrop)
		fill(&images.Banner, art.Banner)
	}
	if complete(images) {
		return images
	}

	if imgs, err := r.fanart.ShowImages(ctx, tvdbID); err != nil {
		r.logger.Debug("fanart show images failed", "tvdb", tvdbID, "error", err)
	} else {
		fill(&images.Poster, imgs.Poster)
		fill(&images.Backdrop, imgs.Backdrop)
		fill(&images.Banner, imgs.Banner)
	}
	return images
}
