package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/catarr/catarr/pkg/torrents"
)

// Merger reconciles freshly resolved content against the persisted
// catalog. The crawler never owns bookmark, watched or download state;
// those fields always survive a merge untouched.
type Merger struct {
	store  *Store
	logger *slog.Logger
}

// NewMerger creates a merger on top of the given store.
func NewMerger(store *Store, logger *slog.Logger) *Merger {
	return &Merger{store: store, logger: logger.With("component", "catalog")}
}

// SaveMovie inserts a new movie or updates an existing one. On update the
// existing record's createdAt, bookmarked, bookmarkedOn, watched and
// download fields are carried forward, and torrents are merged under the
// one-per-quality invariant.
func (m *Merger) SaveMovie(fresh *Movie) error {
	tx, err := m.store.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := tx.GetMovie(fresh.ImdbID)
	switch {
	case errors.Is(err, ErrNotFound):
		fresh.Torrents = torrents.Merge(fresh.Torrents, nil)
	case err != nil:
		return err
	default:
		fresh.CreatedAt = existing.CreatedAt
		fresh.Bookmarked = existing.Bookmarked
		fresh.BookmarkedOn = existing.BookmarkedOn
		fresh.Watched = existing.Watched
		fresh.Download = existing.Download
		fresh.Torrents = torrents.Merge(fresh.Torrents, existing.Torrents)
	}

	if err := tx.SaveMovie(fresh); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveShow inserts or updates a show root together with its seasons and
// episodes. Root-level caller-owned fields are preserved like movies;
// each episode independently preserves createdAt, watched and download
// and merges its torrents. Season and episode upserts are independent:
// a failure is logged and its siblings proceed.
func (m *Merger) SaveShow(fresh *Show, seasons []*Season, episodes []*Episode) error {
	existing, err := m.store.GetShow(fresh.ImdbID)
	switch {
	case errors.Is(err, ErrNotFound):
		existing = nil
	case err != nil:
		return err
	default:
		fresh.CreatedAt = existing.CreatedAt
		fresh.Bookmarked = existing.Bookmarked
		fresh.BookmarkedOn = existing.BookmarkedOn
	}

	fresh.LatestEpisodeAired = m.latestAired(fresh, existing, episodes)
	if fresh.NumSeasons == 0 {
		fresh.NumSeasons = len(seasons)
	}

	if err := m.store.SaveShow(fresh); err != nil {
		return err
	}

	for _, se := range seasons {
		se.ShowID = fresh.ImdbID
		if err := m.store.SaveSeason(se); err != nil {
			m.logger.Warn("season upsert failed",
				"show", fresh.ImdbID, "season", se.Number, "error", err)
		}
	}
	for _, e := range episodes {
		e.ShowID = fresh.ImdbID
		if err := m.mergeEpisode(e); err != nil {
			m.logger.Warn("episode upsert failed",
				"show", fresh.ImdbID, "season", e.Season, "episode", e.Number, "error", err)
		}
	}
	return nil
}

func (m *Merger) mergeEpisode(e *Episode) error {
	existing, err := m.store.GetEpisode(e.ShowID, e.Season, e.Number)
	switch {
	case errors.Is(err, ErrNotFound):
		e.Torrents = torrents.Merge(e.Torrents, nil)
	case err != nil:
		return err
	default:
		e.CreatedAt = existing.CreatedAt
		e.Watched = existing.Watched
		e.Download = existing.Download
		e.Torrents = torrents.Merge(e.Torrents, existing.Torrents)
	}
	return m.store.SaveEpisode(e)
}

// latestAired computes the denormalized most-recent air date across the
// incoming episodes and any already stored for the show.
func (m *Merger) latestAired(fresh, existing *Show, incoming []*Episode) *time.Time {
	latest := fresh.LatestEpisodeAired
	bump := func(t *time.Time) {
		if t != nil && (latest == nil || t.After(*latest)) {
			aired := *t
			latest = &aired
		}
	}
	for _, e := range incoming {
		bump(e.FirstAired)
	}
	if existing != nil {
		bump(existing.LatestEpisodeAired)
		stored, err := m.store.ListEpisodes(existing.ImdbID)
		if err != nil {
			m.logger.Warn("listing stored episodes failed",
				"show", existing.ImdbID, "error", err)
		}
		for _, e := range stored {
			bump(e.FirstAired)
		}
	}
	return latest
}

// Status summarizes the catalog for the run-status endpoint.
type Status struct {
	Movies int `json:"movies"`
	Shows  int `json:"shows"`
}

// CatalogStatus reports current content counts.
func (m *Merger) CatalogStatus() (Status, error) {
	movies, err := m.store.CountMovies()
	if err != nil {
		return Status{}, fmt.Errorf("catalog status: %w", err)
	}
	shows, err := m.store.CountShows()
	if err != nil {
		return Status{}, fmt.Errorf("catalog status: %w", err)
	}
	return Status{Movies: movies, Shows: shows}, nil
}
