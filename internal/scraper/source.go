// Package scraper drives torrent-index sources: it paginates a source
// under a bounded concurrency, parses every listing title, and folds the
// results into per-slug aggregates ready for metadata resolution.
package scraper

import "context"

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

// Listing is one raw torrent-index result, normalized across sources.
type Listing struct {
	Title     string
	AltTitle  string
	URL       string
	SizeBytes int64
	Seeds     int
	Peers     int
	Language  string
	ImdbID    string
}

// TorrentIndex is a paginated torrent listing source.
type TorrentIndex interface {
	// Name identifies the source in logs and torrent provenance.
	Name() string
	// PageCount returns the number of listing pages. Pages are 1-based.
	PageCount(ctx context.Context) (int, error)
	// Page fetches one page of listings.
	Page(ctx context.Context, page int) ([]Listing, error)
}
