package scraper

import (
	"context"

	"github.com/catarr/catarr/pkg/solid"
)

// SolidIndex adapts the SolidTorrents-style search client to the
// TorrentIndex interface. Each index instance crawls one search query,
// so a movie source and a UHD source can share a client.
type SolidIndex struct {
	client *solid.Client
	name   string
	query  string
}

// NewSolidIndex wraps a search client with the query it crawls.
func NewSolidIndex(client *solid.Client, name, query string) *SolidIndex {
	return &SolidIndex{client: client, name: name, query: query}
}

func (s *SolidIndex) Name() string { return s.name }

func (s *SolidIndex) PageCount(ctx context.Context) (int, error) {
	return s.client.PageCount(ctx, s.query)
}

func (s *SolidIndex) Page(ctx context.Context, page int) ([]Listing, error) {
	results, err := s.client.Search(ctx, s.query, page)
	if err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(results))
	for _, r := range results {
		listings = append(listings, Listing{
			Title:     r.Title,
			URL:       r.Magnet,
			SizeBytes: r.Size,
			Seeds:     r.Swarm.Seeders,
			Peers:     r.Swarm.Leechers,
		})
	}
	return listings, nil
}
