package scraper

import (
	"context"
	"strings"

	"github.com/catarr/catarr/pkg/eztv"
)

// EZTVIndex adapts the EZTV client to the TorrentIndex interface. EZTV
// lists shows only and tags every listing with an imdb id.
type EZTVIndex struct {
	client *eztv.Client
}

// NewEZTVIndex wraps an EZTV client.
func NewEZTVIndex(client *eztv.Client) *EZTVIndex {
	return &EZTVIndex{client: client}
}

func (s *EZTVIndex) Name() string { return "eztv" }

func (s *EZTVIndex) PageCount(ctx context.Context) (int, error) {
	return s.client.PageCount(ctx)
}

func (s *EZTVIndex) Page(ctx context.Context, page int) ([]Listing, error) {
	p, err := s.client.GetPage(ctx, page)
	if err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(p.Torrents))
	for _, t := range p.Torrents {
		url := t.MagnetURL
		if url == "" {
			url = t.TorrentURL
		}
		listings = append(listings, Listing{
			Title:     t.Title,
			AltTitle:  t.Filename,
			URL:       url,
			SizeBytes: t.Size(),
			Seeds:     t.Seeds,
			Peers:     t.Peers,
			ImdbID:    imdbID(t.ImdbID),
		})
	}
	return listings, nil
}

// imdbID normalizes EZTV's bare-digit imdb ids to the tt-prefixed form.
func imdbID(raw string) string {
	if raw == "" || strings.HasPrefix(raw, "tt") {
		return raw
	}
	return "tt" + raw
}
