// Package title parses raw torrent listing titles into structured content
// identifiers: title, slug, optional season/episode, quality bucket.
package title

// ContentType distinguishes movies from shows.
type ContentType string

const (
	ContentTypeMovie ContentType = "movie"
	ContentTypeShow  ContentType = "show"
)

// Quality is a video resolution bucket used to rank competing torrents.
type Quality string

const (
	Quality480p    Quality = "480p"
	Quality720p    Quality = "720p"
	Quality1080p   Quality = "1080p"
	Quality2160p   Quality = "2160p"
	Quality3D      Quality = "3D"
	QualityUnknown Quality = "unknown"
)

// ID is the structured identifier extracted from one torrent listing.
// Slug is the join key between scraped torrents, metadata records and
// the persisted catalog.
type ID struct {
	Source   string
	RawTitle string
	Title    string
	Slug     string
	Type     ContentType
	Season   int
	Episode  int
	Quality  Quality
	Year     int
}
