// Package catalog persists the merged movie and show catalog.
package catalog

import (
	"time"

	"github.com/catarr/catarr/pkg/torrents"
)

// PlaceholderPoster and friends are the sentinel image values stored when
// no provider in the image chain could supply a real URL. A slot holding
// a sentinel counts as unset for later fill attempts.
const (
	PlaceholderPoster   = "/images/posterholder.png"
	PlaceholderBackdrop = "/images/backdropholder.png"
	PlaceholderBanner   = "/images/bannerholder.png"
)

// Images holds the three artwork slots of a content item. Values are
// absolute URLs, or the placeholder sentinels when unresolved.
type Images struct {
	Poster   string `json:"poster"`
	Backdrop string `json:"backdrop"`
	Banner   string `json:"banner"`
}

// PlaceholderImages returns a fully-sentinel image set.
func PlaceholderImages() Images {
	return Images{
		Poster:   PlaceholderPoster,
		Backdrop: PlaceholderBackdrop,
		Banner:   PlaceholderBanner,
	}
}

// Rating is derived from the metadata source's 0-10 rating.
type Rating struct {
	Percentage int     `json:"percentage"`
	Stars      float64 `json:"stars"`
	Votes      int     `json:"votes"`
	Watching   int     `json:"watching"`
}

// Runtime carries both raw components and pre-rendered display strings.
type Runtime struct {
	Hours   int    `json:"hours"`
	Minutes int    `json:"minutes"`
	Short   string `json:"short"`
	Full    string `json:"full"`
}

// Watched is owned by API consumers, never written by the crawler.
type Watched struct {
	Complete bool `json:"complete"`
}

// Download is owned by API consumers, never written by the crawler.
type Download struct {
	Downloaded   bool       `json:"downloaded"`
	DownloadedOn *time.Time `json:"downloadedOn,omitempty"`
}

// AirInfo describes a show's broadcast slot and lifecycle status.
type AirInfo struct {
	Network string `json:"network"`
	Country string `json:"country"`
	Day     string `json:"day"`
	Time    string `json:"time"`
	Status  string `json:"status"`
}

// Movie is a catalog root document keyed by imdb id.
type Movie struct {
	ImdbID        string
	TmdbID        int64
	Slug          string
	Title         string
	Year          int
	Synopsis      string
	Runtime       Runtime
	Rating        Rating
	Images        Images
	Genres        []string
	Released      *time.Time
	Trailer       string
	Certification string
	Torrents      []torrents.Torrent
	Bookmarked    bool
	BookmarkedOn  *time.Time
	Watched       Watched
	Download      Download
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Show is a catalog root document keyed by imdb id. Torrents live on its
// episodes, not on the root.
type Show struct {
	ImdbID             string
	TmdbID             int64
	TvdbID             int64
	Slug               string
	Title              string
	Year               int
	Synopsis           string
	Runtime            Runtime
	Rating             Rating
	Images             Images
	Genres             []string
	Trailer            string
	Certification      string
	AirInfo            AirInfo
	NumSeasons         int
	LatestEpisodeAired *time.Time
	Bookmarked         bool
	BookmarkedOn       *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Season is owned by its show, keyed by (show imdb id, number).
type Season struct {
	ShowID     string
	Number     int
	Title      string
	Synopsis   string
	FirstAired *time.Time
	Images     Images
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Episode is owned by its season, keyed by (show imdb id, season, number).
// Its torrents follow the same one-per-quality invariant as movie torrents.
type Episode struct {
	ShowID     string
	Season     int
	Number     int
	Title      string
	Synopsis   string
	FirstAired *time.Time
	Torrents   []torrents.Torrent
	Watched    Watched
	Download   Download
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
