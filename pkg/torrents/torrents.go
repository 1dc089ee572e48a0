// Package torrents merges scraped torrent sets under a
// one-winner-per-quality-bucket invariant.
package torrents

import (
	"sort"

	"github.com/catarr/catarr/pkg/title"
)

// Torrent is one release candidate for a content item. Size is the
// human-readable rendering of SizeBytes, recomputed on every merge.
type Torrent struct {
	Title     string        `json:"title,omitempty"`
	Quality   title.Quality `json:"quality"`
	Provider  string        `json:"provider"`
	Language  string        `json:"language"`
	SizeBytes int64         `json:"sizeBytes"`
	Size      string        `json:"size"`
	Seeds     int           `json:"seeds"`
	Peers     int           `json:"peers"`
	URL       string        `json:"url"`
}

// qualityRank fixes the output ordering. Lower ranks sort first.
var qualityRank = map[title.Quality]int{
	title.Quality2160p: 0,
	title.Quality3D:    1,
	title.Quality1080p: 2,
	title.Quality720p:  3,
	title.Quality480p:  4,
}

func rank(q title.Quality) int {
	if r, ok := qualityRank[q]; ok {
		return r
	}
	return len(qualityRank)
}

// Merge folds fresh and existing torrents into at most one entry per
// quality bucket. Existing entries hold their bucket until a challenger
// beats them; torrents with an unknown quality are discarded. Merge is a
// pure function and is idempotent: merging its own output against an
// empty set reproduces it.
func Merge(fresh, existing []Torrent) []Torrent {
	best := make(map[title.Quality]Torrent, len(existing)+len(fresh))
	fold := func(ts []Torrent) {
		for _, t := range ts {
			if _, known := qualityRank[t.Quality]; !known {
				continue
			}
			holder, held := best[t.Quality]
			if !held || beats(t, holder) {
				best[t.Quality] = t
			}
		}
	}
	fold(existing)
	fold(fresh)

	out := make([]Torrent, 0, len(best))
	for _, t := range best {
		t.Size = FormatSize(t.SizeBytes)
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return rank(out[i].Quality) < rank(out[j].Quality)
	})
	return out
}

// beats reports whether a challenger displaces the current holder of its
// quality bucket. An identical URL always wins, so re-ingesting the same
// listing refreshes its seed and peer counts. For the 2160p bucket the
// smaller file wins, since oversized UHD releases tend to be bloated
// re-encodes. Every other bucket goes to the higher seed count.
func beats(challenger, holder Torrent) bool {
	if challenger.URL != "" && challenger.URL == holder.URL {
		return true
	}
	if challenger.Quality == title.Quality2160p {
		return challenger.SizeBytes < holder.SizeBytes
	}
	return challenger.Seeds > holder.Seeds
}
