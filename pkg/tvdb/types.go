// Package tvdb provides a client for the TVDB API v4.
package tvdb

// Series artwork type ids in the TVDB v4 scheme.
const (
	artworkTypeBanner     = 1
	artworkTypePoster     = 2
	artworkTypeBackground = 3
)

// Artwork is the best-scored image of each kind for a series. Empty
// fields mean no artwork of that kind exists.
type Artwork struct {
	Poster   string
	Backdrop string
	Banner   string
}

// loginResponse is the TVDB login API response.
type loginResponse struct {
	Status string `json:"status"`
	Data   struct {
		Token string `json:"token"`
	} `json:"data"`
}

type artwork struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
	Type  int    `json:"type"`
	Score int    `json:"score"`
}

// seriesExtendedResponse is the TVDB extended series API response,
// reduced to the fields the artwork lookup needs.
type seriesExtendedResponse struct {
	Status string `json:"status"`
	Data   struct {
		ID       int64     `json:"id"`
		Name     string    `json:"name"`
		Artworks []artwork `json:"artworks"`
	} `json:"data"`
}
