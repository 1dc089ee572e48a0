package tmdb

// Images is the resolved artwork for one content item. Empty fields mean
// no acceptable candidate existed.
type Images struct {
	Poster   string
	Backdrop string
}

type image struct {
	FilePath    string  `json:"file_path"`
	ISO639      *string `json:"iso_639_1"`
	VoteAverage float64 `json:"vote_average"`
}

type imagesResponse struct {
	Backdrops []image `json:"backdrops"`
	Posters   []image `json:"posters"`
}

// Season is a TV season with its episodes.
type Season struct {
	Number     int       `json:"season_number"`
	Name       string    `json:"name"`
	Overview   string    `json:"overview"`
	AirDate    string    `json:"air_date"` // YYYY-MM-DD
	PosterPath string    `json:"poster_path"`
	Episodes   []SeasonEpisode `json:"episodes"`
}

// SeasonEpisode is one episode within a Season payload.
type SeasonEpisode struct {
	Season    int    `json:"season_number"`
	Number    int    `json:"episode_number"`
	Name      string `json:"name"`
	Overview  string `json:"overview"`
	AirDate   string `json:"air_date"` // YYYY-MM-DD
	StillPath string `json:"still_path"`
}

// PosterURL returns the absolute poster URL, or empty when unset.
func (s *Season) PosterURL() string {
	if s.PosterPath == "" {
		return ""
	}
	return imageBaseURL + s.PosterPath
}
