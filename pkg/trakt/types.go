package trakt

import "time"

// IDs is the cross-provider identifier block attached to every record.
type IDs struct {
	Trakt int    `json:"trakt"`
	Slug  string `json:"slug"`
	Imdb  string `json:"imdb"`
	Tmdb  int64  `json:"tmdb"`
	Tvdb  int64  `json:"tvdb"`
}

// Movie is a trakt movie summary with extended=full fields.
type Movie struct {
	Title         string   `json:"title"`
	Year          int      `json:"year"`
	IDs           IDs      `json:"ids"`
	Overview      string   `json:"overview"`
	Released      string   `json:"released"` // YYYY-MM-DD
	Runtime       int      `json:"runtime"`  // minutes
	Trailer       string   `json:"trailer"`
	Rating        float64  `json:"rating"` // 0-10
	Votes         int      `json:"votes"`
	Language      string   `json:"language"`
	Genres        []string `json:"genres"`
	Certification string   `json:"certification"`
}

// Airs describes a show's broadcast slot.
type Airs struct {
	Day      string `json:"day"`
	Time     string `json:"time"`
	Timezone string `json:"timezone"`
}

// Show is a trakt show summary with extended=full fields.
type Show struct {
	Title         string    `json:"title"`
	Year          int       `json:"year"`
	IDs           IDs       `json:"ids"`
	Overview      string    `json:"overview"`
	FirstAired    time.Time `json:"first_aired"`
	Airs          Airs      `json:"airs"`
	Runtime       int       `json:"runtime"` // minutes
	Network       string    `json:"network"`
	Country       string    `json:"country"`
	Trailer       string    `json:"trailer"`
	Status        string    `json:"status"` // returning series, ended, canceled, ...
	Rating        float64   `json:"rating"` // 0-10
	Votes         int       `json:"votes"`
	Language      string    `json:"language"`
	Genres        []string  `json:"genres"`
	Certification string    `json:"certification"`
	AiredEpisodes int       `json:"aired_episodes"`
}

// Episode is a trakt episode record, used by both the next-episode and
// season endpoints.
type Episode struct {
	Season     int        `json:"season"`
	Number     int        `json:"number"`
	Title      string     `json:"title"`
	IDs        IDs        `json:"ids"`
	Overview   string     `json:"overview"`
	FirstAired *time.Time `json:"first_aired"`
	Rating     float64    `json:"rating"`
	Votes      int        `json:"votes"`
}
