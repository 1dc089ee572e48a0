package catalog

import (
	"fmt"
	"time"
)

const showColumns = `imdb_id, tmdb_id, tvdb_id, slug, title, year, synopsis, runtime, rating,
	images, genres, trailer, certification, air_network, air_country, air_day, air_time,
	air_status, num_seasons, latest_episode_aired, bookmarked, bookmarked_on, created_at, updated_at`

func saveShow(q querier, sh *Show) error {
	now := time.Now()
	if sh.CreatedAt.IsZero() {
		sh.CreatedAt = now
	}

	runtime, err := marshalDoc(sh.Runtime)
	if err != nil {
		return err
	}
	rating, err := marshalDoc(sh.Rating)
	if err != nil {
		return err
	}
	images, err := marshalDoc(sh.Images)
	if err != nil {
		return err
	}
	genres, err := marshalDoc(sh.Genres)
	if err != nil {
		return err
	}

	_, err = q.Exec(`
		INSERT INTO shows (`+showColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(imdb_id) DO UPDATE SET
			tmdb_id = excluded.tmdb_id,
			tvdb_id = excluded.tvdb_id,
			slug = excluded.slug,
			title = excluded.title,
			year = excluded.year,
			synopsis = excluded.synopsis,
			runtime = excluded.runtime,
			rating = excluded.rating,
			images = excluded.images,
			genres = excluded.genres,
			trailer = excluded.trailer,
			certification = excluded.certification,
			air_network = excluded.air_network,
			air_country = excluded.air_country,
			air_day = excluded.air_day,
			air_time = excluded.air_time,
			air_status = excluded.air_status,
			num_seasons = excluded.num_seasons,
			latest_episode_aired = excluded.latest_episode_aired,
			bookmarked = excluded.bookmarked,
			bookmarked_on = excluded.bookmarked_on,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`,
		sh.ImdbID, sh.TmdbID, sh.TvdbID, sh.Slug, sh.Title, sh.Year, sh.Synopsis, runtime, rating,
		images, genres, sh.Trailer, sh.Certification, sh.AirInfo.Network, sh.AirInfo.Country,
		sh.AirInfo.Day, sh.AirInfo.Time, sh.AirInfo.Status, sh.NumSeasons, sh.LatestEpisodeAired,
		sh.Bookmarked, sh.BookmarkedOn, sh.CreatedAt, now,
	)
	if err != nil {
		return fmt.Errorf("save show %s: %w", sh.ImdbID, mapSQLiteError(err))
	}
	sh.UpdatedAt = now
	return nil
}

// SaveShow upserts a show root document by imdb id.
func (s *Store) SaveShow(sh *Show) error { return saveShow(s.db, sh) }

// SaveShow upserts a show within a transaction.
func (t *Tx) SaveShow(sh *Show) error { return saveShow(t.tx, sh) }

func scanShow(row interface{ Scan(...any) error }) (*Show, error) {
	sh := &Show{}
	var runtime, rating, images, genres string
	err := row.Scan(
		&sh.ImdbID, &sh.TmdbID, &sh.TvdbID, &sh.Slug, &sh.Title, &sh.Year, &sh.Synopsis, &runtime, &rating,
		&images, &genres, &sh.Trailer, &sh.Certification, &sh.AirInfo.Network, &sh.AirInfo.Country,
		&sh.AirInfo.Day, &sh.AirInfo.Time, &sh.AirInfo.Status, &sh.NumSeasons, &sh.LatestEpisodeAired,
		&sh.Bookmarked, &sh.BookmarkedOn, &sh.CreatedAt, &sh.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalDoc(runtime, &sh.Runtime); err != nil {
		return nil, err
	}
	if err := unmarshalDoc(rating, &sh.Rating); err != nil {
		return nil, err
	}
	if err := unmarshalDoc(images, &sh.Images); err != nil {
		return nil, err
	}
	if err := unmarshalDoc(genres, &sh.Genres); err != nil {
		return nil, err
	}
	return sh, nil
}

func getShow(q querier, imdbID string) (*Show, error) {
	sh, err := scanShow(q.QueryRow(
		`SELECT `+showColumns+` FROM shows WHERE imdb_id = ?`, imdbID,
	))
	if err != nil {
		return nil, fmt.Errorf("get show %s: %w", imdbID, mapSQLiteError(err))
	}
	return sh, nil
}

// GetShow retrieves a show by imdb id.
// Returns ErrNotFound if the show does not exist.
func (s *Store) GetShow(imdbID string) (*Show, error) { return getShow(s.db, imdbID) }

// GetShow retrieves a show by imdb id within a transaction.
func (t *Tx) GetShow(imdbID string) (*Show, error) { return getShow(t.tx, imdbID) }

func findShowBySlug(q querier, slug string) (*Show, error) {
	sh, err := scanShow(q.QueryRow(
		`SELECT `+showColumns+` FROM shows WHERE slug = ?`, slug,
	))
	if err != nil {
		return nil, fmt.Errorf("find show %s: %w", slug, mapSQLiteError(err))
	}
	return sh, nil
}

// FindShowBySlug retrieves a show by its slug.
// Returns ErrNotFound if no show carries the slug.
func (s *Store) FindShowBySlug(slug string) (*Show, error) { return findShowBySlug(s.db, slug) }

// FindShowBySlug retrieves a show by slug within a transaction.
func (t *Tx) FindShowBySlug(slug string) (*Show, error) { return findShowBySlug(t.tx, slug) }

// ShowSlugs returns every stored show slug.
func (s *Store) ShowSlugs() ([]string, error) {
	return distinctSlugs(s.db, "shows")
}

// CountShows returns the number of stored shows.
func (s *Store) CountShows() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM shows").Scan(&n); err != nil {
		return 0, fmt.Errorf("count shows: %w", err)
	}
	return n, nil
}
