package catalog

import (
	"fmt"
	"time"

	"github.com/catarr/catarr/pkg/torrents"
)

const movieColumns = `imdb_id, tmdb_id, slug, title, year, synopsis, runtime, rating, images,
	genres, released, trailer, certification, torrents, bookmarked, bookmarked_on,
	watched, download, created_at, updated_at`

func saveMovie(q querier, m *Movie) error {
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}

	runtime, err := marshalDoc(m.Runtime)
	if err != nil {
		return err
	}
	rating, err := marshalDoc(m.Rating)
	if err != nil {
		return err
	}
	images, err := marshalDoc(m.Images)
	if err != nil {
		return err
	}
	genres, err := marshalDoc(m.Genres)
	if err != nil {
		return err
	}
	torrentsDoc, err := marshalDoc(m.Torrents)
	if err != nil {
		return err
	}
	watched, err := marshalDoc(m.Watched)
	if err != nil {
		return err
	}
	download, err := marshalDoc(m.Download)
	if err != nil {
		return err
	}

	_, err = q.Exec(`
		INSERT INTO movies (`+movieColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(imdb_id) DO UPDATE SET
			tmdb_id = excluded.tmdb_id,
			slug = excluded.slug,
			title = excluded.title,
			year = excluded.year,
			synopsis = excluded.synopsis,
			runtime = excluded.runtime,
			rating = excluded.rating,
			images = excluded.images,
			genres = excluded.genres,
			released = excluded.released,
			trailer = excluded.trailer,
			certification = excluded.certification,
			torrents = excluded.torrents,
			bookmarked = excluded.bookmarked,
			bookmarked_on = excluded.bookmarked_on,
			watched = excluded.watched,
			download = excluded.download,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`,
		m.ImdbID, m.TmdbID, m.Slug, m.Title, m.Year, m.Synopsis, runtime, rating, images,
		genres, m.Released, m.Trailer, m.Certification, torrentsDoc, m.Bookmarked, m.BookmarkedOn,
		watched, download, m.CreatedAt, now,
	)
	if err != nil {
		return fmt.Errorf("save movie %s: %w", m.ImdbID, mapSQLiteError(err))
	}
	m.UpdatedAt = now
	return nil
}

// SaveMovie upserts a movie by imdb id, replacing every column. Field
// preservation across merges is the Merger's concern, not the store's.
func (s *Store) SaveMovie(m *Movie) error { return saveMovie(s.db, m) }

// SaveMovie upserts a movie within a transaction.
func (t *Tx) SaveMovie(m *Movie) error { return saveMovie(t.tx, m) }

func scanMovie(row interface{ Scan(...any) error }) (*Movie, error) {
	m := &Movie{}
	var runtime, rating, images, genres, torrentsDoc, watched, download string
	err := row.Scan(
		&m.ImdbID, &m.TmdbID, &m.Slug, &m.Title, &m.Year, &m.Synopsis, &runtime, &rating, &images,
		&genres, &m.Released, &m.Trailer, &m.Certification, &torrentsDoc, &m.Bookmarked, &m.BookmarkedOn,
		&watched, &download, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalDoc(runtime, &m.Runtime); err != nil {
		return nil, err
	}
	if err := unmarshalDoc(rating, &m.Rating); err != nil {
		return nil, err
	}
	if err := unmarshalDoc(images, &m.Images); err != nil {
		return nil, err
	}
	if err := unmarshalDoc(genres, &m.Genres); err != nil {
		return nil, err
	}
	m.Torrents = []torrents.Torrent{}
	if err := unmarshalDoc(torrentsDoc, &m.Torrents); err != nil {
		return nil, err
	}
	if err := unmarshalDoc(watched, &m.Watched); err != nil {
		return nil, err
	}
	if err := unmarshalDoc(download, &m.Download); err != nil {
		return nil, err
	}
	return m, nil
}

func getMovie(q querier, imdbID string) (*Movie, error) {
	m, err := scanMovie(q.QueryRow(
		`SELECT `+movieColumns+` FROM movies WHERE imdb_id = ?`, imdbID,
	))
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", imdbID, mapSQLiteError(err))
	}
	return m, nil
}

// GetMovie retrieves a movie by imdb id.
// Returns ErrNotFound if the movie does not exist.
func (s *Store) GetMovie(imdbID string) (*Movie, error) { return getMovie(s.db, imdbID) }

// GetMovie retrieves a movie by imdb id within a transaction.
func (t *Tx) GetMovie(imdbID string) (*Movie, error) { return getMovie(t.tx, imdbID) }

func findMovieBySlug(q querier, slug string) (*Movie, error) {
	m, err := scanMovie(q.QueryRow(
		`SELECT `+movieColumns+` FROM movies WHERE slug = ?`, slug,
	))
	if err != nil {
		return nil, fmt.Errorf("find movie %s: %w", slug, mapSQLiteError(err))
	}
	return m, nil
}

// FindMovieBySlug retrieves a movie by its slug.
// Returns ErrNotFound if no movie carries the slug.
func (s *Store) FindMovieBySlug(slug string) (*Movie, error) { return findMovieBySlug(s.db, slug) }

// FindMovieBySlug retrieves a movie by slug within a transaction.
func (t *Tx) FindMovieBySlug(slug string) (*Movie, error) { return findMovieBySlug(t.tx, slug) }

// MovieSlugs returns every stored movie slug.
func (s *Store) MovieSlugs() ([]string, error) {
	return distinctSlugs(s.db, "movies")
}

// CountMovies returns the number of stored movies.
func (s *Store) CountMovies() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM movies").Scan(&n); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return n, nil
}

func distinctSlugs(q querier, table string) ([]string, error) {
	rows, err := q.Query("SELECT DISTINCT slug FROM " + table + " ORDER BY slug")
	if err != nil {
		return nil, fmt.Errorf("list %s slugs: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var slugs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan slug: %w", err)
		}
		slugs = append(slugs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slugs: %w", err)
	}
	return slugs, nil
}
