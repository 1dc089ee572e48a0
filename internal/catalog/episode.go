package catalog

import (
	"fmt"
	"time"

	"github.com/catarr/catarr/pkg/torrents"
)

func saveSeason(q querier, se *Season) error {
	now := time.Now()
	if se.CreatedAt.IsZero() {
		se.CreatedAt = now
	}

	images, err := marshalDoc(se.Images)
	if err != nil {
		return err
	}

	_, err = q.Exec(`
		INSERT INTO seasons (show_imdb_id, number, title, synopsis, first_aired, images, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(show_imdb_id, number) DO UPDATE SET
			title = excluded.title,
			synopsis = excluded.synopsis,
			first_aired = excluded.first_aired,
			images = excluded.images,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`,
		se.ShowID, se.Number, se.Title, se.Synopsis, se.FirstAired, images, se.CreatedAt, now,
	)
	if err != nil {
		return fmt.Errorf("save season %s/%d: %w", se.ShowID, se.Number, mapSQLiteError(err))
	}
	se.UpdatedAt = now
	return nil
}

// SaveSeason upserts a season keyed by (show imdb id, number).
func (s *Store) SaveSeason(se *Season) error { return saveSeason(s.db, se) }

// SaveSeason upserts a season within a transaction.
func (t *Tx) SaveSeason(se *Season) error { return saveSeason(t.tx, se) }

const episodeColumns = `show_imdb_id, season, number, title, synopsis, first_aired, torrents,
	watched, download, created_at, updated_at`

func saveEpisode(q querier, e *Episode) error {
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}

	torrentsDoc, err := marshalDoc(e.Torrents)
	if err != nil {
		return err
	}
	watched, err := marshalDoc(e.Watched)
	if err != nil {
		return err
	}
	download, err := marshalDoc(e.Download)
	if err != nil {
		return err
	}

	_, err = q.Exec(`
		INSERT INTO episodes (`+episodeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(show_imdb_id, season, number) DO UPDATE SET
			title = excluded.title,
			synopsis = excluded.synopsis,
			first_aired = excluded.first_aired,
			torrents = excluded.torrents,
			watched = excluded.watched,
			download = excluded.download,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`,
		e.ShowID, e.Season, e.Number, e.Title, e.Synopsis, e.FirstAired, torrentsDoc,
		watched, download, e.CreatedAt, now,
	)
	if err != nil {
		return fmt.Errorf("save episode %s/%d/%d: %w", e.ShowID, e.Season, e.Number, mapSQLiteError(err))
	}
	e.UpdatedAt = now
	return nil
}

// SaveEpisode upserts an episode keyed by (show imdb id, season, number).
func (s *Store) SaveEpisode(e *Episode) error { return saveEpisode(s.db, e) }

// SaveEpisode upserts an episode within a transaction.
func (t *Tx) SaveEpisode(e *Episode) error { return saveEpisode(t.tx, e) }

func scanEpisode(row interface{ Scan(...any) error }) (*Episode, error) {
	e := &Episode{}
	var torrentsDoc, watched, download string
	err := row.Scan(
		&e.ShowID, &e.Season, &e.Number, &e.Title, &e.Synopsis, &e.FirstAired, &torrentsDoc,
		&watched, &download, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Torrents = []torrents.Torrent{}
	if err := unmarshalDoc(torrentsDoc, &e.Torrents); err != nil {
		return nil, err
	}
	if err := unmarshalDoc(watched, &e.Watched); err != nil {
		return nil, err
	}
	if err := unmarshalDoc(download, &e.Download); err != nil {
		return nil, err
	}
	return e, nil
}

func getEpisode(q querier, showID string, season, number int) (*Episode, error) {
	e, err := scanEpisode(q.QueryRow(
		`SELECT `+episodeColumns+` FROM episodes WHERE show_imdb_id = ? AND season = ? AND number = ?`,
		showID, season, number,
	))
	if err != nil {
		return nil, fmt.Errorf("get episode %s/%d/%d: %w", showID, season, number, mapSQLiteError(err))
	}
	return e, nil
}

// GetEpisode retrieves one episode.
// Returns ErrNotFound if the episode does not exist.
func (s *Store) GetEpisode(showID string, season, number int) (*Episode, error) {
	return getEpisode(s.db, showID, season, number)
}

// GetEpisode retrieves one episode within a transaction.
func (t *Tx) GetEpisode(showID string, season, number int) (*Episode, error) {
	return getEpisode(t.tx, showID, season, number)
}

func listEpisodes(q querier, showID string) ([]*Episode, error) {
	rows, err := q.Query(
		`SELECT `+episodeColumns+` FROM episodes WHERE show_imdb_id = ? ORDER BY season, number`,
		showID,
	)
	if err != nil {
		return nil, fmt.Errorf("list episodes %s: %w", showID, err)
	}
	defer func() { _ = rows.Close() }()

	var episodes []*Episode
	for rows.Next() {
		e, err := scanEpisode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		episodes = append(episodes, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episodes: %w", err)
	}
	return episodes, nil
}

// ListEpisodes returns every episode of a show ordered by season and number.
func (s *Store) ListEpisodes(showID string) ([]*Episode, error) { return listEpisodes(s.db, showID) }

// ListEpisodes returns a show's episodes within a transaction.
func (t *Tx) ListEpisodes(showID string) ([]*Episode, error) { return listEpisodes(t.tx, showID) }
