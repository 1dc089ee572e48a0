// Package blacklist records content that metadata resolution should skip
// until a stated expiry.
package blacklist

import (
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/catarr/catarr/pkg/title"
)

// Reasons recorded on blacklist entries.
const (
	Reason404             = "404"
	ReasonEnded           = "ended"
	ReasonNextEpisode     = "nextEpisode"
	ReasonUpdateFrequency = "minimizeUpdateFrequency"
)

// Default backoff spans per reason.
const (
	NotFoundWeeks  = 1
	EndedWeeks     = 4
	MaxRandomWeeks = 2
)

// Entry is one blacklist record, keyed by slug. Entries are never
// deleted; a nil or past expiry means "not blacklisted" and the row
// remains as an audit trail.
type Entry struct {
	Slug      string
	Title     string
	Type      title.ContentType
	Reason    string
	Expires   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Registry is the sqlite-backed backoff store.
type Registry struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewRegistry creates a registry on the given database.
func NewRegistry(db *sql.DB, logger *slog.Logger) *Registry {
	return &Registry{
		db:     db,
		logger: logger.With("component", "blacklist"),
		now:    time.Now,
	}
}

// IsBlacklisted reports whether slug has an entry whose expiry is still
// in the future.
func (r *Registry) IsBlacklisted(slug string) (bool, error) {
	var expires *time.Time
	err := r.db.QueryRow("SELECT expires FROM blacklist WHERE slug = ?", slug).Scan(&expires)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check blacklist %s: %w", slug, err)
	}
	return expires != nil && expires.After(r.now()), nil
}

// BlacklistForWeeks upserts an entry expiring the given number of weeks
// from now.
func (r *Registry) BlacklistForWeeks(slug, name string, typ title.ContentType, reason string, weeks int) error {
	until := r.now().Add(time.Duration(weeks) * 7 * 24 * time.Hour)
	return r.BlacklistUntil(slug, name, typ, reason, until)
}

// BlacklistRandom upserts an entry expiring a random duration between
// zero and MaxRandomWeeks from now, spreading re-resolution load across
// cron ticks.
func (r *Registry) BlacklistRandom(slug, name string, typ title.ContentType, reason string) error {
	span := time.Duration(rand.Int63n(int64(MaxRandomWeeks * 7 * 24 * time.Hour)))
	return r.BlacklistUntil(slug, name, typ, reason, r.now().Add(span))
}

// BlacklistUntil upserts an entry with an explicit expiry instant.
func (r *Registry) BlacklistUntil(slug, name string, typ title.ContentType, reason string, until time.Time) error {
	now := r.now()
	_, err := r.db.Exec(`
		INSERT INTO blacklist (slug, title, content_type, reason, expires, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			title = excluded.title,
			content_type = excluded.content_type,
			reason = excluded.reason,
			expires = excluded.expires,
			updated_at = excluded.updated_at`,
		slug, name, string(typ), reason, until, now, now,
	)
	if err != nil {
		return fmt.Errorf("blacklist %s: %w", slug, err)
	}
	r.logger.Debug("blacklisted", "slug", slug, "reason", reason, "expires", until)
	return nil
}

// Get retrieves an entry by slug.
func (r *Registry) Get(slug string) (*Entry, error) {
	e := &Entry{}
	var typ string
	err := r.db.QueryRow(`
		SELECT slug, title, content_type, reason, expires, created_at, updated_at
		FROM blacklist WHERE slug = ?`, slug,
	).Scan(&e.Slug, &e.Title, &typ, &e.Reason, &e.Expires, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("get blacklist %s: %w", slug, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get blacklist %s: %w", slug, err)
	}
	e.Type = title.ContentType(typ)
	return e, nil
}
