package resolver

import "errors"

var (
	// ErrSkipped indicates the slug is blacklisted and resolution was
	// not attempted. Callers treat it as "no change".
	ErrSkipped = errors.New("resolution skipped")

	// ErrUnusable indicates the metadata source answered but the record
	// lacks required external ids and must not be persisted.
	ErrUnusable = errors.New("record missing required ids")
)
