package blacklist

import "errors"

// ErrNotFound indicates no entry exists for the slug.
var ErrNotFound = errors.New("not found")
