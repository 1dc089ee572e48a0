package title

import (
	"embed"
	"encoding/json"
	"sync"
)

// The alias tables correct slugs that are known to mismatch the naming
// used by the metadata provider (regional suffixes, apostrophes, anime
// localized titles). They are data, not logic, and live in embedded
// JSON files so they can be updated without touching code.
//
//go:embed aliases/shows.json aliases/movies.json
var aliasFS embed.FS

var (
	aliasOnce    sync.Once
	showAliases  map[string]string
	movieAliases map[string]string
)

func loadAliases() {
	showAliases = mustLoadAliasFile("aliases/shows.json")
	movieAliases = mustLoadAliasFile("aliases/movies.json")
}

func mustLoadAliasFile(name string) map[string]string {
	data, err := aliasFS.ReadFile(name)
	if err != nil {
		panic("title: missing embedded alias table " + name)
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		panic("title: corrupt alias table " + name + ": " + err.Error())
	}
	return m
}

// Alias maps a raw slug through the correction table for the given
// content type. Slugs without a correction pass through unchanged.
func Alias(slug string, typ ContentType) string {
	aliasOnce.Do(loadAliases)

	table := showAliases
	if typ == ContentTypeMovie {
		table = movieAliases
	}
	if corrected, ok := table[slug]; ok {
		return corrected
	}
	return slug
}
