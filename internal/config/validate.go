// internal/config/validate.go
package config

import (
	"fmt"
	"regexp"

	"github.com/robfig/cron/v3"

	"github.com/catarr/catarr/pkg/title"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validSourceTypes = map[string]bool{
	"eztv": true, "solid": true,
}

var validQualities = map[string]bool{
	string(title.Quality480p): true, string(title.Quality720p): true,
	string(title.Quality1080p): true, string(title.Quality2160p): true,
	string(title.Quality3D): true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// Schedule validation
	if c.Scrape.Schedule != "" {
		if _, err := cron.ParseStandard(c.Scrape.Schedule); err != nil {
			errs = append(errs, fmt.Sprintf("scrape.schedule: %v", err))
		}
	}

	// At least one source required
	if len(c.Scrape.Sources) == 0 {
		errs = append(errs, "scrape.sources: at least one source must be configured")
	}
	for _, s := range c.Scrape.Sources {
		errs = append(errs, s.validate()...)
	}

	// The primary metadata source is not optional; resolution cannot
	// run without it.
	if len(c.Scrape.Sources) > 0 && c.Metadata.TraktClientID == "" {
		errs = append(errs, "metadata.trakt_client_id: required")
	}

	return errs
}

func (s SourceConfig) validate() []string {
	var errs []string

	if s.Name == "" {
		errs = append(errs, "scrape.sources: name: required")
		return errs
	}
	if !validSourceTypes[s.Type] {
		errs = append(errs, fmt.Sprintf("scrape.sources.%s.type: must be one of eztv, solid; got %q", s.Name, s.Type))
	}
	switch title.ContentType(s.ContentType) {
	case title.ContentTypeMovie, title.ContentTypeShow:
	default:
		errs = append(errs, fmt.Sprintf("scrape.sources.%s.content_type: must be movie or show; got %q", s.Name, s.ContentType))
	}
	if s.Type == "solid" && s.Query == "" {
		errs = append(errs, fmt.Sprintf("scrape.sources.%s.query: required for search-driven sources", s.Name))
	}
	if len(s.Rules) == 0 {
		errs = append(errs, fmt.Sprintf("scrape.sources.%s.rules: at least one parse rule required", s.Name))
	}
	for i, r := range s.Rules {
		if _, err := regexp.Compile(r.Pattern); err != nil {
			errs = append(errs, fmt.Sprintf("scrape.sources.%s.rules[%d].pattern: %v", s.Name, i, err))
		}
		if r.Quality != "" && !validQualities[r.Quality] {
			errs = append(errs, fmt.Sprintf("scrape.sources.%s.rules[%d].quality: unknown quality %q", s.Name, i, r.Quality))
		}
	}
	for q := range s.Cutoffs {
		if !validQualities[q] {
			errs = append(errs, fmt.Sprintf("scrape.sources.%s.cutoffs: unknown quality %q", s.Name, q))
		}
	}

	return errs
}
