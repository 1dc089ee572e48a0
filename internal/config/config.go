// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"

	"github.com/catarr/catarr/pkg/title"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Scrape   ScrapeConfig   `toml:"scrape"`
	Metadata MetadataConfig `toml:"metadata"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// ScrapeConfig drives the cron trigger and the source list.
type ScrapeConfig struct {
	// Schedule is a standard 5-field cron expression.
	Schedule string         `toml:"schedule"`
	Sources  []SourceConfig `toml:"sources"`
}

// SourceConfig describes one torrent-index source: which client drives
// it, what content it lists, and the parse rules for its titles.
type SourceConfig struct {
	Name        string           `toml:"name"`
	Type        string           `toml:"type"` // "eztv" or "solid"
	ContentType string           `toml:"content_type"`
	Query       string           `toml:"query"` // search-driven sources only
	Language    string           `toml:"language"`
	Concurrency int              `toml:"concurrency"`
	Rules       []RuleConfig     `toml:"rules"`
	Cutoffs     map[string]int64 `toml:"cutoffs"` // quality -> max accepted bytes
}

// RuleConfig is one title pattern. Rule order encodes priority.
type RuleConfig struct {
	Pattern   string `toml:"pattern"`
	DateBased bool   `toml:"date_based"`
	Quality   string `toml:"quality"`
}

type MetadataConfig struct {
	TraktClientID string `toml:"trakt_client_id"`
	TMDBAPIKey    string `toml:"tmdb_api_key"`
	TVDBAPIKey    string `toml:"tvdb_api_key"`
	OMDBAPIKey    string `toml:"omdb_api_key"`
	FanartAPIKey  string `toml:"fanart_api_key"`
}

// ParserRules compiles the source's patterns, preserving priority order.
func (s SourceConfig) ParserRules() ([]title.Rule, error) {
	rules := make([]title.Rule, 0, len(s.Rules))
	for _, r := range s.Rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("source %s: pattern %q: %w", s.Name, r.Pattern, err)
		}
		rules = append(rules, title.Rule{
			Pattern:   re,
			DateBased: r.DateBased,
			Quality:   title.Quality(r.Quality),
		})
	}
	return rules, nil
}

// SizeCutoffs converts the per-quality cutoff table to typed keys.
func (s SourceConfig) SizeCutoffs() map[title.Quality]int64 {
	if len(s.Cutoffs) == 0 {
		return nil
	}
	cutoffs := make(map[title.Quality]int64, len(s.Cutoffs))
	for q, max := range s.Cutoffs {
		cutoffs[title.Quality(q)] = max
	}
	return cutoffs
}

// Load reads, substitutes, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return &cfg, nil
}

// LoadWithoutValidation parses the file and applies defaults but skips
// validation and missing-variable enforcement, for tooling that needs
// to inspect an incomplete config.
func LoadWithoutValidation(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, _ := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/catarr.db"
	}
	if c.Scrape.Schedule == "" {
		c.Scrape.Schedule = "0 */6 * * *"
	}
	for i := range c.Scrape.Sources {
		if c.Scrape.Sources[i].Concurrency == 0 {
			c.Scrape.Sources[i].Concurrency = 1
		}
		if c.Scrape.Sources[i].Language == "" {
			c.Scrape.Sources[i].Language = "en"
		}
	}
}
