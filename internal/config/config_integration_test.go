package config

import (
	"path/filepath"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	tmp := t.TempDir()

	// 1. Write default config
	cfgPath := filepath.Join(tmp, "catarr", "config.toml")
	if err := WriteDefault(cfgPath); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	// 2. Set required env vars (t.Setenv auto-restores on cleanup)
	t.Setenv("TRAKT_CLIENT_ID", "test-trakt-id")
	t.Setenv("TMDB_API_KEY", "test-tmdb-key")

	// 3. Load with full validation: the shipped default must be valid
	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// 4. Verify env substitution worked
	if cfg.Metadata.TraktClientID != "test-trakt-id" {
		t.Errorf("expected trakt client id substituted, got %q", cfg.Metadata.TraktClientID)
	}

	// 5. Verify the shipped sources compile
	for _, s := range cfg.Scrape.Sources {
		if _, err := s.ParserRules(); err != nil {
			t.Errorf("source %s: %v", s.Name, err)
		}
	}

	// 6. Verify defaults applied
	if cfg.Server.Port != 5000 {
		t.Errorf("expected default port 5000, got %d", cfg.Server.Port)
	}
}
