// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const minimalValid = `
[server]
port = 8080

[metadata]
trakt_client_id = "key"

[[scrape.sources]]
name = "eztv"
type = "eztv"
content_type = "show"

[[scrape.sources.rules]]
pattern = '^(.*?)[. ][sS](\d{2})[eE](\d{2})'
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return cfgPath
}

func TestLoad_Valid(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalValid))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
}

func TestLoad_MissingEnvVar(t *testing.T) {
	os.Unsetenv("MISSING_KEY")
	content := minimalValid + `
tmdb_api_key = "${MISSING_KEY}"
`
	_, err := Load(writeConfig(t, content))
	if err == nil {
		t.Fatal("expected error for missing env var")
	}
	if !strings.Contains(err.Error(), "MISSING_KEY") {
		t.Errorf("expected MISSING_KEY in error, got %v", err)
	}
}

func TestLoad_ValidationError(t *testing.T) {
	content := strings.Replace(minimalValid, "port = 8080", "port = 99999", 1)
	_, err := Load(writeConfig(t, content))
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
	if !strings.Contains(err.Error(), "server.port") {
		t.Errorf("expected server.port in error, got %v", err)
	}
}

func TestLoad_NoSources(t *testing.T) {
	content := `
[metadata]
trakt_client_id = "key"
`
	_, err := Load(writeConfig(t, content))
	if err == nil {
		t.Fatal("expected error for empty source list")
	}
	if !strings.Contains(err.Error(), "scrape.sources") {
		t.Errorf("expected scrape.sources in error, got %v", err)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalValid))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected default host 0.0.0.0, got %s", cfg.Server.Host)
	}
	if cfg.Database.Path != "./data/catarr.db" {
		t.Errorf("expected default database path, got %s", cfg.Database.Path)
	}
	if cfg.Scrape.Schedule != "0 */6 * * *" {
		t.Errorf("expected default schedule, got %s", cfg.Scrape.Schedule)
	}
}

func TestLoadWithoutValidation(t *testing.T) {
	content := `
[server]
port = 99999
`
	cfg, err := LoadWithoutValidation(writeConfig(t, content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 99999 {
		t.Errorf("expected port 99999, got %d", cfg.Server.Port)
	}
}

func TestLoad_EnvVarDefault(t *testing.T) {
	os.Unsetenv("OPTIONAL_VAR")
	content := strings.Replace(minimalValid, `port = 8080`,
		`host = "${OPTIONAL_VAR:-localhost}"`, 1)
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("expected host localhost, got %s", cfg.Server.Host)
	}
}
