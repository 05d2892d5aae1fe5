// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Recommend.DefaultK != 6 {
		t.Errorf("Recommend.DefaultK = %d, want 6", cfg.Recommend.DefaultK)
	}
	if cfg.Recommend.Exclusion != ExclusionIdentity {
		t.Errorf("Recommend.Exclusion = %q, want identity", cfg.Recommend.Exclusion)
	}
	if cfg.TMDB.RetryAttempts != 3 {
		t.Errorf("TMDB.RetryAttempts = %d, want 3", cfg.TMDB.RetryAttempts)
	}
	if cfg.TMDB.RetryDelay != 2*time.Second {
		t.Errorf("TMDB.RetryDelay = %v, want 2s", cfg.TMDB.RetryDelay)
	}
	if cfg.TMDB.TrendingLimit != 6 {
		t.Errorf("TMDB.TrendingLimit = %d, want 6", cfg.TMDB.TrendingLimit)
	}
	if cfg.TMDB.DefaultPosterURL != DefaultPosterURL {
		t.Errorf("TMDB.DefaultPosterURL = %q", cfg.TMDB.DefaultPosterURL)
	}
	if cfg.Catalog.Source != SourceJSON {
		t.Errorf("Catalog.Source = %q, want json", cfg.Catalog.Source)
	}
	if cfg.TMDB.APIKey != "" {
		t.Error("TMDB.APIKey should be empty by default")
	}
}

// clearConfigEnv isolates a test from config files and mapped env vars in the host environment.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
	for envName := range envMappings {
		t.Setenv(strings.ToUpper(envName), "")
		os.Unsetenv(strings.ToUpper(envName))
	}
}

func TestLoadWithKoanf_RequiresAPIKey(t *testing.T) {
	clearConfigEnv(t)

	_, err := LoadWithKoanf()
	if err == nil {
		t.Fatal("expected error without TMDB_API_KEY")
	}
	if !strings.Contains(err.Error(), "TMDB_API_KEY") {
		t.Errorf("error should name TMDB_API_KEY, got: %v", err)
	}
}

func TestLoadOffline_SkipsAPIKey(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadOffline()
	if err != nil {
		t.Fatalf("LoadOffline() error = %v", err)
	}
	if cfg.Server.Port != 8501 {
		t.Errorf("Server.Port = %d, want 8501", cfg.Server.Port)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("TMDB_API_KEY", "test-key")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("RECOMMEND_K", "4")
	t.Setenv("RECOMMEND_EXCLUSION", "positional")
	t.Setenv("TMDB_RETRY_DELAY", "250ms")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CATALOG_SOURCE", "sqlite")
	t.Setenv("CATALOG_DSN", "/tmp/catalog.sqlite")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.TMDB.APIKey != "test-key" {
		t.Errorf("TMDB.APIKey = %q", cfg.TMDB.APIKey)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Recommend.DefaultK != 4 {
		t.Errorf("Recommend.DefaultK = %d, want 4", cfg.Recommend.DefaultK)
	}
	if cfg.Recommend.Exclusion != ExclusionPositional {
		t.Errorf("Recommend.Exclusion = %q, want positional", cfg.Recommend.Exclusion)
	}
	if cfg.TMDB.RetryDelay != 250*time.Millisecond {
		t.Errorf("TMDB.RetryDelay = %v, want 250ms", cfg.TMDB.RetryDelay)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Catalog.Source != SourceSQLite || cfg.Catalog.DSN != "/tmp/catalog.sqlite" {
		t.Errorf("Catalog = %+v", cfg.Catalog)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	clearConfigEnv(t)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 7000
tmdb:
  api_key: file-key
  retry_attempts: 5
recommend:
  default_k: 10
logging:
  level: debug
  format: console
`
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("HTTP_PORT", "7100")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7100 {
		t.Errorf("env should override file: Server.Port = %d, want 7100", cfg.Server.Port)
	}
	if cfg.TMDB.APIKey != "file-key" {
		t.Errorf("TMDB.APIKey = %q, want file-key", cfg.TMDB.APIKey)
	}
	if cfg.TMDB.RetryAttempts != 5 {
		t.Errorf("TMDB.RetryAttempts = %d, want 5", cfg.TMDB.RetryAttempts)
	}
	if cfg.Recommend.DefaultK != 10 {
		t.Errorf("Recommend.DefaultK = %d, want 10", cfg.Recommend.DefaultK)
	}
	if cfg.TMDB.Language != "en-US" {
		t.Errorf("defaults should survive file load: TMDB.Language = %q", cfg.TMDB.Language)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"TMDB_API_KEY", "tmdb.api_key"},
		{"HTTP_PORT", "server.port"},
		{"CATALOG_REJECT_DUPLICATES", "catalog.reject_duplicate_titles"},
		{"FETCH_CONCURRENCY", "fetch.concurrency"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}
