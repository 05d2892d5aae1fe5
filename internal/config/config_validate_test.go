// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.TMDB.APIKey = "test-key"
	return cfg
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults with key", func(*Config) {}, ""},
		{"missing api key", func(c *Config) { c.TMDB.APIKey = "  " }, "TMDB_API_KEY"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"unknown source", func(c *Config) { c.Catalog.Source = "pickle" }, "CATALOG_SOURCE"},
		{"duckdb without dsn", func(c *Config) {
			c.Catalog.Source = SourceDuckDB
			c.Catalog.DSN = ""
		}, "CATALOG_DSN"},
		{"json without similarity path", func(c *Config) { c.Catalog.SimilarityPath = "" }, "CATALOG_SIMILARITY_PATH"},
		{"k above max", func(c *Config) { c.Recommend.DefaultK = 60 }, "RECOMMEND_K"},
		{"zero k", func(c *Config) { c.Recommend.DefaultK = 0 }, "RECOMMEND_K"},
		{"bad exclusion", func(c *Config) { c.Recommend.Exclusion = "none" }, "RECOMMEND_EXCLUSION"},
		{"zero attempts", func(c *Config) { c.TMDB.RetryAttempts = 0 }, "TMDB_RETRY_ATTEMPTS"},
		{"ftp base url", func(c *Config) { c.TMDB.BaseURL = "ftp://api.themoviedb.org/3" }, "TMDB_BASE_URL"},
		{"base url with query", func(c *Config) { c.TMDB.BaseURL = "https://api.themoviedb.org/3?x=1" }, "TMDB_BASE_URL"},
		{"zero concurrency", func(c *Config) { c.Fetch.Concurrency = 0 }, "FETCH_CONCURRENCY"},
		{"rate limit disabled skips checks", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"rate limit zero", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 8501}
	if got := s.Addr(); got != "127.0.0.1:8501" {
		t.Errorf("Addr() = %q", got)
	}
}
