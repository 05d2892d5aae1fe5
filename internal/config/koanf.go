// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/marquee/config.yaml",
	"/etc/marquee/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Default TMDB image fallbacks.
const (
	DefaultPosterURL           = "https://image.tmdb.org/t/p/w500/4j5Bpk5m6SoO2Rte5oO5i3zLz5i.jpg"
	DefaultPlaceholderBackdrop = "https://via.placeholder.com/1920x1080?text=No+Backdrop+Available"
)

// defaultConfig returns a Config with every default applied.
// These defaults are loaded first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8501,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Catalog: CatalogConfig{
			Source:                SourceJSON,
			MoviesPath:            "model/movie_list.json",
			SimilarityPath:        "model/similarity.json",
			DSN:                   "model/catalog.duckdb",
			RejectDuplicateTitles: false,
		},
		Recommend: RecommendConfig{
			DefaultK:  6,
			MaxK:      50,
			Exclusion: ExclusionIdentity,
		},
		TMDB: TMDBConfig{
			APIKey:                 "",
			BaseURL:                "https://api.themoviedb.org/3",
			ImageBaseURL:           "https://image.tmdb.org/t/p",
			Language:               "en-US",
			DefaultPosterURL:       DefaultPosterURL,
			PlaceholderBackdropURL: DefaultPlaceholderBackdrop,
			RetryAttempts:          3,
			RetryDelay:             2 * time.Second,
			Timeout:                10 * time.Second,
			RateLimit:              20,
			RateBurst:              10,
			TrendingLimit:          6,
			CircuitBreaker:         true,
		},
		Fetch: FetchConfig{
			Concurrency: 8,
			PageTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// The result is fully validated, including the TMDB API key.
func LoadWithKoanf() (*Config, error) {
	return load(true)
}

// LoadOffline loads configuration like LoadWithKoanf but does not require
// TMDB credentials. Used by commands that only read the catalog.
func LoadOffline() (*Config, error) {
	return load(false)
}

func load(requireTMDB bool) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// TMDB_API_KEY -> tmdb.api_key, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.validate(requireTMDB); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated env values into slices.
// Values that arrive as slices (from YAML) are left untouched.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Catalog snapshot
	"catalog_source":            "catalog.source",
	"catalog_movies_path":       "catalog.movies_path",
	"catalog_similarity_path":   "catalog.similarity_path",
	"catalog_dsn":               "catalog.dsn",
	"catalog_reject_duplicates": "catalog.reject_duplicate_titles",

	// Recommender
	"recommend_k":         "recommend.default_k",
	"recommend_max_k":     "recommend.max_k",
	"recommend_exclusion": "recommend.exclusion",

	// TMDB gateway
	"tmdb_api_key":              "tmdb.api_key",
	"tmdb_base_url":             "tmdb.base_url",
	"tmdb_image_base_url":       "tmdb.image_base_url",
	"tmdb_language":             "tmdb.language",
	"tmdb_default_poster_url":   "tmdb.default_poster_url",
	"tmdb_placeholder_backdrop": "tmdb.placeholder_backdrop_url",
	"tmdb_retry_attempts":       "tmdb.retry_attempts",
	"tmdb_retry_delay":          "tmdb.retry_delay",
	"tmdb_timeout":              "tmdb.timeout",
	"tmdb_rate_limit":           "tmdb.rate_limit",
	"tmdb_rate_burst":           "tmdb.rate_burst",
	"tmdb_trending_limit":       "tmdb.trending_limit",
	"tmdb_circuit_breaker":      "tmdb.circuit_breaker",

	// Fetch stage
	"fetch_concurrency":  "fetch.concurrency",
	"fetch_page_timeout": "fetch.page_timeout",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped keys return "" and are skipped.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
