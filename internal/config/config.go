// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"net"
	"strconv"
	"time"
)

// Catalog snapshot source kinds.
const (
	SourceJSON   = "json"
	SourceDuckDB = "duckdb"
	SourceSQLite = "sqlite"
)

// Self-exclusion policies for the recommender.
const (
	ExclusionIdentity   = "identity"
	ExclusionPositional = "positional"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Fetch     FetchConfig     `koanf:"fetch"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// CatalogConfig selects and locates the catalog snapshot.
type CatalogConfig struct {
	// Source is one of json, duckdb, sqlite.
	Source string `koanf:"source"`

	// MoviesPath and SimilarityPath locate the JSON snapshot files.
	MoviesPath     string `koanf:"movies_path"`
	SimilarityPath string `koanf:"similarity_path"`

	// DSN is the database file for the duckdb and sqlite sources.
	DSN string `koanf:"dsn"`

	// RejectDuplicateTitles turns a repeated title into a load failure
	// instead of first-occurrence-wins lookup.
	RejectDuplicateTitles bool `koanf:"reject_duplicate_titles"`
}

// RecommendConfig controls result size and self exclusion.
type RecommendConfig struct {
	DefaultK  int    `koanf:"default_k"`
	MaxK      int    `koanf:"max_k"`
	Exclusion string `koanf:"exclusion"`
}

// TMDBConfig configures the metadata gateway.
type TMDBConfig struct {
	APIKey                 string        `koanf:"api_key"`
	BaseURL                string        `koanf:"base_url"`
	ImageBaseURL           string        `koanf:"image_base_url"`
	Language               string        `koanf:"language"`
	DefaultPosterURL       string        `koanf:"default_poster_url"`
	PlaceholderBackdropURL string        `koanf:"placeholder_backdrop_url"`
	RetryAttempts          int           `koanf:"retry_attempts"`
	RetryDelay             time.Duration `koanf:"retry_delay"`
	Timeout                time.Duration `koanf:"timeout"`
	RateLimit              float64       `koanf:"rate_limit"`
	RateBurst              int           `koanf:"rate_burst"`
	TrendingLimit          int           `koanf:"trending_limit"`
	CircuitBreaker         bool          `koanf:"circuit_breaker"`
}

// FetchConfig bounds the page fetch stage.
type FetchConfig struct {
	Concurrency int           `koanf:"concurrency"`
	PageTimeout time.Duration `koanf:"page_timeout"`
}

// SecurityConfig holds CORS and API rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logger settings; see logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
