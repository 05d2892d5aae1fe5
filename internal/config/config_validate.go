// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/marquee/internal/logging"
)

// Validate checks that required configuration is present and valid,
// including TMDB credentials.
func (c *Config) Validate() error {
	return c.validate(true)
}

func (c *Config) validate(requireTMDB bool) error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateTMDB(requireTMDB); err != nil {
		return err
	}
	if err := c.validateFetch(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	switch c.Catalog.Source {
	case SourceJSON:
		if c.Catalog.MoviesPath == "" {
			return fmt.Errorf("CATALOG_MOVIES_PATH is required when CATALOG_SOURCE=json")
		}
		if c.Catalog.SimilarityPath == "" {
			return fmt.Errorf("CATALOG_SIMILARITY_PATH is required when CATALOG_SOURCE=json")
		}
	case SourceDuckDB, SourceSQLite:
		if c.Catalog.DSN == "" {
			return fmt.Errorf("CATALOG_DSN is required when CATALOG_SOURCE=%s", c.Catalog.Source)
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE must be one of json, duckdb, sqlite, got: %q", c.Catalog.Source)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.MaxK < 1 {
		return fmt.Errorf("RECOMMEND_MAX_K must be at least 1, got %d", c.Recommend.MaxK)
	}
	if c.Recommend.DefaultK < 1 || c.Recommend.DefaultK > c.Recommend.MaxK {
		return fmt.Errorf("RECOMMEND_K must be between 1 and %d, got %d", c.Recommend.MaxK, c.Recommend.DefaultK)
	}
	switch c.Recommend.Exclusion {
	case ExclusionIdentity, ExclusionPositional:
		return nil
	default:
		return fmt.Errorf("RECOMMEND_EXCLUSION must be identity or positional, got: %q", c.Recommend.Exclusion)
	}
}

func (c *Config) validateTMDB(requireKey bool) error {
	if requireKey && strings.TrimSpace(c.TMDB.APIKey) == "" {
		return fmt.Errorf("TMDB_API_KEY is required")
	}
	if err := validateHTTPURL(c.TMDB.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.TMDB.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if c.TMDB.RetryAttempts < 1 {
		return fmt.Errorf("TMDB_RETRY_ATTEMPTS must be at least 1, got %d", c.TMDB.RetryAttempts)
	}
	if c.TMDB.RetryDelay < 0 {
		return fmt.Errorf("TMDB_RETRY_DELAY must not be negative")
	}
	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive")
	}
	if c.TMDB.RateLimit <= 0 || c.TMDB.RateBurst < 1 {
		return fmt.Errorf("TMDB_RATE_LIMIT and TMDB_RATE_BURST must be positive")
	}
	if c.TMDB.TrendingLimit < 1 {
		return fmt.Errorf("TMDB_TRENDING_LIMIT must be at least 1, got %d", c.TMDB.TrendingLimit)
	}
	return nil
}

func (c *Config) validateFetch() error {
	if c.Fetch.Concurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be at least 1, got %d", c.Fetch.Concurrency)
	}
	if c.Fetch.PageTimeout <= 0 {
		return fmt.Errorf("FETCH_PAGE_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1 unless DISABLE_RATE_LIMIT=true")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL is invalid: %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got: %q", c.Logging.Format)
	}
	return nil
}

// validateHTTPURL validates that a URL uses http or https, has a host and
// carries no query string. A path prefix is allowed (TMDB's /3).
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}
