// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package config provides layered configuration for Marquee.

Configuration is loaded with Koanf v2 in three layers, later layers
overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file (CONFIG_PATH, or config.yaml / /etc/marquee/config.yaml)
 3. Mapped environment variables

Only environment variables listed in envTransformFunc are read, so stray
variables in the process environment never leak into the configuration.

# Sections

  - server: HTTP listener (HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT)
  - catalog: snapshot source (CATALOG_SOURCE=json|duckdb|sqlite, CATALOG_MOVIES_PATH,
    CATALOG_SIMILARITY_PATH, CATALOG_DSN, CATALOG_REJECT_DUPLICATES)
  - recommend: result size and self exclusion (RECOMMEND_K, RECOMMEND_MAX_K,
    RECOMMEND_EXCLUSION=identity|positional)
  - tmdb: metadata gateway (TMDB_API_KEY, TMDB_BASE_URL, TMDB_RETRY_ATTEMPTS,
    TMDB_RETRY_DELAY, TMDB_TIMEOUT, TMDB_RATE_LIMIT, TMDB_TRENDING_LIMIT)
  - fetch: page fetch stage (FETCH_CONCURRENCY, FETCH_PAGE_TIMEOUT)
  - security: CORS and API rate limiting (CORS_ORIGINS, RATE_LIMIT_REQUESTS,
    RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT)
  - logging: LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

Commands that never talk to TMDB (catalog inspection, snapshot import)
use LoadOffline, which skips the API key requirement.
*/
package config
