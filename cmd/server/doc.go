// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server.

Marquee serves content-based movie recommendations from a precomputed
similarity matrix and decorates them with posters, trailers, backdrops and
trending rails fetched from TMDB.

# Application Architecture

	RootSupervisor ("marquee")
	├── CoreSupervisor ("core-layer")
	│   └── UptimeService
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Catalog: JSON, DuckDB or SQLite snapshot (fatal when missing)
 4. Recommender: top-K ranking over the loaded matrix
 5. TMDB gateway: retrying client with optional circuit breaker
 6. Fetch stage: bounded concurrent page resolution
 7. HTTP Server: chi router with middleware stack
 8. Supervisor Tree: Suture v4 process supervision

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	HTTP_PORT=8501
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	CATALOG_SOURCE=json          # json, duckdb or sqlite
	CATALOG_MOVIES_PATH=model/movie_list.json
	CATALOG_SIMILARITY_PATH=model/similarity.json

	TMDB_API_KEY=<key>           # required
	TMDB_RETRY_ATTEMPTS=3
	TMDB_RETRY_DELAY=2s

# Shutdown

SIGINT or SIGTERM cancels the root context. The HTTP server drains for
HTTP_SHUTDOWN_TIMEOUT and services that miss the deadline are logged.
*/
package main
