// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

//go:generate swag init -g docs.go -d .,../../internal/api -o ../../docs

// Package main provides the Marquee HTTP server
//
// @title Marquee API
// @version 1.0
// @description Content-based movie recommendations over a precomputed similarity matrix, with posters, trailers, backdrops and trending rails from TMDB.
// @description
// @description ## Degradation
// @description
// @description TMDB calls are retried up to 3 times with a fixed delay. Posters fall back to a default image
// @description and backdrops to a placeholder; trailer and trending failures return 502 `EXTERNAL_SERVICE_FAILED`.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address on `/api/v1`, health probes excluded.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {"code": "NOT_FOUND", "message": "Could not find the selected movie in the database.", "request_id": "..."},
// @description   "meta": {"request_id": "...", "timestamp": "2026-01-01T00:00:00Z", "duration_ms": 1}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/marquee/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8501
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Catalog
// @tag.description Catalog listing
//
// @tag.name Recommendations
// @tag.description Top-K similarity recommendations
//
// @tag.name Metadata
// @tag.description TMDB posters, trailers, backdrops and trending movies
//
// @tag.name Health
// @tag.description Liveness and readiness probes
package main
