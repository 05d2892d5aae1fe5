// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api provides the HTTP surface of Marquee: the HTML recommendation
page and a read-only JSON API, routed with chi.

# Routes

	GET /                                  HTML page, ?title= selects a movie
	GET /api/v1/titles                     catalog titles in catalog order
	GET /api/v1/recommendations?title=&k=  ranked neighbours with posters
	GET /api/v1/movies/{id}/poster         poster URL (default poster on failure)
	GET /api/v1/movies/{id}/trailer        YouTube embed URL, 404 when absent
	GET /api/v1/movies/{id}/backdrop       backdrop URL (placeholder on failure)
	GET /api/v1/trending/{window}          day or week
	GET /api/v1/health/live                liveness
	GET /api/v1/health/ready               catalog size and breaker state
	GET /metrics                           Prometheus
	GET /swagger/*                         Swagger UI

# Response Envelope

Every JSON endpoint answers with APIResponse:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "...", "request_id": "..."}, "meta": {...}}

Error codes: BAD_REQUEST, VALIDATION_ERROR, NOT_FOUND, TOO_MANY_REQUESTS,
EXTERNAL_SERVICE_FAILED, INTERNAL_ERROR.

# Middleware

Global: request ID with logging context, RealIP, Recoverer, CORS
(go-chi/cors) and Prometheus request metrics. /api/v1 adds per-IP rate
limiting (go-chi/httprate) and security headers. The page gets a CSP that
admits TMDB images and the YouTube player, and gzip compression.
*/
package api
