// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides HTTP middleware for the Marquee server.

All middleware has the chi signature func(http.Handler) http.Handler and
can be passed straight to Router.Use.

Key Components:

  - RequestID: UUID request tracking, propagated to the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern so path parameters do not explode cardinality
  - Compression: gzip for clients that accept it, used on the HTML page

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.With(middleware.Compression).Get("/", handler.Index)
*/
package middleware
