// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package tmdb fetches movie metadata from The Movie Database (TMDB) v3 API.

The package has two layers:

  - Client: the HTTP layer. One GET per call to /movie/{id},
    /movie/{id}/videos or /trending/movie/{window}, authenticated with the
    configured API key. Requests wait on a token-bucket limiter, pass
    through a circuit breaker and are retried on transient failures.
  - Gateway: the display contract. Poster, Trailer, Backdrop and Trending
    turn raw responses into URLs and degrade to configured fallbacks
    instead of failing the page.

# Failure Classification

Transport errors, HTTP 429 and HTTP 5xx are *TransientError and are
retried up to RetryAttempts times with RetryDelay between attempts. Other
4xx responses and undecodable bodies are *PermanentError and are returned
immediately. When the breaker is open, calls fail fast with
gobreaker.ErrOpenState and are not retried.

# Fallbacks

	Poster    default poster URL, never an error
	Trailer   "" (no trailer) or "" plus error
	Backdrop  placeholder URL, plus error on failure
	Trending  empty slice plus error on failure

# Metrics

Every attempt records tmdb_requests_total{endpoint,outcome} and
tmdb_request_duration_seconds{endpoint}. Retries and fallbacks have their
own counters, and the breaker exports circuit_breaker_state{name="tmdb-api"}.
*/
package tmdb
