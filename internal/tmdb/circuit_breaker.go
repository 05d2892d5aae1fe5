// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package tmdb

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/metrics"
)

const breakerName = "tmdb-api"

// newBreaker builds the TMDB circuit breaker:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
//
// Permanent errors (404, bad key, bad JSON) and requests abandoned by the
// caller, through cancellation or an expired deadline, count as successes:
// only upstream unavailability trips the breaker.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func newBreaker(logger zerolog.Logger) *gobreaker.CircuitBreaker[struct{}] {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("opening TMDB circuit")
			}
			return shouldTrip
		},

		IsSuccessful: func(err error) bool {
			return err == nil || IsPermanent(err) || callerGaveUp(err)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logger.Info().Str("from", fromStr).Str("to", toStr).Msg("TMDB circuit state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})
}

// callerGaveUp reports whether err comes from the caller's context rather
// than from TMDB. HTTP client timeouts arrive wrapped in TransientError and
// stay failures.
func callerGaveUp(err error) bool {
	if IsTransient(err) {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// isRejected reports whether the breaker refused to run the request.
func isRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func recordBreakerResult(err error) {
	switch {
	case err == nil, IsPermanent(err):
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	case isRejected(err):
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
	case callerGaveUp(err):
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "canceled").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
