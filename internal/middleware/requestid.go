// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tomtom215/marquee/internal/logging"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// RequestID tags every request with an ID. An upstream X-Request-ID is
// reused when it is a short token; otherwise a UUID is generated. The ID is
// echoed in the response and stored in the logging context, where handlers
// read it with logging.RequestIDFromContext, together with a fresh
// correlation ID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if !validRequestID(requestID) {
			requestID = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx := logging.ContextWithNewCorrelationID(logging.ContextWithRequestID(r.Context(), requestID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validRequestID accepts non-empty IDs of letters, digits, '-', '_' and
// '.', so an upstream value can be echoed into headers and logs as is.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.':
		default:
			return false
		}
	}
	return true
}

