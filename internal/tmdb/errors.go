// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

// TransientError is a failure worth retrying: transport errors, rate
// limiting and server errors.
type TransientError struct {
	Endpoint   string
	StatusCode int // 0 for transport errors
	Err        error
}

func (e *TransientError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("tmdb %s: transient status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("tmdb %s: %v", e.Endpoint, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// PermanentError is a failure that repeating the request will not fix.
type PermanentError struct {
	Endpoint   string
	StatusCode int // 0 for decode errors
	Err        error
}

func (e *PermanentError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("tmdb %s: status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("tmdb %s: %v", e.Endpoint, e.Err)
}

func (e *PermanentError) Unwrap() error { return e.Err }

// IsTransient reports whether err is retryable.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// IsPermanent reports whether err is a non-retryable upstream rejection.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}

// statusError classifies a non-200 response.
func statusError(endpoint string, status int, body []byte) error {
	err := fmt.Errorf("%s", body)
	if status == http.StatusTooManyRequests || status >= 500 {
		return &TransientError{Endpoint: endpoint, StatusCode: status, Err: err}
	}
	return &PermanentError{Endpoint: endpoint, StatusCode: status, Err: err}
}
