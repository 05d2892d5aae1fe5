// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/marquee/internal/validation"
)

// RecommendationsRequest holds the query parameters of
// GET /api/v1/recommendations.
//
// Fields:
//   - Title: exact catalog title, matched without trimming
//   - K: number of results, 0 for the configured default; the upper
//     bound is the recommender's max_k and is checked by the handler
type RecommendationsRequest struct {
	Title string `query:"title" validate:"required,movietitle"`
	K     int    `query:"k" validate:"gte=0"`
}

// parseRecommendationsRequest reads the query string. Only a malformed k
// is rejected here; ranges are left to validateRequest.
func parseRecommendationsRequest(r *http.Request) (*RecommendationsRequest, error) {
	q := r.URL.Query()
	req := &RecommendationsRequest{Title: q.Get("title")}

	if raw := strings.TrimSpace(q.Get("k")); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("k must be an integer, got %q", raw)
		}
		req.K = k
	}
	return req, nil
}

func validateRequest(v any) *validation.RequestValidationError {
	return validation.ValidateStruct(v)
}
