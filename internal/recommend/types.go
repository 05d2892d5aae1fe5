// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import "github.com/tomtom215/marquee/internal/catalog"

// Neighbor is one ranked recommendation.
type Neighbor struct {
	Item  catalog.Item `json:"item"`
	Score float64      `json:"score"`
}

// Stats summarizes recommender activity since construction.
type Stats struct {
	// RequestCount is the number of TopK calls.
	RequestCount int64 `json:"request_count"`

	// NotFoundCount is the number of calls whose query did not resolve.
	NotFoundCount int64 `json:"not_found_count"`

	// CatalogSize is the number of items being ranked.
	CatalogSize int `json:"catalog_size"`

	// Exclusion is the active self-exclusion policy name.
	Exclusion string `json:"exclusion"`
}
