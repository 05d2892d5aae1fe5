// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package tmdb

import (
	"fmt"
	"strings"
)

// Movie is the subset of /movie/{id} the gateway reads.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
}

// Video is one entry of /movie/{id}/videos.
type Video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
	Name string `json:"name"`
}

type videosResponse struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

// TrendingResult is one entry of /trending/movie/{window}.
type TrendingResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	VoteAverage float64 `json:"vote_average"`
	PosterPath  string  `json:"poster_path"`
}

type trendingResponse struct {
	Page    int              `json:"page"`
	Results []TrendingResult `json:"results"`
}

// TrendingMovie is a trending result ready for display.
type TrendingMovie struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
	Poster string  `json:"poster"`
}

// Window is the trending time window.
type Window string

const (
	WindowDay  Window = "day"
	WindowWeek Window = "week"
)

// ParseWindow accepts "day" or "week".
func ParseWindow(s string) (Window, error) {
	switch Window(strings.ToLower(strings.TrimSpace(s))) {
	case WindowDay:
		return WindowDay, nil
	case WindowWeek:
		return WindowWeek, nil
	default:
		return "", fmt.Errorf("invalid trending window %q (want day or week)", s)
	}
}
