// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package discover

import (
	"context"

	"github.com/tomtom215/marquee/internal/tmdb"
)

// Gateway is the metadata contract the page depends on. *tmdb.Gateway
// satisfies it.
type Gateway interface {
	Poster(ctx context.Context, id int) string
	Trailer(ctx context.Context, id int) (string, error)
	Backdrop(ctx context.Context, id int) (string, error)
	Trending(ctx context.Context, window tmdb.Window) ([]tmdb.TrendingMovie, error)
}

// Card is one clickable poster.
type Card struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	PosterURL string  `json:"poster_url"`
	MovieURL  string  `json:"movie_url"`
	Score     float64 `json:"score,omitempty"`
	Rating    float64 `json:"rating,omitempty"`
}

// Level is the severity of a Notice.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Notice is an inline message shown instead of a missing page section.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Page is a fully resolved page.
type Page struct {
	// Titles feeds the selector: a blank entry, then every catalog title.
	Titles []string `json:"titles"`

	Selected        string `json:"selected,omitempty"`
	BackdropURL     string `json:"backdrop_url,omitempty"`
	TrailerURL      string `json:"trailer_url,omitempty"`
	Recommendations []Card `json:"recommendations"`

	TrendingWeek []Card `json:"trending_week"`
	TrendingDay  []Card `json:"trending_day"`

	Notices []Notice `json:"notices"`
}

// Messages shown when a section degrades.
const (
	MsgTitleNotFound     = "Could not find the selected movie in the database."
	MsgNoTrailer         = "Trailer not available for this movie."
	MsgNoRecommendations = "No recommendations available for the selected movie."
)
