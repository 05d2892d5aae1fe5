// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package tmdb

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/metrics"
)

const (
	movieURLPrefix  = "https://www.themoviedb.org/movie/"
	youtubeEmbedURL = "https://www.youtube.com/embed/"

	posterSize   = "w500"
	backdropSize = "original"
)

// MovieURL returns the public TMDB page for a movie.
func MovieURL(id int) string {
	return movieURLPrefix + strconv.Itoa(id)
}

// Gateway turns TMDB responses into display URLs with fallbacks.
type Gateway struct {
	client              *Client
	imageBaseURL        string
	defaultPoster       string
	placeholderBackdrop string
	trendingLimit       int
	logger              zerolog.Logger
}

// NewGateway creates a gateway and its client from configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewGateway(cfg *config.TMDBConfig, logger zerolog.Logger) *Gateway {
	limit := cfg.TrendingLimit
	if limit < 1 {
		limit = 6
	}
	client := NewClient(cfg, logger)
	return &Gateway{
		client:              client,
		imageBaseURL:        strings.TrimRight(cfg.ImageBaseURL, "/"),
		defaultPoster:       cfg.DefaultPosterURL,
		placeholderBackdrop: cfg.PlaceholderBackdropURL,
		trendingLimit:       limit,
		logger:              client.logger,
	}
}

// Client returns the underlying API client.
func (g *Gateway) Client() *Client { return g.client }

// Poster returns the w500 poster URL for id. It never fails: a missing
// poster path or an exhausted fetch yields the default poster.
func (g *Gateway) Poster(ctx context.Context, id int) string {
	movie, err := g.client.Movie(ctx, id)
	if err != nil {
		metrics.RecordTMDBFallback("poster")
		g.logger.Warn().Err(err).Int("movie_id", id).Msg("poster fetch failed, using default poster")
		return g.defaultPoster
	}
	if movie.PosterPath == "" {
		return g.defaultPoster
	}
	return g.imageURL(posterSize, movie.PosterPath)
}

// Trailer returns an autoplaying YouTube embed URL for the first YouTube
// trailer of id. A movie without one yields "" and a nil error.
func (g *Gateway) Trailer(ctx context.Context, id int) (string, error) {
	videos, err := g.client.Videos(ctx, id)
	if err != nil {
		metrics.RecordTMDBFallback("trailer")
		g.logger.Warn().Err(err).Int("movie_id", id).Msg("trailer fetch failed")
		return "", err
	}
	for _, v := range videos {
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return youtubeEmbedURL + url.PathEscape(v.Key) + "?autoplay=1&mute=0", nil
		}
	}
	return "", nil
}

// Backdrop returns the original-size backdrop URL for id. The placeholder
// is returned when there is no backdrop and, together with the error,
// when the fetch fails.
func (g *Gateway) Backdrop(ctx context.Context, id int) (string, error) {
	movie, err := g.client.Movie(ctx, id)
	if err != nil {
		metrics.RecordTMDBFallback("backdrop")
		g.logger.Warn().Err(err).Int("movie_id", id).Msg("backdrop fetch failed, using placeholder")
		return g.placeholderBackdrop, err
	}
	if movie.BackdropPath == "" {
		return g.placeholderBackdrop, nil
	}
	return g.imageURL(backdropSize, movie.BackdropPath), nil
}

// Trending returns up to the configured number of trending movies for the
// window, in TMDB order, each with its poster resolved through Poster.
func (g *Gateway) Trending(ctx context.Context, window Window) ([]TrendingMovie, error) {
	results, err := g.client.Trending(ctx, window)
	if err != nil {
		metrics.RecordTMDBFallback("trending")
		g.logger.Warn().Err(err).Str("window", string(window)).Msg("trending fetch failed")
		return []TrendingMovie{}, err
	}
	if len(results) > g.trendingLimit {
		results = results[:g.trendingLimit]
	}

	movies := make([]TrendingMovie, len(results))
	var eg errgroup.Group
	for i, r := range results {
		movies[i] = TrendingMovie{ID: r.ID, Title: r.Title, Rating: r.VoteAverage}
		eg.Go(func() error {
			movies[i].Poster = g.Poster(ctx, r.ID)
			return nil
		})
	}
	_ = eg.Wait() //nolint:errcheck // Poster never fails

	return movies, nil
}

func (g *Gateway) imageURL(size, path string) string {
	return g.imageBaseURL + "/" + size + "/" + strings.TrimPrefix(path, "/")
}

// BreakerState reports the state of the client's circuit breaker.
func (g *Gateway) BreakerState() string { return g.client.BreakerState() }
