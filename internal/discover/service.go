// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package discover

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/tmdb"
)

// Service builds pages and recommendation lists.
type Service struct {
	catalog     *catalog.Catalog
	recommender *recommend.Recommender
	gateway     Gateway
	concurrency int
	pageTimeout time.Duration
	logger      zerolog.Logger
}

// New creates a Service. Zero fetch settings fall back to 8 concurrent
// fetches and a 30 second page deadline.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(rec *recommend.Recommender, gw Gateway, cfg *config.FetchConfig, logger zerolog.Logger) *Service {
	s := &Service{
		catalog:     rec.Catalog(),
		recommender: rec,
		gateway:     gw,
		concurrency: 8,
		pageTimeout: 30 * time.Second,
		logger:      logger.With().Str("component", "discover").Logger(),
	}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			s.concurrency = cfg.Concurrency
		}
		if cfg.PageTimeout > 0 {
			s.pageTimeout = cfg.PageTimeout
		}
	}
	return s
}

// Titles returns the selector options: a blank entry first, then catalog order.
func (s *Service) Titles() []string {
	return append([]string{""}, s.catalog.Titles()...)
}

// pageNotices holds one slot per section so that notices come out in page
// order no matter which fetch finishes first.
type pageNotices struct {
	selection []Notice
	backdrop  []Notice
	trailer   []Notice
	recs      []Notice
	week      []Notice
	day       []Notice
}

func (n *pageNotices) flatten() []Notice {
	out := make([]Notice, 0, 4)
	for _, section := range [][]Notice{n.selection, n.backdrop, n.trailer, n.recs, n.week, n.day} {
		out = append(out, section...)
	}
	return out
}

// Page resolves everything shown for title. An empty title renders only
// the selector and trending rails. Page never fails; problems are
// reported through Page.Notices.
func (s *Service) Page(ctx context.Context, title string) *Page {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.pageTimeout)
	defer cancel()

	page := &Page{
		Titles:          s.Titles(),
		Selected:        title,
		Recommendations: []Card{},
		TrendingWeek:    []Card{},
		TrendingDay:     []Card{},
	}
	var notices pageNotices

	eg := &errgroup.Group{}
	eg.SetLimit(s.concurrency)

	if title != "" {
		s.scheduleSelection(ctx, eg, page, &notices, title)
	}
	eg.Go(func() error {
		page.TrendingWeek, notices.week = s.trendingRail(ctx, tmdb.WindowWeek)
		return nil
	})
	eg.Go(func() error {
		page.TrendingDay, notices.day = s.trendingRail(ctx, tmdb.WindowDay)
		return nil
	})

	_ = eg.Wait() //nolint:errcheck // fetch goroutines never return errors

	page.Notices = notices.flatten()

	s.logger.Debug().
		Str("title", title).
		Int("recommendations", len(page.Recommendations)).
		Int("notices", len(page.Notices)).
		Dur("duration", time.Since(start)).
		Msg("page resolved")

	return page
}

// scheduleSelection ranks the selected title and queues its backdrop,
// trailer and poster fetches. Ranking runs inline; it touches no network.
func (s *Service) scheduleSelection(ctx context.Context, eg *errgroup.Group, page *Page, notices *pageNotices, title string) {
	item, err := s.catalog.ItemByTitle(title)
	if err != nil {
		notices.selection = []Notice{{Level: LevelError, Message: MsgTitleNotFound}}
		return
	}

	neighbors, err := s.recommender.TopK(item, s.recommender.DefaultK())
	if err != nil {
		s.logger.Warn().Err(err).Str("title", title).Msg("ranking failed")
	}
	if len(neighbors) == 0 {
		notices.recs = []Notice{{Level: LevelError, Message: MsgNoRecommendations}}
	}

	eg.Go(func() error {
		url, err := s.gateway.Backdrop(ctx, item.ID)
		page.BackdropURL = url
		if err != nil {
			notices.backdrop = []Notice{{
				Level:   LevelError,
				Message: fmt.Sprintf("Error fetching backdrop for movie ID %d: %v", item.ID, err),
			}}
		}
		return nil
	})

	eg.Go(func() error {
		url, err := s.gateway.Trailer(ctx, item.ID)
		page.TrailerURL = url
		if err != nil {
			notices.trailer = append(notices.trailer, Notice{
				Level:   LevelError,
				Message: fmt.Sprintf("Error fetching trailer for movie ID %d: %v", item.ID, err),
			})
		}
		if url == "" {
			notices.trailer = append(notices.trailer, Notice{Level: LevelWarning, Message: MsgNoTrailer})
		}
		return nil
	})

	page.Recommendations = s.cards(neighbors)
	for i := range page.Recommendations {
		eg.Go(func() error {
			page.Recommendations[i].PosterURL = s.gateway.Poster(ctx, page.Recommendations[i].ID)
			return nil
		})
	}
}

func (s *Service) trendingRail(ctx context.Context, window tmdb.Window) ([]Card, []Notice) {
	movies, err := s.gateway.Trending(ctx, window)
	if err != nil {
		return []Card{}, []Notice{{
			Level:   LevelError,
			Message: fmt.Sprintf("Error fetching trending movies: %v", err),
		}}
	}

	cards := make([]Card, len(movies))
	for i, m := range movies {
		cards[i] = Card{
			ID:        m.ID,
			Title:     m.Title,
			PosterURL: m.Poster,
			MovieURL:  tmdb.MovieURL(m.ID),
			Rating:    m.Rating,
		}
	}
	return cards, nil
}

// Recommendations returns up to k cards for title with posters resolved.
// An unknown title yields *catalog.NotFoundError.
func (s *Service) Recommendations(ctx context.Context, title string, k int) ([]Card, error) {
	neighbors, err := s.recommender.ForTitle(title, k)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.pageTimeout)
	defer cancel()

	cards := s.cards(neighbors)
	eg := &errgroup.Group{}
	eg.SetLimit(s.concurrency)
	for i := range cards {
		eg.Go(func() error {
			cards[i].PosterURL = s.gateway.Poster(ctx, cards[i].ID)
			return nil
		})
	}
	_ = eg.Wait() //nolint:errcheck // Poster never fails

	return cards, nil
}

func (s *Service) cards(neighbors []recommend.Neighbor) []Card {
	cards := make([]Card, len(neighbors))
	for i, n := range neighbors {
		cards[i] = Card{
			ID:       n.Item.ID,
			Title:    n.Item.Title,
			MovieURL: tmdb.MovieURL(n.Item.ID),
			Score:    n.Score,
		}
	}
	return cards
}
