// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/discover"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/tmdb"
)

// Gateway is the metadata gateway as seen by the handlers.
// *tmdb.Gateway satisfies it.
type Gateway interface {
	discover.Gateway
	BreakerState() string
}

// Handler serves the JSON API and the HTML page.
type Handler struct {
	discover    *discover.Service
	recommender *recommend.Recommender
	gateway     Gateway
	page        *pageRenderer
	startTime   time.Time
	version     string
}

// NewHandler creates a handler. svc must be built on rec and gw.
func NewHandler(svc *discover.Service, rec *recommend.Recommender, gw Gateway, version string) *Handler {
	return &Handler{
		discover:    svc,
		recommender: rec,
		gateway:     gw,
		page:        newPageRenderer(),
		startTime:   time.Now(),
		version:     version,
	}
}

// TitleList is the body of GET /api/v1/titles.
type TitleList struct {
	Titles []string `json:"titles"`
}

// Titles lists catalog titles in catalog order.
//
// @Summary List catalog titles
// @Description Returns every title in the catalog in catalog order
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=TitleList}
// @Router /titles [get]
func (h *Handler) Titles(w http.ResponseWriter, r *http.Request) {
	titles := h.recommender.Catalog().Titles()
	NewResponseWriter(w, r).SuccessList(TitleList{Titles: titles}, len(titles))
}

// RecommendationList is the body of GET /api/v1/recommendations.
type RecommendationList struct {
	Title           string          `json:"title"`
	K               int             `json:"k"`
	Recommendations []discover.Card `json:"recommendations"`
}

// Recommendations ranks the catalog neighbours of a title.
//
// @Summary Recommend similar movies
// @Description Returns up to k movies most similar to title, highest score first, with poster URLs
// @Tags Recommendations
// @Produce json
// @Param title query string true "Exact catalog title"
// @Param k query int false "Number of results (0 or absent means the configured default, at most recommend.max_k)" minimum(0)
// @Success 200 {object} APIResponse{data=RecommendationList}
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Failure 404 {object} APIResponse "Unknown title"
// @Router /recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, err := parseRecommendationsRequest(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validateRequest(req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	if maxK := h.recommender.MaxK(); req.K > maxK {
		rw.ValidationError(fmt.Sprintf("k must be at most %d", maxK),
			map[string]any{"field": "k", "tag": "lte", "param": maxK})
		return
	}

	k := req.K
	if k == 0 {
		k = h.recommender.DefaultK()
	}

	cards, err := h.discover.Recommendations(r.Context(), req.Title, k)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			rw.NotFound(discover.MsgTitleNotFound)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Str("title", req.Title).Msg("Recommendation failed")
		rw.InternalError("Failed to compute recommendations")
		return
	}

	rw.SuccessList(RecommendationList{Title: req.Title, K: k, Recommendations: cards}, len(cards))
}

// MediaURL is the body of the per-movie metadata endpoints.
type MediaURL struct {
	ID       int    `json:"id"`
	URL      string `json:"url"`
	// Fallback is set when the fetch failed and URL is the placeholder.
	Fallback bool   `json:"fallback"`
	Error    string `json:"error,omitempty"`
}

func movieID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Poster resolves a poster URL.
//
// @Summary Get a movie poster
// @Description Returns the w500 poster URL; falls back to the default poster when TMDB has none or fails
// @Tags Metadata
// @Produce json
// @Param id path int true "TMDB movie ID"
// @Success 200 {object} APIResponse{data=MediaURL}
// @Failure 400 {object} APIResponse "Invalid movie ID"
// @Router /movies/{id}/poster [get]
func (h *Handler) Poster(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id, ok := movieID(r)
	if !ok {
		rw.BadRequest("movie id must be a positive integer")
		return
	}
	url := h.gateway.Poster(r.Context(), id)
	rw.Success(MediaURL{ID: id, URL: url})
}

// Trailer resolves a YouTube trailer embed URL.
//
// @Summary Get a movie trailer
// @Description Returns the YouTube embed URL of the first trailer
// @Tags Metadata
// @Produce json
// @Param id path int true "TMDB movie ID"
// @Success 200 {object} APIResponse{data=MediaURL}
// @Failure 400 {object} APIResponse "Invalid movie ID"
// @Failure 404 {object} APIResponse "No trailer"
// @Failure 502 {object} APIResponse "TMDB failure"
// @Router /movies/{id}/trailer [get]
func (h *Handler) Trailer(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id, ok := movieID(r)
	if !ok {
		rw.BadRequest("movie id must be a positive integer")
		return
	}

	url, err := h.gateway.Trailer(r.Context(), id)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Int("movie_id", id).Msg("Trailer lookup failed")
		rw.ExternalFailure("Error fetching trailer for movie ID "+strconv.Itoa(id)+": "+err.Error())
		return
	}
	if url == "" {
		rw.NotFound(discover.MsgNoTrailer)
		return
	}
	rw.Success(MediaURL{ID: id, URL: url})
}

// Backdrop resolves a backdrop URL.
//
// @Summary Get a movie backdrop
// @Description Returns the original-size backdrop URL, or the placeholder when unavailable
// @Tags Metadata
// @Produce json
// @Param id path int true "TMDB movie ID"
// @Success 200 {object} APIResponse{data=MediaURL}
// @Failure 400 {object} APIResponse "Invalid movie ID"
// @Router /movies/{id}/backdrop [get]
func (h *Handler) Backdrop(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id, ok := movieID(r)
	if !ok {
		rw.BadRequest("movie id must be a positive integer")
		return
	}

	url, err := h.gateway.Backdrop(r.Context(), id)
	body := MediaURL{ID: id, URL: url}
	if err != nil {
		body.Fallback = true
		body.Error = err.Error()
	}
	rw.Success(body)
}

// TrendingList is the body of GET /api/v1/trending/{window}.
type TrendingList struct {
	Window string               `json:"window"`
	Movies []tmdb.TrendingMovie `json:"movies"`
}

// Trending lists trending movies for a window.
//
// @Summary Get trending movies
// @Description Returns the first trending movies of the day or week with ratings and posters
// @Tags Metadata
// @Produce json
// @Param window path string true "Time window" Enums(day, week)
// @Success 200 {object} APIResponse{data=TrendingList}
// @Failure 400 {object} APIResponse "Invalid window"
// @Failure 502 {object} APIResponse "TMDB failure"
// @Router /trending/{window} [get]
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	window, err := tmdb.ParseWindow(chi.URLParam(r, "window"))
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	movies, err := h.gateway.Trending(r.Context(), window)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("window", string(window)).Msg("Trending lookup failed")
		rw.ExternalFailure("Error fetching trending movies: "+err.Error())
		return
	}
	rw.SuccessList(TrendingList{Window: string(window), Movies: movies}, len(movies))
}
