// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/metrics"
)

// maxErrorBodySize limits how much of a failed response is kept for the error.
const maxErrorBodySize = 64 * 1024 // 64KB

// Endpoint labels used in metrics and errors.
const (
	endpointMovie    = "movie"
	endpointVideos   = "videos"
	endpointTrending = "trending"
)

// readBodyForError reads at most maxErrorBodySize bytes of r.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// Client talks to the TMDB v3 REST API.
//
// Thread Safety: safe for concurrent use.
type Client struct {
	baseURL  string
	apiKey   string
	language string

	client     *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[struct{}]
	attempts   int
	retryDelay time.Duration
	logger     zerolog.Logger
}

// NewClient creates a TMDB client from configuration. The breaker is only
// installed when cfg.CircuitBreaker is set.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg *config.TMDBConfig, logger zerolog.Logger) *Client {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}
	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	logger = logger.With().Str("component", "tmdb").Logger()
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		client:     &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		attempts:   attempts,
		retryDelay: cfg.RetryDelay,
		logger:     logger,
	}
	if cfg.CircuitBreaker {
		c.breaker = newBreaker(logger)
	}
	return c
}

// Movie fetches /movie/{id}.
func (c *Client) Movie(ctx context.Context, id int) (*Movie, error) {
	var movie Movie
	if err := c.get(ctx, endpointMovie, "/movie/"+strconv.Itoa(id), true, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// Videos fetches /movie/{id}/videos.
func (c *Client) Videos(ctx context.Context, id int) ([]Video, error) {
	var resp videosResponse
	if err := c.get(ctx, endpointVideos, "/movie/"+strconv.Itoa(id)+"/videos", true, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Trending fetches /trending/movie/{window}.
func (c *Client) Trending(ctx context.Context, window Window) ([]TrendingResult, error) {
	var resp trendingResponse
	if err := c.get(ctx, endpointTrending, "/trending/movie/"+string(window), false, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// get performs a GET with retries. Only transient errors are retried and
// the wait between attempts stops early when ctx is done.
func (c *Client) get(ctx context.Context, endpoint, path string, withLanguage bool, out any) error {
	reqURL := c.buildURL(path, withLanguage)

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if attempt > 1 {
			metrics.RecordTMDBRetry(endpoint)
			if err := sleepContext(ctx, c.retryDelay); err != nil {
				return err
			}
		}

		lastErr = c.guarded(ctx, endpoint, reqURL, out)
		if lastErr == nil {
			return nil
		}
		if !IsTransient(lastErr) {
			return lastErr
		}

		c.logger.Debug().
			Err(lastErr).
			Str("endpoint", endpoint).
			Int("attempt", attempt).
			Int("max_attempts", c.attempts).
			Msg("TMDB request failed, will retry")
	}
	return fmt.Errorf("after %d attempts: %w", c.attempts, lastErr)
}

// guarded runs one attempt through the breaker when one is configured.
func (c *Client) guarded(ctx context.Context, endpoint, reqURL string, out any) error {
	if c.breaker == nil {
		return c.do(ctx, endpoint, reqURL, out)
	}
	_, err := c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, c.do(ctx, endpoint, reqURL, out)
	})
	recordBreakerResult(err)
	if isRejected(err) {
		metrics.RecordTMDBAttempt(endpoint, "rejected", 0)
	}
	return err
}

// do performs exactly one HTTP request and classifies its failure.
func (c *Client) do(ctx context.Context, endpoint, reqURL string, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordTMDBAttempt(endpoint, outcome(err), time.Since(start))
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		// The limiter refuses a wait that would outlast ctx's deadline.
		return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return &PermanentError{Endpoint: endpoint, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &TransientError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(endpoint, resp.StatusCode, readBodyForError(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &PermanentError{Endpoint: endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) buildURL(path string, withLanguage bool) string {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	if withLanguage && c.language != "" {
		params.Set("language", c.language)
	}
	return c.baseURL + path + "?" + params.Encode()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case IsTransient(err):
		return "transient"
	case IsPermanent(err):
		return "permanent"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// BreakerState reports the circuit breaker state, or "disabled" when the
// client runs without one.
func (c *Client) BreakerState() string {
	if c.breaker == nil {
		return "disabled"
	}
	return stateToString(c.breaker.State())
}
