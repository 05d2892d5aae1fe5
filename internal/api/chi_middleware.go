// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/marquee/internal/config"
)

// ChiMiddlewareConfig holds configuration for the chi middleware factories.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	CORSMaxAge         int // seconds

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool

	// ImageOrigins are the scheme://host origins the page may load
	// posters and backdrops from.
	ImageOrigins []string
}

// DefaultChiMiddlewareConfig returns a read-only API configuration with no
// CORS origins allowed until configured.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{},
		CORSAllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		CORSAllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		CORSMaxAge:         86400,

		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,

		ImageOrigins: []string{"https://image.tmdb.org", "https://via.placeholder.com"},
	}
}

// NewChiMiddlewareConfig builds the middleware configuration from the
// security section. Image origins come from the TMDB image base and
// placeholder URLs so the page CSP follows their configuration.
func NewChiMiddlewareConfig(sec *config.SecurityConfig, tmdbCfg *config.TMDBConfig) *ChiMiddlewareConfig {
	cfg := DefaultChiMiddlewareConfig()
	if tmdbCfg != nil {
		cfg.ImageOrigins = imageOrigins(tmdbCfg.ImageBaseURL, tmdbCfg.DefaultPosterURL, tmdbCfg.PlaceholderBackdropURL)
	}
	if sec == nil {
		return cfg
	}
	cfg.CORSAllowedOrigins = sec.CORSOrigins
	if sec.RateLimitReqs > 0 {
		cfg.RateLimitRequests = sec.RateLimitReqs
	}
	if sec.RateLimitWindow > 0 {
		cfg.RateLimitWindow = sec.RateLimitWindow
	}
	cfg.RateLimitDisabled = sec.RateLimitDisabled
	return cfg
}

// imageOrigins reduces URLs to unique scheme://host origins. Unparseable
// or relative URLs are skipped.
func imageOrigins(rawURLs ...string) []string {
	var origins []string
	for _, raw := range rawURLs {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			continue
		}
		origin := u.Scheme + "://" + u.Host
		if !slices.Contains(origins, origin) {
			origins = append(origins, origin)
		}
	}
	return origins
}

// ChiMiddleware provides chi-compatible middleware built from one config.
type ChiMiddleware struct {
	config  *ChiMiddlewareConfig
	cors    func(http.Handler) http.Handler
	pageCSP string
}

// NewChiMiddleware creates the middleware factory. A nil config uses the
// defaults.
func NewChiMiddleware(config *ChiMiddlewareConfig) *ChiMiddleware {
	if config == nil {
		config = DefaultChiMiddlewareConfig()
	}

	return &ChiMiddleware{
		config:  config,
		pageCSP: pageCSP(config.ImageOrigins),
		cors: cors.Handler(cors.Options{
			AllowedOrigins: config.CORSAllowedOrigins,
			AllowedMethods: config.CORSAllowedMethods,
			AllowedHeaders: config.CORSAllowedHeaders,
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         config.CORSMaxAge,
		}),
	}
}

// CORS returns the go-chi/cors handler.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit limits API requests per client IP. Rejections use the JSON
// envelope.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		m.config.RateLimitRequests,
		m.config.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			NewResponseWriter(w, r).Error(http.StatusTooManyRequests, ErrCodeTooManyRequests, "Rate limit exceeded")
		}),
	)
}

// APISecurityHeaders adds security headers to JSON responses.
//
// HSTS is only sent when the request arrived over TLS, directly or through
// a proxy that sets X-Forwarded-Proto.
func APISecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Cache-Control", "no-store")
			setHSTS(w, r)
			next.ServeHTTP(w, r)
		})
	}
}

// pageCSP admits the configured image origins and the YouTube embed.
func pageCSP(imageOrigins []string) string {
	imgSrc := append([]string{"img-src", "'self'"}, imageOrigins...)
	return strings.Join([]string{
		"default-src 'self'",
		strings.Join(append(imgSrc, "data:"), " "),
		"frame-src https://www.youtube.com",
		"style-src 'self' 'unsafe-inline'",
		"base-uri 'none'",
		"form-action 'self'",
	}, "; ")
}

// PageSecurityHeaders adds security headers to the HTML page.
func (m *ChiMiddleware) PageSecurityHeaders() func(http.Handler) http.Handler {
	csp := m.pageCSP
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Content-Security-Policy", csp)
			setHSTS(w, r)
			next.ServeHTTP(w, r)
		})
	}
}

func setHSTS(w http.ResponseWriter, r *http.Request) {
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
	}
}
