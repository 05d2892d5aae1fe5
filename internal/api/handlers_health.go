// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status       string  `json:"status"`
	Version      string  `json:"version"`
	Uptime       float64 `json:"uptime_seconds"`
	CatalogItems int     `json:"catalog_items,omitempty"`
	Exclusion    string  `json:"exclusion,omitempty"`
	Breaker      string  `json:"tmdb_circuit_breaker,omitempty"`
}

// HealthLive reports that the process is serving.
//
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus}
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(HealthStatus{
		Status:  "alive",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
	})
}

// HealthReady reports whether the catalog is loaded and how TMDB is doing.
//
// An open circuit breaker is reported as "degraded" with status 200: pages
// still render with placeholders. An empty catalog is 503.
//
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus}
// @Failure 503 {object} APIResponse{data=HealthStatus}
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	stats := h.recommender.Stats()
	health := HealthStatus{
		Status:       "ready",
		Version:      h.version,
		Uptime:       time.Since(h.startTime).Seconds(),
		CatalogItems: stats.CatalogSize,
		Exclusion:    stats.Exclusion,
		Breaker:      h.gateway.BreakerState(),
	}

	status := http.StatusOK
	switch {
	case stats.CatalogSize == 0:
		health.Status = "not_ready"
		status = http.StatusServiceUnavailable
	case health.Breaker == "open":
		health.Status = "degraded"
	}

	NewResponseWriter(w, r).SuccessWithStatus(status, health)
}
