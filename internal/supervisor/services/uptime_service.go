// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/tomtom215/marquee/internal/metrics"
)

// UptimeService refreshes the app_uptime_seconds gauge on a fixed interval.
type UptimeService struct {
	start    time.Time
	interval time.Duration
	update   func(time.Time)
}

// NewUptimeService creates the service. A non-positive interval means 15s.
func NewUptimeService(start time.Time, interval time.Duration) *UptimeService {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &UptimeService{
		start:    start,
		interval: interval,
		update:   metrics.UpdateUptime,
	}
}

// Serve implements suture.Service.
func (u *UptimeService) Serve(ctx context.Context) error {
	u.update(u.start)

	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			u.update(u.start)
		}
	}
}

func (u *UptimeService) String() string {
	return "uptime"
}
