// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

const defaultShutdownTimeout = 10 * time.Second

// HTTPServer is the part of *http.Server the service drives.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService keeps the Marquee page and API listener running under
// suture. A canceled context drains in-flight requests for up to
// shutdownTimeout, so a page still waiting on TMDB can finish rendering.
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
	name            string
}

// NewHTTPServerService wraps server. A non-positive shutdownTimeout
// means 10 seconds.
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	return &HTTPServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		name:            "http-server",
	}
}

// Serve implements suture.Service. A clean http.ErrServerClosed from the
// listener is not reported as a failure.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	metrics.RecordServiceStart(h.name)

	event := logging.Info().Str("service", h.name)
	if srv, ok := h.server.(*http.Server); ok {
		event = event.Str("addr", srv.Addr)
	}
	event.Msg("Accepting page and API requests")

	listenErr := make(chan error, 1)
	go func() {
		err := h.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		listenErr <- err
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	return h.drain(ctx.Err(), listenErr)
}

// drain stops the listener with a fresh deadline, since the serve context
// is already canceled, then waits for ListenAndServe to return.
func (h *HTTPServerService) drain(cause error, listenErr <-chan error) error {
	logging.Info().
		Str("service", h.name).
		Dur("timeout", h.shutdownTimeout).
		Msg("Draining HTTP connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("drain connections: %w", err)
	}
	<-listenErr
	return cause
}

// String names the service in supervisor logs.
func (h *HTTPServerService) String() string {
	return h.name
}
