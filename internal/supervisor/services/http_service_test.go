// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/marquee/internal/metrics"
)

// fakeServer blocks in ListenAndServe until Shutdown is called, unless
// listenErr is set.
type fakeServer struct {
	listenErr   error
	shutdownErr error

	listens   atomic.Int32
	shutdowns atomic.Int32
	started   chan struct{}
	stop      chan struct{}
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		started: make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
}

func (f *fakeServer) ListenAndServe() error {
	f.listens.Add(1)
	select {
	case f.started <- struct{}{}:
	default:
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	if f.shutdowns.Add(1) == 1 {
		close(f.stop)
	}
	return f.shutdownErr
}

var (
	_ suture.Service = (*HTTPServerService)(nil)
	_ suture.Service = (*UptimeService)(nil)
	_ HTTPServer     = (*http.Server)(nil)
)

func TestNewHTTPServerService_Timeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"explicit", 3 * time.Second, 3 * time.Second},
		{"zero", 0, 10 * time.Second},
		{"negative", -time.Second, 10 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewHTTPServerService(newFakeServer(), tt.in)
			if svc.shutdownTimeout != tt.want {
				t.Errorf("shutdownTimeout = %v, want %v", svc.shutdownTimeout, tt.want)
			}
			if svc.String() != "http-server" {
				t.Errorf("String() = %q", svc.String())
			}
		})
	}
}

func TestHTTPServerService_Serve(t *testing.T) {
	t.Parallel()

	t.Run("graceful shutdown on cancel", func(t *testing.T) {
		t.Parallel()

		server := newFakeServer()
		svc := NewHTTPServerService(server, time.Second)
		ctx, cancel := context.WithCancel(context.Background())

		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		<-server.started
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return after cancel")
		}
		if server.shutdowns.Load() != 1 {
			t.Errorf("Shutdown calls = %d, want 1", server.shutdowns.Load())
		}
	})

	t.Run("listen failure", func(t *testing.T) {
		t.Parallel()

		bindErr := errors.New("bind: address already in use")
		server := newFakeServer()
		server.listenErr = bindErr

		err := NewHTTPServerService(server, time.Second).Serve(context.Background())
		if !errors.Is(err, bindErr) {
			t.Errorf("Serve() = %v, want wrapped bind error", err)
		}
	})

	t.Run("shutdown failure", func(t *testing.T) {
		t.Parallel()

		shutdownErr := errors.New("connections still open")
		server := newFakeServer()
		server.shutdownErr = shutdownErr
		svc := NewHTTPServerService(server, time.Second)
		ctx, cancel := context.WithCancel(context.Background())

		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		<-server.started
		cancel()

		if err := <-errCh; !errors.Is(err, shutdownErr) {
			t.Errorf("Serve() = %v, want shutdown error", err)
		}
	})
}

func TestHTTPServerService_UnderSupervisor(t *testing.T) {
	t.Parallel()

	server := newFakeServer()
	sup := suture.New("test", suture.Spec{Timeout: 2 * time.Second})
	sup.Add(NewHTTPServerService(server, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	select {
	case <-server.started:
	case <-time.After(time.Second):
		t.Fatal("server did not start")
	}

	cancel()
	<-errCh

	if server.shutdowns.Load() < 1 {
		t.Error("Shutdown was not called")
	}
}

// Not parallel: reads a process-wide counter.
func TestHTTPServerService_CountsStarts(t *testing.T) {
	counter := metrics.ServiceStarts.WithLabelValues("http-server")
	before := testutil.ToFloat64(counter)

	server := newFakeServer()
	server.listenErr = errors.New("bind failed")
	svc := NewHTTPServerService(server, time.Second)

	for i := 0; i < 2; i++ {
		if err := svc.Serve(context.Background()); err == nil {
			t.Fatal("Serve() = nil, want listen error")
		}
	}

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("service starts = %v, want 2", got)
	}
}
