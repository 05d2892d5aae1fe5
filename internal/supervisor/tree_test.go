// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

// countingService fails failCount times, then blocks until canceled.
type countingService struct {
	name      string
	failCount atomic.Int32
	starts    atomic.Int32
}

func (s *countingService) Serve(ctx context.Context) error {
	s.starts.Add(1)
	if s.failCount.Load() > 0 {
		s.failCount.Add(-1)
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *countingService) String() string { return s.name }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestDefaultTreeConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultTreeConfig()
	if cfg.FailureThreshold != 5 || cfg.FailureDecay != 30 {
		t.Errorf("failure settings = %v/%v", cfg.FailureThreshold, cfg.FailureDecay)
	}
	if cfg.FailureBackoff != 15*time.Second || cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("durations = %v/%v", cfg.FailureBackoff, cfg.ShutdownTimeout)
	}
}

func TestNewSupervisorTree_AppliesDefaults(t *testing.T) {
	t.Parallel()

	tree, err := NewSupervisorTree(testLogger(), TreeConfig{FailureBackoff: time.Second})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}

	got := tree.Config()
	if got.FailureBackoff != time.Second {
		t.Errorf("FailureBackoff = %v, want explicit 1s", got.FailureBackoff)
	}
	if got.FailureThreshold != 5 || got.ShutdownTimeout != 10*time.Second {
		t.Errorf("defaults not applied: %+v", got)
	}
}

func TestSupervisorTree_RunsBothLayers(t *testing.T) {
	t.Parallel()

	tree, err := NewSupervisorTree(testLogger(), TreeConfig{ShutdownTimeout: time.Second})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}

	core := &countingService{name: "core"}
	api := &countingService{name: "api"}
	tree.AddCoreService(core)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	waitFor(t, func() bool { return core.starts.Load() == 1 && api.starts.Load() == 1 })

	cancel()
	select {
	case <-errCh:
	case <-time.After(3 * time.Second):
		t.Fatal("tree did not stop after cancel")
	}

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport() error = %v", err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services: %v", report)
	}
}

func TestSupervisorTree_RestartsFailedService(t *testing.T) {
	t.Parallel()

	tree, err := NewSupervisorTree(testLogger(), TreeConfig{
		FailureBackoff:  10 * time.Millisecond,
		ShutdownTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}

	flaky := &countingService{name: "flaky"}
	flaky.failCount.Store(2)
	steady := &countingService{name: "steady"}
	tree.AddCoreService(flaky)
	tree.AddAPIService(steady)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	waitFor(t, func() bool { return flaky.starts.Load() >= 3 })

	if got := steady.starts.Load(); got != 1 {
		t.Errorf("api layer restarted %d times, want isolation from core failures", got-1)
	}

	cancel()
	<-errCh
}
