// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "github.com/tomtom215/marquee/docs" // Import generated swagger docs
	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/discover"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
	"github.com/tomtom215/marquee/internal/tmdb"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	startTime := time.Now()

	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	metrics.SetAppInfo(version, runtime.Version())
	logging.Info().
		Str("version", version).
		Str("catalog_source", cfg.Catalog.Source).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Marquee with supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The catalog is the only fatal dependency: without it there is
	// nothing to recommend.
	cat, err := catalog.Open(ctx, &cfg.Catalog, logging.WithComponent("catalog"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Error loading required files")
	}

	recCfg, err := recommend.FromSettings(&cfg.Recommend)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid recommender settings")
	}
	recommender, err := recommend.New(cat, recCfg, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommender")
	}

	gateway := tmdb.NewGateway(&cfg.TMDB, logging.Logger())
	logging.Info().
		Int("retry_attempts", cfg.TMDB.RetryAttempts).
		Dur("retry_delay", cfg.TMDB.RetryDelay).
		Str("circuit_breaker", gateway.BreakerState()).
		Msg("TMDB gateway initialized")

	discoverSvc := discover.New(recommender, gateway, &cfg.Fetch, logging.Logger())

	handler := api.NewHandler(discoverSvc, recommender, gateway, version)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.NewChiMiddlewareConfig(&cfg.Security, &cfg.TMDB)))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout + cfg.Fetch.PageTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// === BUILD SUPERVISOR TREE ===

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddCoreService(services.NewUptimeService(startTime, 15*time.Second))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport() //nolint:errcheck // report is best effort
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Marquee stopped gracefully")
}
