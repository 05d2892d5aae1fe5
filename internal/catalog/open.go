// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/metrics"
)

// SourceFromConfig builds the Source selected by cfg.Source.
func SourceFromConfig(cfg *config.CatalogConfig) (Source, error) {
	opts := Options{RejectDuplicateTitles: cfg.RejectDuplicateTitles}
	switch cfg.Source {
	case config.SourceJSON:
		return NewJSONSource(cfg.MoviesPath, cfg.SimilarityPath, opts), nil
	case config.SourceDuckDB:
		return NewSQLSource(DriverDuckDB, cfg.DSN, opts), nil
	case config.SourceSQLite:
		return NewSQLSource(DriverSQLite, cfg.DSN, opts), nil
	default:
		return nil, &LoadError{Source: cfg.Source, Err: fmt.Errorf("unknown catalog source %q", cfg.Source)}
	}
}

// Open loads the configured snapshot, records load metrics and warns about
// duplicate titles. Any error is a *LoadError.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(ctx context.Context, cfg *config.CatalogConfig, logger zerolog.Logger) (*Catalog, error) {
	src, err := SourceFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	cat, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	metrics.RecordCatalogLoad(src.Name(), cat.Len(), elapsed)

	logger.Info().
		Str("source", src.Name()).
		Int("items", cat.Len()).
		Dur("duration", elapsed).
		Msg("Catalog snapshot loaded")

	if dups := cat.DuplicateTitles(); len(dups) > 0 {
		logger.Warn().
			Strs("titles", dups).
			Msg("Catalog contains duplicate titles; lookups resolve to the first occurrence")
	}

	return cat, nil
}
