// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/metrics"
)

// Recommender answers top-K similarity queries against one catalog.
// It is safe for concurrent use.
type Recommender struct {
	catalog *catalog.Catalog
	config  *Config
	logger  zerolog.Logger

	requestCount  atomic.Int64
	notFoundCount atomic.Int64
}

// New creates a recommender over cat. A nil cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cat *catalog.Catalog, cfg *Config, logger zerolog.Logger) (*Recommender, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Recommender{
		catalog: cat,
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Catalog returns the catalog being ranked.
func (r *Recommender) Catalog() *catalog.Catalog { return r.catalog }

// DefaultK returns the configured default result size.
func (r *Recommender) DefaultK() int { return r.config.DefaultK }

// MaxK returns the largest result size a caller may ask for.
func (r *Recommender) MaxK() int { return r.config.MaxK }

// TopK returns up to k items most similar to query, best first.
//
// Pairs are sorted by descending score with ties broken by ascending
// catalog index, then the query is removed according to the exclusion
// policy. k <= 0 yields an empty result and k above MaxK is capped. A query
// whose index lies outside the catalog yields *catalog.NotFoundError.
func (r *Recommender) TopK(query catalog.Item, k int) ([]Neighbor, error) {
	start := time.Now()
	r.requestCount.Add(1)

	row, err := r.catalog.Row(query.Index)
	if err != nil {
		r.notFoundCount.Add(1)
		metrics.RecordRecommendation(false, time.Since(start))
		return nil, err
	}

	k = r.clampK(k)
	if k == 0 {
		metrics.RecordRecommendation(true, time.Since(start))
		return []Neighbor{}, nil
	}

	ranked := rankRow(row)
	ranked = r.excludeQuery(ranked, query.Index)
	if len(ranked) > k {
		ranked = ranked[:k]
	}

	neighbors := make([]Neighbor, len(ranked))
	for i, idx := range ranked {
		item, _ := r.catalog.Item(idx) //nolint:errcheck // idx comes from the row and is always in range
		neighbors[i] = Neighbor{Item: item, Score: row[idx]}
	}

	elapsed := time.Since(start)
	metrics.RecordRecommendation(true, elapsed)
	r.logger.Debug().
		Str("query", query.Title).
		Int("query_index", query.Index).
		Int("k", k).
		Int("returned", len(neighbors)).
		Dur("latency", elapsed).
		Msg("ranked neighbours")

	return neighbors, nil
}

// ForTitle resolves title with an exact match and returns its top k neighbours.
func (r *Recommender) ForTitle(title string, k int) ([]Neighbor, error) {
	query, err := r.catalog.ItemByTitle(title)
	if err != nil {
		r.requestCount.Add(1)
		r.notFoundCount.Add(1)
		metrics.RecordRecommendation(false, 0)
		return nil, err
	}
	return r.TopK(query, k)
}

// Stats returns activity counters.
func (r *Recommender) Stats() Stats {
	return Stats{
		RequestCount:  r.requestCount.Load(),
		NotFoundCount: r.notFoundCount.Load(),
		CatalogSize:   r.catalog.Len(),
		Exclusion:     r.config.Exclusion.String(),
	}
}

func (r *Recommender) clampK(k int) int {
	if k <= 0 {
		return 0
	}
	if k > r.config.MaxK {
		return r.config.MaxK
	}
	return k
}

// rankRow returns all column indexes of row ordered by descending score,
// lower index first among equal scores.
func rankRow(row []float64) []int {
	ranked := make([]int, len(row))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return row[ranked[a]] > row[ranked[b]]
	})
	return ranked
}

func (r *Recommender) excludeQuery(ranked []int, queryIndex int) []int {
	if len(ranked) == 0 {
		return ranked
	}
	if r.config.Exclusion == ExcludePositional {
		return ranked[1:]
	}
	for i, idx := range ranked {
		if idx == queryIndex {
			return append(ranked[:i:i], ranked[i+1:]...)
		}
	}
	return ranked
}
