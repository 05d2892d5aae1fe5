// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend ranks catalog items by precomputed similarity.
//
// # Ranking
//
// For a query item the recommender reads the item's row of the similarity
// matrix, pairs every catalog index with its score and sorts the pairs by
// descending score. The sort is stable over ascending index, so equal
// scores always keep the lower catalog index first and identical inputs
// always produce identical output.
//
// # Self Exclusion
//
// The query's own row normally scores highest against itself. Two
// policies remove it from the result:
//
//   - ExcludeByIdentity (default): drop the pair whose index equals the
//     query's index, wherever it sorts.
//   - ExcludePositional: drop the first element of the sorted sequence.
//     This reproduces snapshot behaviour where the query is assumed to be
//     its own best match; if another item ties or outranks it, that item is
//     dropped and the query may appear in the result.
//
// # Usage
//
//	rec, err := recommend.New(cat, recommend.DefaultConfig(), logger)
//	neighbors, err := rec.ForTitle("Avatar", 6)
//
// # Thread Safety
//
// A Recommender holds only the immutable catalog and configuration and
// is safe for concurrent use.
package recommend
