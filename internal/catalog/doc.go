// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package catalog holds the movie catalog and its precomputed similarity matrix.

A Catalog is an ordered list of items (TMDB id and display title) plus a
dense N×N matrix where row i holds the similarity of item i to every item
j. Both are loaded once at startup from a snapshot and never mutated; the
position of an item in the list is its index into the matrix.

# Snapshot Sources

  - JSONSource: movie_list.json (ordered array of {"movie_id", "title"}) and
    similarity.json (2-D number array), decoded with goccy/go-json.
  - SQLSource: a DuckDB or SQLite database with tables
    movies(ordinal, movie_id, title) and similarity(row_idx, col_idx, score).
    WriteSQL produces this layout from a loaded catalog.

Any failure to read or validate a snapshot is reported as *LoadError and
is fatal to the server. Lookups that miss return *NotFoundError. Both
match their sentinels (ErrLoad, ErrNotFound) through errors.Is.

# Title Lookup

IndexOfTitle is an exact, case-sensitive match. When a title appears more
than once the first occurrence wins; set Options.RejectDuplicateTitles to
refuse such snapshots instead.
*/
package catalog
