// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// Source loads a catalog snapshot.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
	// Name identifies the snapshot kind for logs and metrics.
	Name() string
}

// JSONSource reads movie_list.json and similarity.json.
type JSONSource struct {
	moviesPath     string
	similarityPath string
	opts           Options
}

// NewJSONSource creates a source for the given snapshot files.
func NewJSONSource(moviesPath, similarityPath string, opts Options) *JSONSource {
	return &JSONSource{moviesPath: moviesPath, similarityPath: similarityPath, opts: opts}
}

// Name implements Source.
func (s *JSONSource) Name() string { return "json" }

// movieRecord mirrors one row of movie_list.json. Pointer fields let us
// tell a missing key from a zero value.
type movieRecord struct {
	MovieID *int    `json:"movie_id"`
	Title   *string `json:"title"`
}

// Load implements Source.
func (s *JSONSource) Load(ctx context.Context) (*Catalog, error) {
	var records []movieRecord
	if err := decodeFile(s.moviesPath, &records); err != nil {
		return nil, &LoadError{Source: s.Name(), Path: s.moviesPath, Err: err}
	}

	items := make([]Item, len(records))
	for i, rec := range records {
		if rec.MovieID == nil {
			return nil, loadErr(s.Name(), s.moviesPath, "record %d has no movie_id", i)
		}
		if rec.Title == nil {
			return nil, loadErr(s.Name(), s.moviesPath, "record %d has no title", i)
		}
		items[i] = Item{ID: *rec.MovieID, Title: *rec.Title}
	}

	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Source: s.Name(), Path: s.similarityPath, Err: err}
	}

	// Pointer cells expose null, which would otherwise decode as 0.
	var cells [][]*float64
	if err := decodeFile(s.similarityPath, &cells); err != nil {
		return nil, &LoadError{Source: s.Name(), Path: s.similarityPath, Err: err}
	}
	matrix := make(Matrix, len(cells))
	for i, row := range cells {
		matrix[i] = make([]float64, len(row))
		for j, cell := range row {
			if cell == nil {
				return nil, loadErr(s.Name(), s.similarityPath, "similarity[%d][%d] is null", i, j)
			}
			matrix[i][j] = *cell
		}
	}

	return build(s.Name(), s.moviesPath, items, matrix, s.opts)
}

func decodeFile(path string, v any) error {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(bufio.NewReaderSize(f, 1<<20))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s: unexpected data after the top-level value", path)
	}
	return nil
}

// WriteJSON writes a catalog as a JSON snapshot pair.
func WriteJSON(c *Catalog, moviesPath, similarityPath string) error {
	records := make([]map[string]any, len(c.items))
	for i, it := range c.items {
		records[i] = map[string]any{"movie_id": it.ID, "title": it.Title}
	}
	if err := encodeFile(moviesPath, records); err != nil {
		return err
	}
	return encodeFile(similarityPath, c.matrix)
}

func encodeFile(path string, v any) error {
	f, err := os.Create(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
