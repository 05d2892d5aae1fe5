// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestJSONSource_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	movies := writeFile(t, dir, "movie_list.json",
		`[{"movie_id":19995,"title":"Avatar","tags":"ignored"},{"movie_id":285,"title":"Pirates"},{"movie_id":206647,"title":"Spectre"}]`)
	similarity := writeFile(t, dir, "similarity.json",
		`[[1.0,0.2,0.1],[0.2,1.0,0.4],[0.1,0.4,1.0]]`)

	cat, err := NewJSONSource(movies, similarity, Options{}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cat.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", cat.Len())
	}
	it, _ := cat.Item(2)
	if it.ID != 206647 || it.Title != "Spectre" || it.Index != 2 {
		t.Errorf("Item(2) = %+v", it)
	}
	row, _ := cat.Row(1)
	if row[2] != 0.4 {
		t.Errorf("Row(1)[2] = %v, want 0.4", row[2])
	}
	if cat.Source() != "json" {
		t.Errorf("Source() = %q, want json", cat.Source())
	}
}

func TestJSONSource_LoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	goodMovies := writeFile(t, dir, "movies.json", `[{"movie_id":1,"title":"A"},{"movie_id":2,"title":"B"}]`)
	goodSim := writeFile(t, dir, "sim.json", `[[1,0],[0,1]]`)
	badJSON := writeFile(t, dir, "bad.json", `[{"movie_id":1,`)
	noTitle := writeFile(t, dir, "notitle.json", `[{"movie_id":1},{"movie_id":2,"title":"B"}]`)
	noID := writeFile(t, dir, "noid.json", `[{"title":"A"},{"movie_id":2,"title":"B"}]`)
	wrongDims := writeFile(t, dir, "dims.json", `[[1,0,0],[0,1,0],[0,0,1]]`)
	nullCells := writeFile(t, dir, "nulls.json", `[[1.0,null],[null,1.0]]`)
	trailing := writeFile(t, dir, "trailing.json", `[[1,0.5],[0.5,1]] garbage`)
	extraValue := writeFile(t, dir, "extra.json", `[[1,0.5],[0.5,1]][[1]]`)
	nullRow := writeFile(t, dir, "nullrow.json", `[[1,0.5],null]`)
	missing := filepath.Join(dir, "missing.json")

	tests := []struct {
		name       string
		movies     string
		similarity string
		notExist   bool
	}{
		{"missing movies file", missing, goodSim, true},
		{"missing similarity file", goodMovies, missing, true},
		{"malformed movies", badJSON, goodSim, false},
		{"malformed similarity", goodMovies, badJSON, false},
		{"record without title", noTitle, goodSim, false},
		{"record without movie_id", noID, goodSim, false},
		{"dimension mismatch", goodMovies, wrongDims, false},
		{"null similarity cells", goodMovies, nullCells, false},
		{"null similarity row", goodMovies, nullRow, false},
		{"trailing bytes after matrix", goodMovies, trailing, false},
		{"second value after matrix", goodMovies, extraValue, false},
		{"trailing bytes after movies", writeFile(t, dir, "movies_trailing.json", `[{"movie_id":1,"title":"A"},{"movie_id":2,"title":"B"}]}`), goodSim, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewJSONSource(tt.movies, tt.similarity, Options{}).Load(context.Background())
			if !errors.Is(err, ErrLoad) {
				t.Fatalf("Load() error = %v, want ErrLoad", err)
			}
			if tt.notExist && !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("Load() error = %v, want fs.ErrNotExist in chain", err)
			}
		})
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	t.Parallel()

	src, err := New(testItems("A", "B", "C"), Matrix{{1, 0.5, 0.25}, {0.5, 1, 0.75}, {0.25, 0.75, 1}}, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	dir := t.TempDir()
	movies := filepath.Join(dir, "movie_list.json")
	sim := filepath.Join(dir, "similarity.json")
	if err := WriteJSON(src, movies, sim); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	got, err := NewJSONSource(movies, sim, Options{}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	assertSameCatalog(t, src, got)
}

func assertSameCatalog(t *testing.T, want, got *Catalog) {
	t.Helper()

	if got.Len() != want.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), want.Len())
	}
	for i := 0; i < want.Len(); i++ {
		wi, _ := want.Item(i)
		gi, _ := got.Item(i)
		if wi != gi {
			t.Errorf("Item(%d) = %+v, want %+v", i, gi, wi)
		}
		wr, _ := want.Row(i)
		gr, _ := got.Row(i)
		for j := range wr {
			if wr[j] != gr[j] {
				t.Errorf("Row(%d)[%d] = %v, want %v", i, j, gr[j], wr[j])
			}
		}
	}
}

func sqlRoundTrip(t *testing.T, driver string) {
	t.Helper()

	src, err := New(testItems("Alien", "Aliens", "Heat"), Matrix{{1, 0.9, 0.1}, {0.9, 1, 0.2}, {0.1, 0.2, 1}}, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	dsn := filepath.Join(t.TempDir(), "catalog."+driver)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	if err := WriteSQL(context.Background(), db, src); err != nil {
		db.Close()
		t.Fatalf("WriteSQL() error = %v", err)
	}
	// Writing twice replaces the tables.
	if err := WriteSQL(context.Background(), db, src); err != nil {
		db.Close()
		t.Fatalf("second WriteSQL() error = %v", err)
	}
	db.Close()

	got, err := NewSQLSource(driver, dsn, Options{}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Source() != driver {
		t.Errorf("Source() = %q, want %q", got.Source(), driver)
	}
	assertSameCatalog(t, src, got)
}

func TestSQLSource_SQLiteRoundTrip(t *testing.T) {
	t.Parallel()
	sqlRoundTrip(t, DriverSQLite)
}

func TestSQLSource_DuckDBRoundTrip(t *testing.T) {
	t.Parallel()
	sqlRoundTrip(t, DriverDuckDB)
}

func TestSQLSource_MissingCells(t *testing.T) {
	t.Parallel()

	dsn := filepath.Join(t.TempDir(), "partial.sqlite")
	db, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	for _, stmt := range []string{
		createMoviesSQL,
		createSimilaritySQL,
		`INSERT INTO movies (ordinal, movie_id, title) VALUES (0, 1, 'A'), (1, 2, 'B')`,
		`INSERT INTO similarity (row_idx, col_idx, score) VALUES (0, 0, 1), (0, 1, 0.5), (1, 1, 1)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	db.Close()

	_, err = NewSQLSource(DriverSQLite, dsn, Options{}).Load(context.Background())
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("Load() error = %v, want ErrLoad", err)
	}
}

func TestSQLSource_MissingDatabase(t *testing.T) {
	t.Parallel()

	dsn := filepath.Join(t.TempDir(), "nothing.sqlite")
	_, err := NewSQLSource(DriverSQLite, dsn, Options{}).Load(context.Background())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Load() error = %v, want fs.ErrNotExist", err)
	}
	if _, statErr := os.Stat(dsn); !errors.Is(statErr, fs.ErrNotExist) {
		t.Error("loading a missing database must not create it")
	}
}

func TestOpen_FromConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := &config.CatalogConfig{
		Source:         config.SourceJSON,
		MoviesPath:     writeFile(t, dir, "m.json", `[{"movie_id":1,"title":"A"},{"movie_id":2,"title":"A"}]`),
		SimilarityPath: writeFile(t, dir, "s.json", `[[1,0],[0,1]]`),
	}

	cat, err := Open(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if cat.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cat.Len())
	}

	cfg.RejectDuplicateTitles = true
	if _, err := Open(context.Background(), cfg, zerolog.Nop()); !errors.Is(err, ErrLoad) {
		t.Errorf("Open() with duplicates rejected: error = %v, want ErrLoad", err)
	}

	cfg.Source = "pickle"
	if _, err := Open(context.Background(), cfg, zerolog.Nop()); !errors.Is(err, ErrLoad) {
		t.Errorf("Open() with unknown source: error = %v, want ErrLoad", err)
	}
}
