// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "modernc.org/sqlite"
)

// Database driver names registered by the blank imports above.
const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite"
)

// SQLSource reads a catalog from a DuckDB or SQLite snapshot database.
type SQLSource struct {
	driver string
	dsn    string
	opts   Options
}

// NewSQLSource creates a source for driver (DriverDuckDB or DriverSQLite) and dsn.
func NewSQLSource(driver, dsn string, opts Options) *SQLSource {
	return &SQLSource{driver: driver, dsn: dsn, opts: opts}
}

// Name implements Source.
func (s *SQLSource) Name() string { return s.driver }

// Load implements Source.
func (s *SQLSource) Load(ctx context.Context) (*Catalog, error) {
	if s.driver != DriverDuckDB && s.driver != DriverSQLite {
		return nil, loadErr(s.driver, s.dsn, "unsupported driver %q", s.driver)
	}

	// Both drivers create missing database files on open.
	if isFilePath(s.dsn) {
		if _, err := os.Stat(s.dsn); err != nil {
			return nil, &LoadError{Source: s.driver, Path: s.dsn, Err: err}
		}
	}

	db, err := sql.Open(s.driver, s.dsn)
	if err != nil {
		return nil, &LoadError{Source: s.driver, Path: s.dsn, Err: err}
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, &LoadError{Source: s.driver, Path: s.dsn, Err: err}
	}

	return LoadFromDB(ctx, db, s.driver, s.dsn, s.opts)
}

func isFilePath(dsn string) bool {
	return dsn != "" && dsn != ":memory:" && !strings.ContainsAny(dsn, "?")
}

// LoadFromDB reads the movies and similarity tables from an open database.
func LoadFromDB(ctx context.Context, db *sql.DB, source, path string, opts Options) (*Catalog, error) {
	items, err := queryItems(ctx, db)
	if err != nil {
		return nil, &LoadError{Source: source, Path: path, Err: err}
	}
	if len(items) == 0 {
		return nil, loadErr(source, path, "movies table is empty")
	}

	matrix, err := queryMatrix(ctx, db, len(items))
	if err != nil {
		return nil, &LoadError{Source: source, Path: path, Err: err}
	}

	return build(source, path, items, matrix, opts)
}

func queryItems(ctx context.Context, db *sql.DB) ([]Item, error) {
	rows, err := db.QueryContext(ctx, `SELECT movie_id, title FROM movies ORDER BY ordinal`)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			id    sql.NullInt64
			title sql.NullString
		)
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("scan movie row %d: %w", len(items), err)
		}
		if !id.Valid || !title.Valid {
			return nil, fmt.Errorf("movie row %d has NULL movie_id or title", len(items))
		}
		items = append(items, Item{ID: int(id.Int64), Title: title.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return items, nil
}

func queryMatrix(ctx context.Context, db *sql.DB, n int) (Matrix, error) {
	rows, err := db.QueryContext(ctx, `SELECT row_idx, col_idx, score FROM similarity`)
	if err != nil {
		return nil, fmt.Errorf("query similarity: %w", err)
	}
	defer rows.Close()

	matrix := make(Matrix, n)
	filled := make([][]bool, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		filled[i] = make([]bool, n)
	}

	cells := 0
	for rows.Next() {
		var (
			r, c  int64
			score float64
		)
		if err := rows.Scan(&r, &c, &score); err != nil {
			return nil, fmt.Errorf("scan similarity cell: %w", err)
		}
		if r < 0 || r >= int64(n) || c < 0 || c >= int64(n) {
			return nil, fmt.Errorf("similarity cell (%d, %d) outside %dx%d matrix", r, c, n, n)
		}
		if filled[r][c] {
			return nil, fmt.Errorf("similarity cell (%d, %d) appears twice", r, c)
		}
		filled[r][c] = true
		matrix[r][c] = score
		cells++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate similarity: %w", err)
	}
	if cells != n*n {
		return nil, fmt.Errorf("similarity table has %d cells, want %d", cells, n*n)
	}
	return matrix, nil
}

const (
	createMoviesSQL = `CREATE TABLE movies (
	ordinal INTEGER PRIMARY KEY,
	movie_id BIGINT NOT NULL,
	title VARCHAR NOT NULL
)`
	createSimilaritySQL = `CREATE TABLE similarity (
	row_idx INTEGER NOT NULL,
	col_idx INTEGER NOT NULL,
	score DOUBLE NOT NULL,
	PRIMARY KEY (row_idx, col_idx)
)`
)

// WriteSQL replaces the movies and similarity tables in db with the
// contents of c, inside one transaction.
func WriteSQL(ctx context.Context, db *sql.DB, c *Catalog) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{
		`DROP TABLE IF EXISTS similarity`,
		`DROP TABLE IF EXISTS movies`,
		createMoviesSQL,
		createSimilaritySQL,
	} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("prepare schema: %w", err)
		}
	}

	if err = insertItems(ctx, tx, c.items); err != nil {
		return err
	}
	if err = insertMatrix(ctx, tx, c.matrix); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertItems(ctx context.Context, tx *sql.Tx, items []Item) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO movies (ordinal, movie_id, title) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare movie insert: %w", err)
	}
	defer stmt.Close()

	for _, it := range items {
		if _, err := stmt.ExecContext(ctx, it.Index, it.ID, it.Title); err != nil {
			return fmt.Errorf("insert movie %d: %w", it.Index, err)
		}
	}
	return nil
}

func insertMatrix(ctx context.Context, tx *sql.Tx, m Matrix) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO similarity (row_idx, col_idx, score) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare similarity insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range m {
		for j, score := range row {
			if _, err := stmt.ExecContext(ctx, i, j, score); err != nil {
				return fmt.Errorf("insert similarity (%d, %d): %w", i, j, err)
			}
		}
	}
	return nil
}
