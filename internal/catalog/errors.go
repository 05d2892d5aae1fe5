// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is matching.
var (
	ErrLoad     = errors.New("catalog load failed")
	ErrNotFound = errors.New("not found in catalog")
)

// LoadError reports a snapshot that is missing, unreadable or inconsistent.
type LoadError struct {
	// Source is the snapshot kind (json, duckdb, sqlite, memory).
	Source string
	// Path is the file or DSN involved, if any.
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("load %s catalog from %s: %v", e.Source, e.Path, e.Err)
	}
	return fmt.Sprintf("load %s catalog: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is matches ErrLoad.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// NotFoundError reports a title or index with no catalog entry.
type NotFoundError struct {
	Title string
	Index int
	Size  int
	// ByIndex is set when the lookup was by position rather than title.
	ByIndex bool
}

func (e *NotFoundError) Error() string {
	if e.ByIndex {
		return fmt.Sprintf("index %d out of range for catalog of %d items", e.Index, e.Size)
	}
	return fmt.Sprintf("title %q not found in catalog", e.Title)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func loadErr(source, path string, format string, args ...any) *LoadError {
	return &LoadError{Source: source, Path: path, Err: fmt.Errorf(format, args...)}
}
