// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import "math"

// Item is one catalog entry.
type Item struct {
	// ID is the TMDB movie id.
	ID int `json:"id"`
	// Title is the display title, matched exactly by IndexOfTitle.
	Title string `json:"title"`
	// Index is the item's position in the catalog and its matrix row.
	Index int `json:"index"`
}

// Matrix is a dense N×N similarity matrix; Matrix[i][j] is the similarity
// of item i to item j.
type Matrix [][]float64

// Options controls catalog validation.
type Options struct {
	// RejectDuplicateTitles makes a repeated title a load failure.
	RejectDuplicateTitles bool
}

// Catalog is an immutable, index-aligned list of items and their similarity matrix.
// It is safe for concurrent use.
type Catalog struct {
	source     string
	items      []Item
	matrix     Matrix
	byTitle    map[string]int
	duplicates []string
}

// New builds a catalog from items in snapshot order and their matrix.
// Item.Index is assigned from position. The matrix must be N×N with no NaN
// scores; violations are reported as *LoadError. The catalog takes
// ownership of m.
func New(items []Item, m Matrix, opts Options) (*Catalog, error) {
	return build("memory", "", items, m, opts)
}

func build(source, path string, items []Item, m Matrix, opts Options) (*Catalog, error) {
	n := len(items)
	if n == 0 {
		return nil, loadErr(source, path, "catalog is empty")
	}
	if len(m) != n {
		return nil, loadErr(source, path, "similarity matrix has %d rows, catalog has %d items", len(m), n)
	}
	for i, row := range m {
		if len(row) != n {
			return nil, loadErr(source, path, "similarity row %d has %d columns, want %d", i, len(row), n)
		}
		for j, score := range row {
			if math.IsNaN(score) {
				return nil, loadErr(source, path, "similarity[%d][%d] is NaN", i, j)
			}
		}
	}

	c := &Catalog{
		source:  source,
		items:   make([]Item, n),
		matrix:  m,
		byTitle: make(map[string]int, n),
	}
	seenDup := make(map[string]bool)
	for i, it := range items {
		it.Index = i
		c.items[i] = it
		if _, exists := c.byTitle[it.Title]; exists {
			if opts.RejectDuplicateTitles {
				return nil, loadErr(source, path, "duplicate title %q at positions %d and %d", it.Title, c.byTitle[it.Title], i)
			}
			if !seenDup[it.Title] {
				seenDup[it.Title] = true
				c.duplicates = append(c.duplicates, it.Title)
			}
			continue
		}
		c.byTitle[it.Title] = i
	}
	return c, nil
}

// Source returns the snapshot kind the catalog was loaded from.
func (c *Catalog) Source() string { return c.source }

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// Item returns the item at index.
func (c *Catalog) Item(index int) (Item, error) {
	if index < 0 || index >= len(c.items) {
		return Item{}, &NotFoundError{Index: index, Size: len(c.items), ByIndex: true}
	}
	return c.items[index], nil
}

// Items returns a copy of all items in catalog order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Titles returns all titles in catalog order, duplicates included.
func (c *Catalog) Titles() []string {
	out := make([]string, len(c.items))
	for i, it := range c.items {
		out[i] = it.Title
	}
	return out
}

// Row returns the similarity row of the item at index. The slice is shared
// with the catalog and must not be modified.
func (c *Catalog) Row(index int) ([]float64, error) {
	if index < 0 || index >= len(c.items) {
		return nil, &NotFoundError{Index: index, Size: len(c.items), ByIndex: true}
	}
	return c.matrix[index], nil
}

// IndexOfTitle returns the index of the first item whose title equals
// title exactly.
func (c *Catalog) IndexOfTitle(title string) (int, error) {
	if i, ok := c.byTitle[title]; ok {
		return i, nil
	}
	return -1, &NotFoundError{Title: title, Index: -1, Size: len(c.items)}
}

// ItemByTitle returns the first item whose title equals title exactly.
func (c *Catalog) ItemByTitle(title string) (Item, error) {
	i, err := c.IndexOfTitle(title)
	if err != nil {
		return Item{}, err
	}
	return c.items[i], nil
}

// DuplicateTitles lists titles that occur more than once, in order of
// their second occurrence.
func (c *Catalog) DuplicateTitles() []string {
	out := make([]string, len(c.duplicates))
	copy(out, c.duplicates)
	return out
}
