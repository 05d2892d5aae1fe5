// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/tomtom215/marquee/internal/discover"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/tmdb"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	titleColor   = color.New(color.Bold)
	linkColor    = color.New(color.FgBlue)
	scoreColor   = color.New(color.FgHiBlack)
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

func printHeader(w io.Writer, format string, args ...any) {
	headerColor.Fprintf(w, "\n"+format+"\n", args...)
}

func printNeighbors(w io.Writer, neighbors []recommend.Neighbor) {
	for i, n := range neighbors {
		fmt.Fprintf(w, "%2d. ", i+1)
		titleColor.Fprint(w, n.Item.Title)
		scoreColor.Fprintf(w, "  (score %s, id %d)\n", strconv.FormatFloat(n.Score, 'f', 3, 64), n.Item.ID)
	}
}

func printCards(w io.Writer, cards []discover.Card) {
	for i, c := range cards {
		fmt.Fprintf(w, "%2d. ", i+1)
		titleColor.Fprintln(w, c.Title)
		linkColor.Fprintf(w, "    %s\n", c.MovieURL)
		scoreColor.Fprintf(w, "    poster: %s\n", c.PosterURL)
	}
}

func printTrending(w io.Writer, movies []tmdb.TrendingMovie) {
	for i, m := range movies {
		fmt.Fprintf(w, "%2d. ", i+1)
		titleColor.Fprint(w, m.Title)
		warnColor.Fprintf(w, "  ★ %s\n", strconv.FormatFloat(m.Rating, 'f', 1, 64))
		linkColor.Fprintf(w, "    %s\n", tmdb.MovieURL(m.ID))
		scoreColor.Fprintf(w, "    poster: %s\n", m.Poster)
	}
}

func printNotices(w io.Writer, notices []discover.Notice) {
	for _, n := range notices {
		if n.Level == discover.LevelError {
			errorColor.Fprintf(w, "✗ %s\n", n.Message)
			continue
		}
		warnColor.Fprintf(w, "! %s\n", n.Message)
	}
}

func showSuccess(w io.Writer, format string, args ...any) {
	successColor.Fprintf(w, "✓ "+format+"\n", args...)
}
