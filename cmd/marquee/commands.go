// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/discover"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/tmdb"
)

func (a *app) recommendCmd() *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Print the movies most similar to a catalog title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(false)
			if err != nil {
				return err
			}
			rec, err := a.openRecommender(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if k == 0 {
				k = rec.DefaultK()
			}
			neighbors, err := rec.ForTitle(args[0], k)
			if err != nil {
				return err
			}
			printHeader(a.out, "Because you picked %s", args[0])
			printNeighbors(a.out, neighbors)
			return nil
		},
	}
	cmd.Flags().IntVarP(&k, "count", "k", 0, "Number of recommendations (0 uses the configured default)")
	return cmd
}

func (a *app) pickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a movie interactively and show its page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(true)
			if err != nil {
				return err
			}
			svc, err := a.openDiscover(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			title, err := a.askTitle(svc.Titles())
			if err != nil {
				return err
			}
			a.printPage(svc.Page(cmd.Context(), title))
			return nil
		},
	}
}

func (a *app) printPage(page *discover.Page) {
	printNotices(a.out, page.Notices)

	if page.Selected != "" {
		printHeader(a.out, "%s", page.Selected)
		if page.BackdropURL != "" {
			linkColor.Fprintf(a.out, "backdrop: %s\n", page.BackdropURL)
		}
		if page.TrailerURL != "" {
			linkColor.Fprintf(a.out, "trailer:  %s\n", page.TrailerURL)
		}
		if len(page.Recommendations) > 0 {
			printHeader(a.out, "Recommended Movies")
			printCards(a.out, page.Recommendations)
		}
	}

	printHeader(a.out, "Trending Movies This Week")
	printCards(a.out, page.TrendingWeek)
	printHeader(a.out, "Trending Movies Today")
	printCards(a.out, page.TrendingDay)
}

func (a *app) trendingCmd() *cobra.Command {
	var window string
	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Print TMDB trending movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := tmdb.ParseWindow(window)
			if err != nil {
				return err
			}
			cfg, err := a.loadConfig(true)
			if err != nil {
				return err
			}

			gw := tmdb.NewGateway(&cfg.TMDB, logging.Logger())
			movies, err := gw.Trending(cmd.Context(), w)
			if err != nil {
				return fmt.Errorf("fetch trending movies: %w", err)
			}
			printHeader(a.out, "Trending Movies (%s)", w)
			printTrending(a.out, movies)
			return nil
		},
	}
	cmd.Flags().StringVarP(&window, "window", "w", string(tmdb.WindowWeek), "Trending window: day or week")
	return cmd
}

func (a *app) titlesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "titles",
		Short: "List catalog titles in snapshot order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(false)
			if err != nil {
				return err
			}
			cat, err := catalog.Open(cmd.Context(), &cfg.Catalog, logging.WithComponent("catalog"))
			if err != nil {
				return err
			}
			for _, title := range cat.Titles() {
				fmt.Fprintln(a.out, title)
			}
			return nil
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	var driver, dsn string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convert the configured JSON snapshot into a DuckDB or SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if driver != catalog.DriverDuckDB && driver != catalog.DriverSQLite {
				return fmt.Errorf("unsupported driver %q (want %s or %s)", driver, catalog.DriverDuckDB, catalog.DriverSQLite)
			}
			if dsn == "" {
				return fmt.Errorf("--dsn is required")
			}
			cfg, err := a.loadConfig(false)
			if err != nil {
				return err
			}

			start := time.Now()
			src := catalog.NewJSONSource(cfg.Catalog.MoviesPath, cfg.Catalog.SimilarityPath,
				catalog.Options{RejectDuplicateTitles: cfg.Catalog.RejectDuplicateTitles})
			cat, err := src.Load(cmd.Context())
			if err != nil {
				return err
			}

			db, err := sql.Open(driver, dsn)
			if err != nil {
				return fmt.Errorf("open %s database: %w", driver, err)
			}
			defer db.Close()

			if err := catalog.WriteSQL(cmd.Context(), db, cat); err != nil {
				return fmt.Errorf("write %s snapshot: %w", driver, err)
			}

			logging.Debug().
				Str("driver", driver).
				Str("dsn", dsn).
				Dur("duration", time.Since(start)).
				Msg("Snapshot imported")
			showSuccess(a.out, "Imported %d movies into %s (%s)", cat.Len(), dsn, driver)
			return nil
		},
	}
	cmd.Flags().StringVar(&driver, "driver", catalog.DriverDuckDB, "Target database driver: duckdb or sqlite")
	cmd.Flags().StringVar(&dsn, "dsn", "", "Target database path")
	return cmd
}
