// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Command marquee is the operator CLI: it queries a catalog snapshot from
// the terminal and converts JSON snapshots into DuckDB or SQLite databases.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/discover"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/tmdb"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries the global flags and the injectable terminal pieces.
type app struct {
	out        io.Writer
	configPath string
	debug      bool

	// selectTitle asks the user for a title; nil uses a survey prompt.
	selectTitle func(titles []string) (string, error)
}

func main() {
	a := &app{out: os.Stdout}
	if err := a.rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "marquee",
		Short:        "Movie recommendations from the terminal",
		Long:         "marquee ranks similar movies from a catalog snapshot and shows TMDB trending rails",
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.SetOut(a.out)

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Enable debug logging")

	rootCmd.AddCommand(
		a.recommendCmd(),
		a.pickCmd(),
		a.trendingCmd(),
		a.titlesCmd(),
		a.importCmd(),
	)
	return rootCmd
}

// loadConfig reads configuration and sets up logging. online requires TMDB
// credentials.
func (a *app) loadConfig(online bool) (*config.Config, error) {
	if a.configPath != "" {
		if _, err := os.Stat(a.configPath); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := os.Setenv(config.ConfigPathEnvVar, a.configPath); err != nil {
			return nil, err
		}
	}

	var (
		cfg *config.Config
		err error
	)
	if online {
		cfg, err = config.LoadWithKoanf()
	} else {
		cfg, err = config.LoadOffline()
	}
	if err != nil {
		return nil, err
	}

	logging.Init(logging.TerminalConfig(a.debug))
	return cfg, nil
}

func (a *app) openRecommender(ctx context.Context, cfg *config.Config) (*recommend.Recommender, error) {
	cat, err := catalog.Open(ctx, &cfg.Catalog, logging.WithComponent("catalog"))
	if err != nil {
		return nil, err
	}
	recCfg, err := recommend.FromSettings(&cfg.Recommend)
	if err != nil {
		return nil, err
	}
	return recommend.New(cat, recCfg, logging.Logger())
}

// openDiscover wires the full fetch stage for commands that talk to TMDB.
func (a *app) openDiscover(ctx context.Context, cfg *config.Config) (*discover.Service, error) {
	rec, err := a.openRecommender(ctx, cfg)
	if err != nil {
		return nil, err
	}
	gw := tmdb.NewGateway(&cfg.TMDB, logging.Logger())
	return discover.New(rec, gw, &cfg.Fetch, logging.Logger()), nil
}

func (a *app) askTitle(titles []string) (string, error) {
	if a.selectTitle != nil {
		return a.selectTitle(titles)
	}

	var title string
	prompt := &survey.Select{
		Message:  "Select a movie:",
		Options:  titles,
		Default:  titles[0],
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &title); err != nil {
		return "", err
	}
	return title, nil
}
