// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package logging provides the process-wide zerolog logger for Marquee.
//
// The server, the CLI and every internal component log through this
// package so that output format, level and field names stay consistent:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Int("items", n).Msg("Catalog loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Poster lookup degraded")
//
// Components that are constructed with an explicit zerolog.Logger (the
// recommender, the TMDB gateway, the fetch stage) scope it with a
// "component" field; see WithComponent.
//
// Always terminate event chains with .Msg() or .Send(), otherwise nothing
// is written.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: trace, debug, info, warn, error, fatal, panic, disabled.
	Level string

	// Format is the output format: json or console.
	Format string

	// Caller includes caller file and line number in logs.
	Caller bool

	// Timestamp enables timestamps in log output.
	Timestamp bool

	// Output is the writer for log output. Defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Caller:    false,
		Timestamp: true,
		Output:    os.Stderr,
	}
}

// TerminalConfig is the logging setup for the interactive CLI: console
// output on stderr, quiet unless debug is set, no timestamps. Command
// output owns stdout.
func TerminalConfig(debug bool) Config {
	level := "warn"
	if debug {
		level = "debug"
	}
	return Config{
		Level:  level,
		Format: "console",
		Output: os.Stderr,
	}
}

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

// levels maps accepted LOG_LEVEL names onto zerolog levels.
var levels = map[string]zerolog.Level{
	"trace":    zerolog.TraceLevel,
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"fatal":    zerolog.FatalLevel,
	"panic":    zerolog.PanicLevel,
	"disabled": zerolog.Disabled,
}

//nolint:gochecknoinits // package-level helpers must log before main calls Init
func init() {
	log = build(DefaultConfig())
}

// Init replaces the global logger. Calling it again reconfigures logging,
// which the CLI does once flags are parsed.
func Init(cfg Config) {
	logger := build(cfg)

	mu.Lock()
	defer mu.Unlock()
	log = logger
}

func build(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.MessageFieldName = "message"

	out := cfg.Output
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(out).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// parseLevel resolves a level name case-insensitively. Unknown or empty
// names mean info.
func parseLevel(level string) zerolog.Level {
	if l, ok := levels[strings.ToLower(level)]; ok {
		return l
	}
	return zerolog.InfoLevel
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	_, ok := levels[strings.ToLower(level)]
	return ok
}

// Logger returns the global logger instance.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Debug starts a debug event on the global logger.
func Debug() *zerolog.Event { return current().Debug() }

// Info starts an info event on the global logger.
func Info() *zerolog.Event { return current().Info() }

// Warn starts a warning event on the global logger.
func Warn() *zerolog.Event { return current().Warn() }

// Error starts an error event on the global logger.
func Error() *zerolog.Event { return current().Error() }

// Fatal starts a fatal event; os.Exit(1) follows the write.
//
//	logging.Fatal().Err(err).Msg("Cannot load catalog snapshot")
func Fatal() *zerolog.Event { return current().Fatal() }

func current() *zerolog.Logger {
	l := Logger()
	return &l
}

// NewTestLogger creates a logger that writes JSON lines to w.
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
