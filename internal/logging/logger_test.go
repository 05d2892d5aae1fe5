// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
}

func TestTerminalConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		debug bool
		level string
	}{
		{false, "warn"},
		{true, "debug"},
	}
	for _, tt := range tests {
		cfg := TerminalConfig(tt.debug)
		if cfg.Level != tt.level || cfg.Format != "console" || cfg.Timestamp {
			t.Errorf("TerminalConfig(%v) = %+v", tt.debug, cfg)
		}
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("title", "Avatar").Msg("catalog ready")

	output := buf.String()
	if !strings.Contains(output, "catalog ready") {
		t.Errorf("expected output to contain message, got: %s", output)
	}
	if !strings.Contains(output, `"title":"Avatar"`) {
		t.Errorf("expected output to contain title field, got: %s", output)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("expected debug level, got %v", zerolog.GlobalLevel())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	if !ValidLevel("Warn") {
		t.Error("expected Warn to be valid")
	}
	if ValidLevel("verbose") {
		t.Error("expected verbose to be invalid")
	}
}

func TestCtx_AddsIdentifiers(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})
	defer Init(DefaultConfig())

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")
	Ctx(ctx).Info().Msg("hello")

	output := buf.String()
	if !strings.Contains(output, `"request_id":"req-1"`) {
		t.Errorf("missing request_id: %s", output)
	}
	if !strings.Contains(output, `"correlation_id":"corr-1"`) {
		t.Errorf("missing correlation_id: %s", output)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})
	defer Init(DefaultConfig())

	logger := WithComponent("catalog")
	logger.Info().Int("items", 3).Msg("Catalog loaded")

	output := buf.String()
	if !strings.Contains(output, `"component":"catalog"`) {
		t.Errorf("missing component field: %s", output)
	}
	if !strings.Contains(output, `"items":3`) {
		t.Errorf("missing event field: %s", output)
	}
}

func TestGenerateCorrelationID(t *testing.T) {
	t.Parallel()

	id := GenerateCorrelationID()
	if len(id) != 8 {
		t.Errorf("expected 8 character correlation ID, got %q", id)
	}
	if CorrelationIDFromContext(context.Background()) != "" {
		t.Error("expected empty correlation ID on bare context")
	}
}

func TestSlogHandler_WritesThroughZerolog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf)))
	logger.WithGroup("svc").Warn("service restarted", slog.String("name", "http"), slog.Int("attempt", 2))

	output := buf.String()
	if !strings.Contains(output, `"level":"warn"`) {
		t.Errorf("expected warn level, got: %s", output)
	}
	if !strings.Contains(output, `"svc.name":"http"`) {
		t.Errorf("expected grouped key, got: %s", output)
	}
	if !strings.Contains(output, `"svc.attempt":2`) {
		t.Errorf("expected grouped int key, got: %s", output)
	}
}

func TestSlogHandler_WithAttrsAndNestedGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf))).
		With(slog.String("supervisor", "api-layer"))
	logger.Error("service failed", slog.Group("event", slog.String("service", "http"), slog.Bool("restarting", true)))

	output := buf.String()
	for _, want := range []string{
		`"level":"error"`,
		`"supervisor":"api-layer"`,
		`"event.service":"http"`,
		`"event.restarting":true`,
		`"message":"service failed"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got: %s", want, output)
		}
	}
}
