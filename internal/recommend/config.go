// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"strings"

	"github.com/tomtom215/marquee/internal/config"
)

// ExclusionPolicy selects how the query item is kept out of its own results.
type ExclusionPolicy int

const (
	// ExcludeByIdentity drops the query's own index.
	ExcludeByIdentity ExclusionPolicy = iota
	// ExcludePositional drops the top-ranked element.
	ExcludePositional
)

// String returns the configuration name of the policy.
func (p ExclusionPolicy) String() string {
	switch p {
	case ExcludeByIdentity:
		return "identity"
	case ExcludePositional:
		return "positional"
	default:
		return fmt.Sprintf("ExclusionPolicy(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p ExclusionPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *ExclusionPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseExclusion(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParseExclusion parses "identity" or "positional".
func ParseExclusion(s string) (ExclusionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "identity", "":
		return ExcludeByIdentity, nil
	case "positional":
		return ExcludePositional, nil
	default:
		return 0, fmt.Errorf("unknown exclusion policy %q (want identity or positional)", s)
	}
}

// Config contains recommender configuration.
type Config struct {
	// DefaultK is the result size used when a caller does not ask for one.
	DefaultK int `json:"default_k"`

	// MaxK caps any requested result size.
	MaxK int `json:"max_k"`

	// Exclusion is the self-exclusion policy.
	Exclusion ExclusionPolicy `json:"exclusion"`
}

// DefaultConfig returns the default configuration: six results, at most 50,
// identity exclusion.
func DefaultConfig() *Config {
	return &Config{
		DefaultK:  6,
		MaxK:      50,
		Exclusion: ExcludeByIdentity,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.MaxK < 1 {
		return fmt.Errorf("max_k must be at least 1, got %d", c.MaxK)
	}
	if c.DefaultK < 1 || c.DefaultK > c.MaxK {
		return fmt.Errorf("default_k must be between 1 and max_k (%d), got %d", c.MaxK, c.DefaultK)
	}
	if c.Exclusion != ExcludeByIdentity && c.Exclusion != ExcludePositional {
		return fmt.Errorf("invalid exclusion policy %v", c.Exclusion)
	}
	return nil
}

// FromSettings converts the application's recommend section.
func FromSettings(settings *config.RecommendConfig) (*Config, error) {
	exclusion, err := ParseExclusion(settings.Exclusion)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		DefaultK:  settings.DefaultK,
		MaxK:      settings.MaxK,
		Exclusion: exclusion,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
