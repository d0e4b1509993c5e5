package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/lgbarn/puzzle-cards/internal/errors"
)

// SourceConfig holds settings for fetching puzzles from Lichess.
type SourceConfig struct {
	// BaseURL is the Lichess origin; puzzles are read from
	// BaseURL/api/puzzle/{id}.
	BaseURL string `toml:"base_url" envconfig:"LICHESS_URL"`

	// Delay is the pause between two requests.
	Delay time.Duration `toml:"delay" envconfig:"LICHESS_DELAY"`

	// Timeout bounds a single request.
	Timeout time.Duration `toml:"timeout" envconfig:"LICHESS_TIMEOUT"`

	// UserAgent is sent with every request.
	UserAgent string `toml:"user_agent" envconfig:"LICHESS_USER_AGENT"`
}

// NewSourceConfig creates a SourceConfig with default values.
func NewSourceConfig() *SourceConfig {
	return &SourceConfig{
		BaseURL:   "https://lichess.org",
		Delay:     time.Second,
		Timeout:   10 * time.Second,
		UserAgent: "puzzle-cards",
	}
}

// Validate checks that the source configuration is usable.
func (s *SourceConfig) Validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("source base URL %q must be an http(s) URL: %w", s.BaseURL, errors.ErrInvalidConfig)
	}
	if s.Delay < 0 {
		return fmt.Errorf("source delay %v is negative: %w", s.Delay, errors.ErrInvalidConfig)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("source timeout %v must be positive: %w", s.Timeout, errors.ErrInvalidConfig)
	}
	return nil
}
