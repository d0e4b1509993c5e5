// Package config provides configuration for puzzle-cards.
// A Config starts from NewConfig defaults and may be layered with a TOML
// file, a .env file, the process environment and finally command-line flags.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/puzzle-cards/internal/errors"
)

// DefaultPuzzles are the Lichess puzzle ids carded when none are given.
var DefaultPuzzles = []string{"ATSSe", "5kHIg", "PD1fP", "MLiqa", "uTR5C", "54qbb", "YMCyG"}

// Config holds all program configuration.
type Config struct {
	// Verbosity: 0=errors only, 1=run summary, 2=one line per puzzle.
	Verbosity int `toml:"verbosity" envconfig:"VERBOSITY"`

	// Puzzles lists the Lichess puzzle ids to card.
	Puzzles []string `toml:"puzzles" envconfig:"PUZZLES"`

	// Workers is the number of puzzles resolved in parallel.
	Workers int `toml:"workers" envconfig:"WORKERS"`

	// Strict stops the run at the first rejected puzzle.
	Strict bool `toml:"strict" envconfig:"STRICT"`

	Log    LogConfig    `toml:"log"`
	Source SourceConfig `toml:"source"`
	Render RenderConfig `toml:"render"`
	Deck   DeckConfig   `toml:"deck"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`

	// LogFile receives log output.
	LogFile io.Writer `toml:"-" ignored:"true"`
}

// LogConfig selects the log encoding.
type LogConfig struct {
	// Style is "json" or "console".
	Style string `toml:"style" envconfig:"LOG_STYLE"`
	// Level overrides the level implied by Verbosity when set.
	Level string `toml:"level" envconfig:"LOG_LEVEL"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity: 1,
		Puzzles:   append([]string(nil), DefaultPuzzles...),
		Workers:   4,
		Log:       LogConfig{Style: "console"},
		Source:    *NewSourceConfig(),
		Render:    *NewRenderConfig(),
		Deck:      *NewDeckConfig(),
		Store:     *NewStoreConfig(),
		Server:    *NewServerConfig(),
		LogFile:   os.Stderr,
	}
}

// SetLogFile sets the log output stream.
func (c *Config) SetLogFile(w io.Writer) {
	c.LogFile = w
}

// Validate checks the whole configuration. Every error wraps
// errors.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if c.Verbosity < 0 || c.Verbosity > 2 {
		return fmt.Errorf("verbosity must be 0, 1 or 2, got %d: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	switch c.Log.Style {
	case "json", "console":
	default:
		return fmt.Errorf("log style must be json or console, got %q: %w", c.Log.Style, errors.ErrInvalidConfig)
	}
	for _, id := range c.Puzzles {
		if !IsPuzzleID(id) {
			return fmt.Errorf("bad puzzle id %q: %w", id, errors.ErrInvalidConfig)
		}
	}

	for _, v := range []interface{ Validate() error }{&c.Source, &c.Render, &c.Deck, &c.Store, &c.Server} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsPuzzleID reports whether s looks like a Lichess puzzle id: a short run
// of ASCII letters and digits.
func IsPuzzleID(s string) bool {
	if len(s) == 0 || len(s) > 16 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
