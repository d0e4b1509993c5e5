package config

import (
	"fmt"
	"strings"

	"github.com/lgbarn/puzzle-cards/internal/errors"
)

// DeckConfig holds settings for the flashcard output.
type DeckConfig struct {
	// Name is the deck name shown in Anki; it also names the output files.
	Name string `toml:"name" envconfig:"DECK_NAME"`

	// OutputDir receives the notes file and the images directory.
	OutputDir string `toml:"output_dir" envconfig:"DECK_OUTPUT_DIR"`

	// JSON also writes the deck as JSON next to the notes file.
	JSON bool `toml:"json" envconfig:"DECK_JSON"`
}

// NewDeckConfig creates a DeckConfig with default values.
func NewDeckConfig() *DeckConfig {
	return &DeckConfig{
		Name:      "Lichess Tactics",
		OutputDir: "output",
		JSON:      true,
	}
}

// Validate checks that the deck configuration is usable.
func (d *DeckConfig) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("deck name is empty: %w", errors.ErrInvalidConfig)
	}
	if strings.ContainsAny(d.Name, `/\`) {
		return fmt.Errorf("deck name %q contains a path separator: %w", d.Name, errors.ErrInvalidConfig)
	}
	if d.OutputDir == "" {
		return fmt.Errorf("deck output directory is empty: %w", errors.ErrInvalidConfig)
	}
	return nil
}
