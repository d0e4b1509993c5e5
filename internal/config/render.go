package config

import (
	"fmt"
	"regexp"

	"github.com/lgbarn/puzzle-cards/internal/errors"
)

var hexColour = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// RenderConfig holds settings for board diagrams.
type RenderConfig struct {
	// Size is the width and height of the diagram in pixels.
	Size int `toml:"size" envconfig:"BOARD_SIZE"`

	// Square and highlight colours as #rgb or #rrggbb.
	LightColour     string `toml:"light" envconfig:"BOARD_LIGHT"`
	DarkColour      string `toml:"dark" envconfig:"BOARD_DARK"`
	HighlightColour string `toml:"highlight" envconfig:"BOARD_HIGHLIGHT"`

	// Coordinates draws file letters and rank numbers along the edges.
	Coordinates bool `toml:"coordinates" envconfig:"BOARD_COORDINATES"`

	// Orient draws the board from the solving side's point of view.
	Orient bool `toml:"orient" envconfig:"BOARD_ORIENT"`
}

// NewRenderConfig creates a RenderConfig with default values.
func NewRenderConfig() *RenderConfig {
	return &RenderConfig{
		Size:            1000,
		LightColour:     "#A0AEC0",
		DarkColour:      "#76808e",
		HighlightColour: "#cdd26a",
		Coordinates:     true,
	}
}

// Validate checks that the render configuration is usable.
func (r *RenderConfig) Validate() error {
	if r.Size < 80 || r.Size > 4000 {
		return fmt.Errorf("board size %d outside 80..4000: %w", r.Size, errors.ErrInvalidConfig)
	}
	for _, c := range []string{r.LightColour, r.DarkColour, r.HighlightColour} {
		if !hexColour.MatchString(c) {
			return fmt.Errorf("bad colour %q: %w", c, errors.ErrInvalidConfig)
		}
	}
	return nil
}
