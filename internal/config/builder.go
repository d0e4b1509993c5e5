package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithPuzzles sets the puzzle ids to card.
func (b *ConfigBuilder) WithPuzzles(ids ...string) *ConfigBuilder {
	b.cfg.Puzzles = append([]string(nil), ids...)
	return b
}

// WithWorkers sets the number of parallel resolvers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithStrict stops the run at the first rejected puzzle.
func (b *ConfigBuilder) WithStrict(strict bool) *ConfigBuilder {
	b.cfg.Strict = strict
	return b
}

// WithBaseURL sets the Lichess origin.
func (b *ConfigBuilder) WithBaseURL(url string) *ConfigBuilder {
	b.cfg.Source.BaseURL = url
	return b
}

// WithDelay sets the pause between requests.
func (b *ConfigBuilder) WithDelay(d time.Duration) *ConfigBuilder {
	b.cfg.Source.Delay = d
	return b
}

// WithBoardSize sets the diagram size in pixels.
func (b *ConfigBuilder) WithBoardSize(size int) *ConfigBuilder {
	b.cfg.Render.Size = size
	return b
}

// WithColours sets the light and dark square colours.
func (b *ConfigBuilder) WithColours(light, dark string) *ConfigBuilder {
	b.cfg.Render.LightColour = light
	b.cfg.Render.DarkColour = dark
	return b
}

// WithDeck sets the deck name and output directory.
func (b *ConfigBuilder) WithDeck(name, dir string) *ConfigBuilder {
	b.cfg.Deck.Name = name
	b.cfg.Deck.OutputDir = dir
	return b
}

// WithStore enables the MongoDB card store.
func (b *ConfigBuilder) WithStore(address, database, collection string) *ConfigBuilder {
	b.cfg.Store.Address = address
	b.cfg.Store.Database = database
	b.cfg.Store.Collection = collection
	return b
}

// WithServerAddress sets the HTTP listen address.
func (b *ConfigBuilder) WithServerAddress(addr string) *ConfigBuilder {
	b.cfg.Server.Address = addr
	return b
}

// WithLogFile sets the log output stream.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithLogStyle sets the log encoding, "json" or "console".
func (b *ConfigBuilder) WithLogStyle(style string) *ConfigBuilder {
	b.cfg.Log.Style = style
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
