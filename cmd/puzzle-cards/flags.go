// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"strings"

	"github.com/lgbarn/puzzle-cards/internal/config"
)

var (
	// Configuration sources
	configFile = flag.String("config", "", "TOML configuration file")
	envFile    = flag.String("env", ".env", "Environment file to load before reading the environment (ignored if missing)")

	// Puzzle selection
	puzzleList = flag.String("puzzles", "", "Comma-separated Lichess puzzle ids (also accepted as arguments)")
	strictMode = flag.Bool("strict", false, "Stop at the first puzzle whose transcript does not replay")
	workers    = flag.Int("workers", 0, "Number of puzzles resolved in parallel")

	// Source
	lichessURL = flag.String("lichess", "", "Lichess base URL")
	delay      = flag.Duration("delay", 0, "Pause between two Lichess requests")

	// Deck output
	outputDir = flag.String("out", "", "Output directory for the deck and its images")
	deckName  = flag.String("deck", "", "Deck name")
	noJSON    = flag.Bool("nojson", false, "Don't write the deck as JSON")

	// Diagrams
	boardSize = flag.Int("size", 0, "Diagram width and height in pixels")
	orient    = flag.Bool("orient", false, "Draw diagrams from the solving side")
	noCoords  = flag.Bool("nocoords", false, "Don't label files and ranks")

	// Card store
	mongoAddress = flag.String("mongo", "", "MongoDB URI of the card store")

	// Logging
	verbosity = flag.Int("v", 1, "Verbosity: 0=errors, 1=summary, 2=every puzzle")
	quiet     = flag.Bool("s", false, "Silent mode (errors only, no summary)")
	logStyle  = flag.String("log-style", "", "Log encoding: console or json")
	logFile   = flag.String("l", "", "Write log to file")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// setFlags returns the names of the flags given on the command line.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applyFlags applies the command-line flags in set to the configuration,
// leaving values from the file and environment in place otherwise.
func applyFlags(cfg *config.Config, set map[string]bool, args []string) {
	applySelectionFlags(cfg, set, args)
	applySourceFlags(cfg, set)
	applyDeckFlags(cfg, set)
	applyRenderFlags(cfg, set)
	applyLogFlags(cfg, set)

	if set["mongo"] {
		cfg.Store.Address = *mongoAddress
	}
}

// applySelectionFlags configures which puzzles are carded and how.
func applySelectionFlags(cfg *config.Config, set map[string]bool, args []string) {
	if set["puzzles"] || len(args) > 0 {
		cfg.Puzzles = puzzleIDs(*puzzleList, args)
	}
	if set["strict"] {
		cfg.Strict = *strictMode
	}
	if set["workers"] {
		cfg.Workers = *workers
	}
}

// applySourceFlags configures the Lichess client.
func applySourceFlags(cfg *config.Config, set map[string]bool) {
	if set["lichess"] {
		cfg.Source.BaseURL = *lichessURL
	}
	if set["delay"] {
		cfg.Source.Delay = *delay
	}
}

// applyDeckFlags configures deck output.
func applyDeckFlags(cfg *config.Config, set map[string]bool) {
	if set["out"] {
		cfg.Deck.OutputDir = *outputDir
	}
	if set["deck"] {
		cfg.Deck.Name = *deckName
	}
	if set["nojson"] {
		cfg.Deck.JSON = !*noJSON
	}
}

// applyRenderFlags configures the diagrams.
func applyRenderFlags(cfg *config.Config, set map[string]bool) {
	if set["size"] {
		cfg.Render.Size = *boardSize
	}
	if set["orient"] {
		cfg.Render.Orient = *orient
	}
	if set["nocoords"] {
		cfg.Render.Coordinates = !*noCoords
	}
}

// applyLogFlags configures logging.
func applyLogFlags(cfg *config.Config, set map[string]bool) {
	if set["v"] {
		cfg.Verbosity = *verbosity
	}
	if *quiet {
		cfg.Verbosity = 0
	}
	if set["log-style"] {
		cfg.Log.Style = *logStyle
	}
}

// puzzleIDs merges the -puzzles list with the positional arguments,
// dropping blanks.
func puzzleIDs(list string, args []string) []string {
	var ids []string
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	for _, id := range args {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
