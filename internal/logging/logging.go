// Package logging builds the zerolog logger described by a Config.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/puzzle-cards/internal/config"
	"github.com/lgbarn/puzzle-cards/internal/errors"
)

// verbosityLevels maps Config.Verbosity to a log level.
var verbosityLevels = []zerolog.Level{zerolog.ErrorLevel, zerolog.InfoLevel, zerolog.DebugLevel}

// Level returns the level a configuration asks for. An explicit
// Log.Level wins over Verbosity.
func Level(cfg *config.Config) (zerolog.Level, error) {
	if cfg.Log.Level != "" {
		level, err := zerolog.ParseLevel(cfg.Log.Level)
		if err != nil {
			return zerolog.NoLevel, fmt.Errorf("log level %q: %w", cfg.Log.Level, errors.ErrInvalidConfig)
		}
		return level, nil
	}
	v := cfg.Verbosity
	if v < 0 {
		v = 0
	}
	if v >= len(verbosityLevels) {
		v = len(verbosityLevels) - 1
	}
	return verbosityLevels[v], nil
}

// New creates the logger for cfg, writing to cfg.LogFile.
func New(cfg *config.Config) (zerolog.Logger, error) {
	level, err := Level(cfg)
	if err != nil {
		return zerolog.Nop(), err
	}

	var out io.Writer = cfg.LogFile
	if out == nil {
		out = os.Stderr
	}
	if cfg.Log.Style == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: !isTerminal(out)}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// isTerminal reports whether w is a character device.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
