package config

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/lgbarn/puzzle-cards/internal/errors"
)

// EnvPrefix prefixes the long form of every environment variable, e.g.
// PUZZLE_CARDS_SOURCE_LICHESS_URL. The short form (LICHESS_URL) is read
// when the long form is unset.
const EnvPrefix = "PUZZLE_CARDS"

// LoadFile overlays settings from a TOML file. Keys the file sets replace
// the current values; unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return c.LoadTOML(string(data))
}

// LoadTOML overlays settings from TOML text.
func (c *Config) LoadTOML(text string) error {
	md, err := toml.Decode(text, c)
	if err != nil {
		return fmt.Errorf("parse config: %v: %w", err, errors.ErrInvalidConfig)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown config keys %s: %w", strings.Join(keys, ", "), errors.ErrInvalidConfig)
	}
	return nil
}

// LoadEnv overlays settings from the environment. When dotenv names a file
// that exists, its variables are loaded first; variables already set in the
// environment win over the file.
func (c *Config) LoadEnv(dotenv string) error {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotenv, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("environment: %v: %w", err, errors.ErrInvalidConfig)
	}
	return nil
}

// Load builds a Config from defaults, an optional TOML file and the
// environment, then validates it. Flags are applied by the caller.
func Load(path, dotenv string) (*Config, error) {
	cfg := NewConfig()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.LoadEnv(dotenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
