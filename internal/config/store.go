package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/lgbarn/puzzle-cards/internal/errors"
)

// StoreConfig holds settings for the optional MongoDB card store.
// The store is disabled while Address is empty.
type StoreConfig struct {
	Address    string        `toml:"address" envconfig:"MONGO_ADDRESS"`
	Database   string        `toml:"database" envconfig:"MONGO_DATABASE"`
	Collection string        `toml:"collection" envconfig:"MONGO_COLLECTION"`
	Timeout    time.Duration `toml:"timeout" envconfig:"MONGO_TIMEOUT"`
}

// NewStoreConfig creates a StoreConfig with default values.
func NewStoreConfig() *StoreConfig {
	return &StoreConfig{
		Database:   "puzzle_cards",
		Collection: "cards",
		Timeout:    5 * time.Second,
	}
}

// Enabled reports whether a store address is configured.
func (s *StoreConfig) Enabled() bool {
	return s.Address != ""
}

// Validate checks the store configuration when the store is enabled.
func (s *StoreConfig) Validate() error {
	if !s.Enabled() {
		return nil
	}
	if !strings.HasPrefix(s.Address, "mongodb://") && !strings.HasPrefix(s.Address, "mongodb+srv://") {
		return fmt.Errorf("store address %q is not a mongodb URI: %w", s.Address, errors.ErrInvalidConfig)
	}
	if s.Database == "" || s.Collection == "" {
		return fmt.Errorf("store database and collection are required: %w", errors.ErrInvalidConfig)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("store timeout %v must be positive: %w", s.Timeout, errors.ErrInvalidConfig)
	}
	return nil
}
