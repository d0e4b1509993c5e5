package config

import (
	"fmt"
	"net"

	"github.com/lgbarn/puzzle-cards/internal/errors"
)

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Address is the listen address, host:port.
	Address string `toml:"address" envconfig:"SERVER_ADDRESS"`

	// Release switches gin to release mode.
	Release bool `toml:"release" envconfig:"SERVER_RELEASE"`
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{Address: ":8080"}
}

// Validate checks that the listen address can be parsed.
func (s *ServerConfig) Validate() error {
	if _, _, err := net.SplitHostPort(s.Address); err != nil {
		return fmt.Errorf("server address %q: %v: %w", s.Address, err, errors.ErrInvalidConfig)
	}
	return nil
}
