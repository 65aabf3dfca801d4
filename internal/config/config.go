// Package config provides configuration management for the countdown server.
//
// Configuration is optional. Without a file every setting has a default and
// the server listens on 127.0.0.1:3000 with the in-memory registry.
//
// Config file locations (priority order):
//  1. $COUNTDOWN_CONFIG
//  2. ./countdown.yaml
//  3. $XDG_CONFIG_HOME/countdown/config.yaml
//  4. ~/.config/countdown/config.yaml
//  5. /etc/countdown/config.yaml
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"countdown/internal/domain"
	"countdown/internal/logging"
)

// DefaultAddr is the listen address used when none is configured
const DefaultAddr = "127.0.0.1:3000"

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path. Keys missing from the
// file keep their default values.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns the settings used when no config file exists
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ReadTimeout:     Duration(10 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			IdleTimeout:     Duration(60 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Store:  StoreConfig{Backend: StoreMemory},
		Log:    LogConfig{Level: "info", Format: logging.FormatText},
		Quote:  domain.DefaultQuote,
		Events: EventsConfig{Enabled: true},
	}
}

// applyDefaults fills in values a file explicitly left empty
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = defaults.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = defaults.Server.WriteTimeout
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = defaults.Server.IdleTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = defaults.Server.ShutdownTimeout
	}
	if c.Store.Backend == "" {
		c.Store.Backend = defaults.Store.Backend
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
	if c.Quote == "" {
		c.Quote = defaults.Quote
	}
}

// Validate reports the first setting that cannot be used
func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return fmt.Errorf("server.addr %q: %w", c.Server.Addr, err)
	}
	for name, d := range map[string]Duration{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.idle_timeout":     c.Server.IdleTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	switch c.Store.Backend {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("store.backend %q: want %q or %q", c.Store.Backend, StoreMemory, StoreSQLite)
	}
	if _, err := logging.New("config", c.Log.Level, c.Log.Format); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// ErrNoConfigFile is returned by LoadExplicit for a missing file
var ErrNoConfigFile = errors.New("config file not found")

// LoadExplicit loads path if set, otherwise searches like Load
func LoadExplicit(path string) (*Config, string, error) {
	if path == "" {
		return Load()
	}
	if !fileExists(path) {
		return nil, path, fmt.Errorf("%w: %s", ErrNoConfigFile, path)
	}
	return LoadFromPath(path)
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	return fmt.Sprintf("addr=%s store=%s events=%t log=%s/%s",
		c.Server.Addr, c.Store.Backend, c.Events.Enabled, c.Log.Level, c.Log.Format)
}
