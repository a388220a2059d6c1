// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the questrun console.
//
// Configuration sources, in order of precedence:
//   - QUESTRUN_* environment variables
//   - ~/.questrun/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete questrun configuration.
type Config struct {
	// Server configuration (remote adventure service)
	Server ServerConfig `toml:"server"`

	// Store configuration (local database)
	Store StoreConfig `toml:"store"`

	// Cache configuration (autocomplete entity lists)
	Cache CacheConfig `toml:"cache"`

	// Console configuration
	Console ConsoleConfig `toml:"console"`
}

// ServerConfig points at the remote adventure service, used when no local
// database is configured.
type ServerConfig struct {
	// URL is the base URL of the adventure service
	URL string `toml:"url"`
	// TimeoutSecs is the per-request timeout
	TimeoutSecs int `toml:"timeout_secs"`
}

// StoreConfig configures the local SQLite store.
type StoreConfig struct {
	// DatabasePath is the SQLite file (empty = ~/.questrun/adventures.db)
	DatabasePath string `toml:"database_path"`
	// WatchDatabase invalidates the autocomplete cache when another
	// process writes the database file
	WatchDatabase bool `toml:"watch_database"`
}

// CacheConfig tunes the autocomplete entity cache.
type CacheConfig struct {
	// TTLSecs is the lifetime of a cached identifier list (default 5)
	TTLSecs int `toml:"ttl_secs"`
}

// ConsoleConfig tunes the interactive console.
type ConsoleConfig struct {
	// HistoryFile stores input history (empty = ~/.questrun/history)
	HistoryFile string `toml:"history_file"`
	// SuggestionLimit caps "did you mean" suggestions (default 3)
	SuggestionLimit int `toml:"suggestion_limit"`
}

// =============================================================================
// DEFAULTS AND LOADING
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:         "http://127.0.0.1:8311",
			TimeoutSecs: 5,
		},
		Store: StoreConfig{
			WatchDatabase: true,
		},
		Cache: CacheConfig{
			TTLSecs: 5,
		},
		Console: ConsoleConfig{
			SuggestionLimit: 3,
		},
	}
}

// ConfigDir returns the questrun configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".questrun"), nil
}

// EnsureConfigDir creates the configuration directory if needed.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// Load reads ~/.questrun/config.toml, falling back to defaults when the
// file does not exist, then applies environment overrides and fills derived
// paths.
func Load() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(dir, "config.toml"))
}

// LoadFrom reads configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load TOML config: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.fillPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides config values from QUESTRUN_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("QUESTRUN_SERVER_URL"); v != "" {
		c.Server.URL = v
	}
	if v := os.Getenv("QUESTRUN_DB"); v != "" {
		c.Store.DatabasePath = v
	}
	if v := os.Getenv("QUESTRUN_CACHE_TTL_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Cache.TTLSecs = n
		}
	}
}

// fillPaths resolves defaulted file locations under the config directory.
func (c *Config) fillPaths() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if c.Store.DatabasePath == "" {
		c.Store.DatabasePath = filepath.Join(dir, "adventures.db")
	}
	if c.Console.HistoryFile == "" {
		c.Console.HistoryFile = filepath.Join(dir, "history")
	}
	return nil
}

// Validate rejects configurations the console cannot run with.
func (c *Config) Validate() error {
	if c.Server.URL != "" {
		if _, err := url.Parse(c.Server.URL); err != nil {
			return fmt.Errorf("server.url: %w", err)
		}
	}
	if c.Cache.TTLSecs <= 0 {
		return fmt.Errorf("cache.ttl_secs must be positive, got %d", c.Cache.TTLSecs)
	}
	if c.Console.SuggestionLimit <= 0 {
		return fmt.Errorf("console.suggestion_limit must be positive, got %d", c.Console.SuggestionLimit)
	}
	return nil
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSecs) * time.Second
}

// ServerTimeout returns the server request timeout as a duration.
func (c *Config) ServerTimeout() time.Duration {
	return time.Duration(c.Server.TimeoutSecs) * time.Second
}
