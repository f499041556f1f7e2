// Package config handles runtime configuration: defaults, an optional .env
// file plus environment variables, an optional JSON file, and command-line
// flags. Later sources override earlier ones.
package config

import (
	"os"
	"path/filepath"
)

// Config holds runtime settings for the terminalchat CLI.
//
// Fields:
//   - AppDir: root directory for all local state.
//   - DatabasePath: sqlite database file; derived from AppDir when empty.
//   - FilesDir: root of the per-user file areas; derived from AppDir when empty.
//   - SessionSecret: HMAC secret for signing the session token.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	AppDir        string
	DatabasePath  string
	FilesDir      string
	SessionSecret string
	LogLevel      string
}

// LoadDefaults populates c with sensible defaults. State lives under
// ~/.terminalchat; the current directory is the fallback when the home
// directory cannot be resolved.
func (c *Config) LoadDefaults() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	c.AppDir = filepath.Join(home, ".terminalchat")
	c.SessionSecret = "terminalchat-local"
	c.LogLevel = "warn"
}

// SessionPath is the file holding the signed login token.
func (c *Config) SessionPath() string {
	return filepath.Join(c.AppDir, "session")
}

// normalize derives the paths that follow AppDir unless explicitly set.
func (c *Config) normalize() {
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(c.AppDir, "terminalchat.db")
	}
	if c.FilesDir == "" {
		c.FilesDir = filepath.Join(c.AppDir, "files")
	}
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, an optional JSON file, and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	cfg.normalize()
	return cfg
}
