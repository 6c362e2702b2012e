// Package config provides configuration management for the Cutboard Agent.
// Configuration is loaded from environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// Default values
	DefaultPort     = 8971
	DefaultLogLevel = "info"
	DefaultDataDir  = ".cutboard"

	// Environment variable names
	EnvPort     = "CUTBOARD_PORT"
	EnvLogLevel = "CUTBOARD_LOG_LEVEL"
	EnvDataDir  = "CUTBOARD_DATA_DIR"
	EnvHeadless = "CUTBOARD_HEADLESS"
	EnvAutosave = "CUTBOARD_AUTOSAVE_SECONDS"

	// Database filename
	DBFilename = "cutboard.db"

	// Autosave defaults
	DefaultAutosaveSeconds = 15
)

// Config defines the application configuration interface
type Config interface {
	Port() int
	LogLevel() string
	DataDir() string
	DBPath() string
	MediaDir() string
	Headless() bool
	AutosaveInterval() time.Duration
}

// EnvConfig reads configuration from environment variables
type EnvConfig struct {
	port            int
	logLevel        string
	dataDir         string
	headless        bool
	autosaveSeconds int
}

// New creates a new EnvConfig with defaults and environment variable overrides
func New() (*EnvConfig, error) {
	cfg := &EnvConfig{
		port:            DefaultPort,
		logLevel:        DefaultLogLevel,
		dataDir:         defaultDataDir(),
		autosaveSeconds: DefaultAutosaveSeconds,
	}

	// Override port from environment
	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid %s: port must be between 1 and 65535", EnvPort)
		}
		cfg.port = port
	}

	// Override log level from environment
	if ll := os.Getenv(EnvLogLevel); ll != "" {
		cfg.logLevel = ll
	}

	// Override data directory from environment
	if dd := os.Getenv(EnvDataDir); dd != "" {
		cfg.dataDir = dd
	}

	if h := os.Getenv(EnvHeadless); h == "1" || h == "true" {
		cfg.headless = true
	}

	if a := os.Getenv(EnvAutosave); a != "" {
		secs, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvAutosave, err)
		}
		if secs < 1 {
			return nil, fmt.Errorf("invalid %s: interval must be at least 1 second", EnvAutosave)
		}
		cfg.autosaveSeconds = secs
	}

	return cfg, nil
}

// Port returns the HTTP server port
func (c *EnvConfig) Port() int {
	return c.port
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

// DataDir returns the data directory path
func (c *EnvConfig) DataDir() string {
	return c.dataDir
}

// DBPath returns the full path to the SQLite database file
func (c *EnvConfig) DBPath() string {
	return filepath.Join(c.dataDir, DBFilename)
}

// MediaDir returns the directory uploaded media files are stored under
func (c *EnvConfig) MediaDir() string {
	return filepath.Join(c.dataDir, "media")
}

// Headless reports whether the system tray should be skipped
func (c *EnvConfig) Headless() bool {
	return c.headless
}

// AutosaveInterval returns how often open projects are flushed to disk
func (c *EnvConfig) AutosaveInterval() time.Duration {
	return time.Duration(c.autosaveSeconds) * time.Second
}

// defaultDataDir returns the default data directory path
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
