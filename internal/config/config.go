package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ServerConfig is what the showcase server reads from its flags. SiteFile
// selects the collections that get listed. SeedFile fills the content store
// before the first request is served.
type ServerConfig struct {
	Addr      string
	LogLevel  string // debug, info, warn, error
	LogFormat string // text, json

	// DBPath is the SQLite file holding content items and categories. Empty
	// means ~/.showcase/showcase.db; ":memory:" keeps everything in process.
	DBPath string

	SiteFile string
	SeedFile string

	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// DefaultServerConfig returns the listen address, logging and timeouts used
// when no flags are given.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:              ":8080",
		LogLevel:          "info",
		LogFormat:         "text",
		ReadHeaderTimeout: 10 * time.Second,
		ShutdownTimeout:   5 * time.Second,
	}
}

// Validate rejects log settings and timeouts the server cannot start with.
func (c ServerConfig) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.ReadHeaderTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}

// ResolveDBPath returns DBPath, or the per-user default database after
// creating its directory.
func (c ServerConfig) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}
	dir := filepath.Join(home, ".showcase")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return filepath.Join(dir, "showcase.db"), nil
}
