// filepath: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Supported store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverJSONFile = "jsonfile"
)

// Config holds the application's configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Storage  StorageConfig  `toml:"storage"`
	Logging  LoggingConfig  `toml:"logging"`

	MaxUploadSizeBytes int64         `toml:"-"` // Runtime computed value
	CleanupInterval    time.Duration `toml:"-"` // Runtime computed value, 0 disables the sweeper
}

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host               string   `toml:"host"`
	Port               int      `toml:"port"`
	MaxUploadSize      string   `toml:"max_upload_size"` // e.g. "10MB", "512KB"
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
}

// DatabaseConfig selects the store driver and where it keeps its data.
type DatabaseConfig struct {
	Driver string `toml:"driver"` // "sqlite" or "jsonfile"
	Path   string `toml:"path"`
}

// StorageConfig holds the location of uploaded images.
type StorageConfig struct {
	UploadDir       string `toml:"upload_dir"`
	CleanupInterval string `toml:"cleanup_interval"` // e.g. "1h", "1d", "0" to disable
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level        string `toml:"level"`
	AuditEnabled bool   `toml:"audit_enabled"`
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the configuration back to a TOML file.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file for saving: %w", err)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config to file: %w", err)
	}
	return nil
}

// ParseAndValidate processes configuration strings into runtime values.
// It sets defaults if values are missing and parses human-readable sizes.
func (c *Config) ParseAndValidate() error {
	if c.Server.MaxUploadSize == "" {
		c.Server.MaxUploadSize = "10MB"
	}

	sizeBytes, err := parseSize(c.Server.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if sizeBytes == 0 {
		return fmt.Errorf("invalid max_upload_size: must be greater than zero")
	}
	c.MaxUploadSizeBytes = sizeBytes

	if c.Storage.CleanupInterval == "" {
		c.Storage.CleanupInterval = "1h"
	}
	interval, err := parseDuration(c.Storage.CleanupInterval)
	if err != nil {
		return fmt.Errorf("invalid cleanup_interval: %w", err)
	}
	c.CleanupInterval = interval

	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	c.Database.Driver = strings.ToLower(c.Database.Driver)
	switch c.Database.Driver {
	case DriverSQLite, DriverJSONFile:
	default:
		return fmt.Errorf("invalid database driver %q (expected %q or %q)", c.Database.Driver, DriverSQLite, DriverJSONFile)
	}

	if c.Database.Path == "" {
		if c.Database.Driver == DriverJSONFile {
			c.Database.Path = "db.json"
		} else {
			c.Database.Path = "catalog.db"
		}
	}

	return nil
}

// parseSize parses a size string (e.g., "100G", "500MB") into bytes.
func parseSize(sizeStr string) (int64, error) {
	re := regexp.MustCompile(`(?i)^(\d+)\s*(K|M|G|T)?B?$`)
	matches := re.FindStringSubmatch(strings.TrimSpace(sizeStr))

	if len(matches) < 2 {
		return 0, fmt.Errorf("invalid size format: %s", sizeStr)
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size number: %s", matches[1])
	}

	unit := ""
	if len(matches) > 2 {
		unit = strings.ToUpper(matches[2])
	}

	switch unit {
	case "T":
		return value * (1 << 40), nil
	case "G":
		return value * (1 << 30), nil
	case "M":
		return value * (1 << 20), nil
	case "K":
		return value * (1 << 10), nil
	default:
		return value, nil
	}
}

// parseDuration parses a duration string with support for days ("1d", "12h",
// "30m"). "0" is accepted and disables the check it configures.
func parseDuration(durationStr string) (time.Duration, error) {
	trimmedStr := strings.TrimSpace(durationStr)
	if trimmedStr == "0" {
		return 0, nil
	}

	re := regexp.MustCompile(`^(\d+)\s*(d|h|m|s)$`)
	matches := re.FindStringSubmatch(trimmedStr)
	if len(matches) < 3 {
		return 0, fmt.Errorf("invalid duration format: %s", durationStr)
	}

	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("invalid duration number: %s", matches[1])
	}

	switch matches[2] {
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "m":
		return time.Duration(value) * time.Minute, nil
	default:
		return time.Duration(value) * time.Second, nil
	}
}
