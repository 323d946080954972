// Package config loads the storytime configuration file.
//
// The file is YAML. ${VAR_NAME} references are replaced with environment
// variable values before parsing. Keys left out of the file keep their
// defaults, so an empty file is a valid configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultDatabasePath = "storytime.db"
	DefaultStorageKey   = "my-stories"
	DefaultLogLevel     = "warn"
	DefaultExportDir    = "export"
)

// Config is the complete storytime configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
	Export   ExportConfig   `yaml:"export"`
}

// DatabaseConfig locates the SQLite file holding the slot.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// StorageConfig names the slot key the collection lives under.
type StorageConfig struct {
	Key string `yaml:"key"`
}

// LoggingConfig sets the minimum log level: debug, info, warn or error.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ExportConfig sets where Markdown exports are written.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: DefaultDatabasePath},
		Storage:  StorageConfig{Key: DefaultStorageKey},
		Logging:  LoggingConfig{Level: DefaultLogLevel},
		Export:   ExportConfig{Dir: DefaultExportDir},
	}
}

// Load reads the configuration file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

var envRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} with the variable's value; unset
// variables expand to "".
func expandEnvVars(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envRef.FindStringSubmatch(match)[1])
	})
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage.key is required")
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Export.Dir == "" {
		return fmt.Errorf("export.dir is required")
	}
	return nil
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown level %q (want debug, info, warn or error)", level)
	}
}
