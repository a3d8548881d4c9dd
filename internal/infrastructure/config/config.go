// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for lms configuration and data.
	DefaultConfigDir = ".lms"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultBooksFile is the default books file name.
	DefaultBooksFile = "books.yaml"
	// DefaultBook is the book used when none is given.
	DefaultBook = "default"
)

// Storage backends.
const (
	BackendJSONFile = "jsonfile"
	BackendSQLite   = "sqlite"
	BackendBadger   = "badger"
)

var (
	// reNonAlphanumeric matches characters that aren't alphanumeric or underscore.
	reNonAlphanumeric = regexp.MustCompile(`[^a-z0-9_]`)
	// reMultipleUnderscores matches consecutive underscores.
	reMultipleUnderscores = regexp.MustCompile(`_+`)
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Storage StorageConfig `yaml:"storage,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty"`
}

// StorageConfig holds configuration for the persistence of the books.
type StorageConfig struct {
	// Backend is one of jsonfile, sqlite or badger.
	Backend string `yaml:"backend,omitempty"`
	// Dir is the data directory. Empty means the .lms directory.
	Dir string `yaml:"dir,omitempty"`
}

// LogConfig holds configuration for the logger.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level,omitempty"`
	// Mode is development (human friendly) or production.
	Mode string `yaml:"mode,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendJSONFile,
		},
		Log: LogConfig{
			Level: "info",
			Mode:  "development",
		},
	}
}

// Load loads configuration from the .lms directory in the given path.
// A missing config file yields the defaults.
func Load(basePath string) (*Config, error) {
	// Start with defaults
	cfg := Default()

	data, err := os.ReadFile(ConfigFilePath(basePath))
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Apply environment variable overrides
	cfg.applyEnvOverrides()

	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = ConfigDir(basePath)
	}

	return cfg, nil
}

// LoadEnvFile loads the .env file of basePath into the environment, if any.
// Variables already set are left untouched.
func LoadEnvFile(basePath string) error {
	if err := godotenv.Load(filepath.Join(basePath, ".env")); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env file: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LMS_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("LMS_DATA_DIR"); v != "" {
		c.Storage.Dir = v
	}
	if v := os.Getenv("LMS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LMS_LOG_MODE"); v != "" {
		c.Log.Mode = v
	}
}

// ConfigDir returns the path to the .lms config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// BooksFilePath returns the path to the books file.
func BooksFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultBooksFile)
}

// SanitizeBookName converts a book name to a valid directory name.
func SanitizeBookName(name string) string {
	name = strings.ToLower(name)

	// Replace spaces and hyphens with underscores
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")

	name = reNonAlphanumeric.ReplaceAllString(name, "")
	name = reMultipleUnderscores.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	if name == "" {
		return DefaultBook
	}

	return name
}

// BookDir returns the directory holding the data of a book.
func BookDir(dataDir, bookName string) string {
	return filepath.Join(dataDir, "books", SanitizeBookName(bookName))
}
