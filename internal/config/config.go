package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Storage backends
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds all configuration options for the todo application
type Config struct {
	Storage     StorageConfig
	Display     DisplayConfig
	Validation  ValidationConfig
	Application ApplicationConfig
}

// StorageConfig holds configuration for the task list file
type StorageConfig struct {
	Dir             string `env:"TODO_STORE_DIR"`
	Filename        string `env:"TODO_STORE_FILENAME"`
	Backend         string `env:"TODO_STORE_BACKEND"`
	FilePermissions uint32 `env:"TODO_STORE_FILE_PERMISSIONS"`
	DirPermissions  uint32 `env:"TODO_STORE_DIR_PERMISSIONS"`
}

// DisplayConfig holds display configuration
type DisplayConfig struct {
	ListName string `env:"TODO_LIST_NAME"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	DescriptionMaxLength int `env:"TODO_VALIDATION_DESCRIPTION_MAX"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TODO_APP_TIMEOUT"`
	Verbose bool          `env:"TODO_APP_VERBOSE"`
}

// DefaultDir returns ~/.todo, or .todo in the working directory if the home
// directory cannot be determined.
func DefaultDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".todo"
	}
	return filepath.Join(homeDir, ".todo")
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir:             DefaultDir(),
			Backend:         BackendJSON,
			FilePermissions: 0644,
			DirPermissions:  0755,
		},
		Display: DisplayConfig{
			ListName: "Task List",
		},
		Validation: ValidationConfig{
			DescriptionMaxLength: 500,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// StoreFilename returns the configured filename, or the backend's default
// when none was set.
func (c *Config) StoreFilename() string {
	if c.Storage.Filename != "" {
		return c.Storage.Filename
	}
	if c.Storage.Backend == BackendSQLite {
		return "tasks.db"
	}
	return "tasks.json"
}

// GetStorePath returns the full path to the task list file
func (c *Config) GetStorePath() string {
	return filepath.Join(c.Storage.Dir, c.StoreFilename())
}

// LoadFromEnvironment loads configuration from environment variables.
// Values that fail to parse are ignored and the previous value is kept.
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if dir := os.Getenv("TODO_STORE_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("TODO_STORE_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if backend := os.Getenv("TODO_STORE_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}
	if perms := os.Getenv("TODO_STORE_FILE_PERMISSIONS"); perms != "" {
		c.Storage.FilePermissions = ParseUint32WithFallback(perms, 8, c.Storage.FilePermissions)
	}
	if perms := os.Getenv("TODO_STORE_DIR_PERMISSIONS"); perms != "" {
		c.Storage.DirPermissions = ParseUint32WithFallback(perms, 8, c.Storage.DirPermissions)
	}

	// Display configuration
	if name := os.Getenv("TODO_LIST_NAME"); name != "" {
		c.Display.ListName = name
	}

	// Validation configuration
	if maxLen := os.Getenv("TODO_VALIDATION_DESCRIPTION_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.DescriptionMaxLength = n
		}
	}

	// Application configuration
	if timeout := os.Getenv("TODO_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TODO_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
	}
	if c.Storage.Backend != BackendJSON && c.Storage.Backend != BackendSQLite {
		return &ConfigError{Field: "storage.backend", Message: "backend must be \"json\" or \"sqlite\""}
	}
	if c.Storage.FilePermissions == 0 || c.Storage.FilePermissions > 0777 {
		return &ConfigError{Field: "storage.file_permissions", Message: "file permissions must be between 0001 and 0777"}
	}
	if c.Storage.DirPermissions == 0 || c.Storage.DirPermissions > 0777 {
		return &ConfigError{Field: "storage.dir_permissions", Message: "directory permissions must be between 0001 and 0777"}
	}

	if c.Display.ListName == "" {
		return &ConfigError{Field: "display.list_name", Message: "list name cannot be empty"}
	}

	if c.Validation.DescriptionMaxLength < 1 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length must be at least 1"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
