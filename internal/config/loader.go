package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	file   string
}

// NewLoader creates a loader that reads TODO_CONFIG, or config.toml in the
// default directory when TODO_CONFIG is unset.
func NewLoader() *Loader {
	file := os.Getenv("TODO_CONFIG")
	if file == "" {
		file = filepath.Join(DefaultDir(), "config.toml")
	}
	return NewLoaderWithFile(file)
}

// NewLoaderWithFile creates a loader that reads the given TOML file.
// An empty path disables the file layer.
func NewLoaderWithFile(path string) *Loader {
	return &Loader{
		config: NewConfig(),
		file:   path,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file, if present
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if l.file != "" {
		overrides, err := readConfigFile(l.file)
		if err != nil {
			return nil, err
		}
		if overrides != nil {
			l.applyOverrides(l.config, overrides)
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds values that replace the loaded configuration.
// Nil fields leave the loaded value alone.
type ConfigOverrides struct {
	StoreDir             *string
	StoreFilename        *string
	StoreBackend         *string
	StoreFilePermissions *uint32
	StoreDirPermissions  *uint32

	ListName *string

	DescriptionMaxLength *int

	Timeout *time.Duration
	Verbose *bool
}

func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.StoreDir != nil {
		config.Storage.Dir = *overrides.StoreDir
	}
	if overrides.StoreFilename != nil {
		config.Storage.Filename = *overrides.StoreFilename
	}
	if overrides.StoreBackend != nil {
		config.Storage.Backend = *overrides.StoreBackend
	}
	if overrides.StoreFilePermissions != nil {
		config.Storage.FilePermissions = *overrides.StoreFilePermissions
	}
	if overrides.StoreDirPermissions != nil {
		config.Storage.DirPermissions = *overrides.StoreDirPermissions
	}

	if overrides.ListName != nil {
		config.Display.ListName = *overrides.ListName
	}

	if overrides.DescriptionMaxLength != nil {
		config.Validation.DescriptionMaxLength = *overrides.DescriptionMaxLength
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}

// fileConfig mirrors the TOML layout:
//
//	[storage]
//	dir = "~/.todo"
//	backend = "sqlite"
//	file_permissions = "0600"
//
//	[application]
//	timeout = "30s"
type fileConfig struct {
	Storage struct {
		Dir             *string `toml:"dir"`
		Filename        *string `toml:"filename"`
		Backend         *string `toml:"backend"`
		FilePermissions *string `toml:"file_permissions"`
		DirPermissions  *string `toml:"dir_permissions"`
	} `toml:"storage"`
	Display struct {
		ListName *string `toml:"list_name"`
	} `toml:"display"`
	Validation struct {
		DescriptionMaxLength *int `toml:"description_max_length"`
	} `toml:"validation"`
	Application struct {
		Timeout *string `toml:"timeout"`
		Verbose *bool   `toml:"verbose"`
	} `toml:"application"`
}

// readConfigFile returns nil overrides when the file does not exist.
func readConfigFile(path string) (*ConfigOverrides, error) {
	var file fileConfig
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &ConfigError{Field: "config_file", Message: fmt.Sprintf("%s: %v", path, err)}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, &ConfigError{Field: "config_file", Message: fmt.Sprintf("%s: unknown key %q", path, undecoded[0].String())}
	}

	if file.Storage.Dir != nil {
		dir := ExpandHome(*file.Storage.Dir)
		file.Storage.Dir = &dir
	}

	overrides := &ConfigOverrides{
		StoreDir:             file.Storage.Dir,
		StoreFilename:        file.Storage.Filename,
		StoreBackend:         file.Storage.Backend,
		ListName:             file.Display.ListName,
		DescriptionMaxLength: file.Validation.DescriptionMaxLength,
		Verbose:              file.Application.Verbose,
	}
	if file.Storage.FilePermissions != nil {
		perms, err := strconv.ParseUint(*file.Storage.FilePermissions, 8, 32)
		if err != nil {
			return nil, &ConfigError{Field: "storage.file_permissions", Message: "must be an octal mode such as \"0644\""}
		}
		p := uint32(perms)
		overrides.StoreFilePermissions = &p
	}
	if file.Storage.DirPermissions != nil {
		perms, err := strconv.ParseUint(*file.Storage.DirPermissions, 8, 32)
		if err != nil {
			return nil, &ConfigError{Field: "storage.dir_permissions", Message: "must be an octal mode such as \"0755\""}
		}
		p := uint32(perms)
		overrides.StoreDirPermissions = &p
	}
	if file.Application.Timeout != nil {
		d, err := time.ParseDuration(*file.Application.Timeout)
		if err != nil {
			return nil, &ConfigError{Field: "application.timeout", Message: "must be a duration such as \"30s\""}
		}
		overrides.Timeout = &d
	}
	return overrides, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
