package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"TODO_CONFIG",
	"TODO_STORE_DIR",
	"TODO_STORE_FILENAME",
	"TODO_STORE_BACKEND",
	"TODO_STORE_FILE_PERMISSIONS",
	"TODO_STORE_DIR_PERMISSIONS",
	"TODO_LIST_NAME",
	"TODO_VALIDATION_DESCRIPTION_MAX",
	"TODO_APP_TIMEOUT",
	"TODO_APP_VERBOSE",
	"TODO_ENV",
}

// clearEnv blanks every variable the config reads; empty values are ignored.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range configEnvVars {
		t.Setenv(name, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, DefaultDir(), cfg.Storage.Dir)
	assert.Equal(t, BackendJSON, cfg.Storage.Backend)
	assert.Equal(t, uint32(0644), cfg.Storage.FilePermissions)
	assert.Equal(t, uint32(0755), cfg.Storage.DirPermissions)
	assert.Equal(t, "Task List", cfg.Display.ListName)
	assert.Equal(t, 500, cfg.Validation.DescriptionMaxLength)
	assert.Equal(t, 60*time.Second, cfg.Application.Timeout)
	assert.False(t, cfg.Application.Verbose)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_StorePath(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Dir = "/data"

	assert.Equal(t, filepath.Join("/data", "tasks.json"), cfg.GetStorePath())

	cfg.Storage.Backend = BackendSQLite
	assert.Equal(t, filepath.Join("/data", "tasks.db"), cfg.GetStorePath())

	cfg.Storage.Filename = "mine.sqlite"
	assert.Equal(t, filepath.Join("/data", "mine.sqlite"), cfg.GetStorePath())
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODO_STORE_DIR", "/srv/todo")
	t.Setenv("TODO_STORE_FILENAME", "list.json")
	t.Setenv("TODO_STORE_BACKEND", "sqlite")
	t.Setenv("TODO_STORE_FILE_PERMISSIONS", "600")
	t.Setenv("TODO_STORE_DIR_PERMISSIONS", "700")
	t.Setenv("TODO_LIST_NAME", "Errands")
	t.Setenv("TODO_VALIDATION_DESCRIPTION_MAX", "80")
	t.Setenv("TODO_APP_TIMEOUT", "5s")
	t.Setenv("TODO_APP_VERBOSE", "true")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "/srv/todo", cfg.Storage.Dir)
	assert.Equal(t, "list.json", cfg.Storage.Filename)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, uint32(0600), cfg.Storage.FilePermissions)
	assert.Equal(t, uint32(0700), cfg.Storage.DirPermissions)
	assert.Equal(t, "Errands", cfg.Display.ListName)
	assert.Equal(t, 80, cfg.Validation.DescriptionMaxLength)
	assert.Equal(t, 5*time.Second, cfg.Application.Timeout)
	assert.True(t, cfg.Application.Verbose)
}

func TestConfig_LoadFromEnvironment_InvalidValuesKeepPrevious(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODO_STORE_FILE_PERMISSIONS", "rw-r--r--")
	t.Setenv("TODO_VALIDATION_DESCRIPTION_MAX", "many")
	t.Setenv("TODO_APP_TIMEOUT", "soon")
	t.Setenv("TODO_APP_VERBOSE", "maybe")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, uint32(0644), cfg.Storage.FilePermissions)
	assert.Equal(t, 500, cfg.Validation.DescriptionMaxLength)
	assert.Equal(t, 60*time.Second, cfg.Application.Timeout)
	assert.False(t, cfg.Application.Verbose)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty dir", func(c *Config) { c.Storage.Dir = "" }, "storage.dir"},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "csv" }, "storage.backend"},
		{"zero file permissions", func(c *Config) { c.Storage.FilePermissions = 0 }, "storage.file_permissions"},
		{"oversized dir permissions", func(c *Config) { c.Storage.DirPermissions = 01777 }, "storage.dir_permissions"},
		{"empty list name", func(c *Config) { c.Display.ListName = "" }, "display.list_name"},
		{"zero max length", func(c *Config) { c.Validation.DescriptionMaxLength = 0 }, "validation.description_max_length"},
		{"negative timeout", func(c *Config) { c.Application.Timeout = -time.Second }, "application.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var configErr *ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tt.field, configErr.Field)
			assert.Contains(t, err.Error(), tt.field+": ")
		})
	}
}
