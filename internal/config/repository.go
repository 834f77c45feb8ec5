package config

import (
	"fmt"
	"os"

	"todo-tracker/internal/logging"
	"todo-tracker/internal/repository"
	"todo-tracker/internal/repository/jsonfile"
	"todo-tracker/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment from TODO_ENV.
func GetEnvironment() Environment {
	switch Environment(os.Getenv("TODO_ENV")) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		// Default to production for safety
		return Production
	}
}

// StoreFactory creates stores based on environment
type StoreFactory struct {
	env    Environment
	config *Config
}

// NewStoreFactory creates a new store factory for the given environment
func NewStoreFactory(env Environment, config *Config) *StoreFactory {
	return &StoreFactory{env: env, config: config}
}

// CreateStore creates a store for the factory's environment.
func (sf *StoreFactory) CreateStore() (repository.Store, error) {
	switch sf.env {
	case Development:
		return sf.createDevelopmentStore()
	case Testing:
		return sf.createTestingStore()
	default:
		return CreateStore(sf.config)
	}
}

// createDevelopmentStore keeps the list next to the working directory.
func (sf *StoreFactory) createDevelopmentStore() (repository.Store, error) {
	cfg := *sf.config
	cfg.Storage.Dir = "."
	return CreateStore(&cfg)
}

// createTestingStore uses a throwaway directory.
func (sf *StoreFactory) createTestingStore() (repository.Store, error) {
	dir, err := os.MkdirTemp("", "todo-test-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create testing directory: %w", err)
	}
	cfg := *sf.config
	cfg.Storage.Dir = dir
	return CreateStore(&cfg)
}

// CreateStore creates the store selected by config.Storage.Backend.
func CreateStore(config *Config) (repository.Store, error) {
	path := config.GetStorePath()
	opts := StoreOptions(config)

	logging.Debugf("using %s store at %s\n", config.Storage.Backend, path)
	switch config.Storage.Backend {
	case BackendJSON, "":
		return jsonfile.New(path, opts), nil
	case BackendSQLite:
		return sqlite.New(path, opts), nil
	default:
		return nil, &ConfigError{Field: "storage.backend", Message: fmt.Sprintf("unknown backend %q", config.Storage.Backend)}
	}
}

// StoreOptions converts storage configuration into store options.
func StoreOptions(config *Config) repository.Options {
	return repository.Options{
		ListName:        config.Display.ListName,
		FilePermissions: os.FileMode(config.Storage.FilePermissions),
		DirPermissions:  os.FileMode(config.Storage.DirPermissions),
	}
}
