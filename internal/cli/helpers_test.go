package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"todo-tracker/internal/config"
	"todo-tracker/internal/domain"
	"todo-tracker/internal/repository/jsonfile"
)

// setupTestApp builds an App backed by a JSON file in a temporary directory.
// input is what the interactive menu will read.
func setupTestApp(t *testing.T, input string) (*App, *bytes.Buffer, string) {
	t.Helper()
	t.Setenv("TODO_ENV", "")
	cfg := config.NewConfig()
	cfg.Storage.Dir = t.TempDir()

	service, err := NewServiceForConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return NewApp(service, cfg, strings.NewReader(input), out), out, cfg.GetStorePath()
}

// seed writes a list with the given descriptions to path.
func seed(t *testing.T, path string, descriptions ...string) {
	t.Helper()
	list := domain.NewTaskList()
	for _, description := range descriptions {
		list.Add(description)
	}
	require.NoError(t, jsonfile.New(path, config.StoreOptions(config.NewConfig())).Save(context.Background(), list))
}

// reload reads the list at path from disk.
func reload(t *testing.T, path string) *domain.TaskList {
	t.Helper()
	list, err := jsonfile.New(path, config.StoreOptions(config.NewConfig())).Load(context.Background())
	require.NoError(t, err)
	return list
}
