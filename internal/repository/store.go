// Package repository defines the whole-list persistence contract shared by
// the storage backends.
package repository

import (
	"context"
	"os"

	"todo-tracker/internal/domain"
)

// Store persists an entire TaskList to a single backing file.
//
// Load returns a fresh list when the file does not exist. Save replaces the
// previous contents with the complete list; there are no partial updates.
// Errors are *errors.AppError values of type IO, Decode or Encode.
type Store interface {
	Load(ctx context.Context) (*domain.TaskList, error)
	Save(ctx context.Context, list *domain.TaskList) error
	Exists() bool
	Path() string
}

// Options configures a Store.
type Options struct {
	// ListName names the list returned when the backing file is absent.
	ListName        string
	FilePermissions os.FileMode
	DirPermissions  os.FileMode
}

// WithDefaults fills zero fields with the default values.
func (o Options) WithDefaults() Options {
	if o.ListName == "" {
		o.ListName = domain.DefaultListName
	}
	if o.FilePermissions == 0 {
		o.FilePermissions = 0644
	}
	if o.DirPermissions == 0 {
		o.DirPermissions = 0755
	}
	return o
}

// FileExists reports whether path names an existing file.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
