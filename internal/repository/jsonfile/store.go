// Package jsonfile stores a task list as an indented JSON document.
//
// Reading accepts comments and trailing commas so that the file can be
// edited by hand; writing always produces plain JSON.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"todo-tracker/internal/domain"
	"todo-tracker/internal/errors"
	"todo-tracker/internal/logging"
	"todo-tracker/internal/repository"
)

// Store is a repository.Store backed by one JSON file.
type Store struct {
	path string
	opts repository.Options
}

var _ repository.Store = (*Store)(nil)

// New creates a store for the file at path. Nothing is read or written until
// Load or Save is called.
func New(path string, opts repository.Options) *Store {
	return &Store{
		path: path,
		opts: opts.WithDefaults(),
	}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the backing file is present.
func (s *Store) Exists() bool {
	return repository.FileExists(s.path)
}

// Load reads and decodes the whole file. A missing file yields a fresh list.
func (s *Store) Load(ctx context.Context) (*domain.TaskList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			logging.Debugf("%s does not exist, starting a fresh list\n", s.path)
			return domain.NewNamedTaskList(s.opts.ListName), nil
		}
		return nil, errors.NewIOError("read", s.path, err)
	}

	list, err := Decode(data)
	if err != nil {
		return nil, errors.NewDecodeError(s.path, err)
	}
	logging.Debugf("loaded %d tasks from %s\n", list.Len(), s.path)
	return list, nil
}

// Save encodes the whole list and replaces the backing file with it.
// The data goes to a temporary file in the same directory first and is then
// renamed over the target, so readers never see a half-written file.
func (s *Store) Save(ctx context.Context, list *domain.TaskList) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(list)
	if err != nil {
		return errors.NewEncodeError(s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, s.opts.DirPermissions); err != nil {
		return errors.NewIOError("create directory", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.NewIOError("write", s.path, err)
	}
	tmpPath := tmp.Name()
	// Removing after a successful rename is a no-op error we ignore.
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.NewIOError("write", s.path, err)
	}
	if err := tmp.Chmod(s.opts.FilePermissions); err != nil {
		tmp.Close()
		return errors.NewIOError("write", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewIOError("write", s.path, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return errors.NewIOError("write", s.path, err)
	}

	logging.Debugf("saved %d tasks to %s\n", list.Len(), s.path)
	return nil
}

// Encode renders a list as 2-space indented JSON with a trailing newline.
func Encode(list *domain.TaskList) ([]byte, error) {
	if list == nil {
		return nil, stderrors.New("task list is nil")
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Decode parses a task list document. Comments and trailing commas are
// stripped before the document is checked against the schema.
func Decode(data []byte) (*domain.TaskList, error) {
	stripped := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(stripped)) == 0 {
		return nil, stderrors.New("file is empty")
	}

	var doc interface{}
	if err := json.Unmarshal(stripped, &doc); err != nil {
		return nil, err
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var list domain.TaskList
	if err := json.Unmarshal(stripped, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
