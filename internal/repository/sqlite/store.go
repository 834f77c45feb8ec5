// Package sqlite stores a task list in a SQLite database file.
//
// The database is opened for the duration of each Load or Save call; Save
// replaces every row in a single transaction so the whole-list contract of
// repository.Store holds.
package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"todo-tracker/internal/domain"
	"todo-tracker/internal/errors"
	"todo-tracker/internal/logging"
	"todo-tracker/internal/repository"
	"todo-tracker/internal/repository/sqlite/migrations"
)

const (
	selectListQuery  = `SELECT name, next_id FROM task_list WHERE id = 1`
	selectTasksQuery = `
	SELECT id, position, description, status, created_at, completed_at
	FROM tasks
	ORDER BY position ASC`
	upsertListQuery = `
	INSERT INTO task_list (id, name, next_id) VALUES (1, ?, ?)
	ON CONFLICT(id) DO UPDATE SET name = excluded.name, next_id = excluded.next_id`
	insertTaskQuery = `
	INSERT INTO tasks (id, position, description, status, created_at, completed_at)
	VALUES (?, ?, ?, ?, ?, ?)`
)

// Store is a repository.Store backed by a SQLite database file.
type Store struct {
	path string
	opts repository.Options
}

var _ repository.Store = (*Store)(nil)

// New creates a store for the database at path.
func New(path string, opts repository.Options) *Store {
	return &Store{
		path: path,
		opts: opts.WithDefaults(),
	}
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the database file is present.
func (s *Store) Exists() bool {
	return repository.FileExists(s.path)
}

func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, HandleDatabaseError("open database", s.path, err)
	}
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, HandleDatabaseError("run migrations", s.path, err)
	}
	return db, nil
}

// Load reads the whole list. A missing database file yields a fresh list and
// is not created.
func (s *Store) Load(ctx context.Context) (*domain.TaskList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Debugf("%s does not exist, starting a fresh list\n", s.path)
			return domain.NewNamedTaskList(s.opts.ListName), nil
		}
		return nil, errors.NewIOError("read", s.path, err)
	}
	if info.IsDir() {
		return nil, errors.NewIOError("read", s.path, fmt.Errorf("%s is a directory", s.path))
	}

	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	head, err := QuerySingle(ctx, db, selectListQuery, ScanListRow)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewDecodeError(s.path, stderrors.New("database holds no task list"))
		}
		return nil, HandleDatabaseError("read task list", s.path, err)
	}

	rows, err := QueryMultiple(ctx, db, selectTasksQuery, ScanTaskRows)
	if err != nil {
		return nil, HandleDatabaseError("read tasks", s.path, err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toDomain())
	}
	list, err := domain.RestoreTaskList(head.Name, tasks, head.NextID)
	if err != nil {
		return nil, errors.NewDecodeError(s.path, err)
	}

	logging.Debugf("loaded %d tasks from %s\n", list.Len(), s.path)
	return list, nil
}

// Save replaces the stored list with list in one transaction.
func (s *Store) Save(ctx context.Context, list *domain.TaskList) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if list == nil {
		return errors.NewEncodeError(s.path, stderrors.New("task list is nil"))
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, s.opts.DirPermissions); err != nil {
		return errors.NewIOError("create directory", dir, err)
	}

	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tasks := list.Tasks()
	argLists := make([][]interface{}, 0, len(tasks))
	for i, task := range tasks {
		row := taskRowFromDomain(i, task)
		argLists = append(argLists, []interface{}{
			row.ID, row.Position, row.Description, row.Status, row.CreatedAt, row.CompletedAt,
		})
	}

	err = WithTransaction(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, upsertListQuery, list.Name, list.NextID()); err != nil {
			return err
		}
		return ExecuteBatch(ctx, tx, insertTaskQuery, argLists)
	})
	if err != nil {
		return HandleDatabaseError("write", s.path, err)
	}

	if err := os.Chmod(s.path, s.opts.FilePermissions); err != nil {
		return errors.NewIOError("write", s.path, err)
	}

	logging.Debugf("saved %d tasks to %s\n", len(tasks), s.path)
	return nil
}
