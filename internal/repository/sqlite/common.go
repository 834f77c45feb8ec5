package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"todo-tracker/internal/errors"
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// HandleDatabaseError converts database errors to structured app errors.
// A file that SQLite does not recognise is a decode failure; everything else
// is an I/O failure on the database file.
func HandleDatabaseError(operation string, path string, err error) error {
	if IsNotADatabase(err) {
		return errors.NewDecodeError(path, err)
	}
	return errors.NewIOError(operation, path, err)
}

// IsNotADatabase reports whether err is SQLite's "file is not a database".
func IsNotADatabase(err error) bool {
	var sqliteErr *sqlite.Error
	if !stderrors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code()&0xff == sqlite3.SQLITE_NOTADB
}

// QuerySingle executes a query that returns a single row and scans it.
// sql.ErrNoRows is returned unchanged.
func QuerySingle[T any](ctx context.Context, q Querier, query string, scanFunc func(Scanner) (*T, error), args ...interface{}) (*T, error) {
	row := q.QueryRowContext(ctx, query, args...)
	return scanFunc(row)
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, q Querier, query string, scanFunc func(Rows) ([]*T, error), args ...interface{}) ([]*T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFunc(rows)
}

// ExecuteBatch runs one prepared statement once per argument list.
func ExecuteBatch(ctx context.Context, tx *sql.Tx, query string, argLists [][]interface{}) error {
	if len(argLists) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, args := range argLists {
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return nil
}

// WithTransaction runs fn inside a transaction, committing only when fn succeeds.
func WithTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
