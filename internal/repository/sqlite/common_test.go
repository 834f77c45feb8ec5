package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-tracker/internal/errors"
)

func openRawDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func notADatabaseError(t *testing.T) error {
	t.Helper()
	path := filepath.Join(t.TempDir(), "garbage.db")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("this is not sqlite\n", 100)), 0644))

	db := openRawDB(t, path)
	_, err := db.Exec("SELECT 1 FROM sqlite_master")
	require.Error(t, err)
	return err
}

func TestHandleDatabaseError(t *testing.T) {
	t.Run("generic failure is IO", func(t *testing.T) {
		err := HandleDatabaseError("write", "/tmp/tasks.db", stderrors.New("disk I/O error"))
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeIO))
		assert.Contains(t, err.Error(), "write failed for /tmp/tasks.db")
		assert.Contains(t, err.Error(), "disk I/O error")
	})

	t.Run("not a database is decode", func(t *testing.T) {
		err := HandleDatabaseError("read", "/tmp/tasks.db", notADatabaseError(t))
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDecode), "got %v", err)
	})
}

func TestIsNotADatabase(t *testing.T) {
	assert.False(t, IsNotADatabase(nil))
	assert.False(t, IsNotADatabase(stderrors.New("file is not a database")))
	assert.True(t, IsNotADatabase(notADatabaseError(t)))
}

func TestWithTransaction(t *testing.T) {
	ctx := context.Background()
	db := openRawDB(t, filepath.Join(t.TempDir(), "tx.db"))
	_, err := db.Exec("CREATE TABLE items (v INTEGER)")
	require.NoError(t, err)

	count := func() int {
		var n int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM items").Scan(&n))
		return n
	}

	err = WithTransaction(ctx, db, func(tx *sql.Tx) error {
		return ExecuteBatch(ctx, tx, "INSERT INTO items (v) VALUES (?)", [][]interface{}{{1}, {2}, {3}})
	})
	require.NoError(t, err)
	assert.Equal(t, 3, count())

	failure := stderrors.New("abort")
	err = WithTransaction(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
			return err
		}
		return failure
	})
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 3, count(), "failed transaction must roll back")
}

func TestExecuteBatch_Empty(t *testing.T) {
	ctx := context.Background()
	db := openRawDB(t, filepath.Join(t.TempDir(), "tx.db"))

	err := WithTransaction(ctx, db, func(tx *sql.Tx) error {
		return ExecuteBatch(ctx, tx, "INSERT INTO missing_table VALUES (?)", nil)
	})
	assert.NoError(t, err)
}

func TestQuerySingle_NoRows(t *testing.T) {
	ctx := context.Background()
	db := openRawDB(t, filepath.Join(t.TempDir(), "q.db"))
	_, err := db.Exec("CREATE TABLE task_list (id INTEGER, name TEXT, next_id INTEGER)")
	require.NoError(t, err)

	_, err = QuerySingle(ctx, db, selectListQuery, ScanListRow)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestQueryMultiple_BadQuery(t *testing.T) {
	db := openRawDB(t, filepath.Join(t.TempDir(), "q.db"))

	_, err := QueryMultiple(context.Background(), db, "SELECT * FROM nowhere", ScanTaskRows)
	assert.Error(t, err)
}
