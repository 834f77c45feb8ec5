package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-tracker/internal/domain"
	"todo-tracker/internal/errors"
	"todo-tracker/internal/repository"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "tasks.db"), repository.Options{})
}

func sampleList(t *testing.T) *domain.TaskList {
	t.Helper()
	done := "2025-07-03 09:00:00"
	list, err := domain.RestoreTaskList("Chores", []domain.Task{
		{ID: 3, Description: "Call mom", Status: domain.StatusSuspended, CreatedAt: "2025-07-02 16:05:25"},
		{ID: 1, Description: "Buy milk", Status: domain.StatusCompleted, CreatedAt: "2025-07-02 16:05:20", CompletedAt: &done},
		{ID: 4, Description: "Walk dog", Status: domain.StatusPending, CreatedAt: "2025-07-02 16:06:00"},
	}, 5)
	require.NoError(t, err)
	return list
}

func TestStore_LoadMissingFileReturnsFreshList(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "tasks.db"), repository.Options{ListName: "Inbox"})

	list, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Inbox", list.Name)
	assert.Empty(t, list.Tasks())
	assert.Equal(t, 1, list.NextID())
	assert.False(t, store.Exists())
}

func TestStore_SaveThenLoadPreservesOrderAndFields(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	list := sampleList(t)

	require.NoError(t, store.Save(ctx, list))
	assert.True(t, store.Exists())

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, list, loaded)
}

func TestStore_SaveReplacesPreviousContents(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Save(ctx, sampleList(t)))

	list := domain.NewNamedTaskList("Renamed")
	list.Add("only")
	require.NoError(t, store.Save(ctx, list))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", loaded.Name)
	require.Len(t, loaded.Tasks(), 1)
	assert.Equal(t, "only", loaded.Tasks()[0].Description)
	assert.Equal(t, 2, loaded.NextID())
}

func TestStore_EmptyListRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	list := domain.NewTaskList()
	list.Add("gone")
	list.Delete(1)
	require.NoError(t, store.Save(ctx, list))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Tasks())
	assert.Equal(t, 2, loaded.NextID(), "next id survives deletions")
}

func TestStore_LoadGarbageFileIsDecodeError(t *testing.T) {
	store := newTestStore(t)
	garbage := make([]byte, 4096)
	for i := range garbage {
		garbage[i] = 'x'
	}
	require.NoError(t, os.WriteFile(store.Path(), garbage, 0644))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDecode)
}

func TestStore_LoadWithoutListRowIsDecodeError(t *testing.T) {
	store := newTestStore(t)
	// An empty file is a valid, empty SQLite database.
	require.NoError(t, os.WriteFile(store.Path(), nil, 0644))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDecode)
	assert.Contains(t, err.Error(), "no task list")
}

func TestStore_LoadInvalidRowsIsDecodeError(t *testing.T) {
	tests := []struct {
		name    string
		stmt    string
		wantMsg string
	}{
		{"unknown status", `UPDATE tasks SET status = 'Unknown' WHERE id = 4`, "unknown status"},
		{"id not below next_id", `UPDATE task_list SET next_id = 4`, "not below next_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := newTestStore(t)
			require.NoError(t, store.Save(ctx, sampleList(t)))

			db := openRawDB(t, store.Path())
			_, err := db.Exec(tt.stmt)
			require.NoError(t, err)
			require.NoError(t, db.Close())

			list, err := store.Load(ctx)
			require.Error(t, err)
			assert.Nil(t, list)
			assert.ErrorIs(t, err, errors.ErrDecode)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestStore_LoadDirectoryIsIOError(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.Mkdir(store.Path(), 0755))

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, errors.ErrIO)
}

func TestStore_SaveNilListIsEncodeError(t *testing.T) {
	store := newTestStore(t)
	assert.ErrorIs(t, store.Save(context.Background(), nil), errors.ErrEncode)
	assert.False(t, store.Exists())
}

func TestStore_SaveCreatesDirectoryAndAppliesPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	path := filepath.Join(t.TempDir(), "nested", "tasks.db")
	store := New(path, repository.Options{FilePermissions: 0600})

	require.NoError(t, store.Save(context.Background(), domain.NewTaskList()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStore_CanceledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Save(ctx, domain.NewTaskList()), context.Canceled)
	assert.False(t, store.Exists())
}
