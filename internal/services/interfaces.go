package services

import (
	"context"

	"todo-tracker/internal/domain"
)

// TaskService owns the in-memory task list for one session and writes it
// back to the store after every successful change.
type TaskService interface {
	// Open loads the list from the store. It reports whether the backing file
	// existed before the call. On a load failure the service falls back to a
	// fresh empty list and still returns the error.
	Open(ctx context.Context) (existed bool, err error)

	// Task operations
	Add(ctx context.Context, description string) (domain.Task, error)
	Complete(ctx context.Context, id int) error
	Suspend(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error

	// Save writes the current list again, for retrying after a failed save.
	Save(ctx context.Context) error

	// Read operations
	Get(id int) (domain.Task, bool)
	Tasks() []domain.Task
	PendingCount() int
	ListName() string
	StorePath() string
}
