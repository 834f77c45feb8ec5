package sqlite

import (
	"database/sql"

	"todo-tracker/internal/domain"
)

// listRow is the single row of the task_list table.
type listRow struct {
	Name   string
	NextID int
}

// taskRow mirrors one row of the tasks table.
type taskRow struct {
	ID          int
	Position    int
	Description string
	Status      string
	CreatedAt   string
	CompletedAt sql.NullString
}

func (r *taskRow) toDomain() domain.Task {
	return domain.Task{
		ID:          r.ID,
		Description: r.Description,
		Status:      domain.Status(r.Status),
		CreatedAt:   r.CreatedAt,
		CompletedAt: NullStringToPtr(r.CompletedAt),
	}
}

func taskRowFromDomain(position int, task domain.Task) taskRow {
	return taskRow{
		ID:          task.ID,
		Position:    position,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		CompletedAt: PtrToNullString(task.CompletedAt),
	}
}
