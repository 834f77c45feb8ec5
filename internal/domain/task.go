package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the format of created_at and completed_at values.
const TimestampLayout = "2006-01-02 15:04:05"

// now is a variable that can be replaced in tests
var now = time.Now

// Status is the lifecycle stage of a task.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusSuspended Status = "Suspended"
	StatusCompleted Status = "Completed"
)

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSuspended, StatusCompleted:
		return true
	}
	return false
}

// UnmarshalText rejects anything other than the three status tags.
func (s *Status) UnmarshalText(text []byte) error {
	status := Status(text)
	if !status.IsValid() {
		return fmt.Errorf("unknown task status %q", string(text))
	}
	*s = status
	return nil
}

// Task represents a single to-do item.
// ID is assigned by the owning TaskList and never changes.
type Task struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	Status      Status  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at"`
}

// NewTask creates a pending task stamped with the current UTC time.
// It performs no validation; callers supply a unique id and a non-empty description.
func NewTask(id int, description string) Task {
	return Task{
		ID:          id,
		Description: description,
		Status:      StatusPending,
		CreatedAt:   now().UTC().Format(TimestampLayout),
	}
}

// Suspend marks the task suspended regardless of its current status.
func (t *Task) Suspend() {
	t.Status = StatusSuspended
}

// Complete marks the task completed regardless of its current status.
// CompletedAt is left untouched.
func (t *Task) Complete() {
	t.Status = StatusCompleted
}

// IsCompleted reports whether the task is completed.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Created parses CreatedAt.
func (t Task) Created() (time.Time, error) {
	return time.Parse(TimestampLayout, t.CreatedAt)
}

// Glyph returns the fixed-width status marker used when rendering a task.
func (s Status) Glyph() string {
	switch s {
	case StatusPending:
		return "[ ]pending  "
	case StatusSuspended:
		return "[.]suspended"
	case StatusCompleted:
		return "[✓]completed"
	default:
		return "[?]unknown  "
	}
}

// String renders the task as a single line, e.g. "[ ]pending   3 - Buy milk".
func (t Task) String() string {
	return fmt.Sprintf("%s %d - %s", t.Status.Glyph(), t.ID, t.Description)
}

// UnmarshalJSON requires every field except completed_at to be present.
func (t *Task) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID          *int    `json:"id"`
		Description *string `json:"description"`
		Status      *Status `json:"status"`
		CreatedAt   *string `json:"created_at"`
		CompletedAt *string `json:"completed_at"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	switch {
	case wire.ID == nil:
		return fmt.Errorf("task is missing field %q", "id")
	case wire.Description == nil:
		return fmt.Errorf("task %d is missing field %q", *wire.ID, "description")
	case wire.Status == nil:
		return fmt.Errorf("task %d is missing field %q", *wire.ID, "status")
	case wire.CreatedAt == nil:
		return fmt.Errorf("task %d is missing field %q", *wire.ID, "created_at")
	}
	if *wire.ID < 0 {
		return fmt.Errorf("task id %d is negative", *wire.ID)
	}

	*t = Task{
		ID:          *wire.ID,
		Description: *wire.Description,
		Status:      *wire.Status,
		CreatedAt:   *wire.CreatedAt,
		CompletedAt: wire.CompletedAt,
	}
	return nil
}
