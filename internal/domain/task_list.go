package domain

import (
	"encoding/json"
	"fmt"
)

// DefaultListName is the display label of a freshly created list.
const DefaultListName = "Task List"

// TaskList is an ordered collection of tasks plus the id allocator.
// nextID is always greater than every id the list has handed out, so ids
// are never reused even after deletions.
type TaskList struct {
	Name   string
	tasks  []Task
	nextID int
}

// NewTaskList creates an empty list whose first task will get id 1.
func NewTaskList() *TaskList {
	return NewNamedTaskList(DefaultListName)
}

// NewNamedTaskList creates an empty list with the given display name.
func NewNamedTaskList(name string) *TaskList {
	return &TaskList{
		Name:   name,
		tasks:  []Task{},
		nextID: 1,
	}
}

// RestoreTaskList rebuilds a list from persisted state. It checks that ids are
// unique and below nextID so that the allocator invariant holds after loading.
func RestoreTaskList(name string, tasks []Task, nextID int) (*TaskList, error) {
	seen := make(map[int]struct{}, len(tasks))
	for _, task := range tasks {
		if _, dup := seen[task.ID]; dup {
			return nil, fmt.Errorf("duplicate task id %d", task.ID)
		}
		seen[task.ID] = struct{}{}
		if task.ID >= nextID {
			return nil, fmt.Errorf("task id %d is not below next_id %d", task.ID, nextID)
		}
		if !task.Status.IsValid() {
			return nil, fmt.Errorf("task %d has unknown status %q", task.ID, task.Status)
		}
	}

	restored := make([]Task, len(tasks))
	copy(restored, tasks)
	return &TaskList{
		Name:   name,
		tasks:  restored,
		nextID: nextID,
	}, nil
}

// Add appends a new pending task and returns its id.
func (l *TaskList) Add(description string) int {
	id := l.nextID
	l.tasks = append(l.tasks, NewTask(id, description))
	l.nextID++
	return id
}

// Complete marks the task with the given id completed.
// It returns false and leaves the list untouched when no such task exists.
func (l *TaskList) Complete(id int) bool {
	task := l.find(id)
	if task == nil {
		return false
	}
	task.Complete()
	return true
}

// Suspend marks the task with the given id suspended.
// It returns false and leaves the list untouched when no such task exists.
func (l *TaskList) Suspend(id int) bool {
	task := l.find(id)
	if task == nil {
		return false
	}
	task.Suspend()
	return true
}

// Delete removes the task with the given id, keeping the order of the rest.
func (l *TaskList) Delete(id int) bool {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a copy of the task with the given id.
func (l *TaskList) Get(id int) (Task, bool) {
	task := l.find(id)
	if task == nil {
		return Task{}, false
	}
	return *task, true
}

// Tasks returns a copy of the tasks in insertion order.
func (l *TaskList) Tasks() []Task {
	tasks := make([]Task, len(l.tasks))
	copy(tasks, l.tasks)
	return tasks
}

// Len returns the number of tasks in the list.
func (l *TaskList) Len() int {
	return len(l.tasks)
}

// PendingCount returns the number of tasks that are not completed.
func (l *TaskList) PendingCount() int {
	count := 0
	for _, task := range l.tasks {
		if !task.IsCompleted() {
			count++
		}
	}
	return count
}

// NextID returns the id the next Add will allocate.
func (l *TaskList) NextID() int {
	return l.nextID
}

func (l *TaskList) find(id int) *Task {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return &l.tasks[i]
		}
	}
	return nil
}

// taskListDocument is the persisted shape of a TaskList.
type taskListDocument struct {
	Name   *string `json:"name"`
	Tasks  *[]Task `json:"tasks"`
	NextID *int    `json:"next_id"`
}

// MarshalJSON writes name, tasks and next_id.
func (l *TaskList) MarshalJSON() ([]byte, error) {
	tasks := l.tasks
	if tasks == nil {
		tasks = []Task{}
	}
	return json.Marshal(taskListDocument{
		Name:   &l.Name,
		Tasks:  &tasks,
		NextID: &l.nextID,
	})
}

// UnmarshalJSON requires name, tasks and next_id and enforces the id invariants.
func (l *TaskList) UnmarshalJSON(data []byte) error {
	var doc taskListDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	switch {
	case doc.Name == nil:
		return fmt.Errorf("task list is missing field %q", "name")
	case doc.Tasks == nil:
		return fmt.Errorf("task list is missing field %q", "tasks")
	case doc.NextID == nil:
		return fmt.Errorf("task list is missing field %q", "next_id")
	}
	if *doc.NextID < 0 {
		return fmt.Errorf("next_id %d is negative", *doc.NextID)
	}

	restored, err := RestoreTaskList(*doc.Name, *doc.Tasks, *doc.NextID)
	if err != nil {
		return err
	}
	*l = *restored
	return nil
}
