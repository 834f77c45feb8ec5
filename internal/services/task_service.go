package services

import (
	"context"
	"sync"

	"todo-tracker/internal/config"
	"todo-tracker/internal/domain"
	"todo-tracker/internal/errors"
	"todo-tracker/internal/logging"
	"todo-tracker/internal/repository"
	"todo-tracker/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	mu            sync.Mutex
	store         repository.Store
	taskValidator *validation.TaskValidator
	listName      string
	list          *domain.TaskList
}

// NewTaskService creates a new TaskService instance
func NewTaskService(store repository.Store, cfg *config.Config) TaskService {
	return &taskServiceImpl{
		store:         store,
		taskValidator: validation.NewTaskValidatorWithConfig(cfg),
		listName:      cfg.Display.ListName,
	}
}

// Open loads the task list. A first run writes the fresh list out so the
// file exists from then on.
func (t *taskServiceImpl) Open(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	existed := t.store.Exists()
	list, err := t.store.Load(ctx)
	if err != nil {
		logging.Debugf("load failed, starting a fresh list: %v\n", err)
		t.list = domain.NewNamedTaskList(t.listName)
		return existed, err
	}
	t.list = list

	if !existed {
		if err := t.store.Save(ctx, t.list); err != nil {
			return existed, err
		}
	}
	return existed, nil
}

// loaded returns the current list, loading it on first use.
// The caller must hold t.mu.
func (t *taskServiceImpl) loaded(ctx context.Context) (*domain.TaskList, error) {
	if t.list != nil {
		return t.list, nil
	}
	list, err := t.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	t.list = list
	return t.list, nil
}

// Add validates the description, appends a pending task and saves.
func (t *taskServiceImpl) Add(ctx context.Context, description string) (domain.Task, error) {
	trimmed, err := t.taskValidator.ValidateDescription(description)
	if err != nil {
		return domain.Task{}, errors.NewValidationError("invalid task description", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	list, err := t.loaded(ctx)
	if err != nil {
		return domain.Task{}, err
	}

	id := list.Add(trimmed)
	task, _ := list.Get(id)
	if err := t.store.Save(ctx, list); err != nil {
		return task, err
	}
	logging.Debugf("added task %d\n", id)
	return task, nil
}

// Complete marks a task completed and saves.
func (t *taskServiceImpl) Complete(ctx context.Context, id int) error {
	return t.mutate(ctx, id, (*domain.TaskList).Complete)
}

// Suspend marks a task suspended and saves.
func (t *taskServiceImpl) Suspend(ctx context.Context, id int) error {
	return t.mutate(ctx, id, (*domain.TaskList).Suspend)
}

// Delete removes a task and saves.
func (t *taskServiceImpl) Delete(ctx context.Context, id int) error {
	return t.mutate(ctx, id, (*domain.TaskList).Delete)
}

// mutate applies op to the task with the given id. Nothing is saved when
// the id is absent.
func (t *taskServiceImpl) mutate(ctx context.Context, id int, op func(*domain.TaskList, int) bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	list, err := t.loaded(ctx)
	if err != nil {
		return err
	}
	if !op(list, id) {
		return errors.NewTaskNotFoundError(id)
	}
	return t.store.Save(ctx, list)
}

// Save writes the current list to the store.
func (t *taskServiceImpl) Save(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	list, err := t.loaded(ctx)
	if err != nil {
		return err
	}
	return t.store.Save(ctx, list)
}

// Get returns the task with the given id.
func (t *taskServiceImpl) Get(id int) (domain.Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.list == nil {
		return domain.Task{}, false
	}
	return t.list.Get(id)
}

// Tasks returns a copy of the tasks in display order.
func (t *taskServiceImpl) Tasks() []domain.Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.list == nil {
		return []domain.Task{}
	}
	return t.list.Tasks()
}

// PendingCount returns the number of tasks that are not completed.
func (t *taskServiceImpl) PendingCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.list == nil {
		return 0
	}
	return t.list.PendingCount()
}

func (t *taskServiceImpl) ListName() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.list == nil {
		return t.listName
	}
	return t.list.Name
}

func (t *taskServiceImpl) StorePath() string {
	return t.store.Path()
}
