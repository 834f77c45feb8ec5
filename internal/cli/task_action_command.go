package cli

import (
	"context"
	"fmt"

	"todo-tracker/internal/errors"
	"todo-tracker/internal/validation"
)

// TaskActionCommand applies one id-based operation (complete, suspend,
// delete) to a task.
type TaskActionCommand struct {
	app       *App
	verb      string
	done      string
	action    func(ctx context.Context, id int) error
	validator *validation.TaskValidator
}

func newTaskActionCommand(app *App, verb, done string, action func(context.Context, int) error) *TaskActionCommand {
	return &TaskActionCommand{
		app:       app,
		verb:      verb,
		done:      done,
		action:    action,
		validator: validation.NewTaskValidatorWithConfig(app.config),
	}
}

// NewCompleteCommand creates a new complete command handler
func NewCompleteCommand(app *App) *TaskActionCommand {
	return newTaskActionCommand(app, "complete", "Completed", app.service.Complete)
}

// NewSuspendCommand creates a new suspend command handler
func NewSuspendCommand(app *App) *TaskActionCommand {
	return newTaskActionCommand(app, "suspend", "Suspended", app.service.Suspend)
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *TaskActionCommand {
	return newTaskActionCommand(app, "delete", "Deleted", app.service.Delete)
}

// Execute expects exactly one argument, the task id.
func (c *TaskActionCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("arguments", args, fmt.Sprintf("usage: todo %s <id>", c.verb))
	}

	id, err := c.validator.ParseTaskID(args[0])
	if err != nil {
		return c.app.errorHandler.Handle(c.verb+" task", err)
	}

	if err := c.app.open(ctx); err != nil {
		return err
	}
	if err := c.action(ctx, id); err != nil {
		return c.app.errorHandler.Handle(c.verb+" task", err)
	}

	fmt.Fprintf(c.app.out, "%s task #%d\n", c.done, id)
	return nil
}
