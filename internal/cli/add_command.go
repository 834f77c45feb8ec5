package cli

import (
	"context"
	"fmt"
	"strings"

	"todo-tracker/internal/services"
)

// AddCommand handles the add command
type AddCommand struct {
	app     *App
	service services.TaskService
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app, service: app.service}
}

// Execute adds one task whose description is the joined arguments.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.open(ctx); err != nil {
		return err
	}

	task, err := c.service.Add(ctx, strings.Join(args, " "))
	if err != nil {
		return c.app.errorHandler.Handle("add task", err)
	}

	fmt.Fprintf(c.app.out, "Added task #%d: %s\n", task.ID, task.Description)
	return nil
}
