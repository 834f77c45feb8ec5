package cli

import (
	"context"

	"todo-tracker/internal/services"
)

// ListCommand handles the list command
type ListCommand struct {
	app     *App
	service services.TaskService
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, service: app.service}
}

// Execute prints every task followed by the pending count
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.open(ctx); err != nil {
		return err
	}
	printTaskList(c.app.out, c.service.ListName(), c.service.Tasks(), c.service.PendingCount())
	return nil
}
