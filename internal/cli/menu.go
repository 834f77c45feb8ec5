package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"todo-tracker/internal/services"
	"todo-tracker/internal/validation"
)

// MenuCommand runs the numbered line menu until the user exits or input ends.
type MenuCommand struct {
	app       *App
	service   services.TaskService
	validator *validation.TaskValidator
}

// NewMenuCommand creates a new menu command handler
func NewMenuCommand(app *App) *MenuCommand {
	return &MenuCommand{
		app:       app,
		service:   app.service,
		validator: validation.NewTaskValidatorWithConfig(app.config),
	}
}

type menuAction struct {
	prompt string
	run    func(ctx context.Context, id int) error
	done   string
}

// Execute loads the list, then loops over the menu. A list that cannot be
// loaded is reported and replaced by a fresh one for the session.
func (c *MenuCommand) Execute(ctx context.Context, args []string) error {
	out := c.app.out
	fmt.Fprintln(out, "=== Todo List ===")

	loadCtx, cancel := context.WithTimeout(ctx, c.app.timeout())
	existed, err := c.service.Open(loadCtx)
	cancel()
	switch {
	case err != nil:
		fmt.Fprintf(out, "Could not read %s: %s\n", c.service.StorePath(), c.app.errorHandler.Message(err))
		fmt.Fprintln(out, "Starting a new task list")
	case existed:
		fmt.Fprintf(out, "Loaded %s\n", c.service.StorePath())
	default:
		fmt.Fprintf(out, "%s did not exist, created a new task list\n", c.service.StorePath())
	}

	c.showTasks()

	for {
		c.showMenu()
		choice, err := c.app.readLine("Choose an action (0-4): ")
		if stderrors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "0":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case "1":
			err = c.add(ctx)
		case "2":
			err = c.idAction(ctx, menuAction{"Enter the id of the task to suspend: ", c.service.Suspend, "Suspended"})
		case "3":
			err = c.idAction(ctx, menuAction{"Enter the id of the task to complete: ", c.service.Complete, "Completed"})
		case "4":
			err = c.idAction(ctx, menuAction{"Enter the id of the task to delete: ", c.service.Delete, "Deleted"})
		default:
			fmt.Fprintln(out, "Invalid choice, enter a number from 0 to 4")
			continue
		}
		if stderrors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(out)
		c.showTasks()
	}
}

func (c *MenuCommand) showMenu() {
	fmt.Fprintln(c.app.out, "\n=== Menu ===")
	fmt.Fprintln(c.app.out, "0. Exit")
	fmt.Fprintln(c.app.out, "1. Add task")
	fmt.Fprintln(c.app.out, "2. Suspend task")
	fmt.Fprintln(c.app.out, "3. Complete task")
	fmt.Fprintln(c.app.out, "4. Delete task")
}

func (c *MenuCommand) showTasks() {
	fmt.Fprintln(c.app.out)
	printTaskList(c.app.out, c.service.ListName(), c.service.Tasks(), c.service.PendingCount())
}

// add reads a description and adds it. Only input errors are returned;
// everything else is reported and the menu continues.
func (c *MenuCommand) add(ctx context.Context) error {
	description, err := c.app.readLine("Enter the task description: ")
	if err != nil {
		return err
	}

	opCtx, cancel := context.WithTimeout(ctx, c.app.timeout())
	defer cancel()
	task, err := c.service.Add(opCtx, description)
	if err != nil {
		c.report(err)
		return nil
	}
	fmt.Fprintf(c.app.out, "Added task #%d: %s\n", task.ID, task.Description)
	return nil
}

func (c *MenuCommand) idAction(ctx context.Context, action menuAction) error {
	input, err := c.app.readLine(action.prompt)
	if err != nil {
		return err
	}

	id, err := c.validator.ParseTaskID(input)
	if err != nil {
		c.report(err)
		return nil
	}

	opCtx, cancel := context.WithTimeout(ctx, c.app.timeout())
	defer cancel()
	if err := action.run(opCtx, id); err != nil {
		c.report(err)
		return nil
	}
	fmt.Fprintf(c.app.out, "%s task #%d\n", action.done, id)
	return nil
}

func (c *MenuCommand) report(err error) {
	fmt.Fprintf(c.app.out, "Error: %s\n", c.app.errorHandler.Message(err))
}
