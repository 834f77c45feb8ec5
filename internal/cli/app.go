package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"todo-tracker/internal/config"
	"todo-tracker/internal/domain"
	"todo-tracker/internal/services"
)

// App represents the main CLI application
type App struct {
	service      services.TaskService
	config       *config.Config
	in           *bufio.Reader
	out          io.Writer
	registry     *CommandRegistry
	errorHandler *ErrorHandler
}

// NewApp creates a new CLI application reading answers from in and writing to out
func NewApp(service services.TaskService, cfg *config.Config, in io.Reader, out io.Writer) *App {
	app := &App{
		service:      service,
		config:       cfg,
		in:           bufio.NewReader(in),
		out:          out,
		errorHandler: NewErrorHandler(),
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// NewServiceForConfig builds the store selected by TODO_ENV and cfg and
// wraps it in a TaskService.
func NewServiceForConfig(cfg *config.Config) (services.TaskService, error) {
	store, err := config.NewStoreFactory(config.GetEnvironment(), cfg).CreateStore()
	if err != nil {
		return nil, err
	}
	return services.NewTaskService(store, cfg), nil
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

// timeout returns the configured per-operation timeout
func (a *App) timeout() time.Duration {
	if a.config != nil && a.config.Application.Timeout > 0 {
		return a.config.Application.Timeout
	}
	return 60 * time.Second
}

// open loads the task list for a one-shot command.
func (a *App) open(ctx context.Context) error {
	if _, err := a.service.Open(ctx); err != nil {
		return a.errorHandler.Handle("load tasks", err)
	}
	return nil
}

// readLine prints prompt and returns the next input line without surrounding
// whitespace. io.EOF is returned once input is exhausted.
func (a *App) readLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// printTaskList writes the list, one task per line, followed by the pending count.
func printTaskList(w io.Writer, name string, tasks []domain.Task, pending int) {
	fmt.Fprintf(w, "%s:\n", name)
	if len(tasks) == 0 {
		fmt.Fprintln(w, "  (no tasks)")
	}
	for _, task := range tasks {
		fmt.Fprintf(w, "  %s\n", task)
	}
	fmt.Fprintf(w, "Pending tasks: %d\n", pending)
}
