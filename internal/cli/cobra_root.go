package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"todo-tracker/internal/config"
	"todo-tracker/internal/logging"
	"todo-tracker/internal/services"
	"todo-tracker/internal/ui"
)

// ServiceFactory builds the task service once the final configuration is known.
type ServiceFactory func(cfg *config.Config) (services.TaskService, error)

// UIRunner starts the full-screen interface.
type UIRunner func(ctx context.Context, service services.TaskService, cfg *config.Config) error

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	factory ServiceFactory
	runUI   UIRunner
	in      io.Reader
	out     io.Writer

	config *config.Config
	app    *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, factory ServiceFactory, in io.Reader, out io.Writer) *RootCommand {
	root := &RootCommand{
		loader:  loader,
		factory: factory,
		runUI:   ui.Run,
		in:      in,
		out:     out,
	}

	root.cmd = &cobra.Command{
		Use:   "todo",
		Short: "A personal task list",
		Long: `todo keeps a personal task list in a single file.

Tasks are pending, suspended or completed. Ids are assigned in order and are
never reused, even after a task is deleted. Running todo without a command
starts the interactive menu.

EXAMPLES:
  todo add Buy milk                        # Add a pending task
  todo list                                # Show every task and the pending count
  todo complete 3                          # Mark task 3 completed
  todo suspend 2                           # Mark task 2 suspended
  todo delete 1                            # Remove task 1
  todo menu                                # Numbered line menu
  todo ui                                  # Full-screen interface

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  TODO_CONFIG                              TOML config file (default: ~/.todo/config.toml)
  TODO_ENV                                 development keeps tasks.json in the working directory
  TODO_STORE_DIR                           Storage directory (default: ~/.todo)
  TODO_STORE_FILENAME                      Storage filename (default: tasks.json or tasks.db)
  TODO_STORE_BACKEND                       json or sqlite (default: json)
  TODO_STORE_FILE_PERMISSIONS              File mode in octal (default: 644)
  TODO_STORE_DIR_PERMISSIONS               Directory mode in octal (default: 755)
  TODO_LIST_NAME                           Name of a new list (default: Task List)
  TODO_VALIDATION_DESCRIPTION_MAX          Maximum description length (default: 500)
  TODO_APP_TIMEOUT                         Per-operation timeout (default: 60s)
  TODO_APP_VERBOSE                         Enable verbose output (default: false)
  TODO_DEBUG                               Print debug output to stderr`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup()
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.app.Run(cmd.Context(), []string{"menu"})
		},
	}
	root.cmd.SetIn(in)
	root.cmd.SetOut(out)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs replaces os.Args for the next Execute
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Config returns the configuration in effect after flags were applied.
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Storage configuration
	flags.String("dir", "", "Storage directory (overrides TODO_STORE_DIR)")
	flags.String("file", "", "Storage filename (overrides TODO_STORE_FILENAME)")
	flags.String("backend", "", "Storage backend, json or sqlite (overrides TODO_STORE_BACKEND)")

	// Display configuration
	flags.String("list-name", "", "Name of a new list (overrides TODO_LIST_NAME)")

	// Validation configuration
	flags.Int("description-max-length", 0, "Maximum description length (overrides TODO_VALIDATION_DESCRIPTION_MAX)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Per-operation timeout (overrides TODO_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable verbose output (overrides TODO_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	addCmd := &cobra.Command{
		Use:   "add <description...>",
		Short: "Add a pending task",
		Long:  "Add a task. All arguments are joined with spaces to form the description.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.timed("add"),
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all tasks",
		Long:    "List every task in order with its status, followed by the number of tasks that are not completed.",
		Args:    cobra.NoArgs,
		RunE:    r.timed("list"),
	}

	completeCmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE:  r.timed("complete"),
	}

	suspendCmd := &cobra.Command{
		Use:   "suspend <id>",
		Short: "Mark a task suspended",
		Args:  cobra.ExactArgs(1),
		RunE:  r.timed("suspend"),
	}

	deleteCmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Long:    "Delete a task. Its id is not reused.",
		Args:    cobra.ExactArgs(1),
		RunE:    r.timed("delete"),
	}

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive line menu",
		Long: `Run a numbered menu on standard input:

  0 exit, 1 add, 2 suspend, 3 complete, 4 delete

The list is saved after every change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Each menu action gets its own timeout.
			return r.app.Run(cmd.Context(), []string{"menu"})
		},
	}

	uiCmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the full-screen interface",
		Long:  "Open a full-screen terminal interface. Press ? inside for the key bindings.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runUI(cmd.Context(), r.app.service, r.config)
		},
	}

	r.cmd.AddCommand(
		addCmd,
		listCmd,
		completeCmd,
		suspendCmd,
		deleteCmd,
		menuCmd,
		uiCmd,
	)
}

// timed runs a registered one-shot command under the application timeout.
func (r *RootCommand) timed(name string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()
		return r.app.Run(ctx, append([]string{name}, args...))
	}
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// setup loads configuration with flag overrides and builds the application.
func (r *RootCommand) setup() error {
	cfg, err := r.loader.LoadWithOverrides(r.getOverridesFromFlags())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	r.config = cfg
	logging.SetVerbose(cfg.Application.Verbose)

	service, err := r.factory(cfg)
	if err != nil {
		return fmt.Errorf("failed to create task store: %w", err)
	}
	r.app = NewApp(service, cfg, r.in, r.out)
	return nil
}

// getOverridesFromFlags collects the flags the user actually set
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("dir") {
		dir, _ := flags.GetString("dir")
		overrides.StoreDir = &dir
	}
	if flags.Changed("file") {
		file, _ := flags.GetString("file")
		overrides.StoreFilename = &file
	}
	if flags.Changed("backend") {
		backend, _ := flags.GetString("backend")
		overrides.StoreBackend = &backend
	}
	if flags.Changed("list-name") {
		name, _ := flags.GetString("list-name")
		overrides.ListName = &name
	}
	if flags.Changed("description-max-length") {
		maxLen, _ := flags.GetInt("description-max-length")
		overrides.DescriptionMaxLength = &maxLen
	}
	if flags.Changed("app-timeout") {
		timeout, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &timeout
	}
	if flags.Changed("verbose") {
		verbose, _ := flags.GetBool("verbose")
		overrides.Verbose = &verbose
	}

	return overrides
}
