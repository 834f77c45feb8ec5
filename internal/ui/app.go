// Package ui is the full-screen terminal front end for the task list.
package ui

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todo-tracker/internal/config"
	"todo-tracker/internal/domain"
	"todo-tracker/internal/errors"
	"todo-tracker/internal/services"
	"todo-tracker/internal/ui/keys"
	"todo-tracker/internal/ui/styles"
	"todo-tracker/internal/validation"
)

// Run opens the interface and blocks until the user quits or ctx is done.
func Run(ctx context.Context, service services.TaskService, cfg *config.Config) error {
	program := tea.NewProgram(NewApp(ctx, service, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// openedMsg reports the result of the initial load.
type openedMsg struct {
	existed bool
	err     error
}

// opDoneMsg reports the result of a change to the list.
type opDoneMsg struct {
	status string
	err    error
}

// App is the root bubbletea model.
type App struct {
	ctx     context.Context
	service services.TaskService
	timeout time.Duration
	styles  *styles.Styles
	keys    keys.KeyMap
	help    help.Model
	input   textinput.Model

	tasks   []domain.Task
	cursor  int
	scrollY int

	adding           bool
	confirmingDelete bool
	deleteID         int
	hideCompleted    bool

	status    string
	statusErr bool

	width  int
	height int
}

// NewApp creates the model. Nothing is loaded until Init runs.
func NewApp(ctx context.Context, service services.TaskService, cfg *config.Config) *App {
	input := textinput.New()
	input.Placeholder = "What needs doing?"
	input.CharLimit = cfg.Validation.DescriptionMaxLength
	input.Prompt = "> "

	return &App{
		ctx:     ctx,
		service: service,
		timeout: cfg.Application.Timeout,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
		help:    help.New(),
		input:   input,
		status:  "Loading...",
	}
}

func (a *App) Init() tea.Cmd {
	return a.open
}

func (a *App) open() tea.Msg {
	ctx, cancel := context.WithTimeout(a.ctx, a.timeout)
	defer cancel()
	existed, err := a.service.Open(ctx)
	return openedMsg{existed: existed, err: err}
}

// operation runs fn off the update loop and reports status on success.
func (a *App) operation(fn func(ctx context.Context) error, status string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(a.ctx, a.timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{status: status}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = styles.ContentWidth(msg.Width)
		a.input.Width = styles.ContentWidth(msg.Width) - 8
		a.clampScroll()
		return a, nil

	case openedMsg:
		a.refresh()
		switch {
		case msg.err != nil:
			a.setError(fmt.Errorf("%s; started a new list", describe(msg.err)))
		case msg.existed:
			a.setStatus("Loaded " + a.service.StorePath())
		default:
			a.setStatus("Created " + a.service.StorePath())
		}
		return a, nil

	case opDoneMsg:
		a.refresh()
		if msg.err != nil {
			a.setError(stderrors.New(describe(msg.err)))
		} else {
			a.setStatus(msg.status)
		}
		return a, nil

	case tea.KeyMsg:
		if a.adding {
			return a.updateAdding(msg)
		}
		if a.confirmingDelete {
			return a.updateConfirmDelete(msg)
		}
		return a.updateList(msg)
	}

	return a, nil
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
		a.clampScroll()

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.tasks)-1 {
			a.cursor++
		}
		a.clampScroll()

	case key.Matches(msg, a.keys.Add):
		a.adding = true
		a.input.Reset()
		return a, a.input.Focus()

	case key.Matches(msg, a.keys.Complete):
		return a, a.changeSelected(a.service.Complete, "Completed task #%d")

	case key.Matches(msg, a.keys.Suspend):
		return a, a.changeSelected(a.service.Suspend, "Suspended task #%d")

	case key.Matches(msg, a.keys.Delete):
		if task, ok := a.selected(); ok {
			a.confirmingDelete = true
			a.deleteID = task.ID
		}

	case key.Matches(msg, a.keys.ToggleFinished):
		a.hideCompleted = !a.hideCompleted
		a.refresh()

	case key.Matches(msg, a.keys.Save):
		return a, a.operation(a.service.Save, "Saved")

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

// changeSelected applies a status change to the task under the cursor.
// Completed tasks are left alone.
func (a *App) changeSelected(change func(context.Context, int) error, status string) tea.Cmd {
	task, ok := a.selected()
	if !ok {
		return nil
	}
	if task.IsCompleted() {
		a.setStatus(fmt.Sprintf("Task #%d is already completed", task.ID))
		return nil
	}
	id := task.ID
	return a.operation(func(ctx context.Context) error {
		return change(ctx, id)
	}, fmt.Sprintf(status, id))
}

func (a *App) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.adding = false
		a.input.Blur()
		return a, nil

	case key.Matches(msg, a.keys.Submit):
		description := a.input.Value()
		a.adding = false
		a.input.Blur()
		return a, func() tea.Msg {
			ctx, cancel := context.WithTimeout(a.ctx, a.timeout)
			defer cancel()
			task, err := a.service.Add(ctx, description)
			if err != nil {
				return opDoneMsg{err: err}
			}
			return opDoneMsg{status: fmt.Sprintf("Added task #%d", task.ID)}
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Yes):
		a.confirmingDelete = false
		id := a.deleteID
		return a, a.operation(func(ctx context.Context) error {
			return a.service.Delete(ctx, id)
		}, fmt.Sprintf("Deleted task #%d", id))

	case key.Matches(msg, a.keys.No):
		a.confirmingDelete = false
		a.setStatus("Delete cancelled")
	}
	return a, nil
}

// refresh copies the visible tasks out of the service and keeps the cursor in range.
func (a *App) refresh() {
	all := a.service.Tasks()
	a.tasks = a.tasks[:0]
	for _, task := range all {
		if a.hideCompleted && task.IsCompleted() {
			continue
		}
		a.tasks = append(a.tasks, task)
	}
	if a.cursor >= len(a.tasks) {
		a.cursor = max(0, len(a.tasks)-1)
	}
	a.clampScroll()
}

func (a *App) selected() (domain.Task, bool) {
	if a.cursor < 0 || a.cursor >= len(a.tasks) {
		return domain.Task{}, false
	}
	return a.tasks[a.cursor], true
}

// listHeight is the number of task rows that fit on screen.
func (a *App) listHeight() int {
	if a.height <= 0 {
		return len(a.tasks)
	}
	return max(3, a.height-10)
}

func (a *App) clampScroll() {
	rows := a.listHeight()
	if a.cursor < a.scrollY {
		a.scrollY = a.cursor
	}
	if rows > 0 && a.cursor >= a.scrollY+rows {
		a.scrollY = a.cursor - rows + 1
	}
	if a.scrollY < 0 {
		a.scrollY = 0
	}
}

func (a *App) setStatus(status string) {
	a.status = status
	a.statusErr = false
}

func (a *App) setError(err error) {
	a.status = err.Error()
	a.statusErr = true
}

// describe turns an error into the text shown in the status bar.
func describe(err error) string {
	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.GetUserFriendlyMessage()
	}
	return errors.GetUserMessage(err)
}

func (a *App) View() string {
	var b strings.Builder

	total := len(a.service.Tasks())
	pending := a.service.PendingCount()
	b.WriteString(a.styles.Title.Render(a.service.ListName()))
	b.WriteString(a.styles.TitleMuted.Render(fmt.Sprintf("total %d · pending %d · completed %d", total, pending, total-pending)))
	b.WriteString("\n\n")

	b.WriteString(a.viewTasks(total))
	b.WriteString("\n")

	if a.adding {
		b.WriteString(a.styles.InputFocused.Render(a.input.View()))
		b.WriteString("\n")
	}
	if a.confirmingDelete {
		b.WriteString(a.styles.Confirm.Render(fmt.Sprintf("Delete task #%d? (y/n)", a.deleteID)))
		b.WriteString("\n")
	}

	if a.statusErr {
		b.WriteString(a.styles.StatusError.Render(a.status))
	} else {
		b.WriteString(a.styles.StatusBar.Render(a.status))
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render(a.help.View(a.keys)))

	return lipgloss.NewStyle().MaxWidth(styles.ContentWidth(a.width)).Render(b.String())
}

func (a *App) viewTasks(total int) string {
	if len(a.tasks) == 0 {
		if total > 0 {
			return a.styles.Empty.Render("All tasks are completed. Press h to show them.")
		}
		return a.styles.Empty.Render("No tasks yet. Press a to add one.")
	}

	end := min(len(a.tasks), a.scrollY+a.listHeight())
	lines := make([]string, 0, end-a.scrollY)
	for i := a.scrollY; i < end; i++ {
		task := a.tasks[i]
		line := task.String()
		if i == a.cursor {
			lines = append(lines, a.styles.ListSelected.Render(line))
			continue
		}
		lines = append(lines, a.styles.ListItem.Render(a.statusStyle(task.Status).Render(line)))
	}
	return strings.Join(lines, "\n")
}

func (a *App) statusStyle(status domain.Status) lipgloss.Style {
	switch status {
	case domain.StatusCompleted:
		return a.styles.Completed
	case domain.StatusSuspended:
		return a.styles.Suspended
	default:
		return a.styles.Pending
	}
}
