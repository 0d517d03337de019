// Package board owns the task board state and every mutation of it. The
// presentation layer plugs in through Renderer, Notifier and CategorySink.
package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"halil/internal/logging"
	"halil/internal/storage"
	"halil/internal/todo"
)

const (
	ColorInfo  = "#4b5563"
	ColorError = "#f87171"
	ColorWarn  = "#f59e0b"
)

// Renderer redraws the whole task pane from view.
type Renderer interface {
	Render(view todo.View)
}

// Notifier shows a transient message.
type Notifier interface {
	Notify(message, color string)
}

// CategorySink receives fresh selector options whenever categories change.
type CategorySink interface {
	SetCategoryOptions(opts []todo.Option)
}

type Options struct {
	Mode       todo.FilterMode
	Renderer   Renderer
	Notifier   Notifier
	Categories CategorySink
	Logger     *log.Logger
	// NewID defaults to random UUIDs.
	NewID func() string
}

type Board struct {
	store      *storage.Store
	mode       todo.FilterMode
	renderer   Renderer
	notifier   Notifier
	categories CategorySink
	logger     *log.Logger
	newID      func() string
	actions    map[todo.ControlKind]func(id string) bool
}

func New(store *storage.Store, opts Options) *Board {
	b := &Board{
		store:      store,
		mode:       opts.Mode,
		renderer:   opts.Renderer,
		notifier:   opts.Notifier,
		categories: opts.Categories,
		logger:     opts.Logger,
		newID:      opts.NewID,
	}
	if _, ok := todo.ParseFilterMode(string(b.mode)); !ok {
		b.mode = todo.FilterAll
	}
	if b.logger == nil {
		b.logger = logging.Discard()
	}
	if b.newID == nil {
		b.newID = uuid.NewString
	}
	b.actions = map[todo.ControlKind]func(string) bool{
		todo.ControlToggle:   b.ToggleDone,
		todo.ControlDelete:   b.DeleteTask,
		todo.ControlMoveUp:   b.MoveUp,
		todo.ControlMoveDown: b.MoveDown,
	}
	return b
}

// Seed loads starting categories and tasks, then draws the board once.
// Tasks reference categories by name; unknown names leave the task
// uncategorized.
func (b *Board) Seed(categories []todo.Category, tasks []todo.Task) error {
	for _, seed := range categories {
		c, err := todo.NormalizeCategory(seed.Name, seed.Color)
		if err != nil {
			b.logger.Warn("skipping seed category", "err", err)
			continue
		}
		if err := b.store.AddCategory(c); err != nil {
			if errors.Is(err, todo.ErrDuplicateCategory) {
				b.logger.Warn("skipping seed category", "name", c.Name, "err", err)
				continue
			}
			return err
		}
	}
	for _, t := range tasks {
		title := strings.TrimSpace(t.Title)
		if title == "" {
			continue
		}
		task := todo.Task{ID: b.newID(), Title: title, Done: t.Done, DueDate: t.DueDate}
		if err := b.assignCategory(&task, t.Category); err != nil {
			return err
		}
		if err := b.store.AppendTask(task); err != nil {
			return err
		}
	}
	b.refreshCategories()
	b.render()
	return nil
}

// AddTask appends a new open task. An empty title is a silent no-op
// (todo.ErrEmptyTitle); the create sentinel is reported to the user
// (todo.ErrCreateSentinel) and adds nothing.
func (b *Board) AddTask(title, dueDate, categoryName string) (todo.Task, error) {
	if categoryName == todo.CreateCategoryValue {
		b.Reject(todo.ErrCreateSentinel)
		return todo.Task{}, todo.ErrCreateSentinel
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return todo.Task{}, todo.ErrEmptyTitle
	}

	task := todo.Task{ID: b.newID(), Title: title, DueDate: strings.TrimSpace(dueDate)}
	if err := b.assignCategory(&task, categoryName); err != nil {
		b.Reject(err)
		return todo.Task{}, err
	}
	if err := b.store.AppendTask(task); err != nil {
		err = fmt.Errorf("add task: %w", err)
		b.Reject(err)
		return todo.Task{}, err
	}
	b.logger.Debug("task added", "id", task.ID, "category", task.Category)
	b.render()
	return task, nil
}

func (b *Board) assignCategory(task *todo.Task, name string) error {
	if name == "" {
		return nil
	}
	c, found, err := b.store.Category(name)
	if err != nil {
		return fmt.Errorf("look up category: %w", err)
	}
	if found {
		task.Category = c.Name
		task.Color = c.Color
	}
	return nil
}

// ToggleDone flips a task's done flag. Unknown ids are ignored.
func (b *Board) ToggleDone(id string) bool {
	return b.mutate("toggle", id, b.store.ToggleDone)
}

func (b *Board) DeleteTask(id string) bool {
	return b.mutate("delete", id, b.store.DeleteTask)
}

// MoveUp swaps the task with its predecessor in the full list, whatever
// the current filter shows.
func (b *Board) MoveUp(id string) bool {
	return b.mutate("move up", id, b.store.MoveUp)
}

func (b *Board) MoveDown(id string) bool {
	return b.mutate("move down", id, b.store.MoveDown)
}

func (b *Board) mutate(op, id string, fn func(string) (bool, error)) bool {
	changed, err := fn(id)
	if err != nil {
		b.Reject(fmt.Errorf("%s: %w", op, err))
		return false
	}
	if !changed {
		b.logger.Debug("no-op", "op", op, "id", id)
		return false
	}
	b.logger.Debug("task updated", "op", op, "id", id)
	b.render()
	return true
}

// Dispatch runs the action bound to kind on task id.
func (b *Board) Dispatch(kind todo.ControlKind, id string) bool {
	action, ok := b.actions[kind]
	if !ok {
		return false
	}
	return action(id)
}

// AddCategory creates a category. The bool is false when nothing was
// created; callers should then undo any selection they made in advance.
func (b *Board) AddCategory(name, color string) (todo.Category, bool) {
	c, err := todo.NormalizeCategory(name, color)
	if err != nil {
		b.Reject(err)
		return todo.Category{}, false
	}
	if err := b.store.AddCategory(c); err != nil {
		b.Reject(err)
		return todo.Category{}, false
	}
	b.logger.Debug("category added", "name", c.Name, "color", c.Color)
	b.refreshCategories()
	b.notify(fmt.Sprintf("Added category '%s'!", c.Name), c.Color)
	return c, true
}

// SetFilterMode switches the view. Unknown modes change nothing and do not
// redraw.
func (b *Board) SetFilterMode(mode string) bool {
	m, ok := todo.ParseFilterMode(mode)
	if !ok {
		return false
	}
	b.mode = m
	b.render()
	return true
}

func (b *Board) Mode() todo.FilterMode {
	return b.mode
}

// View is the current filtered view.
func (b *Board) View() todo.View {
	return todo.BuildView(b.Tasks(), b.mode)
}

func (b *Board) Tasks() []todo.Task {
	tasks, err := b.store.FetchTasks()
	if err != nil {
		b.logger.Error("fetch tasks", "err", err)
		return nil
	}
	return tasks
}

func (b *Board) Categories() []todo.Category {
	cats, err := b.store.FetchCategories()
	if err != nil {
		b.logger.Error("fetch categories", "err", err)
		return nil
	}
	return cats
}

// CategoryOptions lists the selector entries for the current categories.
func (b *Board) CategoryOptions() []todo.Option {
	return todo.CategoryOptions(b.Categories())
}

// Reject reports a failed action to the user. Empty titles stay silent.
func (b *Board) Reject(err error) {
	if err == nil || errors.Is(err, todo.ErrEmptyTitle) {
		return
	}
	if isValidation(err) {
		b.logger.Warn("action rejected", "err", err)
	} else {
		b.logger.Error("action failed", "err", err)
	}
	b.notify(describe(err))
}

func describe(err error) (string, string) {
	switch {
	case errors.Is(err, todo.ErrCreateSentinel):
		return "Add the new category first.", ColorError
	case errors.Is(err, todo.ErrCategoryNameRequired):
		return "Enter a category name.", ColorError
	case errors.Is(err, todo.ErrDuplicateCategory):
		return "That category already exists.", ColorWarn
	case errors.Is(err, todo.ErrMissingInput):
		return "Input field not found: " + strings.TrimSuffix(err.Error(), ": "+todo.ErrMissingInput.Error()), ColorError
	default:
		return fmt.Sprintf("Something went wrong: %v", err), ColorError
	}
}

func isValidation(err error) bool {
	return errors.Is(err, todo.ErrCreateSentinel) ||
		errors.Is(err, todo.ErrCategoryNameRequired) ||
		errors.Is(err, todo.ErrDuplicateCategory) ||
		errors.Is(err, todo.ErrMissingInput)
}

func (b *Board) render() {
	if b.renderer == nil {
		return
	}
	b.renderer.Render(b.View())
}

func (b *Board) refreshCategories() {
	if b.categories == nil {
		return
	}
	b.categories.SetCategoryOptions(b.CategoryOptions())
}

func (b *Board) notify(message, color string) {
	if b.notifier == nil {
		return
	}
	if color == "" {
		color = ColorInfo
	}
	b.notifier.Notify(message, color)
}
