package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"halil/internal/board"
	"halil/internal/config"
	"halil/internal/logging"
	"halil/internal/storage"
	"halil/internal/todo"
)

const (
	defaultWidth            = 80
	defaultNewCategoryColor = "#3b82f6"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeCategory
)

type addField int

const (
	fieldTitle addField = iota
	fieldDue
	fieldCategory
)

// inputs are resolved once from config. A nil field is not offered.
type inputs struct {
	title    *textinput.Model
	due      *textinput.Model
	category *categorySelector
	catName  textinput.Model
	catColor textinput.Model
}

type Model struct {
	board  *board.Board
	keys   keyMap
	help   help.Model
	logger *log.Logger

	pane   *taskPane
	toasts *toastStack
	in     inputs

	mode       mode
	focus      int
	catFocus   int
	fromSelect bool
	cursor     int
	width      int
}

func Run(store *storage.Store, cfg config.Config, logger *log.Logger) error {
	m, err := NewModel(store, cfg, logger)
	if err != nil {
		return err
	}
	m.logger.Info("session started", "tasks", len(m.board.Tasks()), "categories", len(m.board.Categories()))
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err = program.Run()
	m.logger.Info("session ended", "tasks", len(m.board.Tasks()))
	return err
}

// NewModel wires a board to the terminal widgets and seeds it from cfg.
func NewModel(store *storage.Store, cfg config.Config, logger *log.Logger) (*Model, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	m := &Model{
		keys:   newKeyMap(cfg.Keys),
		help:   help.New(),
		logger: logger,
		pane:   &taskPane{},
		toasts: newToastStack(cfg.NotifyFor()),
		in:     newInputs(cfg.Fields),
		width:  defaultWidth,
	}

	opts := board.Options{
		Mode:     cfg.Filter(),
		Renderer: m.pane,
		Notifier: m.toasts,
		Logger:   logger,
	}
	if m.in.category != nil {
		opts.Categories = m.in.category
	}
	m.board = board.New(store, opts)
	if err := m.board.Seed(cfg.SeedCategories(), cfg.SeedTasks()); err != nil {
		return nil, fmt.Errorf("seed board: %w", err)
	}
	return m, nil
}

func newInputs(f config.Fields) inputs {
	in := inputs{
		catName:  newInput("Category name", 40),
		catColor: newInput("#RRGGBB", 7),
	}
	in.catColor.SetValue(defaultNewCategoryColor)
	if f.Title {
		ti := newInput("Task title", 256)
		in.title = &ti
	}
	if f.DueDate {
		di := newInput("YYYY-MM-DD", 10)
		in.due = &di
	}
	if f.Category {
		in.category = &categorySelector{}
	}
	return in
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

func (m *Model) Init() tea.Cmd {
	return m.toasts.Flush()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var cmd tea.Cmd
		switch m.mode {
		case modeAdd:
			cmd = m.updateAddMode(msg)
		case modeCategory:
			cmd = m.updateCategoryMode(msg)
		default:
			cmd = m.updateListMode(msg)
		}
		return m, tea.Batch(cmd, m.toasts.Flush())
	case toastMsg:
		return m, m.toasts.Update(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m *Model) updateListMode(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, m.pane.Len())
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, m.pane.Len())
	case key.Matches(msg, m.keys.Add):
		return m.openAddForm()
	case key.Matches(msg, m.keys.NewCategory):
		return m.openCategoryForm(false)
	case key.Matches(msg, m.keys.Toggle):
		m.dispatch(todo.ControlToggle)
	case key.Matches(msg, m.keys.Delete):
		m.dispatch(todo.ControlDelete)
	case key.Matches(msg, m.keys.MoveUp):
		m.dispatch(todo.ControlMoveUp)
	case key.Matches(msg, m.keys.MoveDown):
		m.dispatch(todo.ControlMoveDown)
	case key.Matches(msg, m.keys.Filter):
		m.board.SetFilterMode(string(m.board.Mode().Next()))
	case key.Matches(msg, m.keys.FilterAll):
		m.board.SetFilterMode(string(todo.FilterAll))
	case key.Matches(msg, m.keys.FilterActive):
		m.board.SetFilterMode(string(todo.FilterOngoing))
	case key.Matches(msg, m.keys.FilterDone):
		m.board.SetFilterMode(string(todo.FilterDone))
	}
	m.cursor = clampCursor(m.cursor, m.pane.Len())
	return nil
}

// dispatch applies kind to the row under the cursor. The cursor follows a
// moved task.
func (m *Model) dispatch(kind todo.ControlKind) {
	row, ok := m.pane.Row(m.cursor)
	if !ok {
		return
	}
	if !m.board.Dispatch(kind, row.TaskID) {
		return
	}
	if kind == todo.ControlMoveUp || kind == todo.ControlMoveDown {
		if i := m.pane.IndexOf(row.TaskID); i >= 0 {
			m.cursor = i
		}
	}
}

func (m *Model) addFields() []addField {
	fields := make([]addField, 0, 3)
	if m.in.title != nil {
		fields = append(fields, fieldTitle)
	}
	if m.in.due != nil {
		fields = append(fields, fieldDue)
	}
	if m.in.category != nil {
		fields = append(fields, fieldCategory)
	}
	return fields
}

func (m *Model) openAddForm() tea.Cmd {
	if m.in.title == nil {
		m.board.Reject(fmt.Errorf("task title: %w", todo.ErrMissingInput))
		return nil
	}
	m.mode = modeAdd
	return m.focusAdd(0)
}

func (m *Model) focusAdd(i int) tea.Cmd {
	fields := m.addFields()
	m.focus = wrapIndex(i, len(fields))
	m.blurAll()
	switch fields[m.focus] {
	case fieldTitle:
		return m.in.title.Focus()
	case fieldDue:
		return m.in.due.Focus()
	}
	return nil
}

func (m *Model) blurAll() {
	if m.in.title != nil {
		m.in.title.Blur()
	}
	if m.in.due != nil {
		m.in.due.Blur()
	}
	m.in.catName.Blur()
	m.in.catColor.Blur()
}

func (m *Model) updateAddMode(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeForms()
		return nil
	case key.Matches(msg, m.keys.Confirm):
		return m.submitTask()
	case key.Matches(msg, m.keys.NextField):
		return m.focusAdd(m.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return m.focusAdd(m.focus - 1)
	}

	var cmd tea.Cmd
	switch m.addFields()[m.focus] {
	case fieldTitle:
		*m.in.title, cmd = m.in.title.Update(msg)
	case fieldDue:
		*m.in.due, cmd = m.in.due.Update(msg)
	case fieldCategory:
		switch {
		case key.Matches(msg, m.keys.OptionRight):
			m.in.category.Next()
		case key.Matches(msg, m.keys.OptionLeft):
			m.in.category.Prev()
		default:
			return nil
		}
		if m.in.category.Value() == todo.CreateCategoryValue {
			return m.openCategoryForm(true)
		}
	}
	return cmd
}

func (m *Model) submitTask() tea.Cmd {
	due, category := "", ""
	if m.in.due != nil {
		due = m.in.due.Value()
	}
	if m.in.category != nil {
		category = m.in.category.Value()
	}
	task, err := m.board.AddTask(m.in.title.Value(), due, category)
	if errors.Is(err, todo.ErrCreateSentinel) {
		m.in.category.Reset()
		return nil
	}
	if err != nil {
		return nil
	}

	m.in.title.SetValue("")
	if m.in.due != nil {
		m.in.due.SetValue("")
	}
	if m.in.category != nil {
		m.in.category.Reset()
	}
	m.closeForms()
	if i := m.pane.IndexOf(task.ID); i >= 0 {
		m.cursor = i
	}
	m.cursor = clampCursor(m.cursor, m.pane.Len())
	return nil
}

func (m *Model) openCategoryForm(fromSelect bool) tea.Cmd {
	m.mode = modeCategory
	m.fromSelect = fromSelect
	m.catFocus = 0
	m.blurAll()
	return m.in.catName.Focus()
}

func (m *Model) updateCategoryMode(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.leaveCategoryForm(false)
	case key.Matches(msg, m.keys.Confirm):
		return m.submitCategory()
	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		m.catFocus = 1 - m.catFocus
		m.blurAll()
		if m.catFocus == 0 {
			return m.in.catName.Focus()
		}
		return m.in.catColor.Focus()
	}

	var cmd tea.Cmd
	if m.catFocus == 0 {
		m.in.catName, cmd = m.in.catName.Update(msg)
	} else {
		m.in.catColor, cmd = m.in.catColor.Update(msg)
	}
	return cmd
}

// submitCategory keeps the form open on rejection so the name can be
// corrected.
func (m *Model) submitCategory() tea.Cmd {
	c, ok := m.board.AddCategory(m.in.catName.Value(), m.in.catColor.Value())
	if !ok {
		if m.fromSelect && m.in.category != nil {
			m.in.category.Reset()
		}
		m.catFocus = 0
		m.blurAll()
		return m.in.catName.Focus()
	}
	m.in.catName.SetValue("")
	m.in.catColor.SetValue(defaultNewCategoryColor)
	if m.in.category != nil {
		m.in.category.Select(c.Name)
	}
	return m.leaveCategoryForm(true)
}

// leaveCategoryForm returns to wherever the form was opened from. A
// cancelled pick from the selector falls back to the placeholder.
func (m *Model) leaveCategoryForm(created bool) tea.Cmd {
	if !m.fromSelect {
		m.closeForms()
		return nil
	}
	if !created && m.in.category != nil {
		m.in.category.Reset()
	}
	m.fromSelect = false
	m.mode = modeAdd
	return m.focusAdd(m.focus)
}

func (m *Model) closeForms() {
	m.blurAll()
	m.fromSelect = false
	m.mode = modeList
}

func (m *Model) View() string {
	var b strings.Builder

	if toasts := m.toasts.View(m.width); toasts != "" {
		b.WriteString(toasts)
		b.WriteString("\n")
	}
	b.WriteString(titleStyle.Render("Todo"))
	b.WriteString("\n")
	b.WriteString(m.pane.View(m.cursor, m.mode == modeList))
	b.WriteString("\n---\n")

	switch m.mode {
	case modeAdd:
		b.WriteString(m.renderAddForm())
	case modeCategory:
		b.WriteString(m.renderCategoryForm())
	}

	b.WriteString("\n")
	if m.mode == modeList {
		b.WriteString(m.help.View(m.keys))
	} else {
		b.WriteString(m.help.View(formKeys{keys: m.keys}))
	}
	return b.String()
}

func (m *Model) renderAddForm() string {
	var b strings.Builder
	b.WriteString("New task\n\n")
	for i, f := range m.addFields() {
		focused := i == m.focus
		switch f {
		case fieldTitle:
			b.WriteString(formLine("Title", m.in.title.View(), focused))
		case fieldDue:
			b.WriteString(formLine("Due", m.in.due.View(), focused))
		case fieldCategory:
			b.WriteString(formLine("Category", "‹ "+m.in.category.Label()+" ›", focused))
		}
	}
	return b.String()
}

func (m *Model) renderCategoryForm() string {
	var b strings.Builder
	b.WriteString("New category\n\n")
	b.WriteString(formLine("Name", m.in.catName.View(), m.catFocus == 0))
	b.WriteString(formLine("Color", m.in.catColor.View(), m.catFocus == 1))

	preview := strings.TrimSpace(m.in.catName.Value())
	if preview == "" {
		preview = "preview"
	}
	color := strings.TrimSpace(m.in.catColor.Value())
	if color == "" {
		color = todo.DefaultCategoryColor
	}
	b.WriteString(formLine("", badgeStyle.Background(lipgloss.Color(color)).Render(preview), false))
	return b.String()
}

func formLine(label, value string, focused bool) string {
	style := labelStyle
	if focused {
		style = focusLabelStyle
	}
	return style.Render(label) + " " + value + "\n"
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
